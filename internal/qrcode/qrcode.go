package qrcode

import (
	"fmt"
	"net/url"
	"strings"

	qr "github.com/skip2/go-qrcode"
)

// Generate creates a QR code PNG image for the given URL.
func Generate(link string) ([]byte, error) {
	return qr.Encode(link, qr.Medium, 256)
}

// GameLink returns the URL of a game's page under base, e.g.
// "http://host:8080" + "kitchen" -> "http://host:8080/game/kitchen".
func GameLink(base, gameID string) string {
	return fmt.Sprintf("%s/game/%s", strings.TrimRight(base, "/"), url.PathEscape(gameID))
}
