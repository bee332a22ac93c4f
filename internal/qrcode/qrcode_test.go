package qrcode

import (
	"bytes"
	"testing"
)

func TestGenerateIsPNG(t *testing.T) {
	png, err := Generate(GameLink("http://localhost:8080/", "kitchen"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("expected PNG output")
	}
}

func TestGameLink(t *testing.T) {
	if got := GameLink("http://h:1/", "a b"); got != "http://h:1/game/a%20b" {
		t.Fatalf("unexpected link %q", got)
	}
}
