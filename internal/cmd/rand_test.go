package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/xcke/bytesafe/bytebuf"
)

func TestRandCmd(t *testing.T) {
	out, _, err := execute(t, "rand", "16")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	hex := strings.TrimSuffix(out, "\n")
	if len(hex) != 32 {
		t.Fatalf("expected 32 hex digits for 16 bytes, got %d (%q)", len(hex), hex)
	}
	if _, err := bytebuf.FromHex(hex); err != nil {
		t.Errorf("output is not valid hex: %v", err)
	}
}

func TestRandCmd_Zero(t *testing.T) {
	out, _, err := execute(t, "rand", "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "\n" {
		t.Errorf("expected an empty hex line, got %q", out)
	}
}

func TestRandCmd_OverCap(t *testing.T) {
	_, _, err := execute(t, "rand", "1048577")
	if err == nil {
		t.Fatal("expected an error above the 1 MiB cap")
	}
	if !errors.Is(err, bytebuf.ErrRandomTooLarge) {
		t.Errorf("expected ErrRandomTooLarge, got %v", err)
	}
}

func TestRandCmd_Negative(t *testing.T) {
	_, _, err := execute(t, "rand", "-5")
	if err == nil {
		t.Fatal("expected an error for a negative count")
	}
}
