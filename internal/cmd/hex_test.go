package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xcke/bytesafe/bytebuf"
)

func TestHexEncodeCmd_Argument(t *testing.T) {
	out, _, err := execute(t, "hex", "encode", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "68656c6c6f\n" {
		t.Errorf("expected %q, got %q", "68656c6c6f\n", out)
	}
}

func TestHexEncodeCmd_Stdin(t *testing.T) {
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(new(bytes.Buffer))
	root.SetIn(bytes.NewReader([]byte{0xde, 0xad, 0xbe, 0xef}))
	root.SetArgs([]string{"hex", "encode"})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "deadbeef\n" {
		t.Errorf("expected %q, got %q", "deadbeef\n", out.String())
	}
}

func TestHexDecodeCmd(t *testing.T) {
	out, _, err := execute(t, "hex", "decode", "68656c6c6f")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hello" {
		t.Errorf("expected %q, got %q", "hello", out)
	}
}

func TestHexDecodeCmd_OddLength(t *testing.T) {
	out, _, err := execute(t, "hex", "decode", "fe81eabd5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := string([]byte{0xfe, 0x81, 0xea, 0xbd, 0x05})
	if out != want {
		t.Errorf("expected % x, got % x", want, out)
	}
}

func TestHexDecodeCmd_InvalidDigit(t *testing.T) {
	_, _, err := execute(t, "hex", "decode", "12g4")
	if err == nil {
		t.Fatal("expected an error for an invalid hex digit")
	}
	if !errors.Is(err, bytebuf.ErrInvalidHex) {
		t.Errorf("expected ErrInvalidHex, got %v", err)
	}
	if !strings.Contains(err.Error(), "position 2") {
		t.Errorf("expected the position in the error, got %q", err.Error())
	}
}
