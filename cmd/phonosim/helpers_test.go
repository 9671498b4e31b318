package main

import (
	"testing"

	"github.com/fatih/color"
)

func TestReadUIMode(t *testing.T) {
	cases := []struct {
		input string
		want  uiMode
	}{
		{"", uiModeAuto},
		{"auto", uiModeAuto},
		{" ON ", uiModeOn},
		{"off", uiModeOff},
	}
	for _, tc := range cases {
		got, err := readUIMode(tc.input)
		if err != nil {
			t.Fatalf("readUIMode(%q) error: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("readUIMode(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("expected error for invalid ui mode")
	}
	if !shouldUseTUI(uiModeOn) || shouldUseTUI(uiModeOff) {
		t.Fatal("explicit ui modes must be honoured")
	}
}

func TestApplyColorMode(t *testing.T) {
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	on, err := applyColorMode("on")
	if err != nil || !on || color.NoColor {
		t.Fatalf("applyColorMode(on) = (%v, %v), NoColor=%v", on, err, color.NoColor)
	}
	on, err = applyColorMode("never")
	if err != nil || on || !color.NoColor {
		t.Fatalf("applyColorMode(never) = (%v, %v), NoColor=%v", on, err, color.NoColor)
	}
	if _, err := applyColorMode("purple"); err == nil {
		t.Fatal("expected error for invalid color mode")
	}
}
