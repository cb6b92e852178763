package theme

import (
	"strings"
	"testing"
)

func TestCurrentDefaultsToCatppuccinMocha(t *testing.T) {
	th := Current()
	if th.Name != "catppuccin-mocha" {
		t.Errorf("expected catppuccin-mocha, got %s", th.Name)
	}
	if !th.IsDark {
		t.Error("expected a dark theme")
	}
}

func TestAllColorsAreHex(t *testing.T) {
	th := NewCatppuccinMocha()
	colors := map[string]string{
		"Primary": th.Primary, "Secondary": th.Secondary, "Tertiary": th.Tertiary,
		"BgBase": th.BgBase, "BgMantle": th.BgMantle, "BgSurface0": th.BgSurface0,
		"FgMuted": th.FgMuted, "FgSubtle": th.FgSubtle, "FgBase": th.FgBase,
		"BorderDefault": th.BorderDefault, "BorderFocus": th.BorderFocus,
		"Success": th.Success, "Warning": th.Warning, "Error": th.Error, "Info": th.Info,
		"Lost": th.Lost, "Found": th.Found,
	}
	for name, c := range colors {
		if !strings.HasPrefix(c, "#") || len(c) != 7 {
			t.Errorf("%s: expected #RRGGBB, got %q", name, c)
		}
	}
}

func TestInterpolateColorEndpoints(t *testing.T) {
	if got := InterpolateColor("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("pos 0: got %s", got)
	}
	if got := InterpolateColor("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Errorf("pos 1: got %s", got)
	}
}

func TestStylesAreLazilyBuiltOnce(t *testing.T) {
	th := NewCatppuccinMocha()
	if th.S() != th.S() {
		t.Error("expected the same styles instance on repeated calls")
	}
}
