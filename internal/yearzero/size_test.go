package yearzero

import "testing"

func TestSizeStepLadder(t *testing.T) {
	tests := []struct {
		size     Size
		up, down Size
	}{
		{size: SizeD6, up: SizeD8, down: SizeNone},
		{size: SizeD8, up: SizeD10, down: SizeD6},
		{size: SizeD10, up: SizeD12, down: SizeD8},
		{size: SizeD12, up: SizeD12, down: SizeD10},
	}

	for _, tc := range tests {
		t.Run(tc.size.Label(), func(t *testing.T) {
			if got := tc.size.StepUp(); got != tc.up {
				t.Errorf("step up = %v, want %v", got, tc.up)
			}
			if got := tc.size.StepDown(); got != tc.down {
				t.Errorf("step down = %v, want %v", got, tc.down)
			}
		})
	}
}

func TestSizeLabels(t *testing.T) {
	tests := []struct {
		size Size
		want string
	}{
		{SizeNone, "none"},
		{SizeD6, "d6"},
		{SizeD8, "d8"},
		{SizeD10, "d10"},
		{SizeD12, "d12"},
	}

	for _, tc := range tests {
		if got := tc.size.Label(); got != tc.want {
			t.Errorf("label(%d) = %q, want %q", int(tc.size), got, tc.want)
		}
	}
}

func TestLocationForFace(t *testing.T) {
	tests := []struct {
		face int
		want Location
	}{
		{1, LocationLegs},
		{2, LocationTorso},
		{3, LocationTorso},
		{4, LocationTorso},
		{5, LocationArms},
		{6, LocationHead},
		{0, LocationUnspecified},
		{7, LocationUnspecified},
	}

	for _, tc := range tests {
		if got := locationForFace(tc.face); got != tc.want {
			t.Errorf("locationForFace(%d) = %v, want %v", tc.face, got, tc.want)
		}
	}
}
