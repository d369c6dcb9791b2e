package model

import "testing"

func TestRecalcRatios(t *testing.T) {
	cases := []struct {
		name        string
		endorse     int
		oppose      int
		wantRate    float64
		wantEoRatio float64
	}{
		{"no votes", 0, 0, 0, 0},
		{"only endorsements", 3, 0, 1, 3},
		{"only oppositions", 0, 2, 0, 0},
		{"mixed", 6, 3, 0.6666666666666666, 2},
		{"even", 2, 2, 0.5, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Post{Endorse: tc.endorse, Oppose: tc.oppose}
			p.RecalcRatios()

			if p.EndorseRate != tc.wantRate {
				t.Errorf("endorseRate = %v, want %v", p.EndorseRate, tc.wantRate)
			}
			if p.EoRatio != tc.wantEoRatio {
				t.Errorf("eoRatio = %v, want %v", p.EoRatio, tc.wantEoRatio)
			}
		})
	}
}
