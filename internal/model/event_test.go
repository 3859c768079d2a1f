package model

import "testing"

func TestNormalizeEventType(t *testing.T) {
	cases := []struct {
		in       string
		want     string
		custom   bool
		rejected bool
	}{
		{in: "dinner", want: "dinner"},
		{in: "Dinner", want: "dinner"},
		{in: "  CULTURAL  ", want: "cultural"},
		{in: "workshop", want: "workshop", custom: true},
		{in: "Networking Mixer", want: "networking mixer", custom: true},
		{in: "", rejected: true},
		{in: "   ", rejected: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			et, ok := NormalizeEventType(tc.in)
			if tc.rejected {
				if ok {
					t.Fatalf("NormalizeEventType(%q) accepted, want rejection", tc.in)
				}
				return
			}
			if !ok {
				t.Fatalf("NormalizeEventType(%q) rejected", tc.in)
			}
			if et.String() != tc.want {
				t.Fatalf("String() = %q, want %q", et.String(), tc.want)
			}
			if et.IsCustom() != tc.custom {
				t.Fatalf("IsCustom() = %v, want %v", et.IsCustom(), tc.custom)
			}
		})
	}
}
