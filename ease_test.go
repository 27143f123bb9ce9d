package hexfield

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestParseEase(t *testing.T) {
	tests := []struct {
		name string
		want ease.TweenFunc
	}{
		{"", ease.Linear},
		{"none", ease.Linear},
		{"linear", ease.Linear},
		{"power0.inOut", ease.Linear},
		{"power1", ease.OutQuad},
		{"power2.inOut", ease.InOutCubic},
		{"power3.out", ease.OutQuart},
		{"Power4.In", ease.InQuint},
		{"sine.inOut", ease.InOutSine},
		{"back.out(1.7)", ease.OutBack},
		{"elastic", ease.OutElastic},
		{"bounce.in", ease.InBounce},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := ParseEase(tt.name)
			if err != nil {
				t.Fatalf("ParseEase(%q): %v", tt.name, err)
			}
			// Compare curves rather than func values.
			for _, x := range []float32{0.1, 0.3, 0.5, 0.7, 0.9} {
				if got, want := fn(x, 0, 1, 1), tt.want(x, 0, 1, 1); got != want {
					t.Fatalf("f(%v) = %v, want %v", x, got, want)
				}
			}
		})
	}
}

func TestParseEaseUnknown(t *testing.T) {
	for _, name := range []string{"wobble", "sine.sideways", "power9"} {
		if _, err := ParseEase(name); err == nil {
			t.Errorf("ParseEase(%q) succeeded, want error", name)
		}
	}
}

func TestEaseOrFallback(t *testing.T) {
	fn := easeOr("nope", ease.InQuad)
	if fn(0.5, 0, 1, 1) != ease.InQuad(0.5, 0, 1, 1) {
		t.Error("easeOr did not fall back")
	}
}
