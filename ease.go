package hexfield

import (
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// easeFamilies maps a curve family to its in, out and in-out variants.
var easeFamilies = map[string][3]ease.TweenFunc{
	"power1":  {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"quad":    {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"power2":  {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"cubic":   {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"power3":  {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"quart":   {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"power4":  {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"quint":   {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"strong":  {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"sine":    {ease.InSine, ease.OutSine, ease.InOutSine},
	"expo":    {ease.InExpo, ease.OutExpo, ease.InOutExpo},
	"circ":    {ease.InCirc, ease.OutCirc, ease.InOutCirc},
	"back":    {ease.InBack, ease.OutBack, ease.InOutBack},
	"elastic": {ease.InElastic, ease.OutElastic, ease.InOutElastic},
	"bounce":  {ease.InBounce, ease.OutBounce, ease.InOutBounce},
}

// ParseEase resolves a GSAP-style ease name such as "power3", "sine.inOut"
// or "back.out(1.7)" to a gween easing function. A bare family name means
// the ".out" variant. Parenthesized parameters are accepted and ignored.
// The empty string, "none", "linear" and "power0" are linear.
func ParseEase(name string) (ease.TweenFunc, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(n, '('); i >= 0 {
		n = n[:i]
	}
	switch n {
	case "", "none", "linear", "power0", "power0.in", "power0.out", "power0.inout":
		return ease.Linear, nil
	}

	family, variant, _ := strings.Cut(n, ".")
	fns, ok := easeFamilies[family]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	switch variant {
	case "in":
		return fns[0], nil
	case "", "out":
		return fns[1], nil
	case "inout":
		return fns[2], nil
	}
	return nil, fmt.Errorf("unknown ease variant %q", name)
}

// mustEase resolves a built-in ease name. Only used with literals.
func mustEase(name string) ease.TweenFunc {
	fn, err := ParseEase(name)
	if err != nil {
		panic(err)
	}
	return fn
}

// easeOr resolves name, falling back to def when the name is unknown.
func easeOr(name string, def ease.TweenFunc) ease.TweenFunc {
	fn, err := ParseEase(name)
	if err != nil {
		return def
	}
	return fn
}
