// Package scoring computes end-of-game scores from finished habitats.
package scoring

import (
	"fmt"
	"strings"

	"github.com/gravitas-games/habitats/internal/habitat"
)

// Variant selects which scoring card is in play for a species.
type Variant int

const (
	VariantA Variant = iota
	VariantB
)

func (v Variant) String() string {
	switch v {
	case VariantA:
		return "A"
	case VariantB:
		return "B"
	default:
		return fmt.Sprintf("variant(%d)", int(v))
	}
}

// MarshalText encodes the variant as "A" or "B".
func (v Variant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText decodes "A" or "B", case-insensitively.
func (v *Variant) UnmarshalText(b []byte) error {
	p, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = p
	return nil
}

// ParseVariant resolves "A" or "B".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A", "":
		return VariantA, nil
	case "B":
		return VariantB, nil
	}
	return 0, fmt.Errorf("unknown scoring variant %q", s)
}

// Rules holds one variant per species, indexed by habitat.Animal.
type Rules [len(habitat.Animals)]Variant

// For returns the variant in play for a.
func (r Rules) For(a habitat.Animal) Variant { return r[a] }

// ParseRules builds Rules from animal-name keys. Missing species use A.
func ParseRules(m map[string]string) (Rules, error) {
	var r Rules
	for name, v := range m {
		a, err := habitat.ParseAnimal(name)
		if err != nil {
			return r, err
		}
		variant, err := ParseVariant(v)
		if err != nil {
			return r, fmt.Errorf("%s: %w", a, err)
		}
		r[a] = variant
	}
	return r, nil
}

// String renders the rules as e.g. "bear:A elk:B fox:A hawk:A salmon:B".
func (r Rules) String() string {
	parts := make([]string, 0, len(r))
	for _, a := range habitat.Animals {
		parts = append(parts, a.String()+":"+r[a].String())
	}
	return strings.Join(parts, " ")
}
