package geometry

import (
	"fmt"
	"strings"
)

// Kind selects one entry of the procedural geometry catalog.
// The zero value is Invalid so that an unset Kind can be told apart from a chosen one.
type Kind uint8

const (
	Invalid Kind = iota
	Sphere
	Box
	Tetrahedron
	Octahedron
	Dodecahedron
	Icosahedron
	Torus
	Knot
	RandomKnot
	Lathe
	kindCount
)

var kindNames = [...]string{
	Invalid:      "invalid",
	Sphere:       "sphere",
	Box:          "box",
	Tetrahedron:  "tetrahedron",
	Octahedron:   "octahedron",
	Dodecahedron: "dodecahedron",
	Icosahedron:  "icosahedron",
	Torus:        "torus",
	Knot:         "knot",
	RandomKnot:   "random_knot",
	Lathe:        "lathe",
}

var _ = [1]struct{}{}[len(kindNames)-int(kindCount)]

// kindAliases are the extra names shapes answer to (dice names, nicknames).
var kindAliases = map[string]Kind{
	"ball":           Sphere,
	"cube":           Box,
	"d6":             Box,
	"pyramid":        Tetrahedron,
	"d4":             Tetrahedron,
	"d8":             Octahedron,
	"d12":            Dodecahedron,
	"d20":            Icosahedron,
	"donut":          Torus,
	"pretzel":        Knot,
	"random knot":    RandomKnot,
	"random pretzel": RandomKnot,
	"random_pretzel": RandomKnot,
	"vase":           Lathe,
}

// Kinds returns every valid kind in catalog order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Sphere; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) Valid() bool { return k > Invalid && k < kindCount }

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind resolves a canonical name or alias, case-insensitively.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k := Sphere; k < kindCount; k++ {
		if kindNames[k] == name {
			return k, nil
		}
	}
	if k, ok := kindAliases[name]; ok {
		return k, nil
	}
	return Invalid, fmt.Errorf("unknown shape kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("cannot marshal %s", k)
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
