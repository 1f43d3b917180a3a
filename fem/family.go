package fem

import (
	"log/slog"
	"strings"
)

// Family is a finite-element family. It selects how a field is sampled:
// plain nodal evaluation for [H1] and [L2], vector (tangential or normal)
// evaluation for [ND] and [RT].
type Family int

// Element families.
const (
	H1 Family = iota // H1
	L2               // L2
	ND               // ND
	RT               // RT
)

//nolint:gochecknoglobals
var familyPrefix = map[string]Family{
	"H1": H1,
	"L2": L2,
	"DG": L2,
	"ND": ND,
	"RT": RT,
}

// ParseFamily resolves a finite-element collection name such as
// "H1_3D_P2" or "ND_2D_P1" to its family.
func ParseFamily(name string) (Family, error) {
	prefix, _, _ := strings.Cut(name, "_")
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}

	if f, ok := familyPrefix[strings.ToUpper(prefix)]; ok {
		return f, nil
	}

	return 0, ErrUnsupportedElementFamily.With(slog.String("family", name))
}

// Vector reports whether fields of family f are evaluated as vectors.
func (f Family) Vector() bool { return f == ND || f == RT }
