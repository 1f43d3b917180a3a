package model

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/fieldvar/fem/simplex"
)

// Model is the decoded form of a model file.
type Model struct {
	digest string

	Mesh        *simplex.Mesh `json:"mesh,omitempty"        yaml:"mesh,omitempty"`
	Coordinates []string      `json:"coordinates"           yaml:"coordinates"`
	Constants   []Constant    `json:"constants,omitempty"   yaml:"constants,omitempty"`
	Expressions []Expression  `json:"expressions,omitempty" yaml:"expressions,omitempty"`
	Fields      []Field       `json:"fields,omitempty"      yaml:"fields,omitempty"`
	// Selection is "last" (default) or "matching"; see
	// variable.WithPieceSelection.
	Selection string `json:"selection,omitempty" yaml:"selection,omitempty"`
	MaxDepth  int    `json:"max_depth,omitempty" yaml:"max_depth,omitempty"`
	Normals   bool   `json:"normals,omitempty"   yaml:"normals,omitempty"`
}

// Constant binds Name+Suffix to Value, or adds a piece on Domains.
type Constant struct {
	Value   any    `json:"value"             yaml:"value"`
	Imag    any    `json:"imag,omitempty"    yaml:"imag,omitempty"`
	Name    string `json:"name"              yaml:"name"`
	Suffix  string `json:"suffix,omitempty"  yaml:"suffix,omitempty"`
	Domains []int  `json:"domains,omitempty" yaml:"domains,omitempty"`
}

// Expression binds Name+Suffix to Expr. Occurrences of Vars in Expr get
// Suffix appended. Surface expressions may reference the normal.
type Expression struct {
	Name    string   `json:"name"              yaml:"name"`
	Suffix  string   `json:"suffix,omitempty"  yaml:"suffix,omitempty"`
	Expr    string   `json:"expr"              yaml:"expr"`
	Vars    []string `json:"vars,omitempty"    yaml:"vars,omitempty"`
	Domains []int    `json:"domains,omitempty" yaml:"domains,omitempty"`
	Complex bool     `json:"complex,omitempty" yaml:"complex,omitempty"`
	Surface bool     `json:"surface,omitempty" yaml:"surface,omitempty"`
}

// Field is a nodal field on the model mesh with one row per vertex.
type Field struct {
	Name   string      `json:"name"             yaml:"name"`
	Suffix string      `json:"suffix,omitempty" yaml:"suffix,omitempty"`
	Kind   Kind        `json:"kind"             yaml:"kind"`
	Family string      `json:"family"           yaml:"family"`
	Values [][]float64 `json:"values"           yaml:"values"`
	Imag   [][]float64 `json:"imag,omitempty"   yaml:"imag,omitempty"`
	Emesh  int         `json:"emesh,omitempty"  yaml:"emesh,omitempty"`
}

// Kind selects the names a field is bound under.
type Kind string

const (
	// KindScalar binds Name+Suffix to the first component.
	KindScalar Kind = "scalar"
	// KindVector binds Name+Suffix to the whole field.
	KindVector Kind = "vector"
	// KindComponents binds the whole field and every component.
	KindComponents Kind = "components"
	// KindElements binds every component only.
	KindElements Kind = "elements"
)

// Load decodes a model from r.
func Load(r io.Reader) (*Model, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadModel.Wrap(err)
	}

	var m Model

	dec := yaml.NewDecoder(bytes.NewReader(data), yaml.DisallowUnknownField())
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, ErrDecodeModel.Wrap(err).With(slog.Int("bytes", len(data)))
	}

	m.digest = strconv.FormatUint(xxh3.Hash(data), 36)

	return &m, nil
}

// Digest identifies the source the model was loaded from.
func (m *Model) Digest() string { return m.digest }
