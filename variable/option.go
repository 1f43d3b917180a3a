package variable

import "github.com/ardnew/fieldvar/log"

// DefaultMaxDepth bounds dependency recursion.
const DefaultMaxDepth = 100

// PieceSelection chooses the piece of a [Domain] used for point
// evaluation.
type PieceSelection int

const (
	// SelectLastPiece evaluates the most recently registered piece
	// regardless of the element attribute.
	SelectLastPiece PieceSelection = iota
	// SelectMatchingPiece evaluates the first piece whose domains contain
	// the element attribute, or zero if none does.
	SelectMatchingPiece
)

// String returns the name of s.
func (s PieceSelection) String() string {
	if s == SelectMatchingPiece {
		return "matching"
	}

	return "last"
}

// Option configures a [Variables] namespace or a [Domain].
type Option func(options) options

type options struct {
	logger    log.Logger
	maxDepth  int
	selection PieceSelection
}

func makeOptions(opts ...Option) options {
	o := options{maxDepth: DefaultMaxDepth}

	for _, opt := range opts {
		if opt != nil {
			o = opt(o)
		}
	}

	return o
}

// WithLogger sets the logger used for trace diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(o options) options {
		o.logger = logger

		return o
	}
}

// WithMaxDepth sets the dependency recursion limit. Non-positive values
// select [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o options) options {
		if depth <= 0 {
			depth = DefaultMaxDepth
		}

		o.maxDepth = depth

		return o
	}
}

// WithPieceSelection sets how piecewise variables choose a piece at a
// point.
func WithPieceSelection(s PieceSelection) Option {
	return func(o options) options {
		o.selection = s

		return o
	}
}
