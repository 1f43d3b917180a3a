package lang

import (
	"slices"
	"testing"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"

	"github.com/ardnew/fieldvar/log"
)

// calleeCollector records the name of every function called in a tree,
// in walk order.
type calleeCollector struct{ names []string }

func (c *calleeCollector) Visit(node *ast.Node) {
	if n, ok := (*node).(*ast.CallNode); ok {
		if id, ok := n.Callee.(*ast.IdentifierNode); ok {
			c.names = append(c.names, id.Value)
		}
	}
}

func TestArithmeticPatcher(t *testing.T) {
	tests := []struct {
		source string
		want   []string
	}{
		{"a + b", []string{"_add"}},
		{"a - b * c", []string{"_mul", "_sub"}},
		{"a ** 2", []string{"_pow"}},
		{"a ^ 2", []string{"_pow"}},
		{"-a", []string{"_neg"}},
		{"a < b ? a : b", []string{"_lt", "_where"}},
		{"v[1]", []string{"_index"}},
		{"sin(a) / 2", []string{"sin", "_div"}},
		{"a && b", nil},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tree, err := parser.Parse(tt.source)
			if err != nil {
				t.Fatal(err)
			}

			ast.Walk(&tree.Node, &arithmeticPatcher{logger: log.Default()})

			var c calleeCollector

			ast.Walk(&tree.Node, &c)

			if !slices.Equal(c.names, tt.want) {
				t.Errorf("calls = %v, want %v", c.names, tt.want)
			}
		})
	}
}

func TestIdentScanner(t *testing.T) {
	tests := []struct {
		source      string
		free        []string
		unknown     []string
		elementwise bool
	}{
		{"x * y + x", []string{"x", "y"}, nil, true},
		{"sin(x) + pi", []string{"x"}, nil, true},
		{"dot(E, E)", []string{"E"}, nil, false},
		{"[x, y]", []string{"x", "y"}, nil, false},
		{"v[0]", []string{"v"}, nil, false},
		{"f(x)", []string{"x"}, []string{"f"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			tree, err := parser.Parse(tt.source)
			if err != nil {
				t.Fatal(err)
			}

			s := newIdentScanner()
			ast.Walk(&tree.Node, s)

			if got := s.free(); !slices.Equal(got, tt.free) {
				t.Errorf("free() = %v, want %v", got, tt.free)
			}

			if got := s.unknownCallees(); !slices.Equal(got, tt.unknown) {
				t.Errorf("unknownCallees() = %v, want %v", got, tt.unknown)
			}

			if s.elementwise != tt.elementwise {
				t.Errorf("elementwise = %v, want %v", s.elementwise, tt.elementwise)
			}
		})
	}
}
