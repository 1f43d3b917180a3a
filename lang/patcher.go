package lang

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/expr-lang/expr/ast"

	"github.com/ardnew/fieldvar/log"
	"github.com/ardnew/fieldvar/value"
)

// binaryOps maps each patched value operation to its internal function.
//
//nolint:gochecknoglobals
var binaryOps = map[value.Op]string{
	value.OpAdd: internalPrefix + "add",
	value.OpSub: internalPrefix + "sub",
	value.OpMul: internalPrefix + "mul",
	value.OpDiv: internalPrefix + "div",
	value.OpPow: internalPrefix + "pow",
	value.OpMod: internalPrefix + "mod",
	value.OpLT:  internalPrefix + "lt",
	value.OpLE:  internalPrefix + "le",
	value.OpGT:  internalPrefix + "gt",
	value.OpGE:  internalPrefix + "ge",
	value.OpEQ:  internalPrefix + "eq",
	value.OpNE:  internalPrefix + "ne",
}

// operators maps expr-lang operator tokens onto value operations.
//
//nolint:gochecknoglobals
var operators = map[string]value.Op{
	"+": value.OpAdd, "-": value.OpSub, "*": value.OpMul, "/": value.OpDiv,
	"**": value.OpPow, "^": value.OpPow, "%": value.OpMod,
	"<": value.OpLT, "<=": value.OpLE, ">": value.OpGT, ">=": value.OpGE,
	"==": value.OpEQ, "!=": value.OpNE,
}

// arithmeticPatcher rewrites operator nodes into calls of the internal
// array-aware builtins, so that operands may be scalars, vectors or
// tensors, real or complex.
//
// expr-lang walks the tree depth-first and visits children before their
// parent, so operands are already patched when their operator is visited.
type arithmeticPatcher struct {
	logger log.Logger
}

// Visit implements ast.Visitor for arithmeticPatcher.
func (p *arithmeticPatcher) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.BinaryNode:
		op, ok := operators[n.Operator]
		if !ok {
			return
		}

		p.patch(node, binaryOps[op], n.Operator, n.Left, n.Right)

	case *ast.UnaryNode:
		switch n.Operator {
		case "-":
			p.patch(node, internalPrefix+"neg", n.Operator, n.Node)
		case "+":
			p.patch(node, internalPrefix+"pos", n.Operator, n.Node)
		}

	case *ast.MemberNode:
		if _, named := n.Property.(*ast.StringNode); named {
			return
		}

		p.patch(node, internalPrefix+"index", "[]", n.Node, n.Property)

	case *ast.ConditionalNode:
		p.patch(node, internalPrefix+"where", "?:", n.Cond, n.Exp1, n.Exp2)
	}
}

func (p *arithmeticPatcher) patch(
	node *ast.Node,
	name, operator string,
	args ...ast.Node,
) {
	ast.Patch(node, &ast.CallNode{
		Callee:    &ast.IdentifierNode{Value: name},
		Arguments: args,
	})

	p.logger.Trace("patch operator",
		slog.String("operator", operator),
		slog.String("function", name))
}

// identScanner collects the free identifiers of an unpatched tree and
// classifies its structure.
type identScanner struct {
	names       []string       // free identifiers in first-seen order
	idents      map[string]int // occurrences as identifier nodes
	callees     map[string]int // occurrences as call targets
	elementwise bool
}

func newIdentScanner() *identScanner {
	return &identScanner{
		idents:      make(map[string]int),
		callees:     make(map[string]int),
		elementwise: true,
	}
}

// Visit implements ast.Visitor for identScanner.
func (s *identScanner) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		if s.idents[n.Value] == 0 {
			s.names = append(s.names, n.Value)
		}

		s.idents[n.Value]++

	case *ast.CallNode:
		if id, ok := n.Callee.(*ast.IdentifierNode); ok {
			s.call(id.Value)
		}

	case *ast.BuiltinNode:
		// A bare parse turns names like sum and max into builtin nodes
		// with no callee identifier.
		if s.idents[n.Name] == 0 {
			s.names = append(s.names, n.Name)
		}

		s.idents[n.Name]++
		s.call(n.Name)

	case *ast.ArrayNode, *ast.MapNode, *ast.MemberNode, *ast.SliceNode:
		s.elementwise = false
	}
}

func (s *identScanner) call(name string) {
	s.callees[name]++

	if slices.Contains(nonElementwise, name) {
		s.elementwise = false
	}
}

// free returns identifiers that are not builtins, internal names, or used
// only as call targets.
func (s *identScanner) free() []string {
	out := make([]string, 0, len(s.names))

	for _, name := range s.names {
		if IsBuiltin(name) || strings.HasPrefix(name, internalPrefix) {
			continue
		}

		if s.idents[name] == s.callees[name] {
			continue
		}

		out = append(out, name)
	}

	return out
}

// unknownCallees returns call targets that are not builtin functions.
func (s *identScanner) unknownCallees() []string {
	var out []string

	for _, name := range s.names {
		if s.callees[name] > 0 && !IsBuiltin(name) {
			out = append(out, name)
		}
	}

	return out
}
