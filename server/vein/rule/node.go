// Package rule implements composable boolean predicates. Rules form a tree of leaves, which test a value
// directly, and composites (and, or, not, none_of) of other rules. The same tree is used for every family of
// rules; families only differ in the type of value tested and the leaves that may be named in documents.
package rule

import (
	"strings"
)

// Op is the operation of a Node.
type Op uint8

const (
	OpLeaf Op = iota
	OpAnd
	OpOr
	OpNot
	OpNoneOf
)

// String ...
func (op Op) String() string {
	switch op {
	case OpLeaf:
		return "leaf"
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpNot:
		return "not"
	case OpNoneOf:
		return "none_of"
	}
	return "unknown"
}

// Predicate tests a value of type T.
type Predicate[T any] func(v T) bool

// Node is a rule over values of type T. Nodes are immutable once created.
type Node[T any] struct {
	op       Op
	name     string
	leaf     Predicate[T]
	children []*Node[T]
}

// Leaf returns a Node that tests values using the Predicate passed. The name is used when printing the rule.
func Leaf[T any](name string, p Predicate[T]) *Node[T] {
	return &Node[T]{op: OpLeaf, name: name, leaf: p}
}

// And returns a Node that matches if all of its children match. And without children always matches.
func And[T any](children ...*Node[T]) *Node[T] {
	return &Node[T]{op: OpAnd, children: children}
}

// Or returns a Node that matches if any of its children matches. Or without children never matches.
func Or[T any](children ...*Node[T]) *Node[T] {
	return &Node[T]{op: OpOr, children: children}
}

// Not returns a Node that matches if child does not.
func Not[T any](child *Node[T]) *Node[T] {
	return &Node[T]{op: OpNot, children: []*Node[T]{child}}
}

// NoneOf returns a Node that matches if none of its children match.
func NoneOf[T any](children ...*Node[T]) *Node[T] {
	return &Node[T]{op: OpNoneOf, children: children}
}

// Always returns a Node that matches every value.
func Always[T any]() *Node[T] {
	return Leaf[T]("always", func(T) bool { return true })
}

// Test checks if the value passed matches the rule. Composites short-circuit: and stops at the first child that
// does not match, or at the first child that does.
func (n *Node[T]) Test(v T) bool {
	switch n.op {
	case OpLeaf:
		return n.leaf(v)
	case OpAnd:
		for _, c := range n.children {
			if !c.Test(v) {
				return false
			}
		}
		return true
	case OpOr:
		for _, c := range n.children {
			if c.Test(v) {
				return true
			}
		}
		return false
	case OpNot:
		return !n.children[0].Test(v)
	case OpNoneOf:
		for _, c := range n.children {
			if c.Test(v) {
				return false
			}
		}
		return true
	}
	panic("rule: unknown op " + n.op.String())
}

// Op returns the operation of the Node.
func (n *Node[T]) Op() Op {
	return n.op
}

// Children returns the children of a composite Node.
func (n *Node[T]) Children() []*Node[T] {
	return n.children
}

// String returns a compact textual form of the rule, such as and(stone,not(air)).
func (n *Node[T]) String() string {
	if n.op == OpLeaf {
		return n.name
	}
	parts := make([]string, len(n.children))
	for i, c := range n.children {
		parts[i] = c.String()
	}
	return n.op.String() + "(" + strings.Join(parts, ",") + ")"
}
