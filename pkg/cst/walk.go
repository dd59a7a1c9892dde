package cst

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with w.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree depth-first in pre-order, children left to right
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, c := range node.Children() {
		Walk(v, c)
	}
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect calls f for each node in pre-order; children are skipped when
// f returns false.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

// Leaves returns the leaf nodes of the tree in left-to-right order
func Leaves(node Node) []Node {
	var out []Node
	Inspect(node, func(n Node) bool {
		if len(n.Children()) == 0 {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Count returns the number of nodes in the tree
func Count(node Node) int {
	n := 0
	Inspect(node, func(Node) bool {
		n++
		return true
	})
	return n
}
