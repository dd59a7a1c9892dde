package cst

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Printer outputs the tree as one symbol per line, indented by depth
type Printer struct {
	w      io.Writer
	indent int
	width  int
}

// PrinterOption configures a Printer
type PrinterOption func(*Printer)

// WithIndent sets the number of spaces per depth level
func WithIndent(width int) PrinterOption {
	return func(p *Printer) {
		if width > 0 {
			p.width = width
		}
	}
}

// NewPrinter creates a new tree printer
func NewPrinter(w io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{w: w, width: 2}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PrintProgram prints a complete program
func (p *Printer) PrintProgram(prog *Program) {
	p.PrintNode(prog)
}

// PrintNode prints the subtree rooted at n
func (p *Printer) PrintNode(n Node) {
	p.writeIndent()
	fmt.Fprintln(p.w, n.Symbol())
	p.indent++
	for _, c := range n.Children() {
		p.PrintNode(c)
	}
	p.indent--
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat(" ", p.indent*p.width))
}

// Tree is the plain labeled-tree form of a node, used by the encoders
type Tree struct {
	Symbol   string `yaml:"symbol" json:"symbol"`
	Children []Tree `yaml:"children,omitempty" json:"children,omitempty"`
}

// ToTree converts a node and its descendants to a Tree
func ToTree(n Node) Tree {
	t := Tree{Symbol: n.Symbol()}
	for _, c := range n.Children() {
		t.Children = append(t.Children, ToTree(c))
	}
	return t
}

// EncodeYAML writes the tree as YAML
func EncodeYAML(w io.Writer, n Node) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToTree(n)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

// EncodeJSON writes the tree as indented JSON
func EncodeJSON(w io.Writer, n Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToTree(n)); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
