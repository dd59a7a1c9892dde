// Package cst defines the concrete syntax tree produced by the parser.
//
// Every grammar construct is its own node type. Each node also exposes the
// labeled-tree view used by printers: Symbol returns the node label
// ("IfStmt", "+=", "ID(foo)") and Children returns the ordered children,
// including terminal leaves for the operators and punctuation the tree
// records.
package cst

import (
	"strings"

	"github.com/raymyers/ralph-cst/pkg/token"
)

// Node is the base interface for all tree nodes
type Node interface {
	Symbol() string
	Children() []Node
	implCSTNode()
}

// Decl is the interface for external declarations
type Decl interface {
	Node
	implCSTDecl()
}

// Stmt is the interface for statement nodes
type Stmt interface {
	Node
	implCSTStmt()
}

// Expr is the interface for expression nodes
type Expr interface {
	Node
	implCSTExpr()
}

// TypeName is the interface for the base of a type specifier
type TypeName interface {
	Node
	implCSTTypeName()
}

// ForInit is the init clause of a for statement: *DeclStmt or *ForInitExpr
type ForInit interface {
	Node
	implCSTForInit()
}

// Program is the root node; Decls are in source order
type Program struct {
	Decls []Decl
}

// StructDecl represents struct Name { members };
type StructDecl struct {
	Name    string
	Members *StructMemberList
}

// StructMemberList holds struct members, one declaration each
type StructMemberList struct {
	Members []*DeclStmt
}

// FunctionDecl represents a function definition with a body
type FunctionDecl struct {
	Type   *TypeSpec
	Name   string
	Params *ParamList
	Body   *CompoundStmt
}

// TypeSpec represents an optionally const-qualified type
type TypeSpec struct {
	Const bool
	Type  TypeName
}

// StructType represents struct Name used as a type
type StructType struct {
	Name string
}

// BaseType represents one of the base type keywords
type BaseType struct {
	Kind token.Kind
}

// ParamList represents a parameter list. An empty list is the epsilon
// marker "ParamList(ε)", not a missing node.
type ParamList struct {
	Params []*Param
}

// Param represents a function parameter
type Param struct {
	Type     *TypeSpec
	Pointers int
	Name     string
	Array    *ArraySuffix // nil when absent
}

// ArraySuffix is a [N] or [] suffix; Size is nil for []
type ArraySuffix struct {
	Size *NumberLit
}

// CompoundStmt represents { stmts }
type CompoundStmt struct {
	List *StmtList
}

// StmtList holds the statements of a compound statement
type StmtList struct {
	Stmts []Stmt
}

// IfStmt represents if (Cond) Then [else ...]
type IfStmt struct {
	Cond Expr
	Then Stmt
	Else *Else // nil when absent
}

// Else wraps the statement of an else branch
type Else struct {
	Body Stmt
}

// ForStmt represents for (init; cond; iter) body. Absent clauses are nil.
type ForStmt struct {
	Init ForInit
	Cond Expr
	Iter *ForIterExpr
	Body Stmt
}

// ForInitExpr wraps an expression used as the init clause
type ForInitExpr struct {
	X Expr
}

// ForIterExpr wraps the iteration expression
type ForIterExpr struct {
	X Expr
}

// ReturnStmt represents return [expr];
type ReturnStmt struct {
	Result Expr // nil for bare return
}

// DeclStmt represents a declaration with one or more declarators
type DeclStmt struct {
	Type        *TypeSpec
	Declarators []*Declarator
}

// Declarator represents *name[N] = init within a declaration
type Declarator struct {
	Pointers int
	Name     string
	Array    *ArraySuffix // nil when absent
	Init     Expr         // nil when absent
}

// ExprStmt represents expr;
type ExprStmt struct {
	X Expr
}

// AssignOp represents assignment operators
type AssignOp int

const (
	OpAssign    AssignOp = iota // =
	OpAddAssign                 // +=
)

func (op AssignOp) String() string {
	names := []string{"=", "+="}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// BinaryOp represents binary operators
type BinaryOp int

const (
	OpOr  BinaryOp = iota // ||
	OpAnd                 // &&
	OpEq                  // ==
	OpLt
	OpGt
	OpLe
	OpGe
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

func (op BinaryOp) String() string {
	names := []string{"||", "&&", "==", "<", ">", "<=", ">=", "+", "-", "*", "/", "%"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// Rule returns the grammar rule that produces the operator
func (op BinaryOp) Rule() string {
	switch op {
	case OpOr:
		return "OrExpr"
	case OpAnd:
		return "AndExpr"
	case OpEq:
		return "EqExpr"
	case OpLt, OpGt, OpLe, OpGe:
		return "RelExpr"
	case OpAdd, OpSub:
		return "AddExpr"
	case OpMul, OpDiv, OpMod:
		return "MulExpr"
	}
	return "BinaryExpr"
}

// UnaryOp represents prefix operators
type UnaryOp int

const (
	OpPlus UnaryOp = iota // +
	OpNeg                 // -
	OpNot                 // !
)

func (op UnaryOp) String() string {
	names := []string{"+", "-", "!"}
	if int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// AssignExpr represents Lhs op Rhs; it associates to the right
type AssignExpr struct {
	Op  AssignOp
	Lhs Expr
	Rhs Expr
}

// BinaryExpr represents X op Y; chains fold to the left
type BinaryExpr struct {
	Op BinaryOp
	X  Expr
	Y  Expr
}

// UnaryExpr represents a prefix operator applied to X
type UnaryExpr struct {
	Op UnaryOp
	X  Expr
}

// ArrayAccess represents X[Index]
type ArrayAccess struct {
	X     Expr
	Index Expr
}

// FuncCall represents Fun(args)
type FuncCall struct {
	Fun  Expr
	Args *Args
}

// Args holds call arguments
type Args struct {
	List []Expr
}

// FieldAccess represents X.Field
type FieldAccess struct {
	X     Expr
	Field string
}

// PostInc represents X++
type PostInc struct {
	X Expr
}

// Ident represents an identifier expression
type Ident struct {
	Name string
}

// NumberLit represents a numeric literal, kept as written
type NumberLit struct {
	Text string
}

// CharLit represents a character constant, kept as written
type CharLit struct {
	Text string
}

// StringLit represents a string literal, kept as written
type StringLit struct {
	Text string
}

// NameRole says which construct a Name leaf belongs to
type NameRole int

const (
	RoleStruct NameRole = iota
	RoleFunc
	RoleParam
	RoleVar
	RoleField
)

func (r NameRole) String() string {
	names := []string{"StructName", "FuncName", "ParamName", "Var", "Field"}
	if int(r) < len(names) {
		return names[r]
	}
	return "Name"
}

// Name is a leaf naming a declared entity or a field
type Name struct {
	Role NameRole
	Text string
}

// Terminal is a leaf recording fixed punctuation or an operator
type Terminal struct {
	Text string
}

// Symbols

func (*Program) Symbol() string          { return "Program" }
func (*StructDecl) Symbol() string       { return "StructDecl" }
func (*StructMemberList) Symbol() string { return "StructMemberList" }
func (*FunctionDecl) Symbol() string     { return "FunctionDecl" }
func (*TypeSpec) Symbol() string         { return "TypeSpec" }
func (t *StructType) Symbol() string     { return "struct " + t.Name }
func (t *BaseType) Symbol() string       { return "BaseType(" + t.Kind.String() + ")" }
func (*Param) Symbol() string            { return "Param" }
func (*CompoundStmt) Symbol() string     { return "CompoundStmt" }
func (*StmtList) Symbol() string         { return "StmtList" }
func (*IfStmt) Symbol() string           { return "IfStmt" }
func (*Else) Symbol() string             { return "Else" }
func (*ForStmt) Symbol() string          { return "ForStmt" }
func (*ForInitExpr) Symbol() string      { return "ForInitExpr" }
func (*ForIterExpr) Symbol() string      { return "ForIterExpr" }
func (*ReturnStmt) Symbol() string       { return "ReturnStmt" }
func (*DeclStmt) Symbol() string         { return "DeclStmt" }
func (*Declarator) Symbol() string       { return "Declarator" }
func (*ExprStmt) Symbol() string         { return "ExprStmt" }
func (*AssignExpr) Symbol() string       { return "AssignExpr" }
func (e *BinaryExpr) Symbol() string     { return e.Op.Rule() }
func (*UnaryExpr) Symbol() string        { return "UnaryExpr" }
func (*ArrayAccess) Symbol() string      { return "ArrayAccess" }
func (*FuncCall) Symbol() string         { return "FuncCall" }
func (*Args) Symbol() string             { return "Args" }
func (*FieldAccess) Symbol() string      { return "FieldAccess" }
func (*PostInc) Symbol() string          { return "PostInc" }
func (e *Ident) Symbol() string          { return "ID(" + e.Name + ")" }
func (e *NumberLit) Symbol() string      { return "NUM(" + e.Text + ")" }
func (e *CharLit) Symbol() string        { return "CHAR(" + e.Text + ")" }
func (e *StringLit) Symbol() string      { return "STR(" + e.Text + ")" }
func (n *Name) Symbol() string           { return n.Role.String() + "(" + n.Text + ")" }
func (t *Terminal) Symbol() string       { return t.Text }

func (l *ParamList) Symbol() string {
	if l.IsEmpty() {
		return "ParamList(ε)"
	}
	return "ParamList"
}

// IsEmpty reports whether the list is the epsilon marker
func (l *ParamList) IsEmpty() bool {
	return len(l.Params) == 0
}

// Children

func (p *Program) Children() []Node {
	out := make([]Node, len(p.Decls))
	for i, d := range p.Decls {
		out[i] = d
	}
	return out
}

func (s *StructDecl) Children() []Node {
	return []Node{&Name{Role: RoleStruct, Text: s.Name}, s.Members}
}

func (l *StructMemberList) Children() []Node {
	out := make([]Node, len(l.Members))
	for i, m := range l.Members {
		out[i] = m
	}
	return out
}

func (f *FunctionDecl) Children() []Node {
	return []Node{f.Type, &Name{Role: RoleFunc, Text: f.Name}, f.Params, f.Body}
}

func (t *TypeSpec) Children() []Node {
	if t.Const {
		return []Node{&Terminal{Text: "const"}, t.Type}
	}
	return []Node{t.Type}
}

func (*StructType) Children() []Node { return nil }
func (*BaseType) Children() []Node   { return nil }

func (l *ParamList) Children() []Node {
	out := make([]Node, len(l.Params))
	for i, p := range l.Params {
		out[i] = p
	}
	return out
}

func (p *Param) Children() []Node {
	out := []Node{p.Type}
	out = appendPointers(out, p.Pointers)
	out = append(out, &Name{Role: RoleParam, Text: p.Name})
	return appendArray(out, p.Array)
}

func (c *CompoundStmt) Children() []Node { return []Node{c.List} }

func (l *StmtList) Children() []Node {
	out := make([]Node, len(l.Stmts))
	for i, s := range l.Stmts {
		out[i] = s
	}
	return out
}

func (s *IfStmt) Children() []Node {
	out := []Node{s.Cond, s.Then}
	if s.Else != nil {
		out = append(out, s.Else)
	}
	return out
}

func (e *Else) Children() []Node { return []Node{e.Body} }

func (s *ForStmt) Children() []Node {
	var out []Node
	if s.Init != nil {
		out = append(out, s.Init)
	}
	if s.Cond != nil {
		out = append(out, s.Cond)
	}
	if s.Iter != nil {
		out = append(out, s.Iter)
	}
	return append(out, s.Body)
}

func (e *ForInitExpr) Children() []Node { return []Node{e.X} }
func (e *ForIterExpr) Children() []Node { return []Node{e.X} }

func (s *ReturnStmt) Children() []Node {
	if s.Result == nil {
		return nil
	}
	return []Node{s.Result}
}

func (s *DeclStmt) Children() []Node {
	out := []Node{s.Type}
	for _, d := range s.Declarators {
		out = append(out, d)
	}
	return out
}

func (d *Declarator) Children() []Node {
	out := appendPointers(nil, d.Pointers)
	out = append(out, &Name{Role: RoleVar, Text: d.Name})
	out = appendArray(out, d.Array)
	if d.Init != nil {
		out = append(out, &Terminal{Text: "="}, d.Init)
	}
	return out
}

func (s *ExprStmt) Children() []Node { return []Node{s.X} }

func (e *AssignExpr) Children() []Node {
	return []Node{e.Lhs, &Terminal{Text: e.Op.String()}, e.Rhs}
}

func (e *BinaryExpr) Children() []Node {
	return []Node{e.X, &Terminal{Text: e.Op.String()}, e.Y}
}

func (e *UnaryExpr) Children() []Node {
	return []Node{&Terminal{Text: e.Op.String()}, e.X}
}

func (e *ArrayAccess) Children() []Node { return []Node{e.X, e.Index} }
func (e *FuncCall) Children() []Node    { return []Node{e.Fun, e.Args} }

func (a *Args) Children() []Node {
	out := make([]Node, len(a.List))
	for i, x := range a.List {
		out[i] = x
	}
	return out
}

func (e *FieldAccess) Children() []Node {
	return []Node{e.X, &Name{Role: RoleField, Text: e.Field}}
}

func (e *PostInc) Children() []Node { return []Node{e.X} }

func (*Ident) Children() []Node     { return nil }
func (*NumberLit) Children() []Node { return nil }
func (*CharLit) Children() []Node   { return nil }
func (*StringLit) Children() []Node { return nil }
func (*Name) Children() []Node      { return nil }
func (*Terminal) Children() []Node  { return nil }

func appendPointers(out []Node, n int) []Node {
	for i := 0; i < n; i++ {
		out = append(out, &Terminal{Text: "*"})
	}
	return out
}

func appendArray(out []Node, a *ArraySuffix) []Node {
	if a == nil {
		return out
	}
	out = append(out, &Terminal{Text: "["})
	if a.Size != nil {
		out = append(out, a.Size)
	}
	return append(out, &Terminal{Text: "]"})
}

// String renders the subtree in the indented text form
func String(n Node) string {
	var b strings.Builder
	NewPrinter(&b).PrintNode(n)
	return b.String()
}

// Marker methods for interface implementation
func (*Program) implCSTNode()          {}
func (*StructDecl) implCSTNode()       {}
func (*StructMemberList) implCSTNode() {}
func (*FunctionDecl) implCSTNode()     {}
func (*TypeSpec) implCSTNode()         {}
func (*StructType) implCSTNode()       {}
func (*BaseType) implCSTNode()         {}
func (*ParamList) implCSTNode()        {}
func (*Param) implCSTNode()            {}
func (*CompoundStmt) implCSTNode()     {}
func (*StmtList) implCSTNode()         {}
func (*IfStmt) implCSTNode()           {}
func (*Else) implCSTNode()             {}
func (*ForStmt) implCSTNode()          {}
func (*ForInitExpr) implCSTNode()      {}
func (*ForIterExpr) implCSTNode()      {}
func (*ReturnStmt) implCSTNode()       {}
func (*DeclStmt) implCSTNode()         {}
func (*Declarator) implCSTNode()       {}
func (*ExprStmt) implCSTNode()         {}
func (*AssignExpr) implCSTNode()       {}
func (*BinaryExpr) implCSTNode()       {}
func (*UnaryExpr) implCSTNode()        {}
func (*ArrayAccess) implCSTNode()      {}
func (*FuncCall) implCSTNode()         {}
func (*Args) implCSTNode()             {}
func (*FieldAccess) implCSTNode()      {}
func (*PostInc) implCSTNode()          {}
func (*Ident) implCSTNode()            {}
func (*NumberLit) implCSTNode()        {}
func (*CharLit) implCSTNode()          {}
func (*StringLit) implCSTNode()        {}
func (*Name) implCSTNode()             {}
func (*Terminal) implCSTNode()         {}

func (*StructDecl) implCSTDecl()   {}
func (*FunctionDecl) implCSTDecl() {}

func (*CompoundStmt) implCSTStmt() {}
func (*IfStmt) implCSTStmt()       {}
func (*ForStmt) implCSTStmt()      {}
func (*ReturnStmt) implCSTStmt()   {}
func (*DeclStmt) implCSTStmt()     {}
func (*ExprStmt) implCSTStmt()     {}

func (*AssignExpr) implCSTExpr()  {}
func (*BinaryExpr) implCSTExpr()  {}
func (*UnaryExpr) implCSTExpr()   {}
func (*ArrayAccess) implCSTExpr() {}
func (*FuncCall) implCSTExpr()    {}
func (*FieldAccess) implCSTExpr() {}
func (*PostInc) implCSTExpr()     {}
func (*Ident) implCSTExpr()       {}
func (*NumberLit) implCSTExpr()   {}
func (*CharLit) implCSTExpr()     {}
func (*StringLit) implCSTExpr()   {}

func (*StructType) implCSTTypeName() {}
func (*BaseType) implCSTTypeName()   {}

func (*DeclStmt) implCSTForInit()    {}
func (*ForInitExpr) implCSTForInit() {}
