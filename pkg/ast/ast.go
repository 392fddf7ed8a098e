// Package ast holds the document AST produced by the parser.
//
// A Document is built once per source file and never mutated afterwards;
// the generation run that consumes it owns it exclusively.
package ast

type OperationType int

const (
	OperationTypeQuery OperationType = iota
	OperationTypeMutation
)

type TypeKind int

const (
	TypeKindUnknown TypeKind = iota
	TypeKindNamed
	TypeKindNonNull
	TypeKindList
	TypeKindString
	TypeKindInt
	TypeKindFloat
	TypeKindBoolean
)

// Type is a recursive type reference, used both for schema field types and
// parsed argument types. TypeKindNonNull never wraps another TypeKindNonNull.
type Type struct {
	TypeKind TypeKind
	Name     string // TypeKindNamed
	OfType   *Type  // TypeKindNonNull, TypeKindList
}

type ValueKind int

const (
	ValueKindUnknown ValueKind = iota
	ValueKindInteger
	ValueKindString
	ValueKindBoolean
	ValueKindVariable
)

type Value struct {
	Kind         ValueKind
	Int          int    // ValueKindInteger
	String       string // ValueKindString
	Boolean      bool   // ValueKindBoolean
	VariableName string // ValueKindVariable
}

type Argument struct {
	Name  string
	Value Value
}

// VariableDefinition is one '$name: Type' entry of an operation or fragment
// parameter list.
type VariableDefinition struct {
	Name string
	Type Type
}

type SelectionKind int

const (
	SelectionKindUnknown SelectionKind = iota
	SelectionKindField
	SelectionKindInlineFragment
	SelectionKindFragmentSpread
)

// Selection is one element of a selection set, a tagged variant of a plain
// field, an inline fragment or a fragment spread.
type Selection struct {
	Kind SelectionKind

	// SelectionKindField
	Name         string
	Arguments    []Argument
	SelectionSet []Selection // shared with SelectionKindInlineFragment

	// SelectionKindInlineFragment
	TypeCondition Type

	// SelectionKindFragmentSpread
	FragmentName string
}

type OperationDefinition struct {
	OperationType       OperationType
	Name                string
	VariableDefinitions []VariableDefinition
	SelectionSet        []Selection
}

type FragmentDefinition struct {
	Name                string
	TypeCondition       Type
	VariableDefinitions []VariableDefinition
	SelectionSet        []Selection
}

// Document keeps fragments, queries and mutations in declaration order.
type Document struct {
	Fragments []FragmentDefinition
	Queries   []OperationDefinition
	Mutations []OperationDefinition
}
