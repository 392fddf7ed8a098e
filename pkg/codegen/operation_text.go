package codegen

import (
	"sort"
	"strconv"

	"github.com/swiftgql/graphql-swift-gen/pkg/ast"
	"github.com/swiftgql/graphql-swift-gen/pkg/introspection"
)

// genOperationText renders the 'static let fragments' dependency list and
// the 'static let graphql' literal holding the reprinted operation.
func (g *Generator) genOperationText(kind string, base *introspection.NamedType, name string, defs []ast.VariableDefinition, selections []ast.Selection) error {
	g.write("static let fragments : [String] = ")
	g.genDependentFragments(selections)

	g.newline()

	g.write("static let graphql = \"\"\"")
	g.newline()
	g.write(kind)
	g.write(" ")
	g.write(name)
	g.genOperationArgs(defs)
	if err := g.genSelectionText(base, selections); err != nil {
		return err
	}
	g.newline()
	g.write("\"\"\"")
	g.newline()
	return nil
}

// genOperationArgs reprints the '($name : Type, ...)' parameter list.
func (g *Generator) genOperationArgs(defs []ast.VariableDefinition) {
	if len(defs) == 0 {
		return
	}
	g.write("(")
	for i := range defs {
		if i > 0 {
			g.write(", ")
		}
		g.write("$")
		g.write(defs[i].Name)
		g.write(" : ")
		g.genTypeText(defs[i].Type)
	}
	g.write(")")
}

// genSelectionText reprints one selection set in concrete syntax. A
// synthetic __typename selection leads whenever the governing schema type
// is an interface, so the decoder can discriminate branches.
func (g *Generator) genSelectionText(objectType *introspection.NamedType, selections []ast.Selection) error {
	if len(selections) == 0 {
		return nil
	}

	g.openBrace()

	if objectType.Kind == introspection.TypeKindInterface {
		g.newline()
		g.write("__typename")
	}

	for i := range selections {
		selection := selections[i]
		g.newline()
		switch selection.Kind {
		case ast.SelectionKindField:
			g.write(selection.Name)
			if len(selection.Arguments) > 0 {
				g.write("(")
				for j := range selection.Arguments {
					if j > 0 {
						g.write(", ")
					}
					g.write(selection.Arguments[j].Name)
					g.write(" : ")
					g.genValueText(selection.Arguments[j].Value)
				}
				g.write(")")
			}
			if len(selection.SelectionSet) > 0 {
				fieldType, err := g.schema.TypeOfField(objectType, selection.Name)
				if err != nil {
					return err
				}
				if err := g.genSelectionText(fieldType, selection.SelectionSet); err != nil {
					return err
				}
			}
		case ast.SelectionKindFragmentSpread:
			g.write("...")
			g.write(selection.FragmentName)
		case ast.SelectionKindInlineFragment:
			g.write("... on ")
			g.genTypeText(selection.TypeCondition)
			onType, err := g.schema.GetNamed(selection.TypeCondition)
			if err != nil {
				return err
			}
			if err := g.genSelectionText(onType, selection.SelectionSet); err != nil {
				return err
			}
		}
	}

	g.closeBrace()
	return nil
}

// genValueText reprints an argument value verbatim by kind.
func (g *Generator) genValueText(value ast.Value) {
	switch value.Kind {
	case ast.ValueKindBoolean:
		if value.Boolean {
			g.write("true")
		} else {
			g.write("false")
		}
	case ast.ValueKindString:
		g.write("\"")
		g.write(value.String)
		g.write("\"")
	case ast.ValueKindInteger:
		g.write(strconv.Itoa(value.Int))
	case ast.ValueKindVariable:
		g.write("$")
		g.write(value.VariableName)
	}
}

// genTypeText reprints a parsed type in GraphQL syntax.
func (g *Generator) genTypeText(t ast.Type) {
	switch t.TypeKind {
	case ast.TypeKindString:
		g.write("String")
	case ast.TypeKindFloat:
		g.write("Float")
	case ast.TypeKindBoolean:
		g.write("Bool")
	case ast.TypeKindInt:
		g.write("Int")
	case ast.TypeKindNonNull:
		g.genTypeText(*t.OfType)
		g.write("!")
	case ast.TypeKindList:
		g.write("[")
		g.genTypeText(*t.OfType)
		g.write("]")
	case ast.TypeKindNamed:
		g.write(t.Name)
	}
}

// DependentFragments collects the names of all fragments a selection set
// transitively spreads, de-duplicated and sorted by name so that generated
// output is stable under fragment reordering.
func DependentFragments(selections []ast.Selection) []string {
	set := map[string]struct{}{}
	findFragments(set, selections)

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func findFragments(set map[string]struct{}, selections []ast.Selection) {
	for i := range selections {
		switch selections[i].Kind {
		case ast.SelectionKindField, ast.SelectionKindInlineFragment:
			findFragments(set, selections[i].SelectionSet)
		case ast.SelectionKindFragmentSpread:
			set[selections[i].FragmentName] = struct{}{}
		}
	}
}

// genDependentFragments renders the dependency list as a Swift string array
// literal.
func (g *Generator) genDependentFragments(selections []ast.Selection) {
	names := DependentFragments(selections)

	g.write("[")
	for i, name := range names {
		if i > 0 {
			g.write(",")
		}
		g.write("\"")
		g.write(name)
		g.write("\"")
	}
	g.write("]")
}
