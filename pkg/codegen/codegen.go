// Package codegen renders a parsed document against the schema catalog into
// Swift client source: one request type per operation, response-decoding
// types mirroring each selection set, and the reprinted operation text.
//
// A Generator is owned by one generation run at a time; the output buffer
// and indentation counter are never shared. The first failing schema lookup
// aborts the whole run, partial output is never handed out.
package codegen

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/swiftgql/graphql-swift-gen/pkg/ast"
	"github.com/swiftgql/graphql-swift-gen/pkg/introspection"
)

type Generator struct {
	schema *introspection.Schema
	out    bytes.Buffer
	indent int
}

func New(schema *introspection.Schema) *Generator {
	return &Generator{schema: schema}
}

// Generate renders the whole document to w: fragments first, then queries,
// then mutations, each in declaration order.
func (g *Generator) Generate(doc ast.Document, w io.Writer) error {
	g.out.Reset()
	g.indent = 0

	if err := g.genFragmentDefinitions(doc.Fragments); err != nil {
		return err
	}
	if err := g.genQueries(doc.Queries); err != nil {
		return err
	}
	if err := g.genMutations(doc.Mutations); err != nil {
		return err
	}

	_, err := g.out.WriteTo(w)
	return err
}

// GenerateString renders the whole document into one string.
func (g *Generator) GenerateString(doc ast.Document) (string, error) {
	buf := &bytes.Buffer{}
	if err := g.Generate(doc, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (g *Generator) write(s string) {
	g.out.WriteString(s)
}

func (g *Generator) newline() {
	g.out.WriteString("\n")
	for i := 0; i < g.indent; i++ {
		g.out.WriteString("    ")
	}
}

func (g *Generator) openBrace() {
	g.write(" {")
	g.indent++
}

func (g *Generator) closeBrace() {
	g.indent--
	g.newline()
	g.write("}")
}

// swiftName capitalizes the first character only; the rest is kept verbatim.
func swiftName(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// typeCase is the four-way shape analysis deciding how a selection set is
// rendered, evaluated in this precedence order.
type typeCase int

const (
	// typeCaseSoleFragment: the selection is exactly one fragment spread;
	// no type is emitted, consumers alias the fragment's type.
	typeCaseSoleFragment typeCase = iota
	// typeCaseInterfaceOnlyFragments: interface governed, spreads and
	// inline fragments only; a discriminated enum is emitted.
	typeCaseInterfaceOnlyFragments
	// typeCaseInterface: interface governed with plain fields mixed in; a
	// struct with a nested Types enum and a kind property is emitted.
	typeCaseInterface
	// typeCaseRegular: a plain struct.
	typeCaseRegular
)

// soleFragment returns the fragment name when the selection collapses to a
// single fragment spread, or "".
func soleFragment(selections []ast.Selection) string {
	if len(selections) == 1 && selections[0].Kind == ast.SelectionKindFragmentSpread {
		return selections[0].FragmentName
	}
	return ""
}

func hasOnlyFragments(selections []ast.Selection) bool {
	for i := range selections {
		if selections[i].Kind == ast.SelectionKindField {
			return false
		}
	}
	return true
}

func analyze(named *introspection.NamedType, selections []ast.Selection) typeCase {
	if soleFragment(selections) != "" {
		return typeCaseSoleFragment
	}
	if named.Kind == introspection.TypeKindInterface {
		if hasOnlyFragments(selections) {
			return typeCaseInterfaceOnlyFragments
		}
		return typeCaseInterface
	}
	return typeCaseRegular
}

// shouldGenNestedType reports whether a nested selection needs a type of its
// own: non-empty and not collapsing to a sole fragment alias.
func shouldGenNestedType(selections []ast.Selection) bool {
	return len(selections) > 0 && soleFragment(selections) == ""
}

func hasIDField(selections []ast.Selection) bool {
	for i := range selections {
		if selections[i].Kind == ast.SelectionKindField && selections[i].Name == "id" {
			return true
		}
	}
	return false
}

// writeTypeNonNullable renders a schema type without optionality markers.
// Input-object, scalar and enum named types render their own name (enums
// stay opaque named types); object and interface named types resolve to the
// selection's nested type, or alias the sole fragment.
func (g *Generator) writeTypeNonNullable(t ast.Type, selections []ast.Selection, nestType string) error {
	switch t.TypeKind {
	case ast.TypeKindNonNull:
		return fmt.Errorf("codegen: NonNull must not wrap NonNull")
	case ast.TypeKindString:
		g.write("String")
	case ast.TypeKindInt:
		g.write("Int")
	case ast.TypeKindFloat:
		g.write("Float")
	case ast.TypeKindBoolean:
		g.write("Bool")
	case ast.TypeKindNamed:
		named, ok := g.schema.Get(t.Name)
		if !ok {
			return fmt.Errorf("schema: unknown type %q", t.Name)
		}
		switch named.Kind {
		case introspection.TypeKindInputObject, introspection.TypeKindScalar, introspection.TypeKindEnum:
			g.write(t.Name)
			return nil
		}
		if frag := soleFragment(selections); frag != "" {
			g.write(swiftName(frag))
			return nil
		}
		g.write(nestType)
	case ast.TypeKindList:
		g.write("[")
		if err := g.writeType(*t.OfType, selections, nestType); err != nil {
			return err
		}
		g.write("]")
	default:
		return fmt.Errorf("codegen: cannot render unknown type kind")
	}
	return nil
}

// writeType renders a schema type with Swift optionality: NonNull renders
// its inner type as required, everything else gets a trailing '?'.
func (g *Generator) writeType(t ast.Type, selections []ast.Selection, nestType string) error {
	if t.TypeKind == ast.TypeKindNonNull {
		return g.writeTypeNonNullable(*t.OfType, selections, nestType)
	}
	if err := g.writeTypeNonNullable(t, selections, nestType); err != nil {
		return err
	}
	g.write("?")
	return nil
}

func (g *Generator) genTypeDef(kind, name string, isIdentifiable bool) {
	g.write(kind)
	g.write(" ")
	g.write(swiftName(name))
	g.write(" : Decodable")
	if isIdentifiable {
		g.write(", Identifiable")
	}
	g.openBrace()
}

// genTypeFor renders the type mirroring one selection set, dispatching on
// the four-way analysis.
func (g *Generator) genTypeFor(objectType *introspection.NamedType, name string, selections []ast.Selection) error {
	switch analyze(objectType, selections) {
	case typeCaseSoleFragment:
		return nil
	case typeCaseInterfaceOnlyFragments:
		if err := g.genNestedTypes(objectType, selections); err != nil {
			return err
		}
		g.newline()
		return g.genPossibleTypesEnum(objectType, name, selections)
	case typeCaseInterface:
		g.newline()
		g.genTypeDef("struct", name, hasIDField(selections))
		if err := g.genPossibleTypesEnum(objectType, "Types", selections); err != nil {
			return err
		}
		if err := g.genNestedTypes(objectType, selections); err != nil {
			return err
		}
		if err := g.genStoredProperties(objectType, selections); err != nil {
			return err
		}
		if err := g.genInterfaceDecoding(objectType, selections); err != nil {
			return err
		}
		g.closeBrace()
	case typeCaseRegular:
		g.newline()
		g.genTypeDef("struct", name, hasIDField(selections))
		if err := g.genNestedTypes(objectType, selections); err != nil {
			return err
		}
		if err := g.genStoredProperties(objectType, selections); err != nil {
			return err
		}
		g.closeBrace()
	}
	return nil
}

// genNestedTypes renders the types behind object-valued plain fields and
// inline-fragment branches of one selection set.
func (g *Generator) genNestedTypes(objectType *introspection.NamedType, selections []ast.Selection) error {
	for i := range selections {
		selection := selections[i]
		switch selection.Kind {
		case ast.SelectionKindField:
			if !shouldGenNestedType(selection.SelectionSet) {
				continue
			}
			named, err := g.schema.TypeOfField(objectType, selection.Name)
			if err != nil {
				return err
			}
			if err := g.genTypeFor(named, selection.Name, selection.SelectionSet); err != nil {
				return err
			}
		case ast.SelectionKindInlineFragment:
			onType, err := g.schema.GetNamed(selection.TypeCondition)
			if err != nil {
				return err
			}
			if !shouldGenNestedType(selection.SelectionSet) {
				continue
			}
			if err := g.genTypeFor(onType, onType.Name, selection.SelectionSet); err != nil {
				return err
			}
		}
	}
	return nil
}

// genStoredProperties renders one var per plain field; on non-interface
// types spread fragments become vars aliased to the fragment type. On
// interface types the extra 'kind: Types' property carries the branch.
func (g *Generator) genStoredProperties(objectType *introspection.NamedType, selections []ast.Selection) error {
	isInterface := objectType.Kind == introspection.TypeKindInterface

	for i := range selections {
		selection := selections[i]
		switch selection.Kind {
		case ast.SelectionKindField:
			schemaField, ok := objectType.Fields[selection.Name]
			if !ok {
				return fmt.Errorf("schema: type %q has no field %q", objectType.Name, selection.Name)
			}
			g.newline()
			g.write("var ")
			g.write(selection.Name)
			g.write(" : ")
			if err := g.writeType(schemaField.Type, selection.SelectionSet, swiftName(selection.Name)); err != nil {
				return err
			}
		case ast.SelectionKindFragmentSpread:
			if isInterface {
				continue
			}
			g.newline()
			g.write("var ")
			g.write(selection.FragmentName)
			g.write(" : ")
			g.write(swiftName(selection.FragmentName))
		}
	}

	if isInterface {
		g.newline()
		g.write("var kind : Types")
	}
	return nil
}

type enumCase struct {
	tag      string
	typeName string
}

// genPossibleTypesEnum renders the discriminated enum for an interface
// selection: one case per fragment branch, selected at decode time by the
// __typename discriminator. An unmatched discriminator is an unrecoverable
// decode error. When the interface declares an id field the enum also gets
// an id accessor forwarding to the matched branch.
func (g *Generator) genPossibleTypesEnum(objectType *introspection.NamedType, name string, selections []ast.Selection) error {
	isIdentifiable := objectType.HasField("id")

	g.newline()
	g.genTypeDef("enum", name, isIdentifiable)

	var cases []enumCase
	for i := range selections {
		selection := selections[i]
		var c enumCase
		switch selection.Kind {
		case ast.SelectionKindFragmentSpread:
			c = enumCase{tag: selection.FragmentName, typeName: swiftName(selection.FragmentName)}
		case ast.SelectionKindInlineFragment:
			onType, err := g.schema.GetNamed(selection.TypeCondition)
			if err != nil {
				return err
			}
			if frag := soleFragment(selection.SelectionSet); frag != "" {
				c = enumCase{tag: onType.Name, typeName: swiftName(frag)}
			} else {
				c = enumCase{tag: onType.Name, typeName: swiftName(onType.Name)}
			}
		default:
			continue
		}

		g.newline()
		g.write(fmt.Sprintf("case As%s(%s)", c.tag, c.typeName))
		cases = append(cases, c)
	}

	if isIdentifiable {
		g.newline()
		g.write("var id : Int")
		g.openBrace()
		g.newline()
		g.write("switch self")
		g.openBrace()
		for _, c := range cases {
			g.newline()
			g.write(fmt.Sprintf("case let .As%s(value) : return value.id", c.tag))
		}
		g.closeBrace()
		g.closeBrace()
	}

	g.newline()
	g.write("init(from decoder: Decoder) throws")
	g.openBrace()
	g.newline()
	g.write("let container = try decoder.container(keyedBy: TypenameKeys.self)")
	g.newline()
	g.write("switch try container.decode(String.self, forKey: .__typename)")
	g.openBrace()
	for _, c := range cases {
		g.newline()
		g.write(fmt.Sprintf("case %q : self = .As%s(try %s(from: decoder))", c.tag, c.tag, c.typeName))
	}
	g.newline()
	g.write("default: throw UnknownTypename()")
	g.closeBrace()
	g.closeBrace()

	g.closeBrace()
	g.newline()
	return nil
}

// genInterfaceDecoding renders the custom init(from:) of a mixed interface
// selection: plain fields decode by coding key, then the Types payload
// re-runs the discriminator decode over the same input.
func (g *Generator) genInterfaceDecoding(objectType *introspection.NamedType, selections []ast.Selection) error {
	g.newline()
	g.write("enum CodingKeys : String, CodingKey")
	g.openBrace()
	g.newline()
	g.write("case __typename")
	for i := range selections {
		if selections[i].Kind != ast.SelectionKindField {
			continue
		}
		g.write(", ")
		g.write(selections[i].Name)
	}
	g.closeBrace()
	g.newline()

	g.write("init(from decoder: Decoder) throws")
	g.openBrace()
	g.newline()
	g.write("let container = try decoder.container(keyedBy: CodingKeys.self)")
	for i := range selections {
		selection := selections[i]
		if selection.Kind != ast.SelectionKindField {
			continue
		}
		schemaField, ok := objectType.Fields[selection.Name]
		if !ok {
			return fmt.Errorf("schema: type %q has no field %q", objectType.Name, selection.Name)
		}
		g.newline()
		g.write("self.")
		g.write(selection.Name)
		g.write(" = try container.decode(")
		if err := g.writeType(schemaField.Type, selection.SelectionSet, swiftName(selection.Name)); err != nil {
			return err
		}
		g.write(".self, forKey: .")
		g.write(selection.Name)
		g.write(")")
	}
	g.newline()
	g.write("self.kind = try Types(from: decoder)")
	g.closeBrace()
	return nil
}

// genVariableProperties renders one var per declared operation argument.
func (g *Generator) genVariableProperties(defs []ast.VariableDefinition) error {
	for i := range defs {
		g.write("var ")
		g.write(defs[i].Name)
		g.write(" : ")
		if err := g.writeType(defs[i].Type, nil, ""); err != nil {
			return err
		}
		g.newline()
	}
	return nil
}

func (g *Generator) genAPIFor(kind string, base *introspection.NamedType, name string, defs []ast.VariableDefinition, selections []ast.Selection) error {
	g.newline()
	g.newline()

	kindUpper := swiftName(kind)
	g.write(fmt.Sprintf("struct %s%s : Encodable, GraphQL%s", swiftName(name), kindUpper, kindUpper))
	g.openBrace()
	g.newline()
	if err := g.genOperationText(kind, base, name, defs, selections); err != nil {
		return err
	}
	g.newline()
	if err := g.genVariableProperties(defs); err != nil {
		return err
	}
	if err := g.genTypeFor(base, "Data", selections); err != nil {
		return err
	}
	g.closeBrace()
	return nil
}

func (g *Generator) genQueries(queries []ast.OperationDefinition) error {
	if len(queries) == 0 {
		return nil
	}
	root, ok := g.schema.QueryRoot()
	if !ok {
		return fmt.Errorf("schema: no query root type")
	}
	for i := range queries {
		if err := g.genAPIFor("query", root, queries[i].Name, queries[i].VariableDefinitions, queries[i].SelectionSet); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) genMutations(mutations []ast.OperationDefinition) error {
	if len(mutations) == 0 {
		return nil
	}
	root, ok := g.schema.MutationRoot()
	if !ok {
		return fmt.Errorf("schema: no mutation root type")
	}
	for i := range mutations {
		if err := g.genAPIFor("mutation", root, mutations[i].Name, mutations[i].VariableDefinitions, mutations[i].SelectionSet); err != nil {
			return err
		}
	}
	return nil
}

// genFragmentDefinitions renders each fragment's type plus the registration
// function handing name, dependency list and text to the fragment registry.
func (g *Generator) genFragmentDefinitions(fragments []ast.FragmentDefinition) error {
	for i := range fragments {
		fragment := fragments[i]

		g.newline()
		g.newline()

		onType, err := g.schema.GetNamed(fragment.TypeCondition)
		if err != nil {
			return err
		}
		if err := g.genTypeFor(onType, fragment.Name, fragment.SelectionSet); err != nil {
			return err
		}

		g.newline()
		g.write("func init")
		g.write(swiftName(fragment.Name))
		g.write("Fragment(meta: FragmentMeta)")
		g.openBrace()
		g.newline()
		g.write("meta.register(name: \"")
		g.write(fragment.Name)
		g.write("\", fragments: ")
		g.genDependentFragments(fragment.SelectionSet)
		g.write(", graphql: \"\"\"")
		g.newline()
		g.write("fragment ")
		g.write(fragment.Name)
		g.write(" on ")
		g.write(onType.Name)
		g.genOperationArgs(fragment.VariableDefinitions)
		if err := g.genSelectionText(onType, fragment.SelectionSet); err != nil {
			return err
		}
		g.newline()
		g.write("\"\"\")")
		g.closeBrace()
	}
	return nil
}
