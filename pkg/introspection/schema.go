// Package introspection builds the in-memory schema catalog from a GraphQL
// introspection JSON document and fetches that document over HTTP.
//
// The schema is a structural precondition of code generation, not user
// input: any missing or mistyped key aborts immediately.
package introspection

import (
	"fmt"

	"github.com/buger/jsonparser"

	"github.com/swiftgql/graphql-swift-gen/pkg/ast"
)

type TypeKind int

const (
	TypeKindScalar TypeKind = iota
	TypeKindObject
	TypeKindEnum
	TypeKindInputObject
	TypeKindInterface
)

func (k TypeKind) String() string {
	switch k {
	case TypeKindScalar:
		return "SCALAR"
	case TypeKindObject:
		return "OBJECT"
	case TypeKindEnum:
		return "ENUM"
	case TypeKindInputObject:
		return "INPUT_OBJECT"
	case TypeKindInterface:
		return "INTERFACE"
	default:
		return fmt.Sprintf("#undefined String case for %d# (see schema.go)", k)
	}
}

type ArgumentDefinition struct {
	Name string
	Type ast.Type
}

type FieldDefinition struct {
	Name string
	Args []ArgumentDefinition
	Type ast.Type
}

type NamedType struct {
	Name   string
	Kind   TypeKind
	Fields map[string]FieldDefinition
}

// HasField reports whether the type declares a field with the given name.
func (n *NamedType) HasField(name string) bool {
	_, ok := n.Fields[name]
	return ok
}

// Schema is the type catalog shared read-only by generation runs.
type Schema struct {
	queryTypeName    string
	mutationTypeName string
	types            map[string]*NamedType
}

// ParseSchema reads the object at '__schema', optionally nested one level
// under a 'data' envelope.
func ParseSchema(input []byte) (*Schema, error) {
	schemaData, _, _, err := jsonparser.Get(input, "__schema")
	if err != nil {
		schemaData, _, _, err = jsonparser.Get(input, "data", "__schema")
		if err != nil {
			return nil, fmt.Errorf("introspection: missing __schema object")
		}
	}

	queryTypeName, err := jsonparser.GetString(schemaData, "queryType", "name")
	if err != nil {
		return nil, fmt.Errorf("introspection: queryType.name: %w", err)
	}
	mutationTypeName, err := jsonparser.GetString(schemaData, "mutationType", "name")
	if err != nil {
		return nil, fmt.Errorf("introspection: mutationType.name: %w", err)
	}

	s := &Schema{
		queryTypeName:    queryTypeName,
		mutationTypeName: mutationTypeName,
		types:            map[string]*NamedType{},
	}

	var typesErr error
	_, err = jsonparser.ArrayEach(schemaData, func(value []byte, dataType jsonparser.ValueType, offset int, _ error) {
		if typesErr != nil {
			return
		}
		named, err := namedTypeFromJSON(value)
		if err != nil {
			typesErr = err
			return
		}
		s.types[named.Name] = named
	}, "types")
	if err != nil {
		return nil, fmt.Errorf("introspection: types: %w", err)
	}
	if typesErr != nil {
		return nil, typesErr
	}

	return s, nil
}

func namedTypeFromJSON(value []byte) (*NamedType, error) {
	name, err := jsonparser.GetString(value, "name")
	if err != nil {
		return nil, fmt.Errorf("introspection: type name: %w", err)
	}
	kindString, err := jsonparser.GetString(value, "kind")
	if err != nil {
		return nil, fmt.Errorf("introspection: type %q: kind: %w", name, err)
	}

	var kind TypeKind
	switch kindString {
	case "OBJECT":
		kind = TypeKindObject
	case "INTERFACE":
		kind = TypeKindInterface
	case "SCALAR":
		kind = TypeKindScalar
	case "INPUT_OBJECT":
		kind = TypeKindInputObject
	case "ENUM":
		kind = TypeKindEnum
	default:
		return nil, fmt.Errorf("introspection: type %q: expecting OBJECT, INTERFACE, SCALAR, INPUT_OBJECT or ENUM, not %q", name, kindString)
	}

	fields, err := fieldsFromJSON(name, value)
	if err != nil {
		return nil, err
	}

	return &NamedType{Name: name, Kind: kind, Fields: fields}, nil
}

// fieldsFromJSON reads the 'fields' array. It is null or absent for
// non-object, non-interface kinds, which maps to an empty field table.
func fieldsFromJSON(typeName string, value []byte) (map[string]FieldDefinition, error) {
	fields := map[string]FieldDefinition{}

	fieldsData, dataType, _, err := jsonparser.Get(value, "fields")
	if err != nil || dataType != jsonparser.Array {
		return fields, nil
	}

	var fieldsErr error
	_, err = jsonparser.ArrayEach(fieldsData, func(fieldValue []byte, _ jsonparser.ValueType, _ int, _ error) {
		if fieldsErr != nil {
			return
		}
		field, err := fieldFromJSON(typeName, fieldValue)
		if err != nil {
			fieldsErr = err
			return
		}
		fields[field.Name] = field
	})
	if err != nil {
		return nil, fmt.Errorf("introspection: type %q: fields: %w", typeName, err)
	}
	if fieldsErr != nil {
		return nil, fieldsErr
	}

	return fields, nil
}

func fieldFromJSON(typeName string, value []byte) (FieldDefinition, error) {
	name, err := jsonparser.GetString(value, "name")
	if err != nil {
		return FieldDefinition{}, fmt.Errorf("introspection: type %q: field name: %w", typeName, err)
	}

	typeData, _, _, err := jsonparser.Get(value, "type")
	if err != nil {
		return FieldDefinition{}, fmt.Errorf("introspection: field %s.%s: type: %w", typeName, name, err)
	}
	fieldType, err := typeFromJSON(typeData)
	if err != nil {
		return FieldDefinition{}, fmt.Errorf("introspection: field %s.%s: %w", typeName, name, err)
	}

	var args []ArgumentDefinition
	var argsErr error
	_, _ = jsonparser.ArrayEach(value, func(argValue []byte, _ jsonparser.ValueType, _ int, _ error) {
		if argsErr != nil {
			return
		}
		argName, err := jsonparser.GetString(argValue, "name")
		if err != nil {
			argsErr = fmt.Errorf("introspection: field %s.%s: arg name: %w", typeName, name, err)
			return
		}
		argTypeData, _, _, err := jsonparser.Get(argValue, "type")
		if err != nil {
			argsErr = fmt.Errorf("introspection: field %s.%s: arg %q type: %w", typeName, name, argName, err)
			return
		}
		argType, err := typeFromJSON(argTypeData)
		if err != nil {
			argsErr = fmt.Errorf("introspection: field %s.%s: arg %q: %w", typeName, name, argName, err)
			return
		}
		args = append(args, ArgumentDefinition{Name: argName, Type: argType})
	}, "args")
	if argsErr != nil {
		return FieldDefinition{}, argsErr
	}

	return FieldDefinition{Name: name, Args: args, Type: fieldType}, nil
}

// typeFromJSON resolves a 'type'/'ofType' object chain into an ast.Type.
// NON_NULL and LIST unwrap one level each; the introspection query requests
// enough nesting to cover chains like NonNull(List(NonNull(Scalar))).
func typeFromJSON(value []byte) (ast.Type, error) {
	kind, err := jsonparser.GetString(value, "kind")
	if err != nil {
		return ast.Type{}, fmt.Errorf("type kind: %w", err)
	}

	switch kind {
	case "SCALAR":
		name, err := jsonparser.GetString(value, "name")
		if err != nil {
			return ast.Type{}, fmt.Errorf("scalar name: %w", err)
		}
		switch name {
		case "Int":
			return ast.Type{TypeKind: ast.TypeKindInt}, nil
		case "Float":
			return ast.Type{TypeKind: ast.TypeKindFloat}, nil
		case "Bool":
			return ast.Type{TypeKind: ast.TypeKindBoolean}, nil
		case "String":
			return ast.Type{TypeKind: ast.TypeKindString}, nil
		default:
			return ast.Type{TypeKind: ast.TypeKindNamed, Name: name}, nil
		}
	case "NON_NULL":
		ofType, _, _, err := jsonparser.Get(value, "ofType")
		if err != nil {
			return ast.Type{}, fmt.Errorf("NON_NULL ofType: %w", err)
		}
		inner, err := typeFromJSON(ofType)
		if err != nil {
			return ast.Type{}, err
		}
		return ast.Type{TypeKind: ast.TypeKindNonNull, OfType: &inner}, nil
	case "LIST":
		ofType, _, _, err := jsonparser.Get(value, "ofType")
		if err != nil {
			return ast.Type{}, fmt.Errorf("LIST ofType: %w", err)
		}
		inner, err := typeFromJSON(ofType)
		if err != nil {
			return ast.Type{}, err
		}
		return ast.Type{TypeKind: ast.TypeKindList, OfType: &inner}, nil
	case "ENUM", "OBJECT", "INTERFACE", "INPUT_OBJECT":
		name, err := jsonparser.GetString(value, "name")
		if err != nil {
			return ast.Type{}, fmt.Errorf("%s name: %w", kind, err)
		}
		return ast.Type{TypeKind: ast.TypeKindNamed, Name: name}, nil
	default:
		return ast.Type{}, fmt.Errorf("unknown type kind %q", kind)
	}
}

// Get looks a type up by name.
func (s *Schema) Get(name string) (*NamedType, bool) {
	named, ok := s.types[name]
	return named, ok
}

// GetNamed unwraps NonNull and List layers and resolves the Named leaf.
// A scalar-only leaf or an unknown name is a generation-aborting error.
func (s *Schema) GetNamed(t ast.Type) (*NamedType, error) {
	switch t.TypeKind {
	case ast.TypeKindNamed:
		named, ok := s.Get(t.Name)
		if !ok {
			return nil, fmt.Errorf("schema: unknown type %q", t.Name)
		}
		return named, nil
	case ast.TypeKindNonNull, ast.TypeKindList:
		return s.GetNamed(*t.OfType)
	default:
		return nil, fmt.Errorf("schema: can only resolve named, list or non-null types")
	}
}

// TypeOfField resolves the named type behind a field declared on onType.
func (s *Schema) TypeOfField(onType *NamedType, fieldName string) (*NamedType, error) {
	field, ok := onType.Fields[fieldName]
	if !ok {
		return nil, fmt.Errorf("schema: type %q has no field %q", onType.Name, fieldName)
	}
	return s.GetNamed(field.Type)
}

func (s *Schema) QueryRoot() (*NamedType, bool) {
	return s.Get(s.queryTypeName)
}

func (s *Schema) MutationRoot() (*NamedType, bool) {
	return s.Get(s.mutationTypeName)
}
