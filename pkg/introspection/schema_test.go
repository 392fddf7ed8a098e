package introspection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swiftgql/graphql-swift-gen/pkg/ast"
)

const testSchemaJSON = `{
  "data": {
    "__schema": {
      "queryType": { "name": "Query" },
      "mutationType": { "name": "Mutation" },
      "types": [
        {
          "kind": "OBJECT",
          "name": "Query",
          "fields": [
            {
              "name": "user",
              "args": [
                { "name": "id", "type": { "kind": "NON_NULL", "name": null, "ofType": { "kind": "SCALAR", "name": "Int", "ofType": null } } }
              ],
              "type": { "kind": "OBJECT", "name": "User", "ofType": null }
            },
            { "name": "hero", "args": [], "type": { "kind": "INTERFACE", "name": "Node", "ofType": null } }
          ]
        },
        {
          "kind": "OBJECT",
          "name": "Mutation",
          "fields": [
            {
              "name": "like",
              "args": [
                { "name": "postId", "type": { "kind": "NON_NULL", "name": null, "ofType": { "kind": "SCALAR", "name": "Int", "ofType": null } } }
              ],
              "type": { "kind": "NON_NULL", "name": null, "ofType": { "kind": "SCALAR", "name": "Int", "ofType": null } }
            }
          ]
        },
        {
          "kind": "OBJECT",
          "name": "User",
          "fields": [
            { "name": "id", "args": [], "type": { "kind": "NON_NULL", "name": null, "ofType": { "kind": "SCALAR", "name": "Int", "ofType": null } } },
            { "name": "name", "args": [], "type": { "kind": "NON_NULL", "name": null, "ofType": { "kind": "SCALAR", "name": "String", "ofType": null } } },
            {
              "name": "friendIds",
              "args": [],
              "type": { "kind": "NON_NULL", "name": null, "ofType": { "kind": "LIST", "name": null, "ofType": { "kind": "NON_NULL", "name": null, "ofType": { "kind": "SCALAR", "name": "Int", "ofType": null } } } }
            },
            { "name": "joined", "args": [], "type": { "kind": "SCALAR", "name": "Date", "ofType": null } },
            { "name": "appearsIn", "args": [], "type": { "kind": "ENUM", "name": "Episode", "ofType": null } }
          ]
        },
        {
          "kind": "INTERFACE",
          "name": "Node",
          "fields": [
            { "name": "id", "args": [], "type": { "kind": "NON_NULL", "name": null, "ofType": { "kind": "SCALAR", "name": "Int", "ofType": null } } }
          ]
        },
        { "kind": "SCALAR", "name": "Date", "fields": null },
        { "kind": "ENUM", "name": "Episode", "fields": null },
        { "kind": "INPUT_OBJECT", "name": "ReviewInput", "fields": null }
      ]
    }
  }
}`

func parseTestSchema(t *testing.T) *Schema {
	t.Helper()
	schema, err := ParseSchema([]byte(testSchemaJSON))
	require.NoError(t, err)
	return schema
}

func TestParseSchema(t *testing.T) {
	schema := parseTestSchema(t)

	queryRoot, ok := schema.QueryRoot()
	require.True(t, ok)
	assert.Equal(t, "Query", queryRoot.Name)
	assert.Equal(t, TypeKindObject, queryRoot.Kind)

	mutationRoot, ok := schema.MutationRoot()
	require.True(t, ok)
	assert.Equal(t, "Mutation", mutationRoot.Name)

	user, ok := schema.Get("User")
	require.True(t, ok)
	assert.Equal(t, TypeKindObject, user.Kind)
	assert.True(t, user.HasField("id"))
	assert.True(t, user.HasField("name"))
	assert.False(t, user.HasField("email"))

	node, ok := schema.Get("Node")
	require.True(t, ok)
	assert.Equal(t, TypeKindInterface, node.Kind)

	date, ok := schema.Get("Date")
	require.True(t, ok)
	assert.Equal(t, TypeKindScalar, date.Kind)
	assert.Empty(t, date.Fields)

	episode, ok := schema.Get("Episode")
	require.True(t, ok)
	assert.Equal(t, TypeKindEnum, episode.Kind)

	reviewInput, ok := schema.Get("ReviewInput")
	require.True(t, ok)
	assert.Equal(t, TypeKindInputObject, reviewInput.Kind)
}

// The introspection result may arrive bare or wrapped in the transport's
// 'data' envelope; both parse identically.
func TestParseSchemaBareEnvelope(t *testing.T) {
	schema, err := ParseSchema([]byte(`{
		"__schema": {
			"queryType": { "name": "Query" },
			"mutationType": { "name": "Mutation" },
			"types": [ { "kind": "OBJECT", "name": "Query", "fields": [] } ]
		}
	}`))
	require.NoError(t, err)
	queryRoot, ok := schema.QueryRoot()
	require.True(t, ok)
	assert.Equal(t, "Query", queryRoot.Name)
}

func TestParseSchemaTypeResolution(t *testing.T) {
	schema := parseTestSchema(t)
	user, _ := schema.Get("User")

	t.Run("non-null scalar", func(t *testing.T) {
		intType := ast.Type{TypeKind: ast.TypeKindInt}
		assert.Equal(t, ast.Type{TypeKind: ast.TypeKindNonNull, OfType: &intType}, user.Fields["id"].Type)
	})
	t.Run("nested non-null list", func(t *testing.T) {
		intType := ast.Type{TypeKind: ast.TypeKindInt}
		nonNullInt := ast.Type{TypeKind: ast.TypeKindNonNull, OfType: &intType}
		list := ast.Type{TypeKind: ast.TypeKindList, OfType: &nonNullInt}
		assert.Equal(t, ast.Type{TypeKind: ast.TypeKindNonNull, OfType: &list}, user.Fields["friendIds"].Type)
	})
	t.Run("custom scalar stays named", func(t *testing.T) {
		assert.Equal(t, ast.Type{TypeKind: ast.TypeKindNamed, Name: "Date"}, user.Fields["joined"].Type)
	})
	t.Run("enum reference", func(t *testing.T) {
		assert.Equal(t, ast.Type{TypeKind: ast.TypeKindNamed, Name: "Episode"}, user.Fields["appearsIn"].Type)
	})
	t.Run("field arguments", func(t *testing.T) {
		queryRoot, _ := schema.QueryRoot()
		args := queryRoot.Fields["user"].Args
		require.Len(t, args, 1)
		assert.Equal(t, "id", args[0].Name)
		assert.Equal(t, ast.TypeKindNonNull, args[0].Type.TypeKind)
	})
}

func TestSchemaGetNamed(t *testing.T) {
	schema := parseTestSchema(t)

	t.Run("unwraps non-null and list layers", func(t *testing.T) {
		userType := ast.Type{TypeKind: ast.TypeKindNamed, Name: "User"}
		list := ast.Type{TypeKind: ast.TypeKindList, OfType: &userType}
		nonNull := ast.Type{TypeKind: ast.TypeKindNonNull, OfType: &list}
		named, err := schema.GetNamed(nonNull)
		require.NoError(t, err)
		assert.Equal(t, "User", named.Name)
	})
	t.Run("unknown type", func(t *testing.T) {
		_, err := schema.GetNamed(ast.Type{TypeKind: ast.TypeKindNamed, Name: "Starship"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown type "Starship"`)
	})
	t.Run("builtin scalar leaf has no named type", func(t *testing.T) {
		_, err := schema.GetNamed(ast.Type{TypeKind: ast.TypeKindInt})
		require.Error(t, err)
	})
}

func TestSchemaTypeOfField(t *testing.T) {
	schema := parseTestSchema(t)
	queryRoot, _ := schema.QueryRoot()

	user, err := schema.TypeOfField(queryRoot, "user")
	require.NoError(t, err)
	assert.Equal(t, "User", user.Name)

	node, err := schema.TypeOfField(queryRoot, "hero")
	require.NoError(t, err)
	assert.Equal(t, TypeKindInterface, node.Kind)

	_, err = schema.TypeOfField(queryRoot, "starship")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `has no field "starship"`)
}

func TestParseSchemaErrors(t *testing.T) {
	t.Run("missing __schema", func(t *testing.T) {
		_, err := ParseSchema([]byte(`{"types": []}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing __schema")
	})
	t.Run("missing queryType", func(t *testing.T) {
		_, err := ParseSchema([]byte(`{"__schema": {"mutationType": {"name": "Mutation"}, "types": []}}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "queryType.name")
	})
	t.Run("missing mutationType", func(t *testing.T) {
		_, err := ParseSchema([]byte(`{"__schema": {"queryType": {"name": "Query"}, "types": []}}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "mutationType.name")
	})
	t.Run("unknown type kind", func(t *testing.T) {
		_, err := ParseSchema([]byte(`{
			"__schema": {
				"queryType": { "name": "Query" },
				"mutationType": { "name": "Mutation" },
				"types": [ { "kind": "UNION", "name": "SearchResult" } ]
			}
		}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `type "SearchResult"`)
	})
	t.Run("unknown wrapper kind in a field type", func(t *testing.T) {
		_, err := ParseSchema([]byte(`{
			"__schema": {
				"queryType": { "name": "Query" },
				"mutationType": { "name": "Mutation" },
				"types": [
					{ "kind": "OBJECT", "name": "Query", "fields": [
						{ "name": "x", "args": [], "type": { "kind": "UNION", "name": "SearchResult" } }
					] }
				]
			}
		}`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown type kind "UNION"`)
	})
}
