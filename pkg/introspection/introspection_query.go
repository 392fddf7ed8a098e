package introspection

// Query is the introspection operation sent to an endpoint to retrieve the
// schema. The TypeRef fragment nests ofType deep enough to resolve chains
// like NonNull(List(NonNull(Scalar))).
const Query = `query IntrospectionQuery {
	__schema {
		queryType { name }
		mutationType { name }
		types {
			...FullType
		}
	}
}
fragment FullType on __Type {
	kind
	name
	fields(includeDeprecated: true) {
		name
		args {
			...InputValue
		}
		type {
			...TypeRef
		}
	}
	inputFields {
		...InputValue
	}
	interfaces {
		...TypeRef
	}
	enumValues(includeDeprecated: true) {
		name
	}
	possibleTypes {
		...TypeRef
	}
}
fragment InputValue on __InputValue {
	name
	type { ...TypeRef }
	defaultValue
}
fragment TypeRef on __Type {
	kind
	name
	ofType {
		kind
		name
		ofType {
			kind
			name
			ofType {
				kind
				name
				ofType {
					kind
					name
					ofType {
						kind
						name
						ofType {
							kind
							name
							ofType {
								kind
								name
							}
						}
					}
				}
			}
		}
	}
}`
