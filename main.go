package main

import "github.com/swiftgql/graphql-swift-gen/cmd"

func main() {
	cmd.Execute()
}
