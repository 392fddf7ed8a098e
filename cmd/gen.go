package cmd

import (
	"bytes"
	"fmt"
	"os"

	log "github.com/jensneuse/abstractlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swiftgql/graphql-swift-gen/pkg/astparser"
	"github.com/swiftgql/graphql-swift-gen/pkg/codegen"
	"github.com/swiftgql/graphql-swift-gen/pkg/filescan"
	"github.com/swiftgql/graphql-swift-gen/pkg/introspection"
	"github.com/swiftgql/graphql-swift-gen/pkg/lexer"
)

var (
	genSchemaFile string
	genQueriesDir string
	genOutputFile string
	genForce      bool
)

// genCmd represents the gen command
var genCmd = &cobra.Command{
	Use:     "gen",
	Short:   "gen compiles *.graphql operations against an introspection schema into Swift source",
	Example: "swiftgql gen --schema schema.json --dir ./GraphQL --out Generated.swift",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		schemaFile := viper.GetString("schema")
		queriesDir := viper.GetString("dir")
		outputFile := viper.GetString("out")

		schemaJSON, err := os.ReadFile(schemaFile)
		if err != nil {
			return fmt.Errorf("gen: read schema: %w", err)
		}
		schema, err := introspection.ParseSchema(schemaJSON)
		if err != nil {
			return err
		}

		scan, err := filescan.Scan(queriesDir, outputFile)
		if err != nil {
			return fmt.Errorf("gen: scan %s: %w", queriesDir, err)
		}
		if !scan.Modified && !genForce {
			logger.Info("swiftgql.gen",
				log.String("out", outputFile),
				log.String("status", "up to date"),
			)
			return nil
		}

		out := &bytes.Buffer{}
		generator := codegen.New(schema)

		for _, file := range scan.Files {
			src, err := os.ReadFile(file.Path)
			if err != nil {
				return fmt.Errorf("gen: read %s: %w", file.Path, err)
			}
			tokens, err := lexer.Tokenize(file.Path, string(src))
			if err != nil {
				return err
			}
			doc, err := astparser.ParseDocument(tokens)
			if err != nil {
				return fmt.Errorf("%s: %w", file.Path, err)
			}
			if err := generator.Generate(doc, out); err != nil {
				return fmt.Errorf("%s: %w", file.Path, err)
			}
		}

		if err := os.WriteFile(outputFile, out.Bytes(), 0644); err != nil {
			return fmt.Errorf("gen: write %s: %w", outputFile, err)
		}

		logger.Info("swiftgql.gen",
			log.String("out", outputFile),
			log.Int("files", len(scan.Files)),
			log.Int("bytes", out.Len()),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(genCmd)

	genCmd.Flags().StringVar(&genSchemaFile, "schema", "schema.json", "introspection JSON file to compile against")
	genCmd.Flags().StringVar(&genQueriesDir, "dir", ".", "directory scanned recursively for *.graphql files")
	genCmd.Flags().StringVar(&genOutputFile, "out", "Generated.swift", "path of the generated Swift file")
	genCmd.Flags().BoolVar(&genForce, "force", false, "regenerate even when no source file is newer than the output")

	_ = viper.BindPFlag("schema", genCmd.Flags().Lookup("schema"))
	_ = viper.BindPFlag("dir", genCmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("out", genCmd.Flags().Lookup("out"))
}
