package cmd

import (
	"context"
	"fmt"
	"os"

	log "github.com/jensneuse/abstractlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/swiftgql/graphql-swift-gen/pkg/introspection"
)

var (
	fetchURL        string
	fetchOutputFile string
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:     "fetch",
	Short:   "fetch retrieves the introspection schema of a GraphQL endpoint and persists it",
	Example: "swiftgql fetch --url http://localhost:8080/graphql --out schema.json",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		url := viper.GetString("url")
		outputFile := viper.GetString("schema-out")

		client := introspection.NewClient(logger)
		data, err := client.Fetch(context.Background(), url)
		if err != nil {
			return err
		}

		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("fetch: write %s: %w", outputFile, err)
		}

		logger.Info("swiftgql.fetch",
			log.String("url", url),
			log.String("out", outputFile),
			log.Int("bytes", len(data)),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().StringVar(&fetchURL, "url", "", "GraphQL endpoint to introspect")
	fetchCmd.Flags().StringVar(&fetchOutputFile, "out", "schema.json", "path the raw introspection JSON is written to")

	_ = viper.BindPFlag("url", fetchCmd.Flags().Lookup("url"))
	_ = viper.BindPFlag("schema-out", fetchCmd.Flags().Lookup("out"))
}
