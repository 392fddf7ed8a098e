// Package cmd wires the swiftgql commands.
package cmd

import (
	"fmt"
	"os"

	log "github.com/jensneuse/abstractlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "swiftgql",
	Short: "swiftgql compiles GraphQL operations into Swift client code",
	Long: `swiftgql compiles *.graphql files (queries, mutations, fragments)
against a GraphQL introspection schema into Swift source: request types,
response-decoding types mirroring each selection set, and the operation
text sent over the wire.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .swiftgql.yaml in the working directory)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(".swiftgql")
	}

	viper.SetEnvPrefix("swiftgql")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger() log.Logger {
	zapLogger, err := zap.NewProductionConfig().Build()
	if err != nil {
		panic(err)
	}
	return log.NewZapLogger(zapLogger, log.InfoLevel)
}
