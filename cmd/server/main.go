package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the natours command tree. Running the root command
// without a subcommand serves the API.
func newRootCmd() *cobra.Command {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	rootCmd := &cobra.Command{
		Use:           "natours",
		Short:         "Natours tour booking API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := config.BindFlags(rootCmd.PersistentFlags())

	serveCmd := newServeCmd(flags, buildInfo)
	rootCmd.RunE = serveCmd.RunE

	rootCmd.AddCommand(
		serveCmd,
		newMigrateCmd(flags),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, args []string) {
				cmd.Println(buildInfo.String())
			},
		},
	)

	return rootCmd
}
