package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"meetingmind/cmd/meetingmind/cmd/migrate"
	"meetingmind/cmd/meetingmind/cmd/serve"
	"meetingmind/cmd/meetingmind/cmd/version"
	"meetingmind/cmd/meetingmind/cmd/watch"
	"meetingmind/internal/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "meetingmind",
	Short: "Meeting recordings in, transcripts, summaries and action items out",
	Long: `MeetingMind stores meeting recordings, transcribes them with an asynchronous
speech-to-text provider and summarizes them with a language model.

- serve runs the HTTP API, webhooks and the realtime stream
- migrate applies database migrations
- watch follows a user's meetings from the command line`,
	TraverseChildren: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.LoadEnv()
		if err != nil {
			return err
		}
		if path != "" && verbose {
			fmt.Fprintf(os.Stderr, "loaded environment from %s\n", path)
		}
		return nil
	},
}

var verbose bool

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(migrate.Cmd)
	rootCmd.AddCommand(watch.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "verbose output")
}
