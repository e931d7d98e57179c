package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitenav/internal/config"
	"github.com/ziadkadry99/sitenav/internal/logging"
)

var (
	cfgFile   string
	verbose   bool
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "sitenav",
	Short: "Inject shared navigation partials into static site pages",
	Long: `sitenav loads a site's shared navigation partials (sidebar and mobile bar)
and injects them into every page, rewriting relative links so they resolve
from the page's directory. Pages can be built ahead of time or served with
navigation injected on the fly.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(logging.New(cmd.ErrOrStderr(), logging.Format(logFormat), verbose))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", string(logging.FormatText), "log format: text or json")
}
