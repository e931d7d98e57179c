package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitenav/internal/navpath"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <pathname>...",
	Short: "Print the base path for URL pathnames",
	Long: `Prints the relative prefix that leads from each page back to the site root,
one "pathname<TAB>prefix" line per argument.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, _ := cmd.Flags().GetString("root")
		resolver := navpath.Resolver{Root: root}
		for _, p := range args {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", p, resolver.BasePath(p))
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().String("root", "", "site root the pages are mounted under, e.g. /docs/")
	rootCmd.AddCommand(resolveCmd)
}
