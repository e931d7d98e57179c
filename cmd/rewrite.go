package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sitenav/internal/navlinks"
	"github.com/ziadkadry99/sitenav/internal/navpath"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [file]",
	Short: "Rewrite the links of an HTML fragment for a base path",
	Long: `Reads an HTML fragment from a file (or stdin) and prints it with every
relative link prefixed by the base path. The base path is given directly
with --base or computed from a page pathname with --path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRewrite,
}

func init() {
	rewriteCmd.Flags().String("base", "", "base path to apply, e.g. ../")
	rewriteCmd.Flags().String("path", "", "page pathname to compute the base path from")
	rewriteCmd.Flags().String("root", "", "site root the page is mounted under (with --path)")
	rewriteCmd.Flags().Bool("explain", false, "list every anchor and how it was rewritten")
	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(cmd *cobra.Command, args []string) error {
	base, _ := cmd.Flags().GetString("base")
	pagePath, _ := cmd.Flags().GetString("path")
	root, _ := cmd.Flags().GetString("root")
	explain, _ := cmd.Flags().GetBool("explain")

	switch {
	case base != "" && pagePath != "":
		return errors.New("--base and --path are mutually exclusive")
	case pagePath != "":
		base = string(navpath.Resolver{Root: root}.BasePath(pagePath))
	case base == "":
		return errors.New("one of --base or --path is required")
	}

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	fragment, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading fragment: %w", err)
	}

	out, records, err := navlinks.Rewrite(string(fragment), navpath.Prefix(base))
	if err != nil {
		return err
	}

	if explain {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KIND\tORIGINAL\tREWRITTEN")
		for _, r := range records {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Kind, r.Original, r.Rewritten)
		}
		return tw.Flush()
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
