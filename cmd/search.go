package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Find elements and sub-elements by exact name",
	Long: `Print every element and sub-element whose name equals <name>, with its
path in the tree, its linked group and its status.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			exitWithError(err)
		}
		logger := newLogger(cfg)
		ctx := context.Background()

		be, err := openBackend(ctx, cfg, logger, false)
		if err != nil {
			exitWithError(err)
		}
		defer be.close()

		store, err := openStore(ctx, cfg, be.repo, logger)
		if err != nil {
			exitWithError(err)
		}

		name := args[0]
		elements := store.FindElementsByName(name)
		subElements := store.FindSubElementsByName(name)
		if len(elements) == 0 && len(subElements) == 0 {
			fmt.Printf("No element named %q\n", name)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tID\tPATH\tGROUP\tSTATUS")
		for _, m := range elements {
			fmt.Fprintf(w, "element\t%s\t%s\t%s\t%s\n", m.ID, m.Path, orDash(m.LinkedGroupID), m.Status)
		}
		for _, m := range subElements {
			fmt.Fprintf(w, "sub-element\t%s\t%s\t%s\t%s\n", m.ID, m.Path, orDash(m.LinkedGroupID), m.Status)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
