package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/justyntemme/cloudreader/pkg/models"
)

func init() { //nolint: gochecknoinits
	novelsCmd.Flags().StringVar(&novelsCategory, "category", "", "only list novels of this category")

	rootCmd.AddCommand(searchCmd, novelsCmd)
}

var (
	novelsCategory string

	searchCmd = &cobra.Command{
		Use:   "search <query>",
		Short: "Search novels by title or author",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			novels, err := svc.Content.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printNovels(cmd, novels)
		},
	}

	novelsCmd = &cobra.Command{
		Use:   "novels",
		Short: "List every novel in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			novels, err := svc.Content.AllNovels(cmd.Context())
			if err != nil {
				return err
			}
			if novelsCategory != "" {
				var filtered []models.Novel
				for _, n := range novels {
					if n.Category == novelsCategory {
						filtered = append(filtered, n)
					}
				}
				novels = filtered
			}
			return printNovels(cmd, novels)
		},
	}
)

func printNovels(cmd *cobra.Command, novels []models.Novel) error {
	out := cmd.OutOrStdout()
	if len(novels) == 0 {
		fmt.Fprintln(out, "no novels found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0) //nolint:mnd
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tCATEGORY\tCHAPTERS")
	for _, n := range novels {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", n.ID, n.Title, n.Author, n.Category, n.ChapterCount)
	}
	return w.Flush()
}
