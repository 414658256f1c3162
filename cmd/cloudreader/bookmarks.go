package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/justyntemme/cloudreader/internal/bookmark"
	"github.com/justyntemme/cloudreader/internal/metrics"
	"github.com/justyntemme/cloudreader/pkg/models"
)

func init() { //nolint: gochecknoinits
	bookmarksListCmd.Flags().IntVar(&bookmarkNovel, "novel", 0, "only list bookmarks of this novel")

	bookmarksCmd.AddCommand(bookmarksListCmd, bookmarksAddCmd, bookmarksRemoveCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

var (
	bookmarkNovel int

	bookmarksCmd = &cobra.Command{
		Use:     "bookmarks",
		Aliases: []string{"bm"},
		Short:   "List and manage bookmarks",
		Args:    cobra.NoArgs,
		RunE:    listBookmarks,
	}

	bookmarksListCmd = &cobra.Command{
		Use:   "list",
		Short: "List bookmarks, newest first",
		Args:  cobra.NoArgs,
		RunE:  listBookmarks,
	}

	bookmarksAddCmd = &cobra.Command{
		Use:   "add <novel-id> <chapter>",
		Short: "Bookmark a chapter",
		Args:  cobra.ExactArgs(2), //nolint:mnd
		RunE: func(cmd *cobra.Command, args []string) error {
			novelID, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrapf(err, "invalid novel id %q", args[0])
			}
			number, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrapf(err, "invalid chapter %q", args[1])
			}

			ctx := cmd.Context()
			novel, err := svc.Content.GetNovel(ctx, novelID)
			if err != nil {
				return err
			}
			chapter, err := svc.Content.Chapter(ctx, novelID, number)
			if err != nil {
				return err
			}

			b := bookmark.New(novel, chapter, svc.Now())
			if err := svc.Bookmarks.Add(ctx, b); err != nil {
				return err
			}
			metrics.BookmarkChanges.WithLabelValues("add").Inc()
			fmt.Fprintf(cmd.OutOrStdout(), "bookmarked %s: %s %s\n", b.ID, b.NovelTitle, b.ChapterTitle)
			return nil
		},
	}

	bookmarksRemoveCmd = &cobra.Command{
		Use:     "remove <id>...",
		Aliases: []string{"rm"},
		Short:   "Remove bookmarks by id (novelId_chapterNumber)",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if _, _, err := bookmark.ParseID(id); err != nil {
					return err
				}
				if err := svc.Bookmarks.Remove(cmd.Context(), id); err != nil {
					return err
				}
				metrics.BookmarkChanges.WithLabelValues("remove").Inc()
				fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", id)
			}
			return nil
		},
	}
)

func listBookmarks(cmd *cobra.Command, _ []string) error {
	var (
		list []models.Bookmark
		err  error
	)
	if bookmarkNovel > 0 {
		list, err = svc.Bookmarks.ListForNovel(cmd.Context(), bookmarkNovel)
	} else {
		list, err = svc.Bookmarks.List(cmd.Context())
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(list) == 0 {
		fmt.Fprintln(out, "no bookmarks")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0) //nolint:mnd
	fmt.Fprintln(w, "ID\tNOVEL\tCHAPTER\tCREATED")
	for _, b := range list {
		created := b.CreatedAt
		if t := b.Created(); !t.IsZero() {
			created = t.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%d %s\t%s\n", b.ID, b.NovelTitle, b.ChapterNumber, b.ChapterTitle, created)
	}
	return w.Flush()
}
