package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/justyntemme/cloudreader/internal/assistant"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask <novel-id> <question>",
	Short: "Ask the assistant a question about a novel",
	Args:  cobra.MinimumNArgs(2), //nolint:mnd
	RunE: func(cmd *cobra.Command, args []string) error {
		novelID, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrapf(err, "invalid novel id %q", args[0])
		}
		novel, err := svc.Content.GetNovel(cmd.Context(), novelID)
		if err != nil {
			return err
		}

		conv := assistant.NewConversation(svc.Assistant, assistant.Book{
			Title:   novel.Title,
			Author:  novel.Author,
			Summary: novel.Summary,
		})
		reply, ok := conv.Send(cmd.Context(), strings.Join(args[1:], " "))
		if !ok {
			return errors.New("question is empty")
		}
		fmt.Fprintln(cmd.OutOrStdout(), reply.Text)
		return nil
	},
}
