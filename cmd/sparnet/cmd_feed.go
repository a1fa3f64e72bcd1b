package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Read and write the local community feed",
}

var feedListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the feed, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, closeSlot, err := openViewModel(cmd.Context())
		if err != nil {
			return err
		}
		defer closeSlot()

		for _, post := range vm.List() {
			created := time.UnixMilli(post.CreatedAt).Format("2006-01-02 15:04")
			liked := " "
			if post.Liked {
				liked = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s [%s] %s @%s (%d likes%s)\n  %s\n",
				post.ID, created, post.AuthorName, post.Handle, post.Likes, liked, post.Content)
		}
		return nil
	},
}

var feedPostCmd = &cobra.Command{
	Use:   "post <content>",
	Short: "Publish a post to the feed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, closeSlot, err := openViewModel(cmd.Context())
		if err != nil {
			return err
		}
		defer closeSlot()

		post, ok := vm.Create(cmd.Context(), strings.Join(args, " "))
		if !ok {
			return fmt.Errorf("content required")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "posted %s\n", post.ID)
		return nil
	},
}

var feedLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Toggle your like on a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, closeSlot, err := openViewModel(cmd.Context())
		if err != nil {
			return err
		}
		defer closeSlot()

		vm.ToggleLike(cmd.Context(), args[0])
		return nil
	},
}

var feedDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Remove a post from the feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vm, closeSlot, err := openViewModel(cmd.Context())
		if err != nil {
			return err
		}
		defer closeSlot()

		vm.Delete(cmd.Context(), args[0])
		return nil
	},
}

func init() {
	feedCmd.AddCommand(feedListCmd, feedPostCmd, feedLikeCmd, feedDeleteCmd)
}
