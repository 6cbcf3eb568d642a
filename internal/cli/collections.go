package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newStashCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stash",
		Short: "Manage stashes, your named card collections",
	}

	var description, icon string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a stash",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.app.CreateStash(strings.Join(args, " "), description, icon)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	}
	create.Flags().StringVar(&description, "description", "", "what the stash is for")
	create.Flags().StringVar(&icon, "icon", "", "icon shown next to the stash")

	add := &cobra.Command{
		Use:   "add <stash> <card>",
		Short: "Add a card to a stash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := e.app.AddToStash(args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]bool{"changed": changed})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <stash> <card>",
		Short: "Remove a card from a stash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			changed, err := e.app.RemoveFromStash(args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]bool{"changed": changed})
		},
	}

	del := &cobra.Command{
		Use:   "delete <stash>",
		Short: "Delete a user stash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleted, err := e.app.DeleteStash(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]bool{"deleted": deleted})
		},
	}

	list := &cobra.Command{
		Use:   "list [stash]",
		Short: "List stashes, or show one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				s, ok, err := e.app.Stash(args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("stash %q not found", args[0])
				}
				return printJSON(cmd.OutOrStdout(), s)
			}
			stashes, err := e.app.Stashes()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), stashes)
		},
	}

	cmd.AddCommand(create, add, remove, del, list)
	return cmd
}

func newCommentCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Comment on cards",
	}

	add := &cobra.Command{
		Use:   "add <card> <text...>",
		Short: "Comment on a card",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := e.app.AddComment(args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), c)
		},
	}

	list := &cobra.Command{
		Use:   "list <card>",
		Short: "Show the comments on a card, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			comments, err := e.app.Comments(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), comments)
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}
