package main

import (
	"fmt"

	"yatube/internal/models"
	"yatube/internal/repository"

	"github.com/spf13/cobra"
)

func newGroupCmd(open dbOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage groups",
	}
	cmd.AddCommand(newGroupCreateCmd(open), newGroupDeleteCmd(open))
	return cmd
}

func newGroupCreateCmd(open dbOpener) *cobra.Command {
	var title, description string
	cmd := &cobra.Command{
		Use:   "create <slug>",
		Short: "Create a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(true)
			if err != nil {
				return err
			}
			group := &models.Group{Slug: args[0], Title: title, Description: description}
			if err := repository.NewGroupRepository(db).Create(cmd.Context(), group); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created group %s (id %d)\n", group.Slug, group.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "display name")
	cmd.Flags().StringVarP(&description, "description", "d", "", "what the group is about")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	return cmd
}

func newGroupDeleteCmd(open dbOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a group; its posts are kept without a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(true)
			if err != nil {
				return err
			}
			groups := repository.NewGroupRepository(db)
			group, err := groups.GetBySlug(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := groups.Delete(cmd.Context(), group.ID); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted group %s\n", group.Slug)
			return nil
		},
	}
}
