package main

import (
	"fmt"

	"yatube/internal/repository"
	"yatube/internal/service"

	"github.com/spf13/cobra"
)

func newUserCmd(open dbOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newUserCreateCmd(open), newUserDeleteCmd(open))
	return cmd
}

func newUserCreateCmd(open dbOpener) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(true)
			if err != nil {
				return err
			}
			users := service.NewUserService(repository.NewUserRepository(db))
			user, err := users.Register(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password, at least 8 characters")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newUserDeleteCmd(open dbOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user and all of their posts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open(true)
			if err != nil {
				return err
			}
			users := service.NewUserService(repository.NewUserRepository(db))
			if err := users.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted user %s\n", args[0])
			return nil
		},
	}
}
