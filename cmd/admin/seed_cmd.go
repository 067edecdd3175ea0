package main

import (
	"fmt"

	"yatube/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd(open dbOpener) *cobra.Command {
	opts := seed.DefaultOptions()
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with demo users, groups and posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := open(true)
			if err != nil {
				return err
			}
			res, err := seed.Run(cmd.Context(), db, opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d groups, %d posts (password %q)\n",
				res.Users, res.Groups, res.Posts, opts.Password)
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&opts.Users, "users", opts.Users, "number of users")
	f.IntVar(&opts.Groups, "groups", opts.Groups, "number of groups")
	f.IntVar(&opts.PostsPerUser, "posts", opts.PostsPerUser, "posts per user")
	f.IntVar(&opts.MaxDays, "days", opts.MaxDays, "spread publication dates over this many days")
	f.StringVar(&opts.Password, "password", opts.Password, "password for every seeded account")
	f.BoolVar(&opts.Clean, "clean", false, "delete all existing content first")
	f.Int64Var(&opts.Seed, "seed", 0, "random seed for reproducible content")
	return cmd
}
