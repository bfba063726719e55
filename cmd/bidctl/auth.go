package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(a *app) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an email address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email = strings.TrimSpace(email)
			token, err := a.api.Login(cmd.Context(), email)
			if err != nil {
				return fmt.Errorf("sign in: %w", err)
			}
			if err := a.store.Save(email, token); err != nil {
				return err
			}
			a.console.Success(fmt.Sprintf("Signed in as %s", email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Email address to sign in with")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.api.Logout(cmd.Context()); err != nil {
				a.logger.Println(err)
			}
			if err := a.store.SignOut(); err != nil {
				return err
			}
			a.console.Success("Signed out")
			return nil
		},
	}
}
