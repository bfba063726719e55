package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/senyabanana/job-bids/internal/client"
	"github.com/senyabanana/job-bids/internal/lifecycle"
	"github.com/senyabanana/job-bids/internal/session"
	"github.com/senyabanana/job-bids/internal/submission"
	"github.com/senyabanana/job-bids/internal/ui"
	"github.com/senyabanana/job-bids/internal/views"
)

// app - зависимости, общие для всех команд.
type app struct {
	v *viper.Viper

	out     io.Writer
	logger  *log.Logger
	console *ui.Console
	routes  ui.Routes
	store   *session.Store
	api     *client.Client
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".bidctl", "session.json")
	}
	return filepath.Join(home, ".bidctl", "session.json")
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	a.v.SetDefault("API_URL", "http://localhost:8080")
	a.v.SetDefault("BIDCTL_SESSION", defaultSessionPath())
	a.v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "bidctl",
		Short:         "Job marketplace client",
		Long:          "bidctl signs in to the job marketplace, lists jobs, places bids and moves bids through their lifecycle.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().String("api-url", "", "Marketplace API base URL (overrides API_URL)")
	root.PersistentFlags().String("session", "", "Path to the session file (overrides BIDCTL_SESSION)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Log requests to stderr")
	_ = a.v.BindPFlag("API_URL", root.PersistentFlags().Lookup("api-url"))
	_ = a.v.BindPFlag("BIDCTL_SESSION", root.PersistentFlags().Lookup("session"))
	_ = a.v.BindPFlag("VERBOSE", root.PersistentFlags().Lookup("verbose"))

	root.AddCommand(
		newLoginCmd(a),
		newLogoutCmd(a),
		newJobsCmd(a),
		newJobCmd(a),
		newBidCmd(a),
		newMyBidsCmd(a),
		newBidRequestsCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()
	a.console = ui.NewConsole(a.out)

	a.logger = log.New(io.Discard, "", 0)
	if a.v.GetBool("VERBOSE") {
		a.logger = log.New(cmd.ErrOrStderr(), "INFO: ", log.LstdFlags)
	}

	store, err := session.Open(a.v.GetString("BIDCTL_SESSION"))
	if err != nil {
		return err
	}
	a.store = store

	a.routes = ui.Routes{
		session.LoginPath: func() {
			fmt.Fprintln(a.out, "Signed out. Sign in again with: bidctl login --email <email>")
		},
		submission.MyBidsPath: func() {
			if err := a.showBids(cmd, lifecycle.Bidder); err != nil {
				a.logger.Println(err)
			}
		},
	}

	a.api, err = client.New(a.v.GetString("API_URL"),
		client.WithCredentials(a.store),
		client.WithUnauthorizedHandler(&session.Guard{Store: a.store, Navigator: a.routes, Logger: a.logger}),
		client.WithLogger(a.logger),
	)
	return err
}

func (a *app) email() (string, error) {
	email, err := a.store.Email()
	if err != nil {
		return "", fmt.Errorf("%w: run bidctl login --email <email>", err)
	}
	return email, nil
}

func (a *app) bidTable(role lifecycle.Role) (*views.BidTable, error) {
	email, err := a.email()
	if err != nil {
		return nil, err
	}
	transitioner := lifecycle.NewTransitioner(a.api, a.console, a.logger)
	return views.NewBidTable(role, email, a.api, transitioner), nil
}

func (a *app) showBids(cmd *cobra.Command, role lifecycle.Role) error {
	table, err := a.bidTable(role)
	if err != nil {
		return err
	}
	if err := table.Load(cmd.Context()); err != nil {
		return a.requestError(err)
	}
	return table.Render(a.out)
}

// requestError помечает ошибки, о которых пользователь уже уведомлен.
func (a *app) requestError(err error) error {
	if client.IsUnauthorized(err) {
		return reported(err)
	}
	return err
}
