package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/senyabanana/job-bids/internal/lifecycle"
	"github.com/senyabanana/job-bids/internal/models"
	"github.com/senyabanana/job-bids/internal/views"
)

func newMyBidsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "my-bids",
		Short: "List bids you placed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.showBids(cmd, lifecycle.Bidder)
		},
	}
	cmd.AddCommand(newStatusCmd(a, lifecycle.Bidder, "complete", models.Completed))
	return cmd
}

func newBidRequestsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bid-requests",
		Short: "List bids placed on your jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.showBids(cmd, lifecycle.Buyer)
		},
	}
	cmd.AddCommand(
		newStatusCmd(a, lifecycle.Buyer, "accept", models.InProgress),
		newStatusCmd(a, lifecycle.Buyer, "reject", models.Rejected),
	)
	return cmd
}

// newStatusCmd - команда кнопки действия в таблице предложений.
func newStatusCmd(a *app, role lifecycle.Role, use string, target models.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <bid-id>",
		Short: "Move a bid to " + string(target),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.bidTable(role)
			if err != nil {
				return err
			}
			if err := table.Load(cmd.Context()); err != nil {
				return a.requestError(err)
			}

			// Запрещенный переход только логируется, как и в таблицах.
			// Ошибки сервера уже показал Transitioner.
			err = table.ChangeStatus(cmd.Context(), args[0], target)
			switch {
			case errors.Is(err, views.ErrBidNotFound):
				return err
			case err != nil:
				return reported(err)
			}
			return table.Render(a.out)
		},
	}
}
