package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/senyabanana/job-bids/internal/submission"
	"github.com/senyabanana/job-bids/internal/views"
)

func newJobsCmd(a *app) *cobra.Command {
	var categories []string
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List open jobs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, err := a.api.ListJobs(cmd.Context(), categories...)
			if err != nil {
				return a.requestError(err)
			}
			return views.RenderJobs(a.out, jobs)
		},
	}
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Only show jobs in these categories")
	return cmd
}

func newJobCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "job <id>",
		Short: "Show job details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := a.api.GetJob(cmd.Context(), args[0])
			if err != nil {
				return a.requestError(err)
			}
			return views.RenderJob(a.out, *job)
		},
	}
}

func newBidCmd(a *app) *cobra.Command {
	var (
		price    string
		comment  string
		deadline string
	)
	cmd := &cobra.Command{
		Use:   "bid <job-id>",
		Short: "Place a bid on a job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := a.email()
			if err != nil {
				return err
			}
			job, err := a.api.GetJob(cmd.Context(), args[0])
			if err != nil {
				return a.requestError(err)
			}

			form := submission.NewForm(*job)
			form.Price = price
			form.Comment = comment
			if deadline != "" {
				form.Deadline, err = time.Parse(views.DateLayout, deadline)
				if err != nil {
					return fmt.Errorf("deadline must look like %s: %w", views.DateLayout, err)
				}
			}

			workflow := submission.NewWorkflow(a.api, a.console, a.routes, a.logger)
			if _, err := workflow.Submit(cmd.Context(), *job, email, &form); err != nil {
				return reported(err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&price, "price", "", "Offered price")
	cmd.Flags().StringVar(&comment, "comment", "", "Comment for the buyer")
	cmd.Flags().StringVar(&deadline, "deadline", "", "Promised deadline, MM/DD/YYYY (defaults to the job deadline)")
	return cmd
}
