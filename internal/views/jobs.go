package views

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/senyabanana/job-bids/internal/models"
)

// RenderJobs печатает список заказов.
func RenderJobs(w io.Writer, jobs []models.Job) error {
	if len(jobs) == 0 {
		_, err := fmt.Fprintln(w, "No jobs found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tDEADLINE\tRANGE\tBUYER")
	for _, job := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s - %s\t%s\n",
			job.ID,
			job.Title,
			job.Category,
			job.Deadline.Format(DateLayout),
			FormatPrice(job.MinPrice),
			FormatPrice(job.MaxPrice),
			job.Buyer.Email,
		)
	}
	return tw.Flush()
}

// RenderJob печатает карточку заказа.
func RenderJob(w io.Writer, job models.Job) error {
	var b strings.Builder
	bold := color.New(color.Bold)

	fmt.Fprintf(&b, "Deadline: %s    [%s]\n", job.Deadline.Format(DateLayout), strings.ToUpper(job.Category))
	fmt.Fprintf(&b, "%s\n", bold.Sprint(job.Title))
	if job.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", job.Description)
	}
	fmt.Fprintf(&b, "\n%s\n", bold.Sprint("Buyer Details:"))
	fmt.Fprintf(&b, "  Name:  %s\n", job.Buyer.Name)
	fmt.Fprintf(&b, "  Email: %s\n", job.Buyer.Email)
	if job.Buyer.Photo != "" {
		fmt.Fprintf(&b, "  Photo: %s\n", job.Buyer.Photo)
	}
	fmt.Fprintf(&b, "\nRange: %s - %s\n", FormatPrice(job.MinPrice), FormatPrice(job.MaxPrice))

	_, err := io.WriteString(w, b.String())
	return err
}
