package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"imageprocessor/internal/domain"
)

type processOutcome struct {
	ImageURL string                    `json:"imageUrl"`
	Response domain.ProcessingResponse `json:"response"`
}

func newProcessCmd(b builders, verbose *bool) *cobra.Command {
	var (
		userID string
		asJSON bool
		noBar  bool
	)

	cmd := &cobra.Command{
		Use:   "process URL...",
		Short: "Fetch, detect and notify for each image URL",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := b.processor(ctx, *verbose)
			if err != nil {
				return fmt.Errorf("build pipeline: %w", err)
			}

			var bar *progressbar.ProgressBar
			if !noBar {
				bar = progressbar.NewOptions(len(args),
					progressbar.OptionSetDescription("processing images"),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionShowCount(),
					progressbar.OptionClearOnFinish(),
				)
			}

			outcomes := make([]processOutcome, 0, len(args))
			failed := 0
			for _, url := range args {
				if err := ctx.Err(); err != nil {
					return err
				}
				resp := p.Process(ctx, domain.ProcessingRequest{ImageURL: url, UserID: userID})
				if !resp.Success {
					failed++
				}
				outcomes = append(outcomes, processOutcome{ImageURL: url, Response: resp})
				if bar != nil {
					_ = bar.Add(1)
				}
			}
			if bar != nil {
				_ = bar.Finish()
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(outcomes); err != nil {
					return err
				}
			} else {
				writeOutcomes(cmd, outcomes)
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d images failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id the notification is addressed to")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print responses as JSON")
	cmd.Flags().BoolVar(&noBar, "no-progress", false, "disable the progress bar")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func writeOutcomes(cmd *cobra.Command, outcomes []processOutcome) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "IMAGE\tSTATUS\tDETECTIONS\tDETAIL")
	for _, o := range outcomes {
		status := "ok"
		detail := ""
		if o.Response.ImageID != nil {
			detail = *o.Response.ImageID
		}
		if !o.Response.Success {
			status = "failed"
			detail = o.Response.Message
		}
		labels := make([]string, 0, len(o.Response.Detections))
		for _, d := range o.Response.Detections {
			labels = append(labels, d.Label)
		}
		fmt.Fprintf(w, "%s\t%s\t%d %s\t%s\n", o.ImageURL, status, len(labels), strings.Join(labels, ","), detail)
	}
	w.Flush()
}
