package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newDetectCmd(b builders, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "detect FILE",
		Short: "Run the configured detector on a local image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			det, err := b.detector(cmd.Context(), *verbose)
			if err != nil {
				return fmt.Errorf("build detector: %w", err)
			}
			detections, err := det.Detect(cmd.Context(), data)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(detections)
		},
	}
}
