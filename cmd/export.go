package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/grindboard/practice-service/internal/services"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the practice log to an xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		ctx := cmd.Context()

		outputPath, _ := cmd.Flags().GetString("output")
		if outputPath == "" {
			outputPath = defaultExportFilename()
		}

		query := services.ListQuery{}
		query.Company, _ = cmd.Flags().GetString("company")
		query.Topic, _ = cmd.Flags().GetString("topic")
		query.Difficulty, _ = cmd.Flags().GetString("difficulty")
		query.Result, _ = cmd.Flags().GetString("result")

		app, err := newApplication(ctx, os.Stderr)
		if err != nil {
			return err
		}
		defer app.Close(ctx)

		writer := cmd.OutOrStdout()
		if outputPath != "-" {
			if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			file, openErr := os.Create(outputPath)
			if openErr != nil {
				return fmt.Errorf("failed to create export file: %w", openErr)
			}
			defer func() {
				if cerr := file.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}()
			writer = file
		}

		if err := app.services.Export().WriteWorkbook(ctx, writer, query); err != nil {
			return fmt.Errorf("failed to export attempts: %w", err)
		}

		if outputPath != "-" {
			cmd.PrintErrf("Export written to %s\n", outputPath)
		}
		return nil
	},
}

func defaultExportFilename() string {
	return fmt.Sprintf("practice-export-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "output file, - for stdout")
	exportCmd.Flags().String("company", "", "only attempts on questions asked by these companies (comma-separated)")
	exportCmd.Flags().String("topic", "", "only attempts on questions with these topics (comma-separated)")
	exportCmd.Flags().String("difficulty", "", "only attempts on questions of this difficulty")
	exportCmd.Flags().String("result", "", "only attempts with this result")
}
