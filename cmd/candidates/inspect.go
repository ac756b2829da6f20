package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/candidates/internal/core"
	"github.com/JonMunkholm/candidates/internal/sheet"
)

// inspectOutput is the --json form of inspect.
type inspectOutput struct {
	File     string         `json:"file"`
	Format   string         `json:"format"`
	Rows     int            `json:"rows"`
	Analysis *core.Analysis `json:"analysis,omitempty"`
	Error    *errorOutput   `json:"error,omitempty"`
}

type errorOutput struct {
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
	Detail  string `json:"detail"`
}

func newInspectCommand() *cobra.Command {
	var asJSON, strict bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show which row and columns a file's candidate record comes from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			policy := core.FallbackLastRow
			if strict {
				policy = core.StrictSelection
			}

			grid, format, err := sheet.DecodeAuto(data)
			if err != nil {
				if asJSON {
					_ = writeJSON(cmd, inspectOutput{File: filepath.Base(path), Format: format.String(), Error: errorFor(err)})
				}
				return userFacing(err)
			}

			analysis, analyzeErr := core.Analyze(grid, policy)
			if asJSON {
				out := inspectOutput{
					File:     filepath.Base(path),
					Format:   format.String(),
					Rows:     len(grid),
					Analysis: &analysis,
				}
				if analyzeErr != nil {
					out.Error = errorFor(analyzeErr)
				}
				if err := writeJSON(cmd, out); err != nil {
					return err
				}
				return userFacing(analyzeErr)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s (%s, %d rows)\n", filepath.Base(path), format, len(grid))
			fmt.Fprintln(w, renderGrid(grid, analysis))
			if analyzeErr != nil {
				return userFacing(analyzeErr)
			}

			if analysis.Fallback {
				fmt.Fprintln(w, "No row looked like candidate data; used the last row.")
			}
			fmt.Fprintln(w, renderTable(
				[]string{"Field", "Column", "Value"},
				[][]string{
					{core.FieldSeniority, columnName(analysis.Indices.Seniority), string(analysis.Record.Seniority)},
					{core.FieldYearsOfExperience, columnName(analysis.Indices.YearsOfExperience), strconv.Itoa(analysis.Record.YearsOfExperience)},
					{core.FieldAvailability, columnName(analysis.Indices.Availability), strconv.FormatBool(analysis.Record.Availability)},
				},
				nil,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the analysis as JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail instead of falling back to the last row")
	return cmd
}

// renderGrid prints the decoded rows with the selected one marked.
func renderGrid(grid sheet.Grid, analysis core.Analysis) string {
	width := grid.Width()
	headers := make([]string, width+2)
	headers[0], headers[1] = "", "Row"
	for i := 0; i < width; i++ {
		headers[i+2] = columnName(i)
	}

	rows := make([][]string, 0, len(grid))
	for i, row := range grid {
		marker := ""
		if i == analysis.RowIndex {
			marker = "▶"
		}
		rows = append(rows, append([]string{marker, strconv.Itoa(i + 1)}, row.Strings()...))
	}
	return renderTable(headers, rows, []columnAlignment{alignLeft, alignRight})
}

// columnName returns the spreadsheet letter for a zero-based column index.
func columnName(idx int) string {
	name := ""
	for n := idx + 1; n > 0; n = (n - 1) / 26 {
		name = string(rune('A'+(n-1)%26)) + name
	}
	return name
}

func errorFor(err error) *errorOutput {
	userErr := core.NewUserError(err)
	return &errorOutput{
		Message: userErr.User.Message,
		Action:  userErr.User.Action,
		Code:    userErr.User.Code,
		Detail:  userErr.Technical.Error(),
	}
}
