package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/candidates/internal/core"
	"github.com/JonMunkholm/candidates/internal/store"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored candidates, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(cmd.Context(), func(db store.Store) error {
				cands, err := core.NewService(db, core.ServiceOptions{}).List(cmd.Context())
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, cands)
				}
				if len(cands) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No candidates stored")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderCandidates(cands))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print candidates as JSON")
	return cmd
}

func renderCandidates(cands []core.Candidate) string {
	rows := make([][]string, 0, len(cands))
	for _, c := range cands {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			c.Surname,
			string(c.Seniority),
			strconv.Itoa(c.YearsOfExperience),
			strconv.FormatBool(c.Availability),
			c.SourceFile,
			c.CreatedAt.Local().Format(time.DateTime),
		})
	}
	return renderTable(
		[]string{"ID", "Name", "Surname", "Seniority", "Years", "Available", "File", "Created"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
	)
}
