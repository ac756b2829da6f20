package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/candidates/internal/core"
	"github.com/JonMunkholm/candidates/internal/sheet"
	"github.com/JonMunkholm/candidates/internal/store"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var name, surname string
	var strict, asJSON bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Store the candidate recovered from FILE",
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

			return ctx.withStore(cmd.Context(), func(db store.Store) error {
				svc := core.NewService(db, core.ServiceOptions{Policy: policy})
				cand, err := svc.CreateFromUpload(cmd.Context(), core.UploadRequest{
					Name:        name,
					Surname:     surname,
					FileName:    filepath.Base(path),
					ContentType: mediaTypeFor(path, data),
					Data:        data,
				})
				if err != nil {
					return userFacing(err)
				}
				if asJSON {
					return writeJSON(cmd, cand)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderCandidates([]core.Candidate{*cand}))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Candidate name (required)")
	cmd.Flags().StringVar(&surname, "surname", "", "Candidate surname (required)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail instead of falling back to the last row")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the stored candidate as JSON")
	return cmd
}

// mediaTypeFor stands in for the Content-Type a browser would send: the
// extension when it is known, else the sniffed format.
func mediaTypeFor(path string, data []byte) string {
	if mt := sheet.MediaTypeFromFileName(path); sheet.IsAllowedMediaType(mt) {
		return mt
	}
	switch format, _ := sheet.DetectFormat(data); format {
	case sheet.FormatXLSX:
		return sheet.MediaTypeXLSX
	case sheet.FormatCSV:
		return sheet.MediaTypeCSV
	}
	return "application/octet-stream"
}

// withStore opens and migrates the database named by --db for fn.
func (c *commandContext) withStore(ctx context.Context, fn func(store.Store) error) error {
	if c.dbURL == "" {
		return errors.New("no database: set --db or DATABASE_URL")
	}
	db, err := store.Open(ctx, c.dbURL, store.PoolOptions{MaxConns: 2})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}
	return fn(db)
}
