package root

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"habitquest/internal/storage"
	"habitquest/internal/ui"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write habits and profile as JSON (stdout when no file)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			snap, err := svc.Export(ctx)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return storage.WriteSnapshot(cmd.OutOrStdout(), snap)
			}

			if err := writeExportFile(args[0], snap); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Exported %d habits to %s\n", ui.IconDone, len(snap.Habits), args[0])
			return nil
		},
	}
	return cmd
}

// writeExportFile encodes snap in memory and swaps it into path, so a failed
// encode never touches an earlier export.
func writeExportFile(path string, snap storage.Snapshot) error {
	var buf bytes.Buffer
	if err := storage.WriteSnapshot(&buf, snap); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create export: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace export: %w", err)
	}
	return nil
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace all habits (and the profile, if present) from a JSON export",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("file is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import: %w", err)
			}
			defer f.Close()

			snap, err := storage.ReadSnapshot(f)
			if err != nil {
				return err
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			n, err := svc.Import(ctx, snap)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Imported %d habits\n", ui.IconDone, n)
			return nil
		},
	}
	return cmd
}
