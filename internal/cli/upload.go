package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	appsvc "insight-console/internal/app"
	"insight-console/internal/region"
)

func newUploadCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "upload [file]",
		Short: "Upload a document and print its summary",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := opts.load()
			if err != nil {
				return err
			}

			upload := appsvc.Upload{WorkspaceID: "cli"}
			if len(args) == 1 {
				f, err := openRegular(args[0])
				if err != nil {
					return fmt.Errorf("%s: %w", appsvc.NoFileNotice, err)
				}
				defer f.Close()
				upload.Filename = filepath.Base(args[0])
				upload.Content = f
			}

			handler := appsvc.NewUploadHandler(d.client, d.view, nil)
			err = handler.Submit(cmd.Context(), region.NewWriter(cmd.OutOrStdout()), upload)
			if errors.Is(err, appsvc.ErrNoFileSelected) {
				return fmt.Errorf("%s", appsvc.NoFileNotice)
			}
			return err
		},
	}
}

func openRegular(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return os.Open(path)
}
