package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"tutorai-be/pkg/tutor/workspace"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file.pdf>",
		Short: "Extract a PDF and use its text as context for later questions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			ws, closeFn, err := openWorkspace(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			contentType := workspace.PDFMimeType
			if filepath.Ext(args[0]) != ".pdf" {
				contentType = "application/octet-stream"
			}

			pdf, err := ws.UploadPDF(cmd.Context(), filepath.Base(args[0]), contentType, data)
			if err != nil {
				return fmt.Errorf("upload %s: %w", args[0], err)
			}
			color.Magenta("Loaded %s: %d pages, %d characters", pdf.Filename, pdf.Pages, len(pdf.Text))
			return nil
		},
	}
}
