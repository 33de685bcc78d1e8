package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deppfellow/shoppingcart/internal/lib/email"
	"github.com/spf13/cobra"
)

var emailPreviewDir string

// emailPreviewCmd renders every email template with sample data.
var emailPreviewCmd = &cobra.Command{
	Use:   "email-preview",
	Short: "Render the email templates to HTML files",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(emailPreviewDir, 0o755); err != nil {
			return err
		}

		for name, data := range email.PreviewData {
			html, err := email.Render(name, data)
			if err != nil {
				return fmt.Errorf("render %s: %w", name, err)
			}

			path := filepath.Join(emailPreviewDir, string(name)+".html")
			if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

func init() {
	emailPreviewCmd.Flags().StringVarP(&emailPreviewDir, "out", "o", "tmp/email-preview", "output directory")
}
