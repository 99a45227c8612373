package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/heiftools/heicbridge/cli/render"
	"github.com/heiftools/heicbridge/upload"
)

// UploadResult is the response for the upload command.
type UploadResult struct {
	Name      string `json:"name"`
	Subfolder string `json:"subfolder"`
	Annotated string `json:"annotated"`
}

// UploadCommand returns the upload command.
// Upload sends a single file to the host server's storage endpoint and
// prints the stored reference, the same path dropped files take.
func UploadCommand() *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Upload a file to the host server's storage endpoint",
		ArgsUsage: "<file>",
		Flags:     ReadOnlyFlags(),
		Action:    uploadAction,
	}
}

func uploadAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("file path required", 1)
	}
	path := c.Args().First()

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	client, err := cfg.UploadClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ref, err := client.Upload(c.Context, filepath.Base(path), f)
	if err != nil {
		var uploadErr *upload.UploadError
		if errors.As(err, &uploadErr) {
			return cli.Exit(fmt.Sprintf("upload rejected: %v", uploadErr), 1)
		}
		return fmt.Errorf("upload failed: %w", err)
	}

	return r.Render(UploadResult{
		Name:      ref.Filename,
		Subfolder: ref.Subfolder,
		Annotated: ref.Annotated(),
	})
}
