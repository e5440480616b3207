package cli

import (
	"context"
	"fmt"
	"net/http"
	"path"

	"github.com/dmitrijs2005/notebook/internal/filex"
	"github.com/dmitrijs2005/notebook/internal/netx"
)

func presignedDownloader(client *http.Client) func(ctx context.Context, url string) ([]byte, error) {
	return func(ctx context.Context, url string) ([]byte, error) {
		return netx.DownloadPresignedURL(ctx, client, url)
	}
}

// Export asks the server for an archive and saves it under the export dir.
func (a *App) Export(ctx context.Context) error {
	exp, err := a.api.Export(ctx)
	if err != nil {
		return err
	}

	data, err := a.download(ctx, exp.URL)
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	p, err := filex.SaveInSubdDir(a.config.ExportDir, path.Base(exp.Key), data)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported %d notes to %s\n", exp.Count, p)
	return nil
}
