package export

import (
	"context"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

func (e *Exporter) uploadGCS(ctx context.Context, f *os.File, t Target) error {
	var opts []option.ClientOption
	if e.cfg.GCS.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(e.cfg.GCS.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return fmt.Errorf("storage.NewClient: %w", err)
	}
	defer client.Close()

	wc := client.Bucket(t.Host).Object(t.Path).NewWriter(ctx)
	wc.ContentType = "video/mp4"

	if _, err := io.Copy(wc, f); err != nil {
		_ = wc.Close()
		return fmt.Errorf("upload %s to bucket %s: %w", t.Path, t.Host, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("finalize %s in bucket %s: %w", t.Path, t.Host, err)
	}
	return nil
}
