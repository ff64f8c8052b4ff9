package export

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func (e *Exporter) s3Client() *s3.Client {
	c := e.cfg.S3
	opts := s3.Options{
		Region:      c.Region,
		Credentials: credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, ""),
	}
	if c.Endpoint != "" {
		// S3 compatible stores (MinIO, R2) want path-style addressing
		opts.BaseEndpoint = aws.String(c.Endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

func (e *Exporter) uploadS3(ctx context.Context, f *os.File, t Target) error {
	uploader := manager.NewUploader(e.s3Client())
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(t.Host),
		Key:         aws.String(t.Path),
		Body:        f,
		ContentType: aws.String("video/mp4"),
	})
	if err != nil {
		return fmt.Errorf("upload %s to bucket %s: %w", t.Path, t.Host, err)
	}
	return nil
}
