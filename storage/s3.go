// Package storage holds report stores backed by remote object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/lugatuic/domainreport/export"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Store writes reports to an S3 bucket (or a compatible API) under a key prefix.
type S3Store struct {
	uploader uploader
	bucket   string
	prefix   string
}

// NewS3Client builds an S3 client from the default AWS credential chain.
// A non-empty endpoint switches to path-style addressing for S3-compatible
// services.
func NewS3Client(ctx context.Context, region, endpoint string) (*s3.Client, error) {
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return newS3Store(manager.NewUploader(client), bucket, prefix)
}

func newS3Store(u uploader, bucket, prefix string) *S3Store {
	return &S3Store{
		uploader: u,
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
	}
}

// Store uploads data as prefix/filename, replacing any existing object.
func (s *S3Store) Store(ctx context.Context, data []byte, filename string) (export.Reference, error) {
	if s.bucket == "" {
		return export.Reference{}, &export.StorageError{Op: "upload", Path: filename, Err: fmt.Errorf("storage bucket is required")}
	}

	key := filename
	if s.prefix != "" {
		key = path.Join(s.prefix, filename)
	}
	location := fmt.Sprintf("s3://%s/%s", s.bucket, key)

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(xlsxContentType),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return export.Reference{}, &export.StorageError{Op: "upload", Path: location, Err: err}
	}

	return export.Reference{Dir: s.prefix, Filename: filename, Location: location}, nil
}

var _ export.ReportStore = (*S3Store)(nil)
