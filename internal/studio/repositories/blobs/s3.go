package blobs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/artkeeper/internal/common"
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
)

// S3Options configures the S3-backed blob repository. BaseEndpoint supports
// MinIO and other S3-compatible servers.
type S3Options struct {
	Region       string
	Bucket       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
}

// S3Repository keeps payloads as bucket objects keyed by entity id, with the
// MIME type carried in the object Content-Type. Batch operations fan out
// concurrently; note that PutMany/DeleteMany over S3 are only best-effort
// approximations of a transaction since S3 has no multi-object commit.
type S3Repository struct {
	client *s3.Client
	bucket string
}

const s3BatchConcurrency = 8

func NewS3Repository(ctx context.Context, opts S3Options) (*S3Repository, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Repository{client: client, bucket: opts.Bucket}, nil
}

func (r *S3Repository) Put(ctx context.Context, id string, payload models.Payload) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &r.bucket,
		Key:         &id,
		Body:        bytes.NewReader(payload.Data),
		ContentType: &payload.MimeType,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to upload blob %s: %v", common.ErrStorageFailure, id, err)
	}
	return nil
}

func (r *S3Repository) PutMany(ctx context.Context, entries map[string]models.Payload) error {
	g := errgroup.Group{}
	g.SetLimit(s3BatchConcurrency)
	for id, payload := range entries {
		g.Go(func() error {
			return r.Put(ctx, id, payload)
		})
	}
	return g.Wait()
}

func (r *S3Repository) Get(ctx context.Context, id string) (*models.Payload, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: &r.bucket,
		Key:    &id,
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: failed to get blob %s: %v", common.ErrStorageFailure, id, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read blob %s: %v", common.ErrStorageFailure, id, err)
	}

	p := models.Payload{Data: data}
	if out.ContentType != nil {
		p.MimeType = *out.ContentType
	}
	return &p, nil
}

func (r *S3Repository) GetMany(ctx context.Context, ids []string) (map[string]models.Payload, error) {
	var (
		mu     sync.Mutex
		result = make(map[string]models.Payload, len(ids))
	)

	g := errgroup.Group{}
	g.SetLimit(s3BatchConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			p, err := r.Get(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return nil
			}
			mu.Lock()
			result[id] = *p
			mu.Unlock()
			return nil
		})
	}

	// Partial results are returned alongside the first error so callers can
	// degrade instead of failing hard.
	err := g.Wait()
	return result, err
}

func (r *S3Repository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &r.bucket,
		Key:    &id,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to delete blob %s: %v", common.ErrStorageFailure, id, err)
	}
	return nil
}

func (r *S3Repository) DeleteMany(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(ids))
	for _, id := range ids {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(id)})
	}

	_, err := r.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: &r.bucket,
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("%w: failed to delete blob batch: %v", common.ErrStorageFailure, err)
	}
	return nil
}
