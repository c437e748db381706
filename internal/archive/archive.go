// Package archive keeps a copy of every raw provider response in object storage.
package archive

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/pageza/mealmind/backend/config"
)

// Kinds of archived responses, used as the key prefix
const (
	KindRecommendations = "recommendations"
	KindPlan            = "plans"
	KindPlanDay         = "plan-days"
	KindShoppingList    = "shopping-lists"
)

// Archiver stores raw response text. Failures never reach the caller.
type Archiver interface {
	Store(ctx context.Context, kind, id, raw string)
}

// ObjectPutter is the subset of the S3 client used for uploads
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver uploads responses to <prefix>/<kind>/<id>.json
type S3Archiver struct {
	client ObjectPutter
	bucket string
	prefix string
	logger *zap.Logger
}

// New returns an S3 archiver, or Noop when storage is not configured.
func New(cfg *config.S3Config, logger *zap.Logger) Archiver {
	if cfg == nil || cfg.Client == nil {
		return Noop{}
	}
	return NewS3Archiver(cfg.Client, cfg.BucketName, cfg.Prefix, logger)
}

func NewS3Archiver(client ObjectPutter, bucket, prefix string, logger *zap.Logger) *S3Archiver {
	return &S3Archiver{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		logger: logger,
	}
}

// Key is the object key for one archived response.
func (a *S3Archiver) Key(kind, id string) string {
	return path.Join(a.prefix, kind, id+".json")
}

func (a *S3Archiver) Store(ctx context.Context, kind, id, raw string) {
	key := a.Key(kind, id)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(raw),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		a.logger.Warn("failed to archive raw response",
			zap.String("key", key),
			zap.Error(fmt.Errorf("failed to upload to S3: %w", err)))
		return
	}
	a.logger.Debug("archived raw response", zap.String("bucket", a.bucket), zap.String("key", key))
}

// Noop discards everything
type Noop struct{}

func (Noop) Store(context.Context, string, string, string) {}
