package s3

import (
	"context"
	"fmt"
	"io"
	"path"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/parts-atlas/pkg/store/csv"
	"github.com/de-tools/parts-atlas/pkg/store/dataset"
)

const (
	DefaultRegion = "us-east-1" // Default region if not specified in AWS profile
)

// ObjectGetter is the subset of the S3 client used to fetch table files.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Opener serves table files stored as "<prefix>/<table>.csv" objects in a bucket.
type Opener struct {
	client ObjectGetter
	bucket string
	prefix string
}

func NewOpener(client ObjectGetter, bucket, prefix string) *Opener {
	return &Opener{client: client, bucket: bucket, prefix: prefix}
}

func (o *Opener) Key(name string) string {
	if o.prefix == "" {
		return name
	}
	return path.Join(o.prefix, name)
}

func (o *Opener) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	key := o.Key(name)
	out, err := o.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: awssdk.String(o.bucket),
		Key:    awssdk.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", o.bucket, key, err)
	}
	return out.Body, nil
}

func LoadConfig(ctx context.Context, profile, region string) (*awssdk.Config, error) {
	if region == "" {
		region = DefaultRegion
	}
	opts := []func(*config.LoadOptions) error{config.WithDefaultRegion(region)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return &awsCfg, nil
}

// NewLoader returns a dataset loader reading CSV tables from S3.
func NewLoader(ctx context.Context, bucket, prefix, profile, region string) (dataset.Loader, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	cfg, err := LoadConfig(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return csv.NewLoader(NewOpener(s3.NewFromConfig(*cfg), bucket, prefix)), nil
}
