package input

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const objectScheme = "s3://"

// ObjectGetter is the subset of the S3 client used to stream objects.
// *s3.Client satisfies it.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// splitObjectURL splits "s3://bucket/key/with/slashes" into bucket and key.
func splitObjectURL(location string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(location, objectScheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q (want s3://bucket/key)", ErrInvalidLocation, location)
	}
	return bucket, key, nil
}

func openObject(ctx context.Context, location string, cfg *config) (io.ReadCloser, error) {
	bucket, key, err := splitObjectURL(location)
	if err != nil {
		return nil, err
	}

	getter := cfg.objects
	if getter == nil {
		getter, err = newObjectClient(ctx, cfg.region)
		if err != nil {
			return nil, err
		}
	}

	out, err := getter.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noKey) || errors.As(err, &noBucket) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
		}
		return nil, fmt.Errorf("failed to get %s: %w", location, err)
	}
	return out.Body, nil
}

// newObjectClient builds an S3 client from the default AWS configuration
// chain (environment, shared config, instance role).
func newObjectClient(ctx context.Context, region string) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	if awsCfg.Region == "" {
		awsCfg.Region = "us-east-1"
	}
	return s3.NewFromConfig(awsCfg), nil
}
