package receipts

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the part of the S3 client S3Store uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store uploads receipts to an S3 bucket and returns the object URL.
type S3Store struct {
	client PutObjectAPI
	bucket string
	region string
	prefix string
}

var _ Store = (*S3Store)(nil)

// NewS3Store loads AWS credentials the default way (environment, shared
// config, instance role) and targets bucket in region.
func NewS3Store(ctx context.Context, bucket, region, prefix string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewS3StoreWithClient(s3.NewFromConfig(cfg), bucket, region, prefix), nil
}

// NewS3StoreWithClient uses an existing client.
func NewS3StoreWithClient(client PutObjectAPI, bucket, region, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		region: region,
		prefix: strings.Trim(prefix, "/"),
	}
}

func (s *S3Store) Backend() string { return "s3" }

// Upload puts the receipt under prefix/<key>.
func (s *S3Store) Upload(ctx context.Context, r Receipt) (string, error) {
	key, contentType, err := prepare(r)
	if err != nil {
		return "", err
	}
	if s.prefix != "" {
		key = s.prefix + "/" + key
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(r.Data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(r.Data))),
		Metadata:      map[string]string{"original-filename": r.Filename},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload receipt to s3://%s/%s: %w", s.bucket, key, err)
	}
	return s.objectURL(key), nil
}

func (s *S3Store) objectURL(key string) string {
	u := url.URL{
		Scheme: "https",
		Host:   fmt.Sprintf("%s.s3.%s.amazonaws.com", s.bucket, s.region),
		Path:   "/" + key,
	}
	return u.String()
}
