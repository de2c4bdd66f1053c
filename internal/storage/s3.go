package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"tt-go/internal/tt"
)

// S3Options configures an S3Store.
type S3Options struct {
	Bucket string
	// Prefix is prepended to every object key, e.g. "prod".
	Prefix string
	Region string
	// Endpoint points the client at an S3-compatible service and switches
	// to path-style addressing.
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

type s3Client interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type s3Uploader interface {
	Upload(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Store stores objects in one bucket under <prefix>/<container>/<key>.
type S3Store struct {
	client   s3Client
	uploader s3Uploader
	opts     S3Options
}

var _ tt.ObjectStore = (*S3Store)(nil)

// NewS3Store builds a client from the SDK's default configuration chain,
// overridden by any region, endpoint or static credentials in opts.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 store requires a bucket")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Store(client, manager.NewUploader(client), opts), nil
}

func newS3Store(client s3Client, uploader s3Uploader, opts S3Options) *S3Store {
	return &S3Store{client: client, uploader: uploader, opts: opts}
}

func (s *S3Store) objectKey(container, key string) string {
	return path.Join(strings.Trim(s.opts.Prefix, "/"), container, key)
}

func (s *S3Store) Upload(ctx context.Context, container, key string, r io.Reader, size int64, contentType string) (string, error) {
	if err := checkAddress(container, key); err != nil {
		return "", err
	}
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(s.objectKey(container, key)),
		Body:   r,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	out, err := s.uploader.Upload(ctx, in)
	if err != nil {
		return "", fmt.Errorf("uploading s3://%s/%s: %w", s.opts.Bucket, *in.Key, err)
	}
	if s.opts.PublicBaseURL != "" {
		return publicURL(s.opts.PublicBaseURL, container, key), nil
	}
	return out.Location, nil
}

func (s *S3Store) Download(ctx context.Context, container, key string, w io.Writer) error {
	if err := checkAddress(container, key); err != nil {
		return err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(s.objectKey(container, key)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return fmt.Errorf("%s/%s: %w", container, key, ErrNotFound)
		}
		return fmt.Errorf("getting object: %w", err)
	}
	defer out.Body.Close()

	if _, err := io.Copy(w, out.Body); err != nil {
		return fmt.Errorf("reading object: %w", err)
	}
	return nil
}

// Delete removes the object. S3 treats deleting a missing key as success.
func (s *S3Store) Delete(ctx context.Context, container, key string) error {
	if err := checkAddress(container, key); err != nil {
		return err
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(s.objectKey(container, key)),
	})
	if err != nil {
		return fmt.Errorf("deleting object: %w", err)
	}
	return nil
}

// ValidateSetup checks that the bucket exists and the credentials can reach it.
func (s *S3Store) ValidateSetup(ctx context.Context) error {
	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.opts.Bucket)}); err != nil {
		return fmt.Errorf("checking bucket %s: %w", s.opts.Bucket, err)
	}
	return nil
}
