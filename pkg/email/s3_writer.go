package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of the S3 API used by S3Writer.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Writer mirrors generated documents into an S3 bucket under the same
// file name the local writer uses, optionally below a key prefix.
// It is safe for concurrent use.
type S3Writer struct {
	client        S3Client
	bucket        string
	prefix        string
	uploadTimeout time.Duration
}

// S3Option configures S3Writer.
type S3Option func(*s3Options)

type s3Options struct {
	httpClient      *http.Client
	s3Client        S3Client
	s3ConfigOptions []func(*config.LoadOptions) error
	s3ClientOptions []func(*s3.Options)
	uploadTimeout   time.Duration
}

// WithS3Client sets a pre-configured client. Useful for testing with mocks.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) {
		o.s3Client = client
	}
}

// WithS3HTTPClient sets the HTTP client used for S3 requests.
func WithS3HTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) {
		o.httpClient = client
	}
}

// WithS3ConfigOption adds an AWS config load option.
func WithS3ConfigOption(option func(*config.LoadOptions) error) S3Option {
	return func(o *s3Options) {
		o.s3ConfigOptions = append(o.s3ConfigOptions, option)
	}
}

// WithS3ClientOption adds an S3 client option.
func WithS3ClientOption(option func(*s3.Options)) S3Option {
	return func(o *s3Options) {
		o.s3ClientOptions = append(o.s3ClientOptions, option)
	}
}

// WithS3UploadTimeout bounds each upload. Zero leaves the caller's deadline in charge.
func WithS3UploadTimeout(timeout time.Duration) S3Option {
	return func(o *s3Options) {
		o.uploadTimeout = timeout
	}
}

// NewS3Writer creates a mirror writer for cfg.Bucket.
func NewS3Writer(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Writer, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: s3 bucket is required", ErrInvalidConfig)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: s3 region is required", ErrInvalidConfig)
	}

	options := &s3Options{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.s3Client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretAccessKey,
					"",
				)),
			)
		}
		if options.httpClient != nil {
			awsOptions = append(awsOptions, config.WithHTTPClient(options.httpClient))
		}
		awsOptions = append(awsOptions, options.s3ConfigOptions...)

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("%w: load aws config: %v", ErrInvalidConfig, err)
		}

		client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
			for _, opt := range options.s3ClientOptions {
				opt(o)
			}
		})
	}

	return &S3Writer{
		client:        client,
		bucket:        cfg.Bucket,
		prefix:        strings.Trim(cfg.Prefix, "/"),
		uploadTimeout: options.uploadTimeout,
	}, nil
}

// Key returns the object key of a document.
func (w *S3Writer) Key(slug, lang string) string {
	if w.prefix == "" {
		return FileName(slug, lang)
	}
	return path.Join(w.prefix, FileName(slug, lang))
}

// Write uploads the document and returns its s3:// location.
func (w *S3Writer) Write(ctx context.Context, slug, lang, html string) (string, error) {
	if w.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.uploadTimeout)
		defer cancel()
	}

	key := w.Key(slug, lang)
	_, err := w.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(w.bucket),
		Key:          aws.String(key),
		Body:         strings.NewReader(html),
		ContentType:  aws.String("text/html; charset=utf-8"),
		CacheControl: aws.String("no-cache"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrWriteOutput, key, classifyS3Error(err))
	}
	return "s3://" + w.bucket + "/" + key, nil
}

func classifyS3Error(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrOperationTimeout
	}
	if errors.Is(err, context.Canceled) {
		return ErrOperationCanceled
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return ErrBucketNotFound
		case "AccessDenied":
			return ErrAccessDenied
		case "SlowDown", "ServiceUnavailable":
			return ErrServiceUnavailable
		case "RequestTimeout":
			return ErrOperationTimeout
		}
	}
	return err
}
