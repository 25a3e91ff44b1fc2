package email_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailkit/pkg/email"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestNewS3Writer_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := map[string]email.S3Config{
		"missing bucket": {Region: "us-east-1"},
		"missing region": {Bucket: "emails"},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := email.NewS3Writer(context.Background(), cfg, email.WithS3Client(&MockS3Client{}))
			assert.ErrorIs(t, err, email.ErrInvalidConfig)
		})
	}
}

func TestS3Writer_Write(t *testing.T) {
	t.Parallel()

	t.Run("uploads under prefix", func(t *testing.T) {
		t.Parallel()

		client := &MockS3Client{}
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			body, _ := io.ReadAll(in.Body)
			return *in.Bucket == "emails" &&
				*in.Key == "builds/welcome-en.html" &&
				*in.ContentType == "text/html; charset=utf-8" &&
				string(body) == "<p>hi</p>"
		}), mock.Anything).Return(&s3.PutObjectOutput{}, nil)

		w, err := email.NewS3Writer(context.Background(),
			email.S3Config{Bucket: "emails", Region: "us-east-1", Prefix: "/builds/"},
			email.WithS3Client(client),
		)
		require.NoError(t, err)

		loc, err := w.Write(context.Background(), "welcome", "en", "<p>hi</p>")
		require.NoError(t, err)
		assert.Equal(t, "s3://emails/builds/welcome-en.html", loc)
		client.AssertExpectations(t)
	})

	t.Run("key without prefix", func(t *testing.T) {
		t.Parallel()

		w, err := email.NewS3Writer(context.Background(),
			email.S3Config{Bucket: "emails", Region: "us-east-1"},
			email.WithS3Client(&MockS3Client{}),
		)
		require.NoError(t, err)
		assert.Equal(t, "account-security-alert-pl.html", w.Key("account-security-alert", "pl"))
	})

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"missing bucket", &types.NoSuchBucket{}, email.ErrBucketNotFound},
		{"access denied", &smithy.GenericAPIError{Code: "AccessDenied"}, email.ErrAccessDenied},
		{"slow down", &smithy.GenericAPIError{Code: "SlowDown"}, email.ErrServiceUnavailable},
		{"deadline", context.DeadlineExceeded, email.ErrOperationTimeout},
		{"other", errors.New("boom"), email.ErrWriteOutput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := &MockS3Client{}
			client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w, err := email.NewS3Writer(context.Background(),
				email.S3Config{Bucket: "emails", Region: "us-east-1"},
				email.WithS3Client(client),
			)
			require.NoError(t, err)

			_, err = w.Write(context.Background(), "welcome", "en", "x")
			assert.ErrorIs(t, err, email.ErrWriteOutput)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
