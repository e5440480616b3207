package objectstore

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		Bucket:       "notes",
		Region:       "us-east-1",
		AccessKey:    "minio",
		SecretKey:    "minio123",
		BaseEndpoint: "http://127.0.0.1:9000",
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorIs(t, err, ErrNoBucket)
}

func TestNew_AWSConfigError(t *testing.T) {
	orig := loadDefaultAWSConfig
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no config")
	}
	defer func() { loadDefaultAWSConfig = orig }()

	_, err := New(context.Background(), testConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config")
}

func TestPresignGet_SignsPathStyleURL(t *testing.T) {
	s, err := New(context.Background(), testConfig())
	require.NoError(t, err)

	raw, err := s.PresignGet(context.Background(), "users/u-1/exports/a.json", 15*time.Minute)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", u.Host)
	assert.Equal(t, "/notes/users/u-1/exports/a.json", u.Path)
	assert.Equal(t, "900", u.Query().Get("X-Amz-Expires"))
	assert.True(t, strings.HasPrefix(u.Query().Get("X-Amz-Credential"), "minio/"))
}

func TestPresignGet_Error(t *testing.T) {
	orig := presignGetObject
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return nil, errors.New("presign failed")
	}
	defer func() { presignGetObject = orig }()

	s, err := New(context.Background(), testConfig())
	require.NoError(t, err)

	_, err = s.PresignGet(context.Background(), "k", time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "presign failed")
}

func TestPut(t *testing.T) {
	var gotKey, gotType, gotBody string

	orig := putObject
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotKey = aws.ToString(in.Key)
		gotType = aws.ToString(in.ContentType)
		b, _ := io.ReadAll(in.Body)
		gotBody = string(b)
		if aws.ToString(in.Bucket) != "notes" {
			return nil, errors.New("wrong bucket")
		}
		return &s3.PutObjectOutput{}, nil
	}
	defer func() { putObject = orig }()

	s, err := New(context.Background(), testConfig())
	require.NoError(t, err)

	require.NoError(t, s.Put(context.Background(), "k1", []byte(`{"a":1}`), "application/json"))
	assert.Equal(t, "k1", gotKey)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, `{"a":1}`, gotBody)
}

func TestPut_Error(t *testing.T) {
	orig := putObject
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("access denied")
	}
	defer func() { putObject = orig }()

	s, err := New(context.Background(), testConfig())
	require.NoError(t, err)

	err = s.Put(context.Background(), "k1", nil, "application/json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}
