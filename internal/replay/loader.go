package replay

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/tooltip/internal/errors"
)

// maxScriptSize bounds how much of an object is read.
const maxScriptSize = 1 << 20

// ObjectGetter is the subset of the S3 client the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Loader reads scripts from disk or S3.
type Loader struct {
	// S3 serves s3:// sources. Nil makes them fail.
	S3 ObjectGetter
}

// S3Options configures NewS3Client.
type S3Options struct {
	Region string

	// Endpoint overrides the service endpoint, for S3-compatible stores.
	// Path-style addressing is used when it is set.
	Endpoint string
}

// NewS3Client builds an S3 client with credentials from the standard
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN
// variables.
func NewS3Client(opts S3Options) *s3.Client {
	region := opts.Region
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}

	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(envCredentials{}),
	}, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
}

type envCredentials struct{}

func (envCredentials) Retrieve(context.Context) (aws.Credentials, error) {
	return aws.Credentials{
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}, nil
}

// Load reads and parses the script at src, a file path or s3://bucket/key.
func (l Loader) Load(ctx context.Context, src string) (*Script, error) {
	var (
		data []byte
		err  error
	)
	if bucket, key, ok := ParseS3URL(src); ok {
		data, err = l.fetch(ctx, bucket, key)
	} else {
		data, err = os.ReadFile(src)
		if err != nil {
			code := "T031"
			if os.IsNotExist(err) {
				code = "T030"
			}
			err = errors.New(code).Wrap(err)
		}
	}
	if err != nil {
		return nil, errors.FromError(err, "T031").WithSource(src)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, errors.FromError(err, "T031").WithSource(src)
	}
	return s, nil
}

func (l Loader) fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	if l.S3 == nil {
		return nil, errors.New("T033").WithSuggestion("Configure replay.region in tooltip.json")
	}
	out, err := l.S3.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.New("T033").Wrap(err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(io.LimitReader(out.Body, maxScriptSize))
	if err != nil {
		return nil, errors.New("T033").Wrap(err)
	}
	return data, nil
}

// ParseS3URL splits s3://bucket/key. It reports false for anything else,
// including URLs without a key.
func ParseS3URL(src string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(src, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}
