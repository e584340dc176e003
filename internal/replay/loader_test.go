package replay

import (
	"context"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/tooltip/internal/errors"
)

type fakeS3 struct {
	objects map[string]string
	err     error

	lastBucket string
	lastKey    string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.lastBucket = aws.ToString(in.Bucket)
	f.lastKey = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[f.lastBucket+"/"+f.lastKey]
	if !ok {
		return nil, stderrors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestParseS3URL(t *testing.T) {
	tests := []struct {
		src    string
		bucket string
		key    string
		ok     bool
	}{
		{"s3://scripts/hover.json", "scripts", "hover.json", true},
		{"s3://scripts/nested/dir/a.json", "scripts", "nested/dir/a.json", true},
		{"s3://scripts", "", "", false},
		{"s3://scripts/", "", "", false},
		{"s3:///key", "", "", false},
		{"scripts/hover.json", "", "", false},
		{"https://example.com/a.json", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			bucket, key, ok := ParseS3URL(tt.src)
			if bucket != tt.bucket || key != tt.key || ok != tt.ok {
				t.Errorf("ParseS3URL(%q) = %q, %q, %v; want %q, %q, %v",
					tt.src, bucket, key, ok, tt.bucket, tt.key, tt.ok)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "save.json")
	if err := os.WriteFile(path, []byte(saveScript), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Loader{}.Load(context.Background(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Name != "save button" {
		t.Errorf("Name = %q", s.Name)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"tree":`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing", filepath.Join(dir, "missing.json"), "T030"},
		{"malformed", bad, "T031"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Loader{}.Load(context.Background(), tt.path)
			e := errors.FromError(err, "")
			if e == nil || e.Code != tt.code {
				t.Fatalf("Load() error = %v, want %s", err, tt.code)
			}
			if e.Source != tt.path {
				t.Errorf("Source = %q, want %q", e.Source, tt.path)
			}
		})
	}
}

func TestLoadS3(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"scripts/save.json": saveScript}}

	s, err := Loader{S3: fake}.Load(context.Background(), "s3://scripts/save.json")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if fake.lastBucket != "scripts" || fake.lastKey != "save.json" {
		t.Errorf("fetched %s/%s", fake.lastBucket, fake.lastKey)
	}
	if len(s.Steps) == 0 {
		t.Error("script has no steps")
	}
}

func TestLoadS3Errors(t *testing.T) {
	tests := []struct {
		name   string
		loader Loader
		code   string
	}{
		{"no client", Loader{}, "T033"},
		{"get fails", Loader{S3: &fakeS3{err: stderrors.New("access denied")}}, "T033"},
		{"bad body", Loader{S3: &fakeS3{objects: map[string]string{"b/k": "nope"}}}, "T031"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.loader.Load(context.Background(), "s3://b/k")
			if !errors.HasCode(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestNewS3Client(t *testing.T) {
	t.Setenv("AWS_REGION", "")
	c := NewS3Client(S3Options{Endpoint: "http://localhost:9000"})
	o := c.Options()
	if o.Region != "us-east-1" {
		t.Errorf("Region = %q, want us-east-1", o.Region)
	}
	if aws.ToString(o.BaseEndpoint) != "http://localhost:9000" || !o.UsePathStyle {
		t.Errorf("endpoint = %q, path style = %v", aws.ToString(o.BaseEndpoint), o.UsePathStyle)
	}

	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	creds, err := o.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if creds.AccessKeyID != "AKID" || creds.SecretAccessKey != "secret" {
		t.Errorf("credentials = %+v", creds)
	}
}
