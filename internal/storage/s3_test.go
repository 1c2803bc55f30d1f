package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

func TestParseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		expect  Location
		wantErr bool
	}{
		{name: "simple", raw: "s3://resumes/jane.pdf", expect: Location{Bucket: "resumes", Key: "jane.pdf"}},
		{name: "nested key", raw: " s3://resumes/2024/q1/jane.docx ", expect: Location{Bucket: "resumes", Key: "2024/q1/jane.docx"}},
		{name: "missing key", raw: "s3://resumes/", wantErr: true},
		{name: "missing bucket", raw: "s3:///jane.pdf", wantErr: true},
		{name: "wrong scheme", raw: "https://resumes/jane.pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseURL(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expect {
				t.Fatalf("expected %+v, got %+v", tt.expect, got)
			}
		})
	}
}

func TestIsURL(t *testing.T) {
	t.Parallel()

	if !IsURL("s3://bucket/key") {
		t.Fatal("expected s3 url")
	}
	if IsURL("/tmp/s3://bucket") || IsURL("resume text") {
		t.Fatal("unexpected s3 url match")
	}
}

type fakeGetter struct {
	body  string
	err   error
	input *s3.GetObjectInput
}

func (f *fakeGetter) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func TestFetcherFetch(t *testing.T) {
	t.Parallel()

	getter := &fakeGetter{body: "resume bytes"}
	f := &Fetcher{client: getter, logger: zap.NewNop()}

	data, err := f.Fetch(context.Background(), Location{Bucket: "resumes", Key: "jane.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "resume bytes" {
		t.Fatalf("unexpected body: %q", data)
	}
	if aws.ToString(getter.input.Bucket) != "resumes" || aws.ToString(getter.input.Key) != "jane.txt" {
		t.Fatalf("unexpected request: %+v", getter.input)
	}
}

func TestFetcherFetchError(t *testing.T) {
	t.Parallel()

	f := &Fetcher{client: &fakeGetter{err: errors.New("no such key")}, logger: zap.NewNop()}

	_, err := f.Fetch(context.Background(), Location{Bucket: "resumes", Key: "missing.pdf"})
	if err == nil || !strings.Contains(err.Error(), "s3://resumes/missing.pdf") {
		t.Fatalf("expected error naming the object, got %v", err)
	}
}

func TestNewFetcherRequiresBothKeys(t *testing.T) {
	t.Parallel()

	_, err := NewFetcher(context.Background(), Config{AccessKey: "id"}, nil)
	if err == nil {
		t.Fatal("expected error for a missing secret key")
	}
}
