package archive

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

// fakeS3 is an in-memory S3 over a path-style HTTP transport. It handles the
// PutObject and GetObject calls the sink makes.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.TrimPrefix(req.URL.Path, "/")
	switch req.Method {
	case http.MethodPut:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		if decoded, ok := decodeAWSChunked(body); ok {
			body = decoded
		}
		f.objects[key] = body
		return response(http.StatusOK, nil, http.Header{"ETag": {`"etag"`}}), nil
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			return response(http.StatusNotFound,
				[]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`),
				http.Header{"Content-Type": {"application/xml"}}), nil
		}
		return response(http.StatusOK, body, http.Header{
			"Content-Length": {strconv.Itoa(len(body))},
			"Content-Type":   {"application/x-ndjson"},
		}), nil
	}
	return response(http.StatusNotImplemented, nil, http.Header{}), nil
}

func response(status int, body []byte, h http.Header) *http.Response {
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(body)), Header: h}
}

// decodeAWSChunked strips aws-chunked framing: <hex>[;ext]\r\n<data>\r\n ... 0\r\n[trailers]\r\n.
func decodeAWSChunked(b []byte) ([]byte, bool) {
	var out bytes.Buffer
	rest := b
	for {
		idx := bytes.Index(rest, []byte("\r\n"))
		if idx < 0 {
			return nil, false
		}
		header := string(rest[:idx])
		if i := strings.IndexByte(header, ';'); i >= 0 {
			header = header[:i]
		}
		size, err := strconv.ParseInt(header, 16, 64)
		if err != nil {
			return nil, false
		}
		rest = rest[idx+2:]
		if size == 0 {
			return out.Bytes(), true
		}
		if int64(len(rest)) < size+2 {
			return nil, false
		}
		out.Write(rest[:size])
		rest = rest[size+2:]
	}
}

func newFakeS3Sink(t *testing.T, prefix string) (*S3Sink, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: make(map[string][]byte)}
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	require.NoError(t, err)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: fake}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})
	return NewS3SinkWithClient(client, "backups", prefix), fake
}
