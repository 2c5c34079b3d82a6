package oss

import (
	"context"
	"errors"
	"io"
	"net/http"

	"bneibrit/config"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
)

var ErrArchiveDisabled = errors.New("object archive is not configured")

var (
	ArchiveBucket *oss.Bucket
	GetObjectFunc = func(ctx context.Context, key string, opts ...oss.Option) (io.ReadCloser, error) {
		return nil, ErrArchiveDisabled
	}
	PutObjectFunc = func(ctx context.Context, key string, r io.Reader, opts ...oss.Option) error {
		return ErrArchiveDisabled
	}
)

// Bootstrap binds the object functions to the configured bucket. Without an endpoint
// they keep returning ErrArchiveDisabled.
func Bootstrap(c config.ArchiveConfig) error {
	if !c.Enabled() {
		return nil
	}
	bucket, err := BuildBucket(c.Endpoint, c.AccessKey, c.SecretKey, c.Bucket)
	if err != nil {
		return err
	}
	ArchiveBucket = bucket
	GetObjectFunc = GetObject
	PutObjectFunc = PutObject
	return nil
}

func BuildBucket(endpoint, accessKey, secretKey, bucketName string) (*oss.Bucket, error) {
	// endpoint http://oss-cn-hangzhou.aliyuncs.com
	client := &http.Client{Transport: &TracingTransport{Transport: http.DefaultTransport}}
	cli, err := oss.New(endpoint, accessKey, secretKey, oss.HTTPClient(client))
	if err != nil {
		return nil, err
	}
	return cli.Bucket(bucketName)
}

func GetObject(ctx context.Context, key string, opts ...oss.Option) (io.ReadCloser, error) {
	var r io.ReadCloser
	err := traced(ctx, "get-object", key, func() error {
		var err error
		r, err = ArchiveBucket.GetObject(key, opts...)
		return err
	})
	return r, err
}

func PutObject(ctx context.Context, key string, r io.Reader, opts ...oss.Option) error {
	return traced(ctx, "put-object", key, func() error {
		return ArchiveBucket.PutObject(key, r, opts...)
	})
}

// traced runs call inside a child span when ctx carries one.
func traced(ctx context.Context, operation, key string, call func() error) error {
	if ctx == nil {
		return call()
	}
	parentSpan := opentracing.SpanFromContext(ctx)
	if parentSpan == nil {
		return call()
	}
	sp := parentSpan.Tracer().StartSpan(operation, opentracing.ChildOf(parentSpan.Context()))
	sp.SetTag("object-key", key)
	defer sp.Finish()

	err := call()
	ext.Error.Set(sp, err != nil)
	return err
}
