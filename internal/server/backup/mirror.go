// Package backup mirrors full collection snapshots to an S3-compatible
// object store. Every mutating write is followed by a Save of the complete
// collection under a fixed key; the previous object is overwritten
// unconditionally. The read path exists for restore tooling and tests but
// the request handlers never call it.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Fixed object keys for the two mirrored collections.
const (
	NotesKey       = "notes.json"
	CalcHistoryKey = "calc_history.json"
)

// Mirror is the snapshot store seen by the services.
type Mirror interface {
	// Save serializes snapshot as JSON and overwrites the object at key.
	Save(ctx context.Context, key string, snapshot any) error
	// Load fetches and deserializes the object at key into out. A missing
	// key is not an error: out is left as the empty sequence.
	Load(ctx context.Context, key string, out any) error
}

// objectClient is the slice of the S3 API the mirror uses. Tests substitute
// an in-memory implementation.
type objectClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Mirror struct {
	client objectClient
	bucket string
}

// Options mirrors the object-storage section of the server configuration.
type Options struct {
	Region       string
	Bucket       string
	BaseEndpoint string
	RootUser     string
	RootPassword string
}

func NewS3Mirror(ctx context.Context, opts Options) (*S3Mirror, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.RootUser,
			opts.RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("s3 config error: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Mirror{client: client, bucket: opts.Bucket}, nil
}

func (m *S3Mirror) Save(ctx context.Context, key string, snapshot any) error {
	body, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("snapshot encode error: %w", err)
	}

	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("mirror save error: %w", err)
	}

	return nil
}

func (m *S3Mirror) Load(ctx context.Context, key string, out any) error {
	obj, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil
		}
		return fmt.Errorf("mirror load error: %w", err)
	}
	defer obj.Body.Close()

	body, err := io.ReadAll(obj.Body)
	if err != nil {
		return fmt.Errorf("mirror load error: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("snapshot decode error: %w", err)
	}

	return nil
}
