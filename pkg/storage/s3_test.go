package storage_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readium/kotlin-toolkit-sub011/pkg/storage"
)

type mockS3Client struct {
	objects map[string][]byte
	err     error
}

func (m *mockS3Client) GetObject(ctx context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.objects[*params.Key]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "not found"}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	m.objects[*params.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (m *mockS3Client) HeadObject(ctx context.Context, params *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := m.objects[*params.Key]; !ok {
		return nil, &smithy.GenericAPIError{Code: "NotFound", Message: "not found"}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (m *mockS3Client) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	delete(m.objects, *params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func newMockS3Storage(t *testing.T, mock *mockS3Client) *storage.S3Storage {
	t.Helper()
	s, err := storage.NewS3Storage(context.Background(),
		storage.S3Config{Bucket: "licenses", Region: "eu-west-1"},
		storage.WithS3Client(mock),
	)
	require.NoError(t, err)
	return s
}

func TestS3Storage_RoundTrip(t *testing.T) {
	t.Parallel()

	mock := &mockS3Client{objects: map[string][]byte{}}
	s := newMockS3Storage(t, mock)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "pubs/book.lcpa", bytes.NewReader([]byte("archive"))))
	assert.True(t, s.Exists(ctx, "pubs/book.lcpa"))

	r, err := s.Open(ctx, "pubs/book.lcpa")
	require.NoError(t, err)
	defer r.Close()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("archive"), got)

	require.NoError(t, s.Delete(ctx, "pubs/book.lcpa"))
	assert.False(t, s.Exists(ctx, "pubs/book.lcpa"))
}

func TestS3Storage_OpenMissing(t *testing.T) {
	t.Parallel()

	s := newMockS3Storage(t, &mockS3Client{objects: map[string][]byte{}})

	_, err := s.Open(context.Background(), "missing.lcpa")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestS3Storage_AccessDenied(t *testing.T) {
	t.Parallel()

	mock := &mockS3Client{
		objects: map[string][]byte{},
		err:     &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"},
	}
	s := newMockS3Storage(t, mock)

	err := s.Save(context.Background(), "book.lcpa", bytes.NewReader([]byte("x")))
	assert.ErrorIs(t, err, storage.ErrAccessDenied)
}

func TestNewS3Storage_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := storage.NewS3Storage(context.Background(), storage.S3Config{})
	assert.ErrorIs(t, err, storage.ErrInvalidConfig)
}
