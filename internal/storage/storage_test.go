package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow/internal/config"
	"talentflow/internal/logging"
	"talentflow/internal/logging/adapters"
)

func quietLogger() logging.Logger {
	l := logging.NewMultiLogger()
	_ = l.AddAdapter(adapters.NewWriterAdapter("discard", adapters.StdoutConfig{}, io.Discard))
	return l
}

func TestLocalRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	l, err := NewLocal(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, l.Health(ctx))
	require.NoError(t, l.Put(ctx, "a.txt", strings.NewReader("hello"), 5, "text/plain"))

	rc, err := l.Open(ctx, "a.txt")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "hello", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	require.NoError(t, l.Delete(ctx, "a.txt"))
	_, err = l.Open(ctx, "a.txt")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, l.Delete(ctx, "a.txt"), "deleting a missing key is fine")
}

func TestLocalRejectsEscapingKeys(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "../x", "a/b", ".hidden"} {
		assert.Error(t, l.Put(ctx, key, strings.NewReader("x"), 1, ""), key)
		_, err := l.Open(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.LocalDir = t.TempDir()

	b, err := New(cfg, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "local", b.Name())

	cfg.Storage.Backend = "spaces"
	_, err = New(cfg, quietLogger())
	assert.Error(t, err, "spaces without credentials")

	cfg.Storage.Backend = "ftp"
	_, err = New(cfg, quietLogger())
	assert.Error(t, err)
}

type fakeS3 struct {
	s3iface.S3API
	objects map[string]string
	deleted []string
}

func (f *fakeS3) GetObjectWithContext(_ aws.Context, in *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[*in.Key]
	if !ok {
		return nil, awserr.New(s3.ErrCodeNoSuchKey, "missing", nil)
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func (f *fakeS3) DeleteObjectWithContext(_ aws.Context, in *s3.DeleteObjectInput, _ ...request.Option) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadBucketWithContext(_ aws.Context, in *s3.HeadBucketInput, _ ...request.Option) (*s3.HeadBucketOutput, error) {
	if *in.Bucket != "docs" {
		return nil, awserr.New(s3.ErrCodeNoSuchBucket, "missing", nil)
	}
	return &s3.HeadBucketOutput{}, nil
}

func TestSpacesUsesPrefixedKeys(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{"documents/a.pdf": "pdf"}}
	s := newSpaces(fake, nil, "docs", "/documents/", quietLogger())
	ctx := context.Background()

	rc, err := s.Open(ctx, "a.pdf")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "pdf", string(data))

	_, err = s.Open(ctx, "b.pdf")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Delete(ctx, "a.pdf"))
	assert.Equal(t, []string{"documents/a.pdf"}, fake.deleted)

	assert.NoError(t, s.Health(ctx))
	s.bucketName = "other"
	assert.Error(t, s.Health(ctx))
}
