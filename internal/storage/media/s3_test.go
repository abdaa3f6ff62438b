package media

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type s3Stub struct {
	lastInput *s3.PutObjectInput
	err       error
}

func (s *s3Stub) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.lastInput = in
	if s.err != nil {
		return nil, s.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Storage_Upload(t *testing.T) {
	stub := &s3Stub{}
	storage := &S3Storage{client: stub, bucket: "media", publicBaseURL: "https://cdn.example.com"}

	url, err := storage.Upload(context.Background(), "avatars/2026/8/30/abc.png", "image/png", strings.NewReader("img"))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/media/avatars/2026/8/30/abc.png", url)
	require.NotNil(t, stub.lastInput)
	assert.Equal(t, "media", *stub.lastInput.Bucket)
	assert.Equal(t, "image/png", *stub.lastInput.ContentType)

	body, err := io.ReadAll(stub.lastInput.Body)
	require.NoError(t, err)
	assert.Equal(t, "img", string(body))
}

func TestS3Storage_Upload_Error(t *testing.T) {
	stub := &s3Stub{err: errors.New("bucket unavailable")}
	storage := &S3Storage{client: stub, bucket: "media", publicBaseURL: "https://cdn.example.com"}

	url, err := storage.Upload(context.Background(), "avatars/a.png", "image/png", strings.NewReader("img"))
	assert.Error(t, err)
	assert.Empty(t, url)
}

func TestRandomKey(t *testing.T) {
	key1 := RandomKey("avatars", "photo.png")
	key2 := RandomKey("avatars", "photo.png")

	assert.True(t, strings.HasPrefix(key1, "avatars/"))
	assert.True(t, strings.HasSuffix(key1, ".png"))
	assert.NotEqual(t, key1, key2)

	noExt := RandomKey("covers", "noextension")
	assert.True(t, strings.HasPrefix(noExt, "covers/"))
	assert.False(t, strings.HasSuffix(noExt, "."))
}
