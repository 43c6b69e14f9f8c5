package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(params.Key)
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(body))}, nil
}

func TestS3ReadFile(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{
		"queries/users.sql": "SELECT * FROM users",
	}}

	r, err := NewS3(context.Background(), S3Config{Bucket: "sql", Prefix: "/queries/"}, WithS3Client(fake))
	require.NoError(t, err)

	got, err := r.ReadFile(context.Background(), "users.sql")
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users", string(got))
	assert.Equal(t, []string{"queries/users.sql"}, fake.keys)
}

func TestS3ReadFileErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "NoSuchKey", err: nil, expected: ErrNotFound},
		{name: "NoSuchBucket", err: &types.NoSuchBucket{Message: aws.String("gone")}, expected: ErrNotFound},
		{name: "AccessDenied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, expected: ErrAccessDenied},
		{name: "Other", err: errors.New("connection reset"), expected: ErrReadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeS3{objects: map[string]string{}, err: tt.err}
			r, err := NewS3(context.Background(), S3Config{Bucket: "sql"}, WithS3Client(fake))
			require.NoError(t, err)

			_, err = r.ReadFile(context.Background(), "missing.sql")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expected)
			assert.Contains(t, err.Error(), "s3://sql/missing.sql")
		})
	}
}

func TestS3Config(t *testing.T) {
	_, err := NewS3(context.Background(), S3Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewS3(context.Background(), S3Config{Bucket: "sql"})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	r, err := NewS3(context.Background(), S3Config{Bucket: "sql"}, WithS3Client(&fakeS3{}))
	require.NoError(t, err)
	assert.Equal(t, "a/b.sql", r.Key("/a/../a/b.sql"))

	_, err = r.ReadFile(context.Background(), "/")
	assert.ErrorIs(t, err, ErrNotRegular)
}
