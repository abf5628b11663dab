package minio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmgilman/go/fs/core"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConfigValidation tests Config.validate() with various scenarios.
func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config with credentials",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
		},
		{
			name: "valid config with client",
			config: Config{
				Client: &minio.Client{},
				Bucket: "test-bucket",
			},
		},
		{
			name: "missing bucket",
			config: Config{
				Endpoint:  "localhost:9000",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "missing bucket",
		},
		{
			name: "missing endpoint without client",
			config: Config{
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "missing endpoint",
		},
		{
			name: "missing access key without client",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				SecretKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "missing access key",
		},
		{
			name:    "nothing set",
			config:  Config{},
			wantErr: true,
			errMsg:  "missing bucket, endpoint, access key, secret key",
		},
		{
			name: "missing secret key without client",
			config: Config{
				Endpoint:  "localhost:9000",
				Bucket:    "test-bucket",
				AccessKey: "minioadmin",
			},
			wantErr: true,
			errMsg:  "missing secret key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

// TestNewMinIO tests construction without contacting a server.
func TestNewMinIO(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		_, err := NewMinIO(Config{Endpoint: "localhost:9000"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid config")
	})

	t.Run("credentials build a client", func(t *testing.T) {
		m, err := NewMinIO(Config{
			Endpoint:  "localhost:9000",
			Bucket:    "test-bucket",
			AccessKey: "minioadmin",
			SecretKey: "minioadmin",
			Prefix:    "/runs/42/",
		})
		require.NoError(t, err)
		assert.NotNil(t, m.client)
		assert.Equal(t, "test-bucket", m.bucket)
		assert.Equal(t, "runs/42", m.prefix)
	})

	t.Run("provided client is reused", func(t *testing.T) {
		client := &minio.Client{}
		m, err := NewMinIO(Config{Client: client, Bucket: "b"})
		require.NoError(t, err)
		assert.Same(t, client, m.client)
		assert.Empty(t, m.prefix)
	})
}

func TestMinioFS_JoinPath(t *testing.T) {
	m := &MinioFS{prefix: "out"}
	assert.Equal(t, "out/a/b", m.joinPath("a/b"))
	assert.Equal(t, "out", m.joinPath("."))

	m = &MinioFS{}
	assert.Equal(t, "a", m.joinPath("/a/"))
}

func TestMinioFS_Type(t *testing.T) {
	assert.Equal(t, core.FSTypeRemote, (&MinioFS{}).Type())
}

// TestFeedObjects tests forwarding listed objects to the batch remover.
func TestFeedObjects(t *testing.T) {
	listing := func(objects ...minio.ObjectInfo) <-chan minio.ObjectInfo {
		ch := make(chan minio.ObjectInfo, len(objects))
		for _, o := range objects {
			ch <- o
		}
		close(ch)
		return ch
	}

	t.Run("skips kept keys", func(t *testing.T) {
		out := make(chan minio.ObjectInfo, 3)
		n, err := feedObjects(context.Background(), listing(
			minio.ObjectInfo{Key: "d/"},
			minio.ObjectInfo{Key: "d/a"},
			minio.ObjectInfo{Key: "d/b"},
		), out, func(key string) bool { return key == "d/" })

		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.Len(t, out, 2)
	})

	t.Run("stops at listing error", func(t *testing.T) {
		listErr := errors.New("listing failed")
		out := make(chan minio.ObjectInfo, 3)
		n, err := feedObjects(context.Background(), listing(
			minio.ObjectInfo{Key: "d/a"},
			minio.ObjectInfo{Err: listErr},
			minio.ObjectInfo{Key: "d/b"},
		), out, nil)

		assert.ErrorIs(t, err, listErr)
		assert.Equal(t, int64(1), n)
	})

	t.Run("returns when context is cancelled and nothing drains", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		out := make(chan minio.ObjectInfo)

		done := make(chan error, 1)
		go func() {
			_, err := feedObjects(ctx, listing(minio.ObjectInfo{Key: "d/a"}), out, nil)
			done <- err
		}()
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("feedObjects blocked after cancellation")
		}
	})
}
