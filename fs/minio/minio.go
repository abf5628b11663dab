package minio

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jmgilman/go/fs/core"
	"github.com/jmgilman/go/fs/minio/internal/errs"
	"github.com/jmgilman/go/fs/minio/internal/pathutil"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioFS implements core.FS for MinIO/S3-compatible storage.
//
//nolint:revive // MinioFS name is intentional to match naming pattern across fs implementations
type MinioFS struct {
	client *minio.Client
	bucket string
	prefix string // Optional prefix for all keys
}

// NewMinIO creates a MinIO-backed filesystem.
// Returns error if configuration is invalid or the client cannot be built.
func NewMinIO(cfg Config) (*MinioFS, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	client := cfg.Client
	if client == nil {
		var err error
		client, err = minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: cfg.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
	}

	return &MinioFS{
		client: client,
		bucket: cfg.Bucket,
		prefix: pathutil.NormalizePrefix(cfg.Prefix),
	}, nil
}

// EnsureBucket creates the configured bucket if it does not exist.
func (m *MinioFS) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return errs.Translate(err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return errs.Translate(err)
	}
	return nil
}

// joinPath joins the filesystem prefix with the given name.
func (m *MinioFS) joinPath(name string) string {
	return pathutil.JoinPath(m.prefix, name)
}

// statObject reports whether a plain object exists at key.
func (m *MinioFS) statObject(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	_, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if errs.IsNotFound(err) {
		return false, nil
	}
	return false, errs.Translate(err)
}

// hasPrefix reports whether any object (marker included) lives under dirKey.
func (m *MinioFS) hasPrefix(ctx context.Context, dirKey string) (bool, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    dirKey,
		Recursive: true,
		MaxKeys:   1,
	}) {
		if object.Err != nil {
			return false, errs.Translate(object.Err)
		}
		return true, nil
	}
	return false, nil
}

// removePrefix batch-deletes every object under dirKey for which keep
// returns false. It reports how many objects were submitted for deletion.
func (m *MinioFS) removePrefix(ctx context.Context, dirKey string, keep func(string) bool) (int64, error) {
	objectsCh := make(chan minio.ObjectInfo, 100)
	listed := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    dirKey,
		Recursive: true,
	})

	var count int64
	var listErr error
	fed := make(chan struct{})
	go func() {
		defer close(fed)
		defer close(objectsCh)
		count, listErr = feedObjects(ctx, listed, objectsCh, keep)
	}()

	// Use RemoveObjects batch API for efficient deletion
	errorCh := m.client.RemoveObjects(ctx, m.bucket, objectsCh, minio.RemoveObjectsOptions{})

	var firstErr error
	for result := range errorCh {
		if result.Err != nil && firstErr == nil {
			firstErr = result.Err
		}
	}
	<-fed

	if listErr != nil {
		return count, errs.Translate(listErr)
	}
	if firstErr != nil {
		return count, errs.Translate(firstErr)
	}
	return count, nil
}

// feedObjects forwards listed objects that keep rejects to out and returns
// how many it sent. It stops at the first listing error or when ctx is done.
func feedObjects(ctx context.Context, in <-chan minio.ObjectInfo, out chan<- minio.ObjectInfo, keep func(string) bool) (int64, error) {
	var n int64
	for object := range in {
		if object.Err != nil {
			return n, object.Err
		}
		if keep != nil && keep(object.Key) {
			continue
		}
		select {
		case out <- object:
			n++
		case <-ctx.Done():
			return n, ctx.Err()
		}
	}
	return n, nil
}

// RemoveAll removes the object at name and every object under name/.
func (m *MinioFS) RemoveAll(ctx context.Context, name string) (bool, error) {
	key := m.joinPath(name)

	existed, err := m.statObject(ctx, key)
	if err != nil {
		return false, core.PathError("removeall", name, err)
	}
	if existed {
		if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return true, core.PathError("removeall", name, errs.Translate(err))
		}
	}

	removed, err := m.removePrefix(ctx, pathutil.DirKey(key), nil)
	if err != nil {
		return existed || removed > 0, core.PathError("removeall", name, err)
	}
	return existed || removed > 0, nil
}

// Mkdir writes the directory marker for name.
// Parents are not required to exist; S3 prefixes are implicit.
func (m *MinioFS) Mkdir(ctx context.Context, name string) error {
	key := m.joinPath(name)
	if key == "" {
		return core.PathError("mkdir", name, fs.ErrExist)
	}

	isFile, err := m.statObject(ctx, key)
	if err != nil {
		return core.PathError("mkdir", name, err)
	}
	if isFile {
		return core.PathError("mkdir", name, core.ErrNotDir)
	}

	dirKey := pathutil.DirKey(key)
	isDir, err := m.hasPrefix(ctx, dirKey)
	if err != nil {
		return core.PathError("mkdir", name, err)
	}
	if isDir {
		return core.PathError("mkdir", name, fs.ErrExist)
	}

	if err := m.putMarker(ctx, dirKey); err != nil {
		return core.PathError("mkdir", name, err)
	}
	return nil
}

func (m *MinioFS) putMarker(ctx context.Context, dirKey string) error {
	_, err := m.client.PutObject(ctx, m.bucket, dirKey, bytes.NewReader(nil), 0, minio.PutObjectOptions{})
	return errs.Translate(err)
}

// EmptyDir removes everything under name/ except the directory marker.
func (m *MinioFS) EmptyDir(ctx context.Context, name string) error {
	dirKey := pathutil.DirKey(m.joinPath(name))

	_, err := m.removePrefix(ctx, dirKey, func(key string) bool {
		return key == dirKey
	})
	if err != nil {
		return core.PathError("emptydir", name, err)
	}
	return nil
}

// ReadDir lists the direct children of name using delimiter listing.
func (m *MinioFS) ReadDir(ctx context.Context, name string) ([]core.Entry, error) {
	dirKey := pathutil.DirKey(m.joinPath(name))

	var entries []core.Entry
	for object := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:    dirKey,
		Recursive: false, // Use delimiter for directory-like listing
	}) {
		if object.Err != nil {
			return nil, core.PathError("readdir", name, errs.Translate(object.Err))
		}
		// Skip the directory marker itself
		if object.Key == dirKey {
			continue
		}
		childName, isDir := pathutil.ChildName(dirKey, object.Key)
		if childName == "" {
			continue
		}
		entries = append(entries, core.Entry{Name: childName, IsDir: isDir})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// WriteFile uploads data to name.
func (m *MinioFS) WriteFile(ctx context.Context, name string, data []byte) error {
	key := m.joinPath(name)
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return core.PathError("writefile", name, errs.Translate(err))
	}
	return nil
}

// MkdirAll writes markers for name and each of its parents.
func (m *MinioFS) MkdirAll(ctx context.Context, name string) error {
	normalized := pathutil.Normalize(name)
	if normalized == "." {
		return nil
	}

	parts := strings.Split(normalized, "/")
	for i := range parts {
		key := m.joinPath(strings.Join(parts[:i+1], "/"))
		if err := m.putMarker(ctx, pathutil.DirKey(key)); err != nil {
			return core.PathError("mkdirall", name, err)
		}
	}
	return nil
}

// Exists reports whether an object or a directory prefix exists at name.
func (m *MinioFS) Exists(ctx context.Context, name string) (bool, error) {
	key := m.joinPath(name)

	ok, err := m.statObject(ctx, key)
	if err != nil || ok {
		return ok, err
	}
	return m.hasPrefix(ctx, pathutil.DirKey(key))
}

// Type returns FSTypeRemote.
func (m *MinioFS) Type() core.FSType {
	return core.FSTypeRemote
}

// Compile-time interface check.
var _ core.FS = (*MinioFS)(nil)
