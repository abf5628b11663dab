// Package minio provides a MinIO/S3-compatible implementation of core.FS.
//
// S3 has no directories, so this provider represents a directory as a
// zero-byte marker object whose key ends in "/". Mkdir writes the marker,
// ReadDir reports common prefixes as directories, and RemoveAll deletes
// the object at the key plus everything under its prefix.
package minio

import (
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
)

// Config describes where a MinioFS keeps its objects.
type Config struct {
	// Bucket holds every object. It must already exist or be created
	// with EnsureBucket.
	Bucket string

	// Prefix roots the filesystem below a key prefix, so several
	// filesystems can share a bucket.
	Prefix string

	// Client, when set, is used as is and the connection fields below
	// are ignored.
	Client *minio.Client

	// Connection settings used to build a client.
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// validate reports every missing required setting at once.
func (c *Config) validate() error {
	var missing []string
	if c.Bucket == "" {
		missing = append(missing, "bucket")
	}
	if c.Client == nil {
		if c.Endpoint == "" {
			missing = append(missing, "endpoint")
		}
		if c.AccessKey == "" {
			missing = append(missing, "access key")
		}
		if c.SecretKey == "" {
			missing = append(missing, "secret key")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}
