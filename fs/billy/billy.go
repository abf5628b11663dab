package billy

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/jmgilman/go/fs/core"
)

// LocalFS wraps billy's osfs for local filesystem access.
type LocalFS struct {
	provider
}

// MemoryFS wraps billy's memfs for in-memory filesystem access.
type MemoryFS struct {
	provider
}

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	dirMode  fs.FileMode
	fileMode fs.FileMode
}

// WithDirMode sets the permission bits for directories created by Mkdir and
// MkdirAll. Default: 0755.
func WithDirMode(mode fs.FileMode) Option {
	return func(c *config) {
		c.dirMode = mode
	}
}

// WithFileMode sets the permission bits for files created by WriteFile.
// Default: 0644.
func WithFileMode(mode fs.FileMode) Option {
	return func(c *config) {
		c.fileMode = mode
	}
}

func newConfig(opts []Option) config {
	cfg := config{dirMode: 0o755, fileMode: 0o644}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewLocal creates a go-billy-backed local filesystem rooted at root.
// All names are resolved relative to root.
func NewLocal(root string, opts ...Option) *LocalFS {
	return &LocalFS{provider{
		bfs:    osfs.New(root),
		cfg:    newConfig(opts),
		fsType: core.FSTypeLocal,
	}}
}

// NewMemory creates a go-billy-backed in-memory filesystem.
// The filesystem is initially empty.
func NewMemory(opts ...Option) *MemoryFS {
	return &MemoryFS{provider{
		bfs:    memfs.New(),
		cfg:    newConfig(opts),
		fsType: core.FSTypeMemory,
	}}
}

// provider holds the implementation shared by LocalFS and MemoryFS.
type provider struct {
	bfs    billy.Filesystem
	cfg    config
	fsType core.FSType
}

// normalize converts paths to use forward slashes consistently.
// This is a simplified path normalization since billy handles security.
func normalize(name string) string {
	return filepath.ToSlash(filepath.Clean(name))
}

// RemoveAll removes name and any children it contains.
// Symbolic links are removed, never followed.
func (p *provider) RemoveAll(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	name = normalize(name)

	info, err := p.bfs.Lstat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, core.PathError("removeall", name, err)
	}

	if err := p.removeTree(name, info); err != nil {
		return true, core.PathError("removeall", name, err)
	}
	return true, nil
}

func (p *provider) removeTree(name string, info fs.FileInfo) error {
	if info.IsDir() {
		children, err := p.bfs.ReadDir(name)
		if err != nil {
			return err
		}
		for _, child := range children {
			if err := p.removeTree(path.Join(name, child.Name()), child); err != nil {
				return err
			}
		}
	}

	err := p.bfs.Remove(name)
	if errors.Is(err, fs.ErrNotExist) {
		// Removed underneath us; the outcome is the same.
		return nil
	}
	return err
}

// Mkdir creates a new directory. Unlike MkdirAll, this fails if the parent
// directory does not exist or if anything already occupies name.
func (p *provider) Mkdir(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name = normalize(name)

	if info, err := p.bfs.Lstat(name); err == nil {
		if info.IsDir() {
			return core.PathError("mkdir", name, fs.ErrExist)
		}
		return core.PathError("mkdir", name, core.ErrNotDir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return core.PathError("mkdir", name, err)
	}

	if parent := path.Dir(name); parent != "." && parent != "/" {
		info, err := p.bfs.Stat(parent)
		if err != nil {
			return core.PathError("mkdir", name, err)
		}
		if !info.IsDir() {
			return core.PathError("mkdir", name, core.ErrNotDir)
		}
	}

	if err := p.bfs.MkdirAll(name, p.cfg.dirMode); err != nil {
		return core.PathError("mkdir", name, err)
	}
	return nil
}

// EmptyDir removes every child of name, leaving name in place.
func (p *provider) EmptyDir(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name = normalize(name)

	children, err := p.bfs.ReadDir(name)
	if err != nil {
		return core.PathError("emptydir", name, err)
	}
	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.removeTree(path.Join(name, child.Name()), child); err != nil {
			return core.PathError("emptydir", name, err)
		}
	}
	return nil
}

// ReadDir lists the direct children of name, sorted by name.
func (p *provider) ReadDir(ctx context.Context, name string) ([]core.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name = normalize(name)

	// Billy's ReadDir returns []fs.FileInfo, we only need name and kind
	infos, err := p.bfs.ReadDir(name)
	if err != nil {
		return nil, core.PathError("readdir", name, err)
	}
	entries := make([]core.Entry, len(infos))
	for i, info := range infos {
		entries[i] = core.Entry{Name: info.Name(), IsDir: info.IsDir()}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (p *provider) WriteFile(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return util.WriteFile(p.bfs, normalize(name), data, p.cfg.fileMode)
}

// MkdirAll creates a directory named name, along with any necessary parents.
func (p *provider) MkdirAll(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.bfs.MkdirAll(normalize(name), p.cfg.dirMode)
}

// Exists reports whether the named file or directory exists.
func (p *provider) Exists(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, err := p.bfs.Lstat(normalize(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) || errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Type returns the provider's filesystem type.
func (p *provider) Type() core.FSType {
	return p.fsType
}

// Compile-time interface checks.
var (
	_ core.FS = (*LocalFS)(nil)
	_ core.FS = (*MemoryFS)(nil)
)
