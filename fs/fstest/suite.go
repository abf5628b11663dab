// Package fstest provides a conformance test suite for validating filesystem
// providers against the core.FS contract.
//
// The suite checks the behavior a directory handle depends on: recursive
// removal reporting existence, Mkdir refusing occupied names, EmptyDir
// keeping the directory, and one-level ReadDir with entry kinds. Provider
// differences (such as S3's virtual directories) are declared through
// FSTestConfig.
//
// Example usage:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func() core.FS {
//	        return myprovider.New()
//	    })
//	}
package fstest

import (
	"testing"

	"github.com/jmgilman/go/fs/core"
)

// FSTestConfig configures the test suite to match filesystem behavior characteristics.
type FSTestConfig struct {
	// VirtualDirectories indicates directories are virtual (e.g., S3 prefixes).
	// When true, listing or emptying a missing directory succeeds with no
	// entries instead of failing with fs.ErrNotExist.
	VirtualDirectories bool

	// ImplicitParentDirs indicates Mkdir succeeds without an existing parent.
	ImplicitParentDirs bool

	// SkipTests lists specific test names to skip (for edge cases).
	// Format: "TestGroup/SubTest" (e.g., "Mkdir/MissingParent").
	SkipTests []string
}

// POSIXTestConfig returns configuration for POSIX-like filesystems (local, memory).
func POSIXTestConfig() FSTestConfig {
	return FSTestConfig{}
}

// S3TestConfig returns configuration for S3-like filesystems (MinIO, S3).
func S3TestConfig() FSTestConfig {
	return FSTestConfig{
		VirtualDirectories: true,
		ImplicitParentDirs: true,
	}
}

func (c FSTestConfig) skipped(name string) bool {
	for _, skip := range c.SkipTests {
		if skip == name {
			return true
		}
	}
	return false
}

// run executes a named subtest unless the configuration skips it.
func (c FSTestConfig) run(t *testing.T, group, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if c.skipped(group + "/" + name) {
			t.Skip("Skipped by provider configuration")
		}
		fn(t)
	})
}

// TestSuite runs all conformance tests against a filesystem.
// The newFS function should return a fresh, empty filesystem for each group.
// Uses POSIXTestConfig() by default.
func TestSuite(t *testing.T, newFS func() core.FS) {
	TestSuiteWithConfig(t, newFS, POSIXTestConfig())
}

// TestSuiteWithConfig runs conformance tests with behavior configuration.
func TestSuiteWithConfig(t *testing.T, newFS func() core.FS, config FSTestConfig) {
	groups := []struct {
		name string
		fn   func(*testing.T, core.FS, FSTestConfig)
	}{
		{"RemoveAll", TestRemoveAllWithConfig},
		{"Mkdir", TestMkdirWithConfig},
		{"EmptyDir", TestEmptyDirWithConfig},
		{"ReadDir", TestReadDirWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if config.skipped(g.name) {
				t.Skip("Skipped by provider configuration")
			}
			g.fn(t, newFS(), config)
		})
	}
}
