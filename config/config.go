// Package config loads and validates dirout configuration.
//
// Configuration is written in CUE and checked against an embedded schema
// that supplies defaults:
//
//	output:      "build"
//	backend:     "minio"
//	concurrency: 8
//	minio: {
//	    endpoint:  "localhost:9000"
//	    bucket:    "artifacts"
//	    accessKey: "minioadmin"
//	    secretKey: "minioadmin"
//	}
//
// Files are read through a billy.Filesystem so callers can load from disk
// (osfs) or from memory (memfs) in tests.
package config

import (
	"context"
	_ "embed"
	"encoding/json"
	stderrors "errors"
	"io/fs"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/jmgilman/go/errors"
)

//go:embed schema.cue
var schemaSource []byte

// Backend names accepted in the backend field.
const (
	BackendLocal  = "local"
	BackendMemory = "memory"
	BackendMinio  = "minio"
)

// Config is the decoded configuration.
type Config struct {
	Output      string       `json:"output"`
	Backend     string       `json:"backend"`
	Concurrency int          `json:"concurrency"`
	LogLevel    string       `json:"logLevel"`
	Preserve    bool         `json:"preserve"`
	Minio       *MinioConfig `json:"minio,omitempty"`
}

// MinioConfig holds connection settings for the minio backend.
type MinioConfig struct {
	Endpoint  string `json:"endpoint"`
	Bucket    string `json:"bucket"`
	AccessKey string `json:"accessKey"`
	SecretKey string `json:"secretKey"`
	Prefix    string `json:"prefix"`
	UseSSL    bool   `json:"useSSL"`
}

// Defaults returns the schema defaults. Output is left empty and must be set
// before Validate succeeds.
func Defaults() *Config {
	return &Config{
		Backend:  BackendLocal,
		LogLevel: "info",
	}
}

// Load reads the CUE file at path from filesystem, applies schema defaults,
// and validates the result.
//
// Returns CodeNotFound if the file does not exist and CodeInvalidConfig if
// it does not compile or violates the schema.
func Load(ctx context.Context, filesystem billy.Filesystem, path string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := util.ReadFile(filesystem, path)
	if err != nil {
		code := errors.CodeInvalidConfig
		if stderrors.Is(err, fs.ErrNotExist) {
			code = errors.CodeNotFound
		}
		return nil, errors.WrapWithContext(err, code, "failed to read config file", map[string]interface{}{
			"path": path,
		})
	}

	return Parse(ctx, data, path)
}

// Parse evaluates CUE source against the schema. filename is used in error
// positions and context only.
func Parse(ctx context.Context, data []byte, filename string) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var opts []cue.BuildOption
	if filename != "" {
		opts = append(opts, cue.Filename(filename))
	}

	cueCtx := cuecontext.New()
	value := cueCtx.CompileBytes(data, opts...)
	if err := value.Err(); err != nil {
		return nil, invalid(err, "failed to compile config", filename)
	}

	return evaluate(cueCtx, value, filename)
}

// Validate checks c against the schema.
func (c *Config) Validate(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// JSON is valid CUE; marshaling honours omitempty on unset sections.
	data, err := json.Marshal(c)
	if err != nil {
		return errors.Wrap(err, errors.CodeInvalidConfig, "failed to encode config")
	}

	_, err = Parse(ctx, data, "")
	return err
}

// evaluate unifies value with the schema, validates it, and decodes it.
func evaluate(cueCtx *cue.Context, value cue.Value, filename string) (*Config, error) {
	schema := cueCtx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "embedded config schema is invalid")
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(value)
	if err := unified.Validate(cue.Concrete(true), cue.All()); err != nil {
		return nil, invalid(err, "config does not match schema", filename)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, invalid(err, "failed to decode config", filename)
	}
	return &cfg, nil
}

func invalid(err error, message, filename string) error {
	ctx := map[string]interface{}{
		"details": cueerrors.Details(err, nil),
	}
	if filename != "" {
		ctx["path"] = filename
	}
	return errors.WrapWithContext(err, errors.CodeInvalidConfig, message, ctx)
}
