package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/jmgilman/go/config"
	"github.com/jmgilman/go/dirout"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fs/billy"
	"github.com/jmgilman/go/fs/core"
	"github.com/jmgilman/go/fs/minio"
	"github.com/jmgilman/go/internal/logging"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	config      string
	output      string
	backend     string
	logLevel    string
	concurrency int
}

// session is a configured handle ready for one command.
type session struct {
	cfg *config.Config
	dir *dirout.Dir
	log *logging.Logger
	out io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "dirout",
		Short: "Manage the contents of an output directory",
		Long: `dirout removes entries from, creates directories in, and empties an
output directory on a local, in-memory, or MinIO backend.

Settings come from an optional CUE config file (--config) and are
overridden by flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "path to a CUE config file")
	pf.StringVarP(&flags.output, "output", "o", "", "output directory")
	pf.StringVar(&flags.backend, "backend", "", "backend: local, memory, or minio")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, or error")
	pf.IntVar(&flags.concurrency, "concurrency", 0, "maximum concurrent removals when emptying (0 = unlimited)")

	root.AddCommand(
		newRmCmd(flags),
		newMkdirCmd(flags),
		newEmptyCmd(flags),
	)
	return root
}

// resolveConfig loads the config file, if any, and applies flag overrides.
func resolveConfig(ctx context.Context, cmd *cobra.Command, flags *globalFlags) (*config.Config, error) {
	cfg := config.Defaults()
	if flags.config != "" {
		abs, err := filepath.Abs(flags.config)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidConfig, "invalid config path")
		}
		cfg, err = config.Load(ctx, osfs.New(filepath.Dir(abs)), filepath.Base(abs))
		if err != nil {
			return nil, err
		}
	}

	f := cmd.Flags()
	if f.Changed("output") {
		cfg.Output = flags.output
	}
	if f.Changed("backend") {
		cfg.Backend = flags.backend
	}
	if f.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
	if f.Changed("concurrency") {
		cfg.Concurrency = flags.concurrency
	}

	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSession resolves configuration and opens a handle on the output directory.
func openSession(cmd *cobra.Command, flags *globalFlags) (*session, error) {
	ctx := cmd.Context()

	cfg, err := resolveConfig(ctx, cmd, flags)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidConfig, "invalid log level")
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level.SlogLevel()}))

	backend, root, err := openBackend(cfg)
	if err != nil {
		return nil, err
	}

	dir := dirout.New(backend, root,
		dirout.WithLogger(logger),
		dirout.WithConcurrency(cfg.Concurrency),
	)

	return &session{
		cfg: cfg,
		dir: dir,
		log: logging.New(logger).With("backend", cfg.Backend),
		out: cmd.OutOrStdout(),
	}, nil
}

// openBackend builds the configured backend and returns the handle root
// within it. A local backend is rooted at the output directory itself.
func openBackend(cfg *config.Config) (core.Backend, string, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		return billy.NewLocal(cfg.Output), ".", nil
	case config.BackendMemory:
		return billy.NewMemory(), cfg.Output, nil
	case config.BackendMinio:
		m := cfg.Minio
		backend, err := minio.NewMinIO(minio.Config{
			Endpoint:  m.Endpoint,
			Bucket:    m.Bucket,
			AccessKey: m.AccessKey,
			SecretKey: m.SecretKey,
			UseSSL:    m.UseSSL,
			Prefix:    m.Prefix,
		})
		if err != nil {
			return nil, "", errors.Wrap(err, errors.CodeInvalidConfig, "failed to configure minio backend")
		}
		return backend, cfg.Output, nil
	default:
		return nil, "", errors.Newf(errors.CodeInvalidConfig, "unknown backend %q", cfg.Backend)
	}
}

// finish logs the work done by the handle tree.
func (s *session) finish(ctx context.Context) {
	stats := s.dir.Stats()
	s.log.Debug(ctx, "backend stats",
		"removes", stats.Removes,
		"mkdirs", stats.Mkdirs,
		"empties", stats.Empties,
		"listings", stats.Listings,
		"joins", stats.Joins,
	)
}

func (s *session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
