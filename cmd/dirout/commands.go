package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jmgilman/go/dirout"
)

func newRmCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "rm NAME...",
		Short: "Remove entries of the output directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			defer s.finish(ctx)

			outcomes := make([]dirout.RemoveOutcome, len(args))
			g, gctx := errgroup.WithContext(ctx)
			for i, name := range args {
				g.Go(func() error {
					outcome, err := s.dir.Remove(gctx, name)
					outcomes[i] = outcome
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for i, name := range args {
				switch outcomes[i] {
				case dirout.Deleted:
					s.printf("removed %s\n", name)
				default:
					s.printf("%s did not exist\n", name)
				}
			}
			return nil
		},
	}
}

func newMkdirCmd(flags *globalFlags) *cobra.Command {
	var preserve bool

	cmd := &cobra.Command{
		Use:   "mkdir PATH...",
		Short: "Create directories in the output directory",
		Long: `Create directories in the output directory.

By default each directory is replaced: anything already at PATH is removed
and a fresh, empty directory is created. With --preserve (or preserve: true
in the config file) an existing directory keeps its contents.

Parent directories in PATH are created as needed and always preserved.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			defer s.finish(ctx)

			keep := s.cfg.Preserve
			if cmd.Flags().Changed("preserve") {
				keep = preserve
			}

			paths := make([]string, len(args))
			g, gctx := errgroup.WithContext(ctx)
			for i, p := range args {
				g.Go(func() error {
					child, err := makeDir(gctx, s.dir, p, keep)
					if err != nil {
						return err
					}
					paths[i] = child.Path()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			for _, p := range paths {
				s.printf("created %s\n", p)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&preserve, "preserve", false, "keep the contents of existing directories")
	return cmd
}

// makeDir walks p from dir, preserving intermediate directories. The last
// component is preserved when keep is set and replaced otherwise.
func makeDir(ctx context.Context, dir *dirout.Dir, p string, keep bool) (*dirout.Dir, error) {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	for _, part := range parts[:len(parts)-1] {
		next, err := dir.Preserve(ctx, part)
		if err != nil {
			return nil, err
		}
		dir = next
	}

	last := parts[len(parts)-1]
	if keep {
		return dir.Preserve(ctx, last)
	}
	if _, err := dir.Remove(ctx, last); err != nil {
		return nil, err
	}
	return dir.CreateDir(ctx, last)
}

func newEmptyCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "empty",
		Short: "Remove every entry of the output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(cmd, flags)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			defer s.finish(ctx)

			if err := s.dir.Empty(ctx); err != nil {
				return err
			}
			s.printf("emptied %s\n", s.cfg.Output)
			return nil
		},
	}
}
