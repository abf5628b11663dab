package dirout

import (
	"log/slog"

	"github.com/jmgilman/go/internal/logging"
)

// Option configures a Dir created by New. Child handles inherit the options
// of the handle that created them.
type Option func(*options)

type options struct {
	logger      *logging.Logger
	concurrency int
}

func defaultOptions() options {
	return options{logger: logging.NewNop()}
}

// WithLogger sets the logger for backend calls and joined operations.
// Calls are logged at debug and faults at warn. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logging.New(logger)
	}
}

// WithConcurrency limits how many removals Empty runs at once.
// Zero or a negative value means no limit.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 0 {
			n = 0
		}
		o.concurrency = n
	}
}

// CreateOption configures a single CreateDir call.
type CreateOption func(*createOptions)

type createOptions struct {
	emptyIfPreserved bool
}

// KeepContents leaves a preserved directory's contents in place when
// CreateDir joins a Preserve of the same name. By default CreateDir empties
// such a directory before returning it.
func KeepContents() CreateOption {
	return func(o *createOptions) {
		o.emptyIfPreserved = false
	}
}
