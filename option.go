package diskbtree

// Options configures tree behavior.
type Options struct {
	logger   Logger
	onEvent  func(Event)
	poolSize int // Buffer pool capacity in nodes. 0 disables the pool.
}

// DefaultOptions returns the default configuration: no logging, no event
// handler and no buffer pool.
//
// goland:noinspection GoUnusedExportedFunction
func DefaultOptions() Options {
	return Options{
		logger:   DiscardLogger{},
		poolSize: 0,
	}
}

// Option configures tree options using the functional options pattern.
type Option func(*Options)

// WithLogger sets the logger for structural diagnostics. A nil logger
// restores the no-op default.
//
//goland:noinspection GoUnusedExportedFunction
func WithLogger(logger Logger) Option {
	return func(opts *Options) {
		if logger == nil {
			logger = DiscardLogger{}
		}
		opts.logger = logger
	}
}

// WithEventHandler subscribes fn to structural events (splits, borrows,
// merges and root height changes). fn runs synchronously inside the
// operation and must not call back into the tree.
//
//goland:noinspection GoUnusedExportedFunction
func WithEventHandler(fn func(Event)) Option {
	return func(opts *Options) {
		opts.onEvent = fn
	}
}

// WithBufferPool models an LRU buffer pool of the given number of node
// pages in front of the simulated disk. Its hit, miss and eviction counts
// are reported by IOStats. Zero disables the pool.
//
//goland:noinspection GoUnusedExportedFunction
func WithBufferPool(pages int) Option {
	return func(opts *Options) {
		opts.poolSize = pages
	}
}
