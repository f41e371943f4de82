package rdftab

import "github.com/rs/zerolog"

// Defaults applied when no option overrides them.
const (
	DefaultCompression = "snappy"
	DefaultBatchSize   = 10000
)

type options struct {
	compression    string
	batchSize      int
	strictLiterals bool
	logger         *zerolog.Logger
}

// Option adjusts one save/load call.
type Option func(*options)

// WithCompression selects the Parquet compression codec (none, snappy,
// gzip, brotli, lz4, zstd). Ignored by the SQLite backend.
func WithCompression(name string) Option {
	return func(o *options) { o.compression = name }
}

// WithBatchSize bounds rows materialized per batch during save and load.
// A tuning knob, not a correctness parameter: any size >= 1 produces the
// same result. Non-positive values fall back to the default.
func WithBatchSize(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.batchSize = n
		}
	}
}

// WithLogger directs progress logging for one save or load call. Without
// it, the store's own logger is used (zerolog.Nop unless the store was
// built with NewWithLogger).
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.logger = &log }
}

// WithStrictLiterals opts into re-extracting literal datatype and language
// suffixes on load when quoting is well formed. The default decode drops
// them (the row format's historical contract).
func WithStrictLiterals() Option {
	return func(o *options) { o.strictLiterals = true }
}

func buildOptions(opts []Option) options {
	o := options{
		compression: DefaultCompression,
		batchSize:   DefaultBatchSize,
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
