package css

import "go.uber.org/zap"

// Options configures a parse. The documented defaults (spec §6.1: all
// subtree parsing on, no comment callback, no logger) come from
// defaultOptions, not from the zero value, whose bool fields are all false.
type Options struct {
	parseValues          bool
	parseSelectors       bool
	parseAtrulePreludes  bool
	onComment            func(start, end, length, line, column int)
	log                  *zap.Logger
}

// Option configures a parse via With* constructors, following the
// functional-option style.
type Option func(*Options)

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		parseValues:         true,
		parseSelectors:      true,
		parseAtrulePreludes: true,
	}
}

func resolveOptions(opts []Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = zap.NewNop()
	} else {
		o.log = o.log.Named("csstree")
	}
	return o
}

// WithParseValues controls whether Declaration values are parsed into a
// Value subtree (default true).
func WithParseValues(enabled bool) Option {
	return func(o *Options) { o.parseValues = enabled }
}

// WithParseSelectors controls whether selectors are parsed into a detailed
// SelectorList subtree, versus a leaf SelectorList with raw text (default
// true).
func WithParseSelectors(enabled bool) Option {
	return func(o *Options) { o.parseSelectors = enabled }
}

// WithParseAtRulePreludes controls whether at-rule preludes are parsed
// into a subtree, versus recorded as a raw span (default true).
func WithParseAtRulePreludes(enabled bool) Option {
	return func(o *Options) { o.parseAtrulePreludes = enabled }
}

// WithCommentCallback registers a callback invoked for every comment as it
// is tokenized, before it is dropped or recorded, with its byte span and
// starting line/column.
func WithCommentCallback(fn func(start, end, length, line, column int)) Option {
	return func(o *Options) { o.onComment = fn }
}

// WithLogger attaches a zap logger for optional debug-level tracing: parse
// start, resync points after structural errors, arena growth, and at-rule
// preludes left unparsed. A nil logger (the default) disables logging
// entirely.
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) { o.log = log }
}
