package transcoder

import (
	"log/slog"
	"reflect"
	"time"

	"github.com/viant/transcoder/conv"
	"github.com/viant/transcoder/inspect"
	"github.com/viant/transcoder/metrics"
)

// Options represents mapper options
type Options struct {
	//Tracing records attribute paths in conversion contexts
	Tracing          bool
	AccessUnexported bool
	//TimeLayout is used for date text conversion when attribute has no format tag
	TimeLayout string
	Immutables []reflect.Type
	Factories  []conv.CollectionFactory
	Pre        []conv.Converter
	Post       []conv.Converter
	//Strategies replaces the default pipeline
	Strategies conv.Converter
	Inspector  inspect.Inspector
	//UnmatchedAsNil returns nil instead of ErrUnmatched
	UnmatchedAsNil bool
	Logger         *slog.Logger
	Metrics        metrics.Metrics
	conversions    *conv.Registry
}

// Option represents mapper option
type Option func(o *Options)

// DefaultOptions returns default options
func DefaultOptions() *Options {
	return &Options{
		TimeLayout: time.RFC3339,
		Logger:     slog.New(slog.DiscardHandler),
		Metrics:    metrics.Nop(),
	}
}

// Apply applies options
func (o *Options) Apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithTracing enables attribute path tracing
func WithTracing(flag bool) Option {
	return func(o *Options) {
		o.Tracing = flag
	}
}

// WithAccessUnexported enables mapping of unexported fields
func WithAccessUnexported(flag bool) Option {
	return func(o *Options) {
		o.AccessUnexported = flag
	}
}

// WithTimeLayout sets default time layout
func WithTimeLayout(layout string) Option {
	return func(o *Options) {
		o.TimeLayout = layout
	}
}

// WithImmutables registers types passed through without copying
func WithImmutables(immutables ...reflect.Type) Option {
	return func(o *Options) {
		o.Immutables = append(o.Immutables, immutables...)
	}
}

// WithCollectionFactory adds collection factory consulted before built-in containers
func WithCollectionFactory(factory conv.CollectionFactory) Option {
	return func(o *Options) {
		o.Factories = append(o.Factories, factory)
	}
}

// WithPreConverter adds converter running before built-in strategies
func WithPreConverter(converter conv.Converter) Option {
	return func(o *Options) {
		o.Pre = append(o.Pre, converter)
	}
}

// WithConverter adds converter running after specific and before generic built-in strategies
func WithConverter(converter conv.Converter) Option {
	return func(o *Options) {
		o.Post = append(o.Post, converter)
	}
}

// WithConversion adds conversion function for exact source and target types
func WithConversion(srcType, destType reflect.Type, fn conv.ConversionFunc) Option {
	return func(o *Options) {
		if o.conversions == nil {
			o.conversions = conv.NewRegistry()
			o.Post = append(o.Post, o.conversions)
		}
		o.conversions.RegisterConversion(srcType, destType, fn)
	}
}

// WithStrategies replaces the default strategies pipeline
func WithStrategies(converter conv.Converter) Option {
	return func(o *Options) {
		o.Strategies = converter
	}
}

// WithInspector sets attribute inspector
func WithInspector(inspector inspect.Inspector) Option {
	return func(o *Options) {
		o.Inspector = inspector
	}
}

// WithUnmatchedAsNil returns nil result for unmatched conversions
func WithUnmatchedAsNil() Option {
	return func(o *Options) {
		o.UnmatchedAsNil = true
	}
}

// WithLogger sets logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithMetrics sets metrics
func WithMetrics(m metrics.Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}
