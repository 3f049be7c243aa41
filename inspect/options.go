package inspect

// Options represents inspector options
type Options struct {
	//AccessUnexported includes unexported fields
	AccessUnexported bool
}

// Option represents inspector option
type Option func(o *Options)

// Apply applies options
func (o *Options) Apply(opts []Option) {
	for _, opt := range opts {
		opt(o)
	}
}

// WithAccessUnexported returns option including unexported fields
func WithAccessUnexported(flag bool) Option {
	return func(o *Options) {
		o.AccessUnexported = flag
	}
}
