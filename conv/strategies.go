package conv

import (
	"errors"
	"log/slog"
	"reflect"

	"github.com/viant/transcoder/metrics"
	"github.com/viant/transcoder/types"
)

// Strategies is a Converter trying converters in order, the first matched conversion wins
type Strategies struct {
	converters []Converter
	names      []string
	logger     *slog.Logger
	metrics    metrics.Metrics
}

// Composite creates strategies pipeline
func Composite(converters ...Converter) *Strategies {
	ret := &Strategies{
		logger:  slog.New(slog.DiscardHandler),
		metrics: metrics.Nop(),
	}
	for _, converter := range converters {
		if converter == nil {
			continue
		}
		ret.converters = append(ret.converters, converter)
		ret.names = append(ret.names, nameOf(converter))
	}
	return ret
}

// WithLogger sets logger
func (s *Strategies) WithLogger(logger *slog.Logger) *Strategies {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithMetrics sets metrics
func (s *Strategies) WithMetrics(m metrics.Metrics) *Strategies {
	if m != nil {
		s.metrics = m
	}
	return s
}

// Names returns converter names in pipeline order
func (s *Strategies) Names() []string {
	return s.names
}

// Convert returns the first matched conversion
func (s *Strategies) Convert(ctx *Context, source interface{}) (Conversion, error) {
	if source != nil && isOpen(ctx.Source.Type) {
		ctx = ctx.WithTypes(types.ClassOf(reflect.TypeOf(source)), ctx.Target.Type)
	}
	if ctx.Target.Type.Raw() == nil {
		s.logger.Debug("unresolved target type", "ctx", ctx.String())
		s.metrics.Unmatched()
		return No(), nil
	}
	for i, converter := range s.converters {
		conversion, err := converter.Convert(ctx, source)
		if err != nil {
			err = Fault(ctx, err)
			s.report(err)
			return No(), err
		}
		if conversion.Matched() {
			s.metrics.Matched(s.names[i])
			return conversion, nil
		}
	}
	s.metrics.Unmatched()
	return No(), nil
}

// isOpen returns true when declared type does not pin the value type
func isOpen(t *types.Typed) bool {
	if t == nil || t.IsNone() || !t.IsResolved() {
		return true
	}
	raw := t.Raw()
	return raw == nil || raw.Kind() == reflect.Interface
}

// report counts the fault once, nested pipelines return the same *MappingError
func (s *Strategies) report(err error) {
	var mappingErr *MappingError
	if errors.As(err, &mappingErr) && !mappingErr.reported {
		mappingErr.reported = true
		s.metrics.Fault()
	}
}
