// Package transcoder maps object graphs between runtime types.
package transcoder

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/viant/transcoder/conv"
	"github.com/viant/transcoder/inspect"
	"github.com/viant/transcoder/internal/values"
	"github.com/viant/transcoder/metrics"
	"github.com/viant/transcoder/types"
)

// ErrUnmatched is returned when no strategy converts the source into the target type
var ErrUnmatched = errors.New("unmatched conversion")

// Mapper maps values between type descriptors, it is safe for concurrent use
type Mapper struct {
	options   *Options
	inspector inspect.Inspector
	converter conv.Converter
}

// New creates a mapper
func New(opts ...Option) *Mapper {
	options := DefaultOptions()
	options.Apply(opts)
	if options.Logger == nil {
		options.Logger = slog.New(slog.DiscardHandler)
	}
	if options.Metrics == nil {
		options.Metrics = metrics.Nop()
	}
	ret := &Mapper{options: options, inspector: options.Inspector, converter: options.Strategies}
	if ret.inspector == nil {
		ret.inspector = inspect.NewCaching(inspect.WithAccessUnexported(options.AccessUnexported))
	}
	if ret.converter == nil {
		ret.converter = conv.Defaults(conv.Options{
			Immutables: options.Immutables,
			Factories:  options.Factories,
			Pre:        options.Pre,
			Post:       options.Post,
			TimeLayout: options.TimeLayout,
			Logger:     options.Logger,
			Metrics:    options.Metrics,
		})
	}
	return ret
}

// Map maps source into target type, source type is taken from the source value, nil source maps to nil
func (m *Mapper) Map(source interface{}, target *types.Typed) (interface{}, error) {
	if source == nil {
		return nil, nil
	}
	return m.MapFrom(types.ClassOf(reflect.TypeOf(source)), source, target)
}

// MapFrom maps source declared as sourceType into target type
func (m *Mapper) MapFrom(sourceType *types.Typed, source interface{}, target *types.Typed) (interface{}, error) {
	timer := m.options.Metrics.MapDuration()
	defer timer.ObserveDuration()
	ctx := conv.NewContext(sourceType, target, m.inspector, m.converter, m.options.Tracing)
	conversion, err := ctx.Convert(source)
	if err != nil {
		return nil, err
	}
	if !conversion.Matched() {
		m.options.Logger.Debug("unmatched conversion", "ctx", ctx.String())
		if m.options.UnmatchedAsNil {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUnmatched, ctx)
	}
	return conversion.Value(), nil
}

// Convert maps source into the value dest points to
func (m *Mapper) Convert(source interface{}, dest interface{}) error {
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr || destValue.IsNil() {
		return fmt.Errorf("destination must be a non nil pointer, got %T", dest)
	}
	target := types.ClassOf(destValue.Type().Elem())
	sourceType := types.None
	if source != nil {
		sourceType = types.ClassOf(reflect.TypeOf(source))
	}
	value, err := m.MapFrom(sourceType, source, target)
	if err != nil {
		return err
	}
	if err = values.Assign(destValue.Elem(), value); err != nil {
		return fmt.Errorf("failed to assign %T to %v: %w", value, target, err)
	}
	return nil
}

// MapTo maps source into T
func MapTo[T any](m *Mapper, source interface{}) (T, error) {
	var ret T
	err := m.Convert(source, &ret)
	return ret, err
}
