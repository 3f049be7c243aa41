package conv

import (
	"log/slog"
	"reflect"

	"github.com/viant/transcoder/metrics"
)

// Options represents default pipeline extension points
type Options struct {
	//Immutables are passed through in addition to built-in immutable types
	Immutables []reflect.Type
	//Factories are consulted before Builtin when creating collections and maps
	Factories []CollectionFactory
	//Pre converters run before built-in strategies
	Pre []Converter
	//Post converters run after built-in specific strategies and before generic ones
	Post []Converter
	//TimeLayout is used for date text conversion when attribute has no format tag
	TimeLayout string
	Logger     *slog.Logger
	Metrics    metrics.Metrics
}

// Defaults creates the default strategies pipeline
func Defaults(options Options) *Strategies {
	immutables := NewImmutables(options.Immutables...)
	var converters []Converter
	converters = append(converters, options.Pre...)
	converters = append(converters,
		NullsToBoxed{},
		Nulls{},
		immutables,
		Optionals{},
		NewIterables(options.Factories...),
		&Dates{Layout: options.TimeLayout},
		Numbers{},
		Texts{},
		References{},
	)
	converters = append(converters, options.Post...)
	converters = append(converters,
		Unboxing{},
		Boxing{},
		Strings{},
		Interfaces{},
		NewBeans(immutables),
	)
	return Composite(converters...).WithLogger(options.Logger).WithMetrics(options.Metrics)
}
