package conv

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/viant/tagly/format"
	ftime "github.com/viant/tagly/format/time"
	"github.com/viant/transcoder/types"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var (
	layouts       sync.Map // map[reflect.StructTag]string
	timeType      = reflect.TypeFor[time.Time]()
	timestampType = reflect.TypeFor[*timestamppb.Timestamp]()
)

// Dates converts between date-like values (time.Time, *time.Time, *timestamppb.Timestamp),
// epoch milliseconds and text
type Dates struct {
	//Layout is used for text conversions when attribute has no format tag, RFC3339 if empty
	Layout string
}

// Name returns strategy name
func (d *Dates) Name() string { return "Dates" }

// Convert converts date pairs
func (d *Dates) Convert(ctx *Context, source interface{}) (Conversion, error) {
	sourceType, targetType := ctx.Source.Type.Raw(), ctx.Target.Type.Raw()
	if source != nil {
		sourceType = reflect.TypeOf(source)
	}
	switch {
	case types.IsDateLike(sourceType) && types.IsEpoch(targetType):
		ts, ok := asTime(source)
		if !ok {
			return Of(reflect.Zero(targetType).Interface()), nil
		}
		return Of(reflect.ValueOf(ts.UnixMilli()).Convert(targetType).Interface()), nil
	case types.IsEpoch(sourceType) && types.IsDateLike(targetType):
		if source == nil {
			return Nil(), nil
		}
		return Of(fromTime(time.UnixMilli(reflect.ValueOf(source).Int()).UTC(), targetType)), nil
	case types.IsDateLike(sourceType) && types.IsDateLike(targetType):
		ts, ok := asTime(source)
		if !ok {
			return absentTime(targetType), nil
		}
		return Of(fromTime(ts, targetType)), nil
	case types.IsDateLike(sourceType) && types.IsText(targetType):
		ts, ok := asTime(source)
		if !ok {
			return No(), nil
		}
		text := ts.Format(d.layout(ctx))
		return Of(reflect.ValueOf(text).Convert(targetType).Interface()), nil
	case types.IsText(sourceType) && types.IsDateLike(targetType):
		if source == nil {
			return No(), nil
		}
		text := reflect.ValueOf(source).String()
		layout := d.layout(ctx)
		ts, err := time.Parse(layout, text)
		if err != nil {
			return No(), fmt.Errorf("cannot parse time string '%s' with layout '%s': %w", text, layout, err)
		}
		return Of(fromTime(ts, targetType)), nil
	}
	return No(), nil
}

// layout returns time layout of the target or source attribute format tag
func (d *Dates) layout(ctx *Context) string {
	for _, typed := range []*types.Typed{ctx.Target.Type, ctx.Source.Type} {
		if layout := layoutOf(typed.Site().Tag()); layout != "" {
			return layout
		}
	}
	if d.Layout != "" {
		return d.Layout
	}
	return time.RFC3339
}

func layoutOf(tag reflect.StructTag) string {
	if tag == "" {
		return ""
	}
	if v, ok := layouts.Load(tag); ok {
		return v.(string)
	}
	layout := ""
	if formatTag, err := format.Parse(tag); err == nil && formatTag != nil {
		if formatTag.TimeLayout != "" {
			layout = formatTag.TimeLayout
		} else if formatTag.DateFormat != "" {
			layout = ftime.DateFormatToTimeLayout(formatTag.DateFormat)
		}
	}
	layouts.Store(tag, layout)
	return layout
}

func asTime(source interface{}) (time.Time, bool) {
	switch actual := source.(type) {
	case time.Time:
		return actual, true
	case *time.Time:
		if actual == nil {
			return time.Time{}, false
		}
		return *actual, true
	case *timestamppb.Timestamp:
		if actual == nil {
			return time.Time{}, false
		}
		return actual.AsTime(), true
	}
	return time.Time{}, false
}

func absentTime(t reflect.Type) Conversion {
	if types.IsNillable(t) {
		return Nil()
	}
	return No()
}

func fromTime(ts time.Time, t reflect.Type) interface{} {
	switch t {
	case timeType:
		return ts
	case timestampType:
		return timestamppb.New(ts)
	}
	return &ts
}
