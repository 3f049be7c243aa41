package conv

import (
	"fmt"

	"github.com/viant/transcoder/inspect"
	"github.com/viant/transcoder/types"
)

// Side represents declared type and attribute path of a conversion end
type Side struct {
	Type *types.Typed
	path *Path
}

// Path returns attribute path, nil unless tracing is enabled
func (s Side) Path() *Path {
	return s.path
}

func (s Side) String() string {
	if s.path == nil {
		return s.Type.String()
	}
	return s.path.String() + "::" + s.Type.String()
}

func (s Side) dependent(t *types.Typed, tracing bool, names ...string) Side {
	ret := Side{Type: t, path: s.path}
	if tracing {
		ret.path = s.path.Append(names...)
	}
	return ret
}

// Context represents conversion state passed down to strategies
type Context struct {
	Source    Side
	Target    Side
	Inspector inspect.Inspector
	Converter Converter
	Tracing   bool
}

// NewContext creates a root context
func NewContext(source, target *types.Typed, inspector inspect.Inspector, converter Converter, tracing bool) *Context {
	if source == nil {
		source = types.None
	}
	if target == nil {
		target = types.None
	}
	return &Context{
		Source:    Side{Type: source},
		Target:    Side{Type: target},
		Inspector: inspector,
		Converter: converter,
		Tracing:   tracing,
	}
}

// Convert converts source with the context converter
func (c *Context) Convert(source interface{}) (Conversion, error) {
	return c.Converter.Convert(c, source)
}

// Dependent returns context for a nested attribute pair
func (c *Context) Dependent(sourceType *types.Typed, sourceName string, targetType *types.Typed, targetName string) *Context {
	ret := *c
	ret.Source = c.Source.dependent(sourceType, c.Tracing, sourceName)
	ret.Target = c.Target.dependent(targetType, c.Tracing, targetName)
	return &ret
}

// DependentPath returns context for a nested pair sharing path segments
func (c *Context) DependentPath(sourceType, targetType *types.Typed, names ...string) *Context {
	ret := *c
	ret.Source = c.Source.dependent(sourceType, c.Tracing, names...)
	ret.Target = c.Target.dependent(targetType, c.Tracing, names...)
	return &ret
}

// DependentSource returns context with nested source and unchanged target
func (c *Context) DependentSource(sourceType *types.Typed, names ...string) *Context {
	ret := *c
	ret.Source = c.Source.dependent(sourceType, c.Tracing, names...)
	return &ret
}

// DependentTarget returns context with unchanged source and nested target
func (c *Context) DependentTarget(targetType *types.Typed, names ...string) *Context {
	ret := *c
	ret.Target = c.Target.dependent(targetType, c.Tracing, names...)
	return &ret
}

// WithTypes returns context with replaced types and the same paths
func (c *Context) WithTypes(sourceType, targetType *types.Typed) *Context {
	ret := *c
	ret.Source.Type = sourceType
	ret.Target.Type = targetType
	return &ret
}

func (c *Context) String() string {
	return fmt.Sprintf("source: %v, target: %v", c.Source, c.Target)
}
