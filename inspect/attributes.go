package inspect

type (
	//Attributes represents indexed attributes
	Attributes[T any] struct {
		Items []T
		Map   map[string]int
	}

	//Accessors represents readable attributes
	Accessors struct {
		Attributes[Accessor]
		Marker *Marker
	}

	//Mutators represents writable attributes
	Mutators struct {
		Attributes[Mutator]
		Marker *Marker
	}
)

// Lookup returns attribute by name
func (a *Attributes[T]) Lookup(name string) T {
	index, ok := a.Map[name]
	if !ok {
		var zero T
		return zero
	}
	return a.Items[index]
}

// Names returns attribute names in declaration order
func (a *Attributes[T]) Names() []string {
	ret := make([]string, len(a.Items))
	for name, index := range a.Map {
		ret[index] = name
	}
	return ret
}

// add adds attribute unless the name is already taken
func (a *Attributes[T]) add(name string, item T) {
	if _, ok := a.Map[name]; ok {
		return
	}
	a.Map[name] = len(a.Items)
	a.Items = append(a.Items, item)
}

// put replaces attribute in place or adds a new one
func (a *Attributes[T]) put(name string, item T) {
	if index, ok := a.Map[name]; ok {
		a.Items[index] = item
		return
	}
	a.add(name, item)
}

func newAttributes[T any]() Attributes[T] {
	return Attributes[T]{Map: map[string]int{}}
}
