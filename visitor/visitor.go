package visitor

// Visitor visits (key, element) pairs in a deterministic order, the callback stops the visit
// by returning false or an error, the error is returned by the visit.
type Visitor[K comparable, E any] func(func(key K, element E) (bool, error)) error
