// Package types models possibly generic types at runtime.
//
// A Typed descriptor pairs a type expression with the declaration site it comes from and the
// enclosing descriptor used to substitute type variables. Go instantiated generics are read
// directly from reflection; erased generics (fields typed as any) can be declared with the
// transcoder struct tag:
//
//	type Box struct {
//		_     struct{} `transcoder:"params={T}"`
//		Value any      `transcoder:"type=T"`
//	}
//
//	type Holder struct {
//		Boxed Box `transcoder:"type=Box[Box[int]]"`
//	}
//
// Values with commas have to be wrapped with curly braces, i.e. `transcoder:"type={Pair[K,V]}"`.
package types
