// Package inspect enumerates readable and writable attributes of struct types and caches the result.
//
// Attributes are exported fields (including fields promoted from embedded structs), GetX/IsX getters
// and SetX setters. A field can be renamed or excluded with the transcoder tag:
//
//	type Entity struct {
//		ID     int    `transcoder:"name=Id"`
//		Secret string `transcoder:"-"`
//		Audit  string `transcoder:"readonly"`
//		Has    *EntityHas `presenceMarker:"true"`
//	}
package inspect
