// Package visitor offers generic visitors for container values.
// Slices, arrays, range over func sequences and set maps are visited as elements,
// maps are visited as entries in sorted key order.
package visitor
