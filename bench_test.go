package transcoder

import (
	"testing"
	"time"

	"github.com/viant/transcoder/types"
)

// Benchmark bean mapping with nested pointer, map and date attributes.
func BenchmarkMapper_Map_Bean(b *testing.B) {
	mapper := New()
	source := &Customer{
		ID:        1,
		Name:      "Ann",
		CreatedAt: time.Now(),
		Address:   &Address{City: "Oslo", Zip: 150},
		Labels:    map[string]int{"vip": 1, "tier": 2},
	}
	target := types.For[CustomerView]()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = mapper.Map(source, target)
	}
}

// Benchmark scalar text to int mapping.
func BenchmarkMapper_Map_Scalar(b *testing.B) {
	mapper := New()
	target := types.For[int]()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = mapper.Map("12345", target)
	}
}

// Benchmark slice of beans mapping.
func BenchmarkMapSlice_Bean(b *testing.B) {
	mapper := New()
	source := make([]Address, 100)
	for i := range source {
		source[i] = Address{City: "Oslo", Zip: i}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MapSlice[Address, AddressView](mapper, source)
	}
}
