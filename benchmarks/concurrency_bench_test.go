package allochain_test

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/mkeeler/allochain"
)

// BenchmarkConcurrencyPatterns tests various concurrent usage patterns
// against SafeHandle, comparing a shared handle under mutex contention
// with one growing-region handle per goroutine.
func BenchmarkConcurrencyPatterns(b *testing.B) {
	b.Run("SafeHandle_Sequential", func(b *testing.B) {
		s := allochain.NewSafeHandle(allochain.NewTrackedSystem())
		defer s.Destroy()

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			s.Allocate(64)
		}
	})

	b.Run("SafeHandle_Parallel", func(b *testing.B) {
		s := allochain.NewSafeHandle(allochain.NewTrackedSystem())
		defer s.Destroy()

		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				s.Allocate(64)
			}
		})
	})

	b.Run("GrowingRegion_PerGoroutine", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			h, _ := allochain.NewGrowingRegion(1024 * 1024)
			defer h.Destroy()

			for pb.Next() {
				h.Allocate(64)
			}
		})
	})

	b.Run("Builtin_Parallel", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_ = make([]byte, 64)
			}
		})
	})

	sizes := []int{32, 128, 512}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("SafeHandle_Contention_%dB", size), func(b *testing.B) {
			s := allochain.NewSafeHandle(allochain.NewTrackedSystem())
			defer s.Destroy()

			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					s.Allocate(size)
				}
			})
		})

		b.Run(fmt.Sprintf("GrowingRegion_PerGoroutine_%dB", size), func(b *testing.B) {
			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				h, _ := allochain.NewGrowingRegion(2 * 1024 * 1024)
				defer h.Destroy()

				for pb.Next() {
					h.Allocate(size)
				}
			})
		})
	}
}

// BenchmarkSafeHandleOperations tests thread-safe operation overhead in
// isolation, including Metrics under contention.
func BenchmarkSafeHandleOperations(b *testing.B) {
	s := allochain.NewSafeHandle(allochain.NewTrackedSystem())
	defer s.Destroy()

	for i := 0; i < 100; i++ {
		s.Allocate(1000)
	}

	b.Run("Allocate", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				s.Allocate(64)
			}
		})
	})

	b.Run("Metrics", func(b *testing.B) {
		b.ResetTimer()
		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				_ = s.Metrics()
			}
		})
	})
}

// BenchmarkScalability tests how SafeHandle throughput scales with the
// number of goroutines contending for its mutex.
func BenchmarkScalability(b *testing.B) {
	goroutineCounts := []int{1, 2, 4, 8, 16}

	for _, numGoroutines := range goroutineCounts {
		b.Run(fmt.Sprintf("SafeHandle_%dGoroutines", numGoroutines), func(b *testing.B) {
			s := allochain.NewSafeHandle(allochain.NewTrackedSystem())
			defer s.Destroy()

			oldProcs := runtime.GOMAXPROCS(numGoroutines)
			defer runtime.GOMAXPROCS(oldProcs)

			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					s.Allocate(128)
				}
			})
		})

		b.Run(fmt.Sprintf("Builtin_%dGoroutines", numGoroutines), func(b *testing.B) {
			oldProcs := runtime.GOMAXPROCS(numGoroutines)
			defer runtime.GOMAXPROCS(oldProcs)

			b.ResetTimer()
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					_ = make([]byte, 128)
				}
			})
		})
	}
}
