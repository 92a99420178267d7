// Package rng holds the sampling helpers used when shapes are spawned.
// The global math/rand source is used, so runs are not reproducible.
package rng

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

// Float returns a uniform value in [min, max). Reversed bounds are swapped.
func Float[T constraints.Float](min, max T) T {
	if max < min {
		min, max = max, min
	}
	v := T(rand.Float64())*(max-min) + min
	if v >= max && max > min {
		// float32 rounding can land on the open end
		return min
	}
	return v
}

// Int returns a uniform integer in [min, max], both ends inclusive.
func Int[T constraints.Integer](min, max T) T {
	if max < min {
		min, max = max, min
	}
	return min + T(rand.Int63n(int64(max-min)+1))
}

// Choice returns a random element of items, or the zero value when items is empty.
func Choice[T any](items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[rand.Intn(len(items))]
}

// Vec3 samples each component independently from [min, max).
func Vec3(min, max float32) mgl32.Vec3 {
	return mgl32.Vec3{Float(min, max), Float(min, max), Float(min, max)}
}
