package runtime_test

import (
	"testing"

	"github.com/aretw0/outlet/internal/runtime"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

var allLocations = []domain.Location{
	domain.LocationCenter, domain.LocationBottom, domain.LocationLeft, domain.LocationRight,
}

func drawAllowed(t *rapid.T) []domain.Location {
	perm := rapid.Permutation(allLocations).Draw(t, "perm")
	n := rapid.IntRange(2, len(perm)).Draw(t, "n")
	return perm[:n]
}

func TestNextLocation(t *testing.T) {
	allowed := []domain.Location{domain.LocationCenter, domain.LocationBottom, domain.LocationRight}

	assert.Equal(t, domain.LocationBottom, runtime.NextLocation(allowed, domain.LocationCenter, domain.Forward))
	assert.Equal(t, domain.LocationCenter, runtime.NextLocation(allowed, domain.LocationRight, domain.Forward))
	assert.Equal(t, domain.LocationRight, runtime.NextLocation(allowed, domain.LocationCenter, domain.Backward))

	// A foreign location counts as the first entry.
	assert.Equal(t, domain.LocationBottom, runtime.NextLocation(allowed, domain.LocationLeft, domain.Forward))
	assert.Equal(t, domain.LocationRight, runtime.NextLocation(allowed, domain.LocationLeft, domain.Backward))

	single := []domain.Location{domain.LocationBottom}
	assert.Equal(t, domain.LocationBottom, runtime.NextLocation(single, domain.LocationBottom, domain.Forward))
	assert.Equal(t, domain.LocationLeft, runtime.NextLocation(single, domain.LocationLeft, domain.Backward))
}

func TestNextLocation_Closure(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		allowed := drawAllowed(t)
		start := rapid.SampledFrom(allowed).Draw(t, "start")
		dir := domain.Direction(rapid.IntRange(0, 1).Draw(t, "dir"))

		loc := start
		for range allowed {
			loc = runtime.NextLocation(allowed, loc, dir)
		}
		if loc != start {
			t.Fatalf("cycle of %v from %s ended at %s", allowed, start, loc)
		}
	})
}

func TestNextLocation_Inverse(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		allowed := drawAllowed(t)
		start := rapid.SampledFrom(allowed).Draw(t, "start")

		there := runtime.NextLocation(allowed, start, domain.Forward)
		if there == start {
			t.Fatalf("forward step from %s did not move", start)
		}
		if back := runtime.NextLocation(allowed, there, domain.Backward); back != start {
			t.Fatalf("forward then backward from %s gave %s", start, back)
		}
	})
}
