package runtime

import (
	"slices"

	"github.com/aretw0/outlet/pkg/domain"
)

// NextLocation returns the location one step from current in dir, wrapping
// around allowed. A current location missing from allowed counts as index 0.
// With fewer than two allowed locations current is returned unchanged.
func NextLocation(allowed []domain.Location, current domain.Location, dir domain.Direction) domain.Location {
	n := len(allowed)
	if n < 2 {
		return current
	}
	idx := max(slices.Index(allowed, current), 0)
	return allowed[floorMod(idx+dir.Delta(), n)]
}

func floorMod(a, n int) int {
	return ((a % n) + n) % n
}
