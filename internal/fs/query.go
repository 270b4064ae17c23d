package fs

import (
	"fmt"

	"dirsize/internal/logging"
)

var (
	queryLogger = logging.GetLogger().WithPrefix("query")
)

// BoundedSum returns the sum of the aggregate sizes of every directory
// whose size is at most threshold. The root counts when it qualifies.
// Nested directories are counted once each, so nested bytes may be counted
// several times.
func BoundedSum(idx *SizeIndex, threshold uint64) uint64 {
	if idx == nil {
		return 0
	}
	var sum uint64
	for _, size := range idx.sizes {
		if size <= threshold {
			sum = saturatingAdd(sum, size)
		}
	}
	queryLogger.Debug("Bounded sum at %d: %d", threshold, sum)
	return sum
}

// Deficit returns how many more bytes must be freed so that requiredFree
// bytes are available on a disk of capacityTotal bytes. ok is false when
// enough space is already free.
func Deficit(idx *SizeIndex, capacityTotal, requiredFree uint64) (deficit uint64, ok bool) {
	used := idx.Used()
	if used >= capacityTotal {
		// Already over capacity: free space counts as zero, and the excess
		// has to go too.
		deficit = saturatingAdd(requiredFree, used-capacityTotal)
		return deficit, deficit > 0
	}
	free := capacityTotal - used
	if requiredFree <= free {
		return 0, false
	}
	return requiredFree - free, true
}

// SmallestAtLeast picks the smallest directory whose removal frees enough
// space for requiredFree bytes on a disk of capacityTotal bytes. Ties go to
// the lexicographically smallest path.
func SmallestAtLeast(idx *SizeIndex, capacityTotal, requiredFree uint64) (Entry, error) {
	if idx == nil || idx.Len() == 0 {
		return Entry{}, NewError(OpSmallestAtLeast, "", fmt.Errorf("%w: empty index", ErrInvalidQuery))
	}

	deficit, ok := Deficit(idx, capacityTotal, requiredFree)
	if !ok {
		return Entry{}, NewError(OpSmallestAtLeast, RootPath, fmt.Errorf(
			"%w: %d bytes already free of %d required", ErrInvalidQuery, capacityTotal-idx.Used(), requiredFree))
	}

	var (
		best  Entry
		found bool
	)
	for path, size := range idx.sizes {
		if size < deficit {
			continue
		}
		if !found || size < best.Size || (size == best.Size && path < best.Path) {
			best = Entry{Path: path, Size: size}
			found = true
		}
	}
	if !found {
		return Entry{}, NewError(OpSmallestAtLeast, RootPath, fmt.Errorf(
			"%w: nothing frees %d bytes", ErrNotFound, deficit))
	}

	queryLogger.Info("%s is the smallest directory to free at least %d bytes", best.Path, deficit)
	return best, nil
}
