// Package carousel holds the pagination state machine behind the carousel
// rows: page arithmetic, the shared transition lock and the per-category
// page index store.
package carousel

// Direction is the slide direction of a page transition
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// MaxIndex returns the last valid page index for itemCount items split into
// pages of pageSize. An empty or degenerate input yields a single page.
func MaxIndex(itemCount, pageSize int) int {
	if itemCount <= 0 || pageSize <= 0 {
		return 0
	}
	return (itemCount+pageSize-1)/pageSize - 1
}

// NextIndex returns the page index after moving one page in dir, wrapping
// at both ends.
func NextIndex(current, itemCount, pageSize int, dir Direction) int {
	maxIndex := MaxIndex(itemCount, pageSize)
	current = clamp(current, maxIndex)

	if dir == Backward {
		if current == 0 {
			return maxIndex
		}
		return current - 1
	}
	if current == maxIndex {
		return 0
	}
	return current + 1
}

// VisibleSlice returns the items on page pageIndex, clipped to the
// available length. Out of range pages are empty.
func VisibleSlice[T any](items []T, pageIndex, pageSize int) []T {
	if pageSize <= 0 || pageIndex < 0 {
		return nil
	}
	start := pageIndex * pageSize
	if start >= len(items) {
		return nil
	}
	end := min(start+pageSize, len(items))
	return items[start:end]
}

func clamp(index, maxIndex int) int {
	if index < 0 {
		return 0
	}
	if index > maxIndex {
		return maxIndex
	}
	return index
}
