package carousel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxIndex(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		pageSize int
		want     int
	}{
		{"empty", 0, 6, 0},
		{"negative count", -3, 6, 0},
		{"zero page size", 10, 0, 0},
		{"single partial page", 4, 6, 0},
		{"exact pages", 12, 6, 1},
		{"short final page", 13, 6, 2},
		{"page size one", 5, 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxIndex(tt.count, tt.pageSize))
		})
	}
}

func TestNextIndexWraps(t *testing.T) {
	// 12 carousel items, 6 per page: pages 0 and 1
	assert.Equal(t, 1, NextIndex(0, 12, 6, Forward))
	assert.Equal(t, 0, NextIndex(1, 12, 6, Forward))
	assert.Equal(t, 1, NextIndex(0, 12, 6, Backward))
	assert.Equal(t, 0, NextIndex(1, 12, 6, Backward))
}

func TestNextIndexEmptyStaysOnFirstPage(t *testing.T) {
	assert.Equal(t, 0, NextIndex(0, 0, 6, Forward))
	assert.Equal(t, 0, NextIndex(0, 0, 6, Backward))
}

func TestNextIndexClampsStaleIndex(t *testing.T) {
	// index 5 is out of range for 2 pages; treated as the last page
	assert.Equal(t, 0, NextIndex(5, 12, 6, Forward))
	assert.Equal(t, 0, NextIndex(5, 12, 6, Backward))
}

func TestNextIndexRoundTrip(t *testing.T) {
	for count := 0; count <= 40; count++ {
		for size := 1; size <= 7; size++ {
			maxIndex := MaxIndex(count, size)
			for start := 0; start <= maxIndex; start++ {
				fwd := NextIndex(start, count, size, Forward)
				require.Equal(t, start, NextIndex(fwd, count, size, Backward),
					"count=%d size=%d start=%d", count, size, start)

				back := NextIndex(start, count, size, Backward)
				require.Equal(t, start, NextIndex(back, count, size, Forward),
					"count=%d size=%d start=%d", count, size, start)
			}
		}
	}
}

func TestNextIndexWrapAtEnds(t *testing.T) {
	for count := 1; count <= 30; count++ {
		for size := 1; size <= 7; size++ {
			maxIndex := MaxIndex(count, size)
			assert.Equal(t, 0, NextIndex(maxIndex, count, size, Forward))
			assert.Equal(t, maxIndex, NextIndex(0, count, size, Backward))
		}
	}
}

func TestVisibleSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, VisibleSlice(items, 0, 6))
	assert.Equal(t, []int{7, 8, 9, 10, 11, 12}, VisibleSlice(items, 1, 6))
	assert.Equal(t, []int{13}, VisibleSlice(items, 2, 6))
	assert.Empty(t, VisibleSlice(items, 3, 6))
	assert.Empty(t, VisibleSlice(items, -1, 6))
	assert.Empty(t, VisibleSlice(items, 0, 0))
	assert.Empty(t, VisibleSlice([]int(nil), 0, 6))
}

func TestVisibleSliceNeverExceedsPageSize(t *testing.T) {
	for count := 0; count <= 25; count++ {
		items := make([]int, count)
		for size := 1; size <= 8; size++ {
			for page := 0; page <= MaxIndex(count, size)+1; page++ {
				assert.LessOrEqual(t, len(VisibleSlice(items, page, size)), size)
			}
		}
	}
}
