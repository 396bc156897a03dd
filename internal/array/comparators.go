package array

import (
	"github.com/gpufill/gpufill/internal/basics"
)

// IntLess compares two integers for less-than relationship.
func IntLess(a, b int) bool {
	return a < b
}

// IntGreater compares two integers for greater-than relationship. Backs
// SortIntsDescending.
func IntGreater(a, b int) bool {
	return a > b
}

// IntEqual compares two integers for equality.
func IntEqual(a, b int) bool {
	return a == b
}

// Int64Less compares two int64 values. Used as the InactiveArray's sort key
// comparator in package edge, where the (startY, x) pack needs plain
// numeric order.
func Int64Less(a, b basics.Int64) bool {
	return a < b
}

// SortInts sorts a slice of integers in ascending order.
func SortInts(slice []int) {
	QuickSortSlice(slice, IntLess)
}

// SortIntsDescending sorts a slice of integers in descending order.
func SortIntsDescending(slice []int) {
	QuickSortSlice(slice, IntGreater)
}

// SortStrings sorts a slice of strings in lexicographic order.
func SortStrings(slice []string) {
	QuickSortSlice(slice, func(a, b string) bool { return a < b })
}

// IsSortedInts checks if a slice of integers is sorted in ascending order.
func IsSortedInts(slice []int) bool {
	return IsSortedSlice(slice, IntLess)
}
