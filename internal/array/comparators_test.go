package array

import (
	"testing"
)

func TestInt64Less(t *testing.T) {
	if !Int64Less(5, 10) {
		t.Error("Int64Less(5, 10) should be true")
	}
	if Int64Less(10, 5) {
		t.Error("Int64Less(10, 5) should be false")
	}
	if Int64Less(5, 5) {
		t.Error("Int64Less(5, 5) should be false")
	}
}
