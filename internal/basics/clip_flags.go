package basics

// Clipping flag constants for the Cyrus-Beck line clipping algorithm
const (
	ClippingFlagsX1Clipped = 4
	ClippingFlagsX2Clipped = 1
	ClippingFlagsY1Clipped = 8
	ClippingFlagsY2Clipped = 2
	ClippingFlagsXClipped  = ClippingFlagsX1Clipped | ClippingFlagsX2Clipped
	ClippingFlagsYClipped  = ClippingFlagsY1Clipped | ClippingFlagsY2Clipped
)

// ClippingFlags determines the clipping code of the vertex according to the
// Cyrus-Beck line clipping algorithm
//
//	      |        |
//	0110  |  0010  | 0011
//	      |        |
//
// -------+--------+-------- clip_box.y2
//
//	      |        |
//	0100  |  0000  | 0001
//	      |        |
//
// -------+--------+-------- clip_box.y1
//
//	      |        |
//	1100  |  1000  | 1001
//	      |        |
//	clip_box.x1  clip_box.x2
func ClippingFlags[T CoordType](x, y T, clipBox Rect[T]) uint32 {
	var flags uint32
	if x > clipBox.X2 {
		flags |= ClippingFlagsX2Clipped
	}
	if y > clipBox.Y2 {
		flags |= ClippingFlagsY2Clipped
	}
	if x < clipBox.X1 {
		flags |= ClippingFlagsX1Clipped
	}
	if y < clipBox.Y1 {
		flags |= ClippingFlagsY1Clipped
	}
	return flags
}

// ClippingFlagsX determines clipping flags for X coordinate only
func ClippingFlagsX[T CoordType](x T, clipBox Rect[T]) uint32 {
	var flags uint32
	if x > clipBox.X2 {
		flags |= ClippingFlagsX2Clipped
	}
	if x < clipBox.X1 {
		flags |= ClippingFlagsX1Clipped
	}
	return flags
}

// ClippingFlagsY determines clipping flags for Y coordinate only
func ClippingFlagsY[T CoordType](y T, clipBox Rect[T]) uint32 {
	var flags uint32
	if y > clipBox.Y2 {
		flags |= ClippingFlagsY2Clipped
	}
	if y < clipBox.Y1 {
		flags |= ClippingFlagsY1Clipped
	}
	return flags
}
