package domain

import "time"

// All booking windows are half-open intervals [start, end). Touching
// endpoints do not collide, so back-to-back bookings are allowed.

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Covers reports whether [outerStart, outerEnd] fully contains
// [innerStart, innerEnd). Containment is inclusive on both bounds:
// a window may be booked edge to edge.
func Covers(outerStart, outerEnd, innerStart, innerEnd time.Time) bool {
	return !outerStart.After(innerStart) && !outerEnd.Before(innerEnd)
}
