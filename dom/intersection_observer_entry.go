package dom

import "time"

// entryTimeOrigin anchors entry timestamps, mirroring a document's
// performance time origin.
var entryTimeOrigin = time.Now()

// currentHighResTime returns milliseconds since the time origin.
func currentHighResTime() float64 {
	return float64(time.Since(entryTimeOrigin).Nanoseconds()) / 1e6
}

// IntersectionObserverEntry describes one computed intersection between a
// target element and an observer's root at one point in time.
// https://www.w3.org/TR/intersection-observer/#intersection-observer-entry
type IntersectionObserverEntry struct {
	Time               float64  // Milliseconds relative to the time origin
	RootBounds         *DOMRect // Root intersection rectangle (root expanded by margin)
	BoundingClientRect *DOMRect // Target border box
	IntersectionRect   *DOMRect // Intersection of the two, empty when disjoint
	IsIntersecting     bool
	IntersectionRatio  float64
	Target             *Element
}

// NewIntersectionObserverEntry creates an entry stamped with the current
// high-resolution time.
func NewIntersectionObserverEntry(
	rootBounds *DOMRect,
	boundingClientRect *DOMRect,
	intersectionRect *DOMRect,
	isIntersecting bool,
	intersectionRatio float64,
	target *Element,
) *IntersectionObserverEntry {
	return &IntersectionObserverEntry{
		Time:               currentHighResTime(),
		RootBounds:         rootBounds,
		BoundingClientRect: boundingClientRect,
		IntersectionRect:   intersectionRect,
		IsIntersecting:     isIntersecting,
		IntersectionRatio:  intersectionRatio,
		Target:             target,
	}
}
