package dom

// DOMRect represents a rectangle in the DOM.
// It implements the DOMRect interface per the Geometry Interfaces spec.
// https://drafts.fxtf.org/geometry/#DOMRect
type DOMRect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewDOMRect creates a new DOMRect with the given dimensions.
func NewDOMRect(x, y, width, height float64) *DOMRect {
	return &DOMRect{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// Top returns the top edge (y for positive height, y + height for negative).
func (r *DOMRect) Top() float64 {
	if r.Height < 0 {
		return r.Y + r.Height
	}
	return r.Y
}

// Right returns the right edge (x + width for positive width, x for negative).
func (r *DOMRect) Right() float64 {
	if r.Width < 0 {
		return r.X
	}
	return r.X + r.Width
}

// Bottom returns the bottom edge (y + height for positive height, y for negative).
func (r *DOMRect) Bottom() float64 {
	if r.Height < 0 {
		return r.Y
	}
	return r.Y + r.Height
}

// Left returns the left edge (x for positive width, x + width for negative).
func (r *DOMRect) Left() float64 {
	if r.Width < 0 {
		return r.X + r.Width
	}
	return r.X
}

// Area returns the area of the rectangle.
func (r *DOMRect) Area() float64 {
	return (r.Right() - r.Left()) * (r.Bottom() - r.Top())
}

// Intersection returns the intersection of this rectangle with other, or nil
// if the two do not intersect. Edge-adjacent rectangles intersect with a
// zero-area result, per the intersection observer processing model.
func (r *DOMRect) Intersection(other *DOMRect) *DOMRect {
	left := r.Left()
	if other.Left() > left {
		left = other.Left()
	}
	top := r.Top()
	if other.Top() > top {
		top = other.Top()
	}
	right := r.Right()
	if other.Right() < right {
		right = other.Right()
	}
	bottom := r.Bottom()
	if other.Bottom() < bottom {
		bottom = other.Bottom()
	}
	if left > right || top > bottom {
		return nil
	}
	return NewDOMRect(left, top, right-left, bottom-top)
}

// ExpandedBy returns a copy of this rectangle grown by the given edge
// offsets. Negative offsets shrink the rectangle.
func (r *DOMRect) ExpandedBy(top, right, bottom, left float64) *DOMRect {
	return NewDOMRect(
		r.Left()-left,
		r.Top()-top,
		(r.Right()-r.Left())+left+right,
		(r.Bottom()-r.Top())+top+bottom,
	)
}
