package css

import "fmt"

// PropertyRootMargin is the internal property name used to parse an
// intersection observer root margin value.
const PropertyRootMargin = "intersection-observer-root-margin"

// MarginUnit is the unit of a root margin component.
type MarginUnit int

const (
	// UnitPx is an absolute pixel length.
	UnitPx MarginUnit = iota
	// UnitPercent is a percentage of the root rectangle's dimension.
	UnitPercent
)

// MarginComponent is one edge of a root margin: a pixel length or a
// percentage.
type MarginComponent struct {
	Value float64
	Unit  MarginUnit
}

// Resolve returns the component's value in pixels. Percentages resolve
// against the given reference dimension.
func (c MarginComponent) Resolve(reference float64) float64 {
	if c.Unit == UnitPercent {
		return c.Value / 100 * reference
	}
	return c.Value
}

func (c MarginComponent) String() string {
	if c.Unit == UnitPercent {
		return fmt.Sprintf("%v%%", c.Value)
	}
	return fmt.Sprintf("%vpx", c.Value)
}

// MarginValue is a parsed root margin: one component per edge, in the CSS
// top/right/bottom/left order.
type MarginValue struct {
	Top    MarginComponent
	Right  MarginComponent
	Bottom MarginComponent
	Left   MarginComponent
}

func (m *MarginValue) String() string {
	return fmt.Sprintf("%v %v %v %v", m.Top, m.Right, m.Bottom, m.Left)
}

// SourceLocation identifies where a parsed value came from, for error
// reporting.
type SourceLocation struct {
	File   string
	Line   int
	Column int
}

// ParsePropertyValue parses a single CSS property value. The only property
// this package understands is PropertyRootMargin; asking for any other
// property is an error.
//
// A root margin is a space-separated list of one to four components, each a
// pixel length, a percentage, or a unitless zero, following the CSS shorthand
// rules for filling in missing edges.
// https://www.w3.org/TR/intersection-observer/#parse-a-root-margin
func ParsePropertyValue(property, value string, location SourceLocation) (*MarginValue, error) {
	if property != PropertyRootMargin {
		return nil, fmt.Errorf("css: unsupported property %q at %s:%d:%d",
			property, location.File, location.Line, location.Column)
	}

	tokens := Tokenize(value)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("css: empty %s value at %s:%d:%d",
			property, location.File, location.Line, location.Column)
	}
	if len(tokens) > 4 {
		return nil, fmt.Errorf("css: %s accepts at most four components, got %d",
			property, len(tokens))
	}

	components := make([]MarginComponent, 0, 4)
	for _, tok := range tokens {
		c, err := marginComponent(tok)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}

	// CSS shorthand edge expansion: 1 value applies to all edges, 2 values
	// are vertical/horizontal, 3 values are top/horizontal/bottom.
	switch len(components) {
	case 1:
		components = append(components, components[0], components[0], components[0])
	case 2:
		components = append(components, components[0], components[1])
	case 3:
		components = append(components, components[1])
	}

	return &MarginValue{
		Top:    components[0],
		Right:  components[1],
		Bottom: components[2],
		Left:   components[3],
	}, nil
}

// marginComponent converts a token into a margin component. Only px lengths
// and percentages are valid; a plain number is accepted only when it is zero.
func marginComponent(tok Token) (MarginComponent, error) {
	switch tok.Type {
	case TokenDimension:
		if tok.Unit != "px" {
			return MarginComponent{}, fmt.Errorf(
				"css: root margin lengths must be in pixels, got %q", tok.Value+tok.Unit)
		}
		return MarginComponent{Value: tok.NumValue, Unit: UnitPx}, nil
	case TokenPercentage:
		return MarginComponent{Value: tok.NumValue, Unit: UnitPercent}, nil
	case TokenNumber:
		if tok.NumValue != 0 {
			return MarginComponent{}, fmt.Errorf(
				"css: root margin component %q is missing a unit", tok.Value)
		}
		return MarginComponent{Value: 0, Unit: UnitPx}, nil
	default:
		return MarginComponent{}, fmt.Errorf("css: unexpected token %s in root margin", tok)
	}
}
