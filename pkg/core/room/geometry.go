package room

import "fmt"

// Point is an integer grid coordinate.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Neg returns -p.
func (p Point) Neg() Point { return Point{-p.X, -p.Y} }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Bounds is an axis-aligned rectangle. Both corners are inclusive.
type Bounds struct {
	Lower Point `json:"lower" yaml:"lower"`
	Upper Point `json:"upper" yaml:"upper"`
}

// Width returns the number of columns covered.
func (b Bounds) Width() int { return b.Upper.X - b.Lower.X + 1 }

// Height returns the number of rows covered.
func (b Bounds) Height() int { return b.Upper.Y - b.Lower.Y + 1 }

// Translate shifts both corners by d.
func (b Bounds) Translate(d Point) Bounds {
	return Bounds{Lower: b.Lower.Add(d), Upper: b.Upper.Add(d)}
}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Lower.X && p.X <= b.Upper.X && p.Y >= b.Lower.Y && p.Y <= b.Upper.Y
}

// Valid reports whether Lower is component-wise not greater than Upper.
func (b Bounds) Valid() bool {
	return b.Lower.X <= b.Upper.X && b.Lower.Y <= b.Upper.Y
}

// Overlaps reports whether the closed intervals of a and b intersect on
// both axes. Rectangles that only share an edge or a corner overlap.
func (b Bounds) Overlaps(o Bounds) bool {
	return intervalsOverlap(b.Lower.X, b.Upper.X, o.Lower.X, o.Upper.X) &&
		intervalsOverlap(b.Lower.Y, b.Upper.Y, o.Lower.Y, o.Upper.Y)
}

// Union returns the smallest Bounds enclosing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		Lower: Point{min(b.Lower.X, o.Lower.X), min(b.Lower.Y, o.Lower.Y)},
		Upper: Point{max(b.Upper.X, o.Upper.X), max(b.Upper.Y, o.Upper.Y)},
	}
}

func (b Bounds) String() string { return b.Lower.String() + "-" + b.Upper.String() }

func intervalsOverlap(aMin, aMax, bMin, bMax int) bool {
	return max(aMin, bMin) <= min(aMax, bMax)
}
