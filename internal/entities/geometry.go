package entities

// Point is a tile or pixel coordinate
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Manhattan returns |dx| + |dy|
func (p Point) Manhattan(o Point) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Neighbors4 returns the orthogonal neighbours in up, down, left, right order
func (p Point) Neighbors4() [4]Point {
	return [4]Point{
		{X: p.X, Y: p.Y - 1},
		{X: p.X, Y: p.Y + 1},
		{X: p.X - 1, Y: p.Y},
		{X: p.X + 1, Y: p.Y},
	}
}

// Rect is an axis aligned rectangle, half open on the right and bottom
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains holds iff x in [X, X+Width) and y in [Y, Y+Height)
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Intersects reports a non-empty overlap
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Inflate grows the rect by dx on the left and right and dy on the top and bottom
func (r Rect) Inflate(dx, dy int) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, Width: r.Width + 2*dx, Height: r.Height + 2*dy}
}

// Area returns Width * Height
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Center returns the integer centre
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Clamp shifts the rect so it fits inside a width x height space, shrinking if needed
func (r Rect) Clamp(width, height int) Rect {
	r.Width = min(r.Width, width)
	r.Height = min(r.Height, height)
	r.X = max(0, min(r.X, width-r.Width))
	r.Y = max(0, min(r.Y, height-r.Height))
	return r
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
