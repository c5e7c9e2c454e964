package shared

import "math"

// Position represents an immutable 2D location on the battlefield.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo calculates Euclidean distance to another position.
func (p Position) DistanceTo(other Position) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp linearly interpolates between p and other by t in [0,1].
func (p Position) Lerp(other Position, t float64) Position {
	return Position{
		X: p.X + (other.X-p.X)*t,
		Y: p.Y + (other.Y-p.Y)*t,
	}
}
