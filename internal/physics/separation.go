package physics

import "github.com/san-kum/nbodysim/internal/dynamo"

// DegenerateDistance is the separation below which a pair has no usable
// direction.
const DegenerateDistance = 1e-9

var fallbackNormal = dynamo.Vec2{X: 1}

// separation returns the distance from a to b and the unit normal pointing
// from a to b. Coincident points get fallbackNormal and degenerate=true.
func separation(a, b dynamo.Vec2) (dist float64, normal dynamo.Vec2, degenerate bool) {
	d := b.Sub(a)
	dist = d.Len()
	if dist < DegenerateDistance {
		return dist, fallbackNormal, true
	}
	return dist, d.Div(dist), false
}
