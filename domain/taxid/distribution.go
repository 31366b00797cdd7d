package taxid

import "fmt"

// Distribution counts how many digit values occur zero, one, two and three or
// more times within a body.
type Distribution [4]int

// Allowed body shapes.
var (
	// ShapeOneDouble is one value twice, eight once, one absent.
	ShapeOneDouble = Distribution{1, 8, 1, 0}
	// ShapeOneTriple is one value three times, seven once, two absent.
	ShapeOneTriple = Distribution{2, 7, 0, 1}
)

// Shape returns the occurrence distribution of body. Digits must be 0-9.
func Shape(body [BodyLength]uint8) Distribution {
	var counts [10]int
	for _, d := range body {
		counts[d]++
	}

	var dist Distribution
	for _, n := range counts {
		if n > 3 {
			n = 3
		}
		dist[n]++
	}
	return dist
}

// Valid reports whether the distribution is one of the allowed shapes.
func (d Distribution) Valid() bool {
	return d == ShapeOneDouble || d == ShapeOneTriple
}

func (d Distribution) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", d[0], d[1], d[2], d[3])
}
