package taxid

// Source is the randomness Random needs. *math/rand/v2.Rand satisfies it.
type Source interface {
	// IntN returns a uniform value in [0, n).
	IntN(n int) int
	// Shuffle permutes n elements using swap.
	Shuffle(n int, swap func(i, j int))
}

// Number of distinct identifiers Random can produce.
const (
	// PartitionCapacity is the count for one fixed leading digit:
	// 10 doubled values * 9 absent values * 10!/2! arrangements / 10 leading values.
	PartitionCapacity = 16_329_600
	// RandomCapacity covers all nine non-zero leading digits.
	RandomCapacity = 9 * PartitionCapacity
)

// canonical holds every digit exactly once, leading digit non-zero.
var canonical = [BodyLength]uint8{1, 2, 3, 4, 5, 6, 7, 8, 9, 0}

// Random builds a random identifier that always passes Validate.
// One body value is overwritten with another, so the body always has the
// ShapeOneDouble distribution; ShapeOneTriple is never produced.
func Random(src Source) ID {
	body := canonical

	i1 := src.IntN(BodyLength)
	i2 := (i1 + 1 + src.IntN(BodyLength-1)) % BodyLength
	body[i1] = body[i2]

	for {
		src.Shuffle(BodyLength, func(i, j int) {
			body[i], body[j] = body[j], body[i]
		})
		if body[0] != 0 {
			break
		}
	}

	var id ID
	copy(id.digits[:], body[:])
	id.digits[BodyLength] = CheckDigit(body)
	return id
}
