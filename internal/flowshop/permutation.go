package flowshop

import (
	"fmt"
	"math/rand"
)

func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: length must be %d (got %d)", ErrMalformedPermutation, n, len(perm))
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return fmt.Errorf("%w: perm[%d]=%d out of range [0,%d)", ErrMalformedPermutation, i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("%w: duplicate job id %d", ErrMalformedPermutation, v)
		}
		seen[v] = true
	}
	return nil
}

func IdentityPermutation(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func Shuffle(p []int, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}
