package usecases

import (
	"cmp"
	"errors"
	"math/rand"
	"sort"
)

var errNoCandidates = errors.New("no candidate with positive weight")

// weightedChoice picks one key from a map of raw non-negative weights. The
// weights need not be normalized; a weight of zero is never selectable.
// Keys are visited in sorted order so a seeded generator is reproducible.
func weightedChoice[K cmp.Ordered](rng *rand.Rand, weights map[K]float64) (K, error) {
	var zero K
	keys := make([]K, 0, len(weights))
	total := 0.0
	for key, weight := range weights {
		if weight <= 0 {
			continue
		}
		keys = append(keys, key)
		total += weight
	}
	if total <= 0 {
		return zero, errNoCandidates
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	target := rng.Float64() * total
	acc := 0.0
	for _, key := range keys {
		acc += weights[key]
		if target < acc {
			return key, nil
		}
	}
	// float accumulation can land exactly on total
	return keys[len(keys)-1], nil
}

// sampleWithoutReplacement draws size distinct keys, removing each pick
// from the candidate set before the next draw (weights renormalize
// implicitly). Fails when fewer than size keys carry positive weight.
func sampleWithoutReplacement[K cmp.Ordered](rng *rand.Rand, weights map[K]float64, size int) ([]K, error) {
	remaining := make(map[K]float64, len(weights))
	for key, weight := range weights {
		remaining[key] = weight
	}
	picked := make([]K, 0, size)
	for len(picked) < size {
		key, err := weightedChoice(rng, remaining)
		if err != nil {
			return nil, err
		}
		picked = append(picked, key)
		delete(remaining, key)
	}
	return picked, nil
}

// positiveWeightCount reports how many keys are currently selectable.
func positiveWeightCount[K cmp.Ordered](weights map[K]float64) int {
	count := 0
	for _, weight := range weights {
		if weight > 0 {
			count++
		}
	}
	return count
}

func copyWeights[K cmp.Ordered](weights map[K]float64) map[K]float64 {
	copied := make(map[K]float64, len(weights))
	for key, weight := range weights {
		copied[key] = weight
	}
	return copied
}
