package copyengine

import (
	"math/rand"
	"time"
)

// Rand is the only source of randomness the engine uses. *rand.Rand
// satisfies it; tests supply seeded or scripted sources.
type Rand interface {
	Intn(n int) int
}

// NewRand returns a time-seeded source. Each generation call gets its own,
// since *rand.Rand is not safe for concurrent use.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Seeded returns a factory producing sources that all start from seed.
func Seeded(seed int64) func() Rand {
	return func() Rand { return rand.New(rand.NewSource(seed)) }
}

func pick(r Rand, items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[r.Intn(len(items))]
}

// pickTwo returns two distinct elements; items must hold at least two.
func pickTwo(r Rand, items []string) (string, string) {
	i := r.Intn(len(items))
	j := r.Intn(len(items) - 1)
	if j >= i {
		j++
	}
	return items[i], items[j]
}

// sampleKeys draws k distinct keys uniformly without replacement using a
// partial Fisher-Yates shuffle over a copy of keys.
func sampleKeys(r Rand, keys []string, k int) []string {
	if k > len(keys) {
		k = len(keys)
	}
	if k <= 0 {
		return []string{}
	}
	pool := append([]string(nil), keys...)
	for i := 0; i < k; i++ {
		j := i + r.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
