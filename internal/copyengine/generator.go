package copyengine

import (
	"github.com/BerylCAtieno/outreach-copy-agent/internal/hooks"
	"github.com/BerylCAtieno/outreach-copy-agent/internal/models"
)

// GenerateTemplates builds up to count variations from the hook catalog,
// each on a different hook. When count exceeds the catalog size only one
// variation per hook is produced. Ids run 1..k in draw order.
func GenerateTemplates(p models.ClientProfile, count int, rnd Rand) ([]models.Variation, error) {
	s := newSession(p, rnd)
	keys := sampleKeys(rnd, hooks.Keys(), count)

	variations := make([]models.Variation, 0, len(keys))
	for i, key := range keys {
		v, err := s.compose(key, i+1)
		if err != nil {
			return nil, err
		}
		variations = append(variations, v)
	}
	return variations, nil
}
