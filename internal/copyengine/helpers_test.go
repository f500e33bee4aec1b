package copyengine

import "github.com/BerylCAtieno/outreach-copy-agent/internal/models"

// scriptedRand replays seq, reducing each value modulo n.
type scriptedRand struct {
	seq []int
	i   int
}

func (s *scriptedRand) Intn(n int) int {
	v := s.seq[s.i%len(s.seq)]
	s.i++
	return v % n
}

func zeroRand() Rand { return &scriptedRand{seq: []int{0}} }

func acmeProfile() models.ClientProfile {
	return models.ClientProfile{
		ClientName: "Acme",
		Industry:   "SaaS",
		Audience:   "SMB owners",
		Website:    "https://acme.com",
		Strategy:   "Our outreach is too slow and costly.",
	}
}
