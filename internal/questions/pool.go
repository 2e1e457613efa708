package questions

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/levelup/internal/model"
)

// Pool is the persistent store of pre-generated questions.
type Pool interface {
	FindQuestions(ctx context.Context, subjectID, levelID string) ([]model.Question, error)
	CountByLevel(ctx context.Context, subjectID string) (map[string]int, error)
	SaveQuestions(ctx context.Context, qs []model.Question) error
}

// Sampler draws questions without replacement. It is safe for concurrent
// use.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a Sampler drawing from src, or from a time-seeded PCG
// source when src is nil.
func NewSampler(src rand.Source) *Sampler {
	if src == nil {
		seed := uint64(time.Now().UnixNano())
		src = rand.NewPCG(seed, seed>>32|1)
	}
	return &Sampler{rng: rand.New(src)}
}

// Sample returns k distinct elements of qs chosen uniformly at random. qs
// is not modified. When k >= len(qs) every element is returned in shuffled
// order.
func (s *Sampler) Sample(qs []model.Question, k int) []model.Question {
	n := len(qs)
	if k > n {
		k = n
	}
	if k <= 0 {
		return nil
	}

	out := make([]model.Question, n)
	copy(out, qs)

	s.mu.Lock()
	defer s.mu.Unlock()
	// Partial Fisher-Yates: after step i, out[:i+1] is a uniform sample.
	for i := 0; i < k; i++ {
		j := i + s.rng.IntN(n-i)
		out[i], out[j] = out[j], out[i]
	}
	return out[:k]
}
