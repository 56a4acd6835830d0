package meal

import (
	"math/rand/v2"
	"sync"
)

// Fallback scoring policy.
const (
	// StrongMatchScore is the lowest best score accepted without fallback.
	StrongMatchScore = 5
	// MoodFallbackScore is reported for a random pick among same-mood samples.
	MoodFallbackScore = 5
	// RandomFallbackScore is reported for a random pick from the whole dataset.
	RandomFallbackScore = 1
)

// RandSource picks uniformly in [0, n). *rand.Rand from math/rand/v2
// satisfies it.
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// lockedRand serializes a seeded generator so it can be shared by handlers.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededRand returns a goroutine-safe source with a reproducible sequence.
func NewSeededRand(seed uint64) RandSource {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

// Recommender ranks the samples of a dataset against user inputs.
// It holds no mutable state and is safe for concurrent use as long as its
// RandSource is.
type Recommender struct {
	dataset *Dataset
	weights Weights
	rand    RandSource
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithWeights overrides the weight table.
func WithWeights(w Weights) Option {
	return func(r *Recommender) { r.weights = w }
}

// WithRand sets the random source used by the fallback picks.
func WithRand(src RandSource) Option {
	return func(r *Recommender) {
		if src != nil {
			r.rand = src
		}
	}
}

// NewRecommender creates a Recommender over dataset.
func NewRecommender(dataset *Dataset, opts ...Option) (*Recommender, error) {
	if dataset == nil || dataset.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	r := &Recommender{
		dataset: dataset,
		weights: DefaultWeights,
		rand:    globalRand{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.weights = r.Weights()
	return r, nil
}

// Weights returns a copy of the weight table in use.
func (r *Recommender) Weights() Weights {
	w := make(Weights, len(r.weights))
	for k, v := range r.weights {
		w[k] = v
	}
	return w
}

// MaxScore returns the highest score a recommendation can carry.
func (r *Recommender) MaxScore() int {
	return r.weights.Max()
}

// Recommend returns the best matching sample for inputs. The first sample
// reaching the highest score wins. When no sample reaches StrongMatchScore a
// random sample sharing the input mood is returned, or failing that a random
// sample from the whole dataset.
func (r *Recommender) Recommend(inputs UserInputs) Result {
	best, bestScore := -1, 0
	for i, s := range r.dataset.samples {
		if score := r.weights.Score(inputs, s.Profile); score > bestScore {
			best, bestScore = i, score
		}
	}

	if best >= 0 && bestScore >= StrongMatchScore {
		return resultFor(r.dataset.samples[best], bestScore, StrategyBestMatch)
	}

	if moods := r.dataset.ByMood(inputs.Mood); len(moods) > 0 {
		pick := moods[r.rand.IntN(len(moods))]
		return resultFor(r.dataset.samples[pick], MoodFallbackScore, StrategyMoodFallback)
	}

	pick := r.rand.IntN(len(r.dataset.samples))
	return resultFor(r.dataset.samples[pick], RandomFallbackScore, StrategyRandomFallback)
}

func resultFor(s Sample, score int, strategy Strategy) Result {
	return Result{
		Meal:       s.Meal,
		Category:   s.Category,
		Reason:     s.Reason,
		MatchScore: score,
		Strategy:   strategy,
	}
}
