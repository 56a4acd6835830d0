package meal

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
)

// ErrEmptyDataset is returned when a dataset has no samples.
var ErrEmptyDataset = errors.New("meal dataset is empty")

//go:embed samples.json
var samplesJSON []byte

// Dataset is an immutable, ordered list of samples. Order is significant:
// ties in scoring are won by the earlier sample.
type Dataset struct {
	samples []Sample
}

// NewDataset validates samples and returns a dataset holding a private copy.
func NewDataset(samples []Sample) (*Dataset, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyDataset
	}
	for i, s := range samples {
		if s.Meal == "" {
			return nil, fmt.Errorf("sample %d: missing meal name", i)
		}
		for _, attr := range Attributes {
			if s.Value(attr) == "" {
				return nil, fmt.Errorf("sample %d (%s): missing %s", i, s.Meal, attr)
			}
		}
	}
	cp := make([]Sample, len(samples))
	copy(cp, samples)
	return &Dataset{samples: cp}, nil
}

// ParseDataset decodes a JSON array of samples.
func ParseDataset(data []byte) (*Dataset, error) {
	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("failed to unmarshal samples: %w", err)
	}
	return NewDataset(samples)
}

var (
	defaultOnce    sync.Once
	defaultDataset *Dataset
	defaultErr     error
)

// Default returns the built-in dataset. It is decoded once per process.
func Default() (*Dataset, error) {
	defaultOnce.Do(func() {
		defaultDataset, defaultErr = ParseDataset(samplesJSON)
	})
	return defaultDataset, defaultErr
}

// Len returns the number of samples.
func (d *Dataset) Len() int {
	return len(d.samples)
}

// At returns the i-th sample.
func (d *Dataset) At(i int) Sample {
	return d.samples[i]
}

// Samples returns a copy of all samples in dataset order.
func (d *Dataset) Samples() []Sample {
	cp := make([]Sample, len(d.samples))
	copy(cp, d.samples)
	return cp
}

// ByMood returns the indexes of samples whose mood equals mood.
func (d *Dataset) ByMood(mood string) []int {
	var idx []int
	for i, s := range d.samples {
		if s.Mood == mood {
			idx = append(idx, i)
		}
	}
	return idx
}
