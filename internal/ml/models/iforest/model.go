package iforest

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	goiforest "github.com/narumiruna/go-iforest/pkg/iforest"
)

// Artifact is the on-disk format for the optional input-anomaly model: an
// isolation forest fitted offline over historical feature vectors, plus the
// per-feature normalizer it was fitted with.
type Artifact struct {
	SchemaVersion int                   `json:"schema_version"`
	FeatureNames  []string              `json:"feature_names"`
	Means         []float64             `json:"means"`
	Stds          []float64             `json:"stds"`
	Options       goiforest.Options     `json:"options"`
	Trees         []*goiforest.TreeNode `json:"trees"`
}

// Model scores how unusual a weekly input vector looks relative to the
// history the forest was fitted on. Read-only after load.
type Model struct {
	artifact Artifact
	forest   *goiforest.IsolationForest
}

// FitOptions controls offline fitting of the advisory forest.
type FitOptions struct {
	NumTrees   int
	SampleSize int
}

func DefaultFitOptions() FitOptions {
	return FitOptions{NumTrees: 100, SampleSize: 128}
}

// Fit builds an anomaly model from historical samples. Only used by offline
// tooling and tests; the application loads a pre-fitted artifact.
func Fit(samples [][]float64, featureNames []string, schemaVersion int, opts FitOptions) (*Model, error) {
	if len(samples) == 0 {
		return nil, errors.New("empty fitting dataset")
	}
	if len(samples[0]) == 0 {
		return nil, errors.New("empty feature vectors")
	}
	if len(featureNames) != len(samples[0]) {
		return nil, fmt.Errorf("have %d feature names for %d features", len(featureNames), len(samples[0]))
	}
	if opts.NumTrees <= 0 {
		opts.NumTrees = DefaultFitOptions().NumTrees
	}
	if opts.SampleSize <= 0 {
		opts.SampleSize = DefaultFitOptions().SampleSize
	}

	means, stds := fitNormalizer(samples)
	normalized := normalizeBatch(samples, means, stds)

	options := goiforest.Options{
		DetectionType: goiforest.DetectionTypeThreshold,
		Threshold:     0.6,
		NumTrees:      opts.NumTrees,
		SampleSize:    opts.SampleSize,
	}
	forest := goiforest.NewWithOptions(options)
	forest.Fit(normalized)

	a := Artifact{
		SchemaVersion: schemaVersion,
		FeatureNames:  append([]string(nil), featureNames...),
		Means:         means,
		Stds:          stds,
		Options:       *forest.Options,
		Trees:         forest.Trees,
	}
	return &Model{artifact: a, forest: forest}, nil
}

// Load reads and deserializes an anomaly artifact from disk.
func Load(path string) (*Model, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read anomaly artifact: %w", err)
	}
	return UnmarshalBinary(blob)
}

func UnmarshalBinary(blob []byte) (*Model, error) {
	if len(blob) == 0 {
		return nil, errors.New("empty artifact")
	}
	var a Artifact
	if err := json.Unmarshal(blob, &a); err != nil {
		return nil, fmt.Errorf("decode anomaly artifact: %w", err)
	}
	if len(a.Means) == 0 || len(a.Means) != len(a.Stds) || len(a.Trees) == 0 {
		return nil, errors.New("invalid anomaly artifact")
	}
	forest := goiforest.NewWithOptions(a.Options)
	forest.Trees = a.Trees
	return &Model{artifact: a, forest: forest}, nil
}

func (m *Model) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, errors.New("nil model")
	}
	return json.Marshal(m.artifact)
}

// PredictScore returns an anomaly score in [0,1]; higher means the sample
// looks less like the fitting history. Dimension mismatches score 0 rather
// than erroring since the advisory is best-effort.
func (m *Model) PredictScore(sample []float64) float64 {
	if m == nil || m.forest == nil || len(sample) != len(m.artifact.Means) {
		return 0
	}
	normalized := normalize(sample, m.artifact.Means, m.artifact.Stds)
	scores := m.forest.Score([][]float64{normalized})
	if len(scores) == 0 {
		return 0
	}
	score := scores[0]
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// ValidateSchema checks the artifact's recorded feature contract.
func (m *Model) ValidateSchema(version int, names []string) error {
	if m == nil {
		return errors.New("nil model")
	}
	if m.artifact.SchemaVersion != version {
		return fmt.Errorf("anomaly artifact schema v%d, expected v%d", m.artifact.SchemaVersion, version)
	}
	if len(m.artifact.FeatureNames) != len(names) {
		return fmt.Errorf("anomaly artifact has %d features, expected %d", len(m.artifact.FeatureNames), len(names))
	}
	for i, name := range m.artifact.FeatureNames {
		if name != names[i] {
			return fmt.Errorf("anomaly artifact feature %d is %q, expected %q", i, name, names[i])
		}
	}
	return nil
}

func fitNormalizer(samples [][]float64) ([]float64, []float64) {
	featureCount := len(samples[0])
	means := make([]float64, featureCount)
	stds := make([]float64, featureCount)
	for j := 0; j < featureCount; j++ {
		for i := range samples {
			means[j] += samples[i][j]
		}
		means[j] /= float64(len(samples))
		for i := range samples {
			d := samples[i][j] - means[j]
			stds[j] += d * d
		}
		stds[j] = math.Sqrt(stds[j] / float64(len(samples)))
		if stds[j] == 0 {
			stds[j] = 1
		}
	}
	return means, stds
}

func normalizeBatch(samples [][]float64, means, stds []float64) [][]float64 {
	out := make([][]float64, len(samples))
	for i := range samples {
		out[i] = normalize(samples[i], means, stds)
	}
	return out
}

func normalize(in, means, stds []float64) []float64 {
	out := make([]float64, len(in))
	for i := range in {
		out[i] = (in[i] - means[i]) / stds[i]
	}
	return out
}
