package gbtree

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Node is one node of a regression tree. Split nodes carry a feature index
// and threshold (go left when value < threshold); leaf nodes carry only the
// leaf weight.
type Node struct {
	Feature   int      `json:"feature,omitempty"`
	Threshold float64  `json:"threshold,omitempty"`
	Left      *Node    `json:"left,omitempty"`
	Right     *Node    `json:"right,omitempty"`
	Leaf      *float64 `json:"leaf,omitempty"`
}

// Artifact is the self-describing on-disk model format. The feature names
// and schema version recorded at training time let the loader reject any
// artifact whose input contract no longer matches the feature builder.
type Artifact struct {
	SchemaVersion int      `json:"schema_version"`
	FeatureNames  []string `json:"feature_names"`
	BaseScore     float64  `json:"base_score"`
	Trees         []*Node  `json:"trees"`
}

// Model is a gradient-boosted regression tree ensemble. It is immutable
// after load and safe for concurrent use.
type Model struct {
	artifact Artifact
}

// New builds a model from its parts. Used by offline tooling and tests to
// produce artifacts; the application itself only ever loads.
func New(schemaVersion int, featureNames []string, baseScore float64, trees []*Node) (*Model, error) {
	m := &Model{artifact: Artifact{
		SchemaVersion: schemaVersion,
		FeatureNames:  append([]string(nil), featureNames...),
		BaseScore:     baseScore,
		Trees:         trees,
	}}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load reads and deserializes a model artifact from disk.
func Load(path string) (*Model, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	return UnmarshalBinary(blob)
}

func UnmarshalBinary(blob []byte) (*Model, error) {
	if len(blob) == 0 {
		return nil, errors.New("empty artifact")
	}
	var a Artifact
	if err := json.Unmarshal(blob, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	m := &Model{artifact: a}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, errors.New("nil model")
	}
	return json.Marshal(m.artifact)
}

// PredictValue evaluates the ensemble on a single sample and returns the raw
// regression output (log-space for the volatility model).
func (m *Model) PredictValue(sample []float64) float64 {
	if m == nil {
		return 0
	}
	out := m.artifact.BaseScore
	for _, tree := range m.artifact.Trees {
		out += evalTree(tree, sample)
	}
	return out
}

// ValidateSchema checks the artifact's recorded feature contract against the
// given one and returns a descriptive error on any mismatch.
func (m *Model) ValidateSchema(version int, names []string) error {
	if m == nil {
		return errors.New("nil model")
	}
	if m.artifact.SchemaVersion != version {
		return fmt.Errorf("model artifact schema v%d, expected v%d", m.artifact.SchemaVersion, version)
	}
	if len(m.artifact.FeatureNames) != len(names) {
		return fmt.Errorf("model artifact has %d features, expected %d", len(m.artifact.FeatureNames), len(names))
	}
	for i, name := range m.artifact.FeatureNames {
		if name != names[i] {
			return fmt.Errorf("model artifact feature %d is %q, expected %q", i, name, names[i])
		}
	}
	return nil
}

func (m *Model) FeatureNames() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.artifact.FeatureNames))
	copy(out, m.artifact.FeatureNames)
	return out
}

func (m *Model) validate() error {
	if len(m.artifact.FeatureNames) == 0 {
		return errors.New("invalid artifact: no feature names")
	}
	if len(m.artifact.Trees) == 0 {
		return errors.New("invalid artifact: no trees")
	}
	for i, tree := range m.artifact.Trees {
		if err := validateTree(tree, len(m.artifact.FeatureNames)); err != nil {
			return fmt.Errorf("invalid artifact: tree %d: %w", i, err)
		}
	}
	return nil
}

func validateTree(n *Node, featureCount int) error {
	if n == nil {
		return errors.New("nil node")
	}
	if n.Leaf != nil {
		if n.Left != nil || n.Right != nil {
			return errors.New("leaf node has children")
		}
		return nil
	}
	if n.Feature < 0 || n.Feature >= featureCount {
		return fmt.Errorf("split on feature %d, out of range [0,%d)", n.Feature, featureCount)
	}
	if n.Left == nil || n.Right == nil {
		return errors.New("split node missing a child")
	}
	if err := validateTree(n.Left, featureCount); err != nil {
		return err
	}
	return validateTree(n.Right, featureCount)
}

func evalTree(n *Node, sample []float64) float64 {
	for n != nil {
		if n.Leaf != nil {
			return *n.Leaf
		}
		if n.Feature >= len(sample) {
			return 0
		}
		if sample[n.Feature] < n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return 0
}

// Leaf is a convenience constructor for leaf nodes.
func Leaf(weight float64) *Node {
	return &Node{Leaf: &weight}
}

// Split is a convenience constructor for split nodes.
func Split(feature int, threshold float64, left, right *Node) *Node {
	return &Node{Feature: feature, Threshold: threshold, Left: left, Right: right}
}
