package risk

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Model is the narrow capability the engine needs from a trained scoring
// model: a raw score and a per-feature contribution breakdown for the same
// vector. Any implementation satisfies it, including deterministic test stubs.
type Model interface {
	Score(vec FeatureVector) (float64, error)
	Explain(vec FeatureVector) (map[string]float64, error)
}

// BaselineModel is a deterministic weighted scorer. It stands in for the
// trained gradient-boosted model when no artifact is deployed and doubles as
// the reference implementation for tests. Weights can be replaced by a
// metadata file exported alongside a trained model.
type BaselineModel struct {
	bias    float64
	weights map[string]float64
}

// baselineWeights reflect the trained model's feature importances: suitability
// and match scores push conditions up, stress indicators pull them down.
// Features absent from the table (raw coordinates, encodings, crop constants)
// carry zero weight.
var baselineWeights = map[string]float64{
	"region_suitable": 10,
	"season_suitable": 10,
	"temp_match":      15,
	"water_match":     10,
	"moisture_match":  5,
	"ndvi_score":      10,
	"frost_risk":      -20,
	"drought_risk":    -25,
}

const baselineBias = 50

// NewBaselineModel returns the baseline scorer with built-in weights.
func NewBaselineModel() *BaselineModel {
	return &BaselineModel{bias: baselineBias, weights: baselineWeights}
}

type modelMetadata struct {
	Bias    float64            `json:"bias"`
	Weights map[string]float64 `json:"weights"`
}

// LoadBaselineModel reads bias and weights from a model metadata JSON file.
// Weight keys must belong to the feature schema.
func LoadBaselineModel(path string) (*BaselineModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model metadata: %w", err)
	}
	var meta modelMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse model metadata: %w", err)
	}
	if len(meta.Weights) == 0 {
		return nil, fmt.Errorf("model metadata %s has no weights", path)
	}
	schema := make(map[string]struct{}, len(FeatureNames))
	for _, name := range FeatureNames {
		schema[name] = struct{}{}
	}
	for name := range meta.Weights {
		if _, ok := schema[name]; !ok {
			return nil, fmt.Errorf("model metadata %s references unknown feature %q", path, name)
		}
	}
	return &BaselineModel{bias: meta.Bias, weights: meta.Weights}, nil
}

// Score computes the raw risk score. The result is not clamped here; range
// enforcement belongs to Interpret so upstream drift stays visible.
func (m *BaselineModel) Score(vec FeatureVector) (float64, error) {
	score := m.bias
	for name, w := range m.weights {
		score += w * vec[name]
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, fmt.Errorf("%w: baseline score is %v", ErrModelUpstream, score)
	}
	return score, nil
}

// Explain returns the signed contribution of every schema feature. Zero-weight
// features contribute zero, keeping the attribution schema stable.
func (m *BaselineModel) Explain(vec FeatureVector) (map[string]float64, error) {
	contrib := make(map[string]float64, len(FeatureNames))
	for _, name := range FeatureNames {
		contrib[name] = m.weights[name] * vec[name]
	}
	return contrib, nil
}
