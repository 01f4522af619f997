package risk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrorisk-copilot/loan-portal-backend/internal/catalog"
)

// stubModel scores by crop identity so recommendation ordering is fully
// controlled by the test.
type stubModel struct {
	catalog       *catalog.Catalog
	scores        map[string]float64
	defaultScore  float64
	contributions map[string]float64
	failCrops     map[string]bool // Score errors for these crops
}

func (m *stubModel) Score(vec FeatureVector) (float64, error) {
	encoded := vec["crop_encoded"]
	for name := range m.failCrops {
		if m.catalog.EncodeCrop(name) == encoded {
			return 0, fmt.Errorf("no score for %s", name)
		}
	}
	for name, score := range m.scores {
		if m.catalog.EncodeCrop(name) == encoded {
			return score, nil
		}
	}
	return m.defaultScore, nil
}

func (m *stubModel) Explain(vec FeatureVector) (map[string]float64, error) {
	if m.contributions != nil {
		return m.contributions, nil
	}
	return map[string]float64{"temp_match": 1}, nil
}

func TestRecommendStrictlyBetterOnly(t *testing.T) {
	c := catalog.New()
	model := &stubModel{
		catalog: c,
		scores: map[string]float64{
			"wheat":  80,
			"melon":  75,
			"onion":  55, // equals base, must be excluded
			"carrot": 40,
		},
		defaultScore: 10,
	}
	r := NewRecommender(c, NewAssembler(c), model)

	loc, err := c.LookupLocation("Tashkent Region", "Chirchiq")
	require.NoError(t, err)

	recs := r.Recommend(loc, 6, "cotton", goodSnapshot(), 55)

	require.Len(t, recs, 2)
	assert.Equal(t, "wheat", recs[0].Crop)
	assert.Equal(t, 80.0, recs[0].Score)
	assert.Equal(t, "melon", recs[1].Crop)
	for _, rec := range recs {
		assert.Greater(t, rec.Score, 55.0)
		assert.NotEqual(t, "cotton", rec.Crop)
	}
}

func TestRecommendCapAndTieBreak(t *testing.T) {
	c := catalog.New()
	// Every crop beats the base with the same score; the cap and the lexical
	// tie-break decide the output.
	model := &stubModel{catalog: c, defaultScore: 90}
	r := NewRecommender(c, NewAssembler(c), model)

	loc, err := c.LookupLocation("Tashkent Region", "Chirchiq")
	require.NoError(t, err)

	recs := r.Recommend(loc, 6, "cotton", goodSnapshot(), 10)

	require.Len(t, recs, MaxRecommendations)
	assert.Equal(t, "alfalfa", recs[0].Crop)
	assert.Equal(t, "apple", recs[1].Crop)
	assert.Equal(t, "carrot", recs[2].Crop)
}

func TestRecommendExcludedCropCaseInsensitive(t *testing.T) {
	c := catalog.New()
	model := &stubModel{catalog: c, defaultScore: 90}
	r := NewRecommender(c, NewAssembler(c), model)

	loc, err := c.LookupLocation("Tashkent Region", "Chirchiq")
	require.NoError(t, err)

	recs := r.Recommend(loc, 6, "  Alfalfa ", goodSnapshot(), 10)

	for _, rec := range recs {
		assert.NotEqual(t, "alfalfa", rec.Crop)
	}
}

func TestRecommendReason(t *testing.T) {
	c := catalog.New()
	model := &stubModel{
		catalog:      c,
		defaultScore: 90,
		contributions: map[string]float64{
			"water_match": 40,
			"frost_risk":  -5,
		},
	}
	r := NewRecommender(c, NewAssembler(c), model)

	loc, err := c.LookupLocation("Tashkent Region", "Chirchiq")
	require.NoError(t, err)

	recs := r.Recommend(loc, 6, "cotton", goodSnapshot(), 10)
	require.NotEmpty(t, recs)
	assert.Equal(t, "favorable water availability", recs[0].Reason)
}

func TestRecommendGenericReason(t *testing.T) {
	c := catalog.New()
	// Only negative contributions: nothing dominates positively.
	model := &stubModel{
		catalog:       c,
		defaultScore:  90,
		contributions: map[string]float64{"frost_risk": -30},
	}
	r := NewRecommender(c, NewAssembler(c), model)

	loc, err := c.LookupLocation("Tashkent Region", "Chirchiq")
	require.NoError(t, err)

	recs := r.Recommend(loc, 6, "cotton", goodSnapshot(), 10)
	require.NotEmpty(t, recs)
	assert.Equal(t, genericReason, recs[0].Reason)
}

func TestRecommendSkipsFailingCandidates(t *testing.T) {
	c := catalog.New()
	model := &stubModel{
		catalog:      c,
		defaultScore: 90,
		failCrops:    map[string]bool{"alfalfa": true},
	}
	r := NewRecommender(c, NewAssembler(c), model)

	loc, err := c.LookupLocation("Tashkent Region", "Chirchiq")
	require.NoError(t, err)

	recs := r.Recommend(loc, 6, "cotton", goodSnapshot(), 10)

	// alfalfa would have led the lexical tie-break; its scoring failure must
	// drop it alone, not the whole set.
	require.Len(t, recs, MaxRecommendations)
	assert.Equal(t, "apple", recs[0].Crop)
	for _, rec := range recs {
		assert.NotEqual(t, "alfalfa", rec.Crop)
	}
}

func TestRecommendNoneBetter(t *testing.T) {
	c := catalog.New()
	model := &stubModel{catalog: c, defaultScore: 20}
	r := NewRecommender(c, NewAssembler(c), model)

	loc, err := c.LookupLocation("Tashkent Region", "Chirchiq")
	require.NoError(t, err)

	recs := r.Recommend(loc, 6, "cotton", goodSnapshot(), 95)
	assert.Empty(t, recs)
}
