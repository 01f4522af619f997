package risk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaselineModelScoreAndExplain(t *testing.T) {
	c := testCatalog(t)
	a := NewAssembler(c)
	model := NewBaselineModel()

	vec, err := a.Assemble(mustLocation(t, c), mustCrop(t, c, "cotton"), goodSnapshot(), 6)
	require.NoError(t, err)

	raw, err := model.Score(vec)
	require.NoError(t, err)
	assert.Greater(t, raw, 70.0, "favorable cotton conditions should score low-risk")

	contributions, err := model.Explain(vec)
	require.NoError(t, err)
	assert.Len(t, contributions, len(FeatureNames))

	// Features without a weight contribute exactly zero.
	assert.Equal(t, 0.0, contributions["latitude"])
	// Weighted features carry weight times value.
	assert.Equal(t, 10.0, contributions["region_suitable"])
}

func TestLoadBaselineModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model_metadata.json")
	content := `{
		"bias": 40,
		"weights": {"region_suitable": 20, "drought_risk": -30}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	model, err := LoadBaselineModel(path)
	require.NoError(t, err)

	c := testCatalog(t)
	vec, err := NewAssembler(c).Assemble(mustLocation(t, c), mustCrop(t, c, "cotton"), goodSnapshot(), 6)
	require.NoError(t, err)

	raw, err := model.Score(vec)
	require.NoError(t, err)
	// region_suitable=1, drought_risk=0: 40 + 20.
	assert.Equal(t, 60.0, raw)
}

func TestLoadBaselineModelMissingFile(t *testing.T) {
	_, err := LoadBaselineModel(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadBaselineModelRejectsUnknownFeature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model_metadata.json")
	content := `{"bias": 50, "weights": {"not_a_feature": 10}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := LoadBaselineModel(path)
	assert.Error(t, err)
}
