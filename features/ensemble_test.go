package features

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogisticPredictProba(t *testing.T) {
	model := &LogisticModel{Weights: []float64{1, -1}, Intercept: 0}

	prob, err := model.PredictProba([]float64{0, 0})
	require.NoError(t, err)
	require.InDelta(t, 0.5, prob, 1e-9)

	prob, err = model.PredictProba([]float64{10, 0})
	require.NoError(t, err)
	require.Greater(t, prob, 0.99)

	_, err = model.PredictProba([]float64{1})
	require.Error(t, err)
}

func TestTextModelPredictProba(t *testing.T) {
	model := &TextModel{
		ClassLogPrior: [2]float64{-0.7, -0.7},
		TokenLogProb: map[string][2]float64{
			"healthcare": {-1, -3},
			"taxes":      {-3, -1},
		},
		UnseenLogProb: [2]float64{-10, -10},
	}

	require.Less(t, model.PredictProba("healthcare healthcare"), 0.5)
	require.Greater(t, model.PredictProba("taxes taxes"), 0.5)
	// Unknown tokens leave only the (even) priors.
	require.InDelta(t, 0.5, model.PredictProba("zyzzyva"), 1e-9)
}

func TestEnsemble(t *testing.T) {
	prob, republican := Ensemble(0.9, 0.5)
	require.InDelta(t, 0.7, prob, 1e-9)
	require.True(t, republican)

	prob, republican = Ensemble(0.2, 0.4)
	require.InDelta(t, 0.3, prob, 1e-9)
	require.False(t, republican)
}

func TestLoadModels(t *testing.T) {
	dir := t.TempDir()

	basePath := filepath.Join(dir, "base_model.json")
	require.NoError(t, ioutil.WriteFile(basePath, []byte(`{"weights": [0.5, -0.25], "intercept": 0.1}`), 0644))
	base, err := LoadLogisticModel(basePath)
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, -0.25}, base.Weights)

	textPath := filepath.Join(dir, "text_model.json")
	require.NoError(t, ioutil.WriteFile(textPath, []byte(`{
		"class_log_prior": [-0.6, -0.8],
		"token_log_prob": {"vote": [-2, -2.5]},
		"unseen_log_prob": [-9, -9]
	}`), 0644))
	text, err := LoadTextModel(textPath)
	require.NoError(t, err)
	require.InDelta(t, -2.5, text.TokenLogProb["vote"][1], 1e-9)

	_, err = LoadLogisticModel(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}
