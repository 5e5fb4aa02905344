package features

import (
	"encoding/json"
	"io/ioutil"
	"math"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// The ensemble averages the Republican probability of two independently
// trained models: a logistic regression over the base feature row and a
// multinomial naive Bayes over the post text. Weights are exported from
// offline training as JSON files; training itself is out of scope.

// LogisticModel scores the base feature row.
type LogisticModel struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// PredictProba returns P(Republican) for one feature vector.
func (m *LogisticModel) PredictProba(features []float64) (float64, error) {
	if len(features) != len(m.Weights) {
		return 0, errors.Errorf("feature vector has %d columns, model expects %d", len(features), len(m.Weights))
	}
	z := floats.Dot(m.Weights, features) + m.Intercept
	return 1 / (1 + math.Exp(-z)), nil
}

// TextModel is a multinomial naive Bayes over lower-cased tokens.
// Class index 0 is Democrat, 1 is Republican.
type TextModel struct {
	ClassLogPrior [2]float64            `json:"class_log_prior"`
	TokenLogProb  map[string][2]float64 `json:"token_log_prob"`
	UnseenLogProb [2]float64            `json:"unseen_log_prob"`
}

var tokenPattern = regexp.MustCompile(`[a-z0-9#@']+`)

// PredictProba returns P(Republican) for one post text.
func (m *TextModel) PredictProba(text string) float64 {
	logProb := [2]float64{m.ClassLogPrior[0], m.ClassLogPrior[1]}

	for _, token := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if tokenProb, ok := m.TokenLogProb[token]; ok {
			logProb[0] += tokenProb[0]
			logProb[1] += tokenProb[1]
		} else {
			logProb[0] += m.UnseenLogProb[0]
			logProb[1] += m.UnseenLogProb[1]
		}
	}

	// Normalize in log space to avoid underflow on long texts.
	maxLog := math.Max(logProb[0], logProb[1])
	dem := math.Exp(logProb[0] - maxLog)
	rep := math.Exp(logProb[1] - maxLog)
	return rep / (dem + rep)
}

func LoadLogisticModel(path string) (*LogisticModel, error) {
	model := &LogisticModel{}
	if err := loadJSON(path, model); err != nil {
		return nil, err
	}
	if len(model.Weights) == 0 {
		return nil, errors.New("base model has no weights: " + path)
	}
	return model, nil
}

func LoadTextModel(path string) (*TextModel, error) {
	model := &TextModel{}
	if err := loadJSON(path, model); err != nil {
		return nil, err
	}
	return model, nil
}

func loadJSON(path string, out interface{}) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "fail to read model file "+path)
	}
	return errors.Wrap(json.Unmarshal(data, out), "fail to parse model file "+path)
}

// Ensemble averages the two model probabilities. The returned class is
// true for Republican (probability >= 0.5).
func Ensemble(baseProb, textProb float64) (prob float64, republican bool) {
	prob = stat.Mean([]float64{baseProb, textProb}, nil)
	return prob, prob >= 0.5
}
