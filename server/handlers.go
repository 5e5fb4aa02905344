// Package server is the prediction web front end: one form page and one
// endpoint turning a submitted status URL into a party prediction.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/politimux/politimux/collector/clients"
	"github.com/politimux/politimux/features"
	"github.com/politimux/politimux/normalizer"
	Logger "github.com/politimux/politimux/utils/log"
)

// The fixed set of user-facing failure messages. Fetch and validation
// failures always resolve to one of these plus a neutral display state,
// never an unhandled fault.
const (
	msgInvalidURL    = "Please enter a valid URL for a single Tweet"
	msgTweetNotFound = "Sorry, that Tweet no longer exists"
	msgFetchFailed   = "Something went wrong fetching that Tweet, please try again"
)

const (
	democratColor   = "#4c4cff"
	republicanColor = "#ff3232"
)

// StatusLookup is the single-post capability the endpoint consumes from
// the provider client.
type StatusLookup interface {
	ShowStatus(ctx context.Context, id string) (*clients.Tweet, error)
}

// PredictionHandler wires the status lookup, the normalizer and the
// two-model ensemble behind the form endpoint.
type PredictionHandler struct {
	api       StatusLookup
	baseModel *features.LogisticModel
	textModel *features.TextModel
}

func NewPredictionHandler(api StatusLookup, baseModel *features.LogisticModel, textModel *features.TextModel) *PredictionHandler {
	return &PredictionHandler{
		api:       api,
		baseModel: baseModel,
		textModel: textModel,
	}
}

// Index renders the empty submission form.
func (h *PredictionHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

// PredictParty handles the submitted URL and renders the prediction, or
// one of the fixed failure messages.
func (h *PredictionHandler) PredictParty(c *gin.Context) {
	url := c.PostForm("tweet_url")

	id, err := ExtractTweetID(url)
	if err != nil {
		c.HTML(http.StatusOK, "index.html", gin.H{"message": msgInvalidURL})
		return
	}

	tweet, err := h.api.ShowStatus(c.Request.Context(), id)
	if errors.Is(err, clients.ErrNotFound) {
		c.HTML(http.StatusOK, "index.html", gin.H{"message": msgTweetNotFound})
		return
	}
	if err != nil {
		Logger.Log.Error("fail to fetch status ", id, ": ", err)
		c.HTML(http.StatusOK, "index.html", gin.H{"message": msgFetchFailed})
		return
	}

	message, color, err := h.predict(tweet)
	if err != nil {
		Logger.Log.Error("fail to score status ", id, ": ", err)
		c.HTML(http.StatusOK, "index.html", gin.H{"message": msgFetchFailed})
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"message":        message,
		"party_color":    color,
		"name":           tweet.User.Name,
		"profile_image":  tweet.User.ProfileImageURL,
		"profile_banner": tweet.User.ProfileBannerURL,
		"tweet_text":     tweet.FullText,
	})
}

func (h *PredictionHandler) predict(tweet *clients.Tweet) (message string, color string, err error) {
	record, _, err := normalizer.NormalizeOne(*tweet, time.Now())
	if err != nil {
		return "", "", err
	}

	row, err := features.BuildRow(record, tweet.User.FollowersCount)
	if err != nil {
		return "", "", err
	}

	baseProb, err := h.baseModel.PredictProba(row.Vector())
	if err != nil {
		return "", "", err
	}
	textProb := h.textModel.PredictProba(record.Text)

	prob, republican := features.Ensemble(baseProb, textProb)
	if republican {
		return fmt.Sprintf("%.2f%% Republican!", prob*100), republicanColor, nil
	}
	return fmt.Sprintf("%.2f%% Democrat!", (1-prob)*100), democratColor, nil
}
