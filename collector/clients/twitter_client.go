package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dghubble/oauth1"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://api.twitter.com/1.1"

// Provider error conditions the pipeline reacts to. Everything else coming
// out of the client is treated as fatal by the callers.
var (
	ErrRateLimited = errors.New("twitter: rate limit exceeded")
	ErrNotFound    = errors.New("twitter: resource not found")
)

// Payload error codes, see https://developer.twitter.com/en/support/twitter-api/error-troubleshooting
const (
	errCodeRateLimit      = 88
	errCodeNotFound       = 34
	errCodeUserNotFound   = 50
	errCodeUserSuspended  = 63
	errCodeStatusNotFound = 144
)

// Credentials are the four opaque strings the provider authenticates a
// whole credential with. Acquisition is the caller's problem.
type Credentials struct {
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
}

// TimelineQuery is one page request against a user timeline.
// MaxID is the opaque continuation cursor round-tripped between pages;
// zero means first page.
type TimelineQuery struct {
	ScreenName string
	Count      int
	MaxID      int64
	IncludeRts bool
}

// TwitterClient is a thin wrapper upon http.Client to make requests to the
// Twitter v1.1 API, signing each request with the supplied credentials. A
// client-side limiter smooths request bursts; the reactive 15-minute
// backoff on a provider 429 lives in the fetcher, not here.
type TwitterClient struct {
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

func NewTwitterClient(creds Credentials) *TwitterClient {
	config := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	httpClient.Timeout = 30 * time.Second

	return &TwitterClient{
		client:  httpClient,
		limiter: rate.NewLimiter(rate.Limit(1), 3),
		baseURL: DefaultBaseURL,
	}
}

// NewTwitterClientWithBase is used by tests to point the client at a fake
// provider.
func NewTwitterClientWithBase(client *http.Client, baseURL string) *TwitterClient {
	return &TwitterClient{
		client:  client,
		limiter: rate.NewLimiter(rate.Inf, 1),
		baseURL: baseURL,
	}
}

// UserTimeline fetches one page of a user timeline, most-recent-first as
// returned by the provider.
func (t *TwitterClient) UserTimeline(ctx context.Context, q TimelineQuery) ([]Tweet, error) {
	params := url.Values{}
	params.Set("screen_name", q.ScreenName)
	params.Set("count", strconv.Itoa(q.Count))
	params.Set("tweet_mode", "extended")
	params.Set("include_rts", strconv.FormatBool(q.IncludeRts))
	if q.MaxID > 0 {
		params.Set("max_id", strconv.FormatInt(q.MaxID, 10))
	}

	body, err := t.get(ctx, "/statuses/user_timeline.json", params)
	if err != nil {
		return nil, err
	}

	var tweets []Tweet
	if err := json.Unmarshal(body, &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

// ShowStatus looks up a single post by id.
func (t *TwitterClient) ShowStatus(ctx context.Context, id string) (*Tweet, error) {
	params := url.Values{}
	params.Set("id", id)
	params.Set("tweet_mode", "extended")

	body, err := t.get(ctx, "/statuses/show.json", params)
	if err != nil {
		return nil, err
	}

	tweet := &Tweet{}
	if err := json.Unmarshal(body, tweet); err != nil {
		return nil, err
	}
	return tweet, nil
}

// RateLimitStatusResponse reports the remaining request budget for the
// timeline resource family.
type RateLimitStatusResponse struct {
	Resources struct {
		Statuses map[string]struct {
			Limit     int   `json:"limit"`
			Remaining int   `json:"remaining"`
			Reset     int64 `json:"reset"`
		} `json:"statuses"`
	} `json:"resources"`
}

func (t *TwitterClient) RateLimitStatus(ctx context.Context) (*RateLimitStatusResponse, error) {
	params := url.Values{}
	params.Set("resources", "statuses")

	body, err := t.get(ctx, "/application/rate_limit_status.json", params)
	if err != nil {
		return nil, err
	}

	res := &RateLimitStatusResponse{}
	if err := json.Unmarshal(body, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (t *TwitterClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	res, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, classifyError(res.StatusCode, body)
	}
	return body, nil
}

type apiErrorPayload struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// classifyError maps a provider error response to the typed conditions the
// pipeline distinguishes: rate limiting and not-found. Both the HTTP status
// and the payload error code are consulted since the provider is not
// consistent between endpoints.
func classifyError(status int, body []byte) error {
	payload := apiErrorPayload{}
	json.Unmarshal(body, &payload)

	for _, e := range payload.Errors {
		switch e.Code {
		case errCodeRateLimit:
			return ErrRateLimited
		case errCodeNotFound, errCodeUserNotFound, errCodeUserSuspended, errCodeStatusNotFound:
			return ErrNotFound
		}
	}

	switch status {
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusNotFound:
		return ErrNotFound
	}
	return fmt.Errorf("twitter: unexpected status %d: %s", status, string(body))
}
