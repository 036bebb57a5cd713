package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/akinalp/quickchat/models"
)

// GoogleConfig configures GoogleBackend.
type GoogleConfig struct {
	APIKey     string
	BaseURL    string // e.g. https://translation.googleapis.com/language/translate/v2
	Timeout    time.Duration
	MaxRetries int
	// RetryBase is the first backoff step; later attempts double it.
	RetryBase time.Duration
}

// GoogleBackend implements Backend on the Cloud Translation v2 REST API.
type GoogleBackend struct {
	cfg    GoogleConfig
	client *http.Client
	log    *slog.Logger
}

func NewGoogleBackend(cfg GoogleConfig, log *slog.Logger) *GoogleBackend {
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = http.ProxyFromEnvironment

	return &GoogleBackend{
		cfg:    cfg,
		client: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		log:    log.With("component", "translator", "provider", "google"),
	}
}

type googleResponse struct {
	Data struct {
		Detections [][]struct {
			Language   string  `json:"language"`
			Confidence float64 `json:"confidence"`
		} `json:"detections"`
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
		Languages []struct {
			Language string `json:"language"`
			Name     string `json:"name"`
		} `json:"languages"`
	} `json:"data"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (g *GoogleBackend) Detect(ctx context.Context, text string) (string, error) {
	resp, err := g.call(ctx, http.MethodPost, "/detect", url.Values{"q": {text}})
	if err != nil {
		return "", err
	}
	if len(resp.Data.Detections) == 0 || len(resp.Data.Detections[0]) == 0 {
		return "", ErrEmptyResult
	}

	lang := resp.Data.Detections[0][0].Language
	if lang == "" || lang == "und" {
		return "", ErrEmptyResult
	}
	return lang, nil
}

func (g *GoogleBackend) Translate(ctx context.Context, text, source, target string) (string, error) {
	form := url.Values{
		"q":      {text},
		"target": {target},
		"format": {"text"},
	}
	if source != "" {
		form.Set("source", source)
	}

	resp, err := g.call(ctx, http.MethodPost, "", form)
	if err != nil {
		return "", err
	}
	if len(resp.Data.Translations) == 0 {
		return "", ErrEmptyResult
	}
	return resp.Data.Translations[0].TranslatedText, nil
}

func (g *GoogleBackend) Languages(ctx context.Context) ([]models.Language, error) {
	resp, err := g.call(ctx, http.MethodGet, "/languages", url.Values{"target": {"en"}})
	if err != nil {
		return nil, err
	}
	if len(resp.Data.Languages) == 0 {
		return nil, ErrEmptyResult
	}

	langs := make([]models.Language, 0, len(resp.Data.Languages))
	for _, l := range resp.Data.Languages {
		langs = append(langs, models.Language{Code: l.Language, Name: l.Name})
	}
	return langs, nil
}

// call performs one API request, retrying transport errors, 429 and 5xx with
// exponential backoff.
func (g *GoogleBackend) call(ctx context.Context, method, path string, params url.Values) (*googleResponse, error) {
	endpoint := g.cfg.BaseURL + path

	for attempt := 0; ; attempt++ {
		req, err := g.newRequest(ctx, method, endpoint, params)
		if err != nil {
			return nil, err
		}

		status, body, err := g.do(req)
		retryable := err != nil || status == http.StatusTooManyRequests || status >= 500

		if retryable && attempt < g.cfg.MaxRetries {
			wait := time.Duration(math.Pow(2, float64(attempt))) * g.cfg.RetryBase
			g.log.Debug("retrying request", "path", path, "attempt", attempt+1, "status", status, "wait", wait, "error", err)

			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(wait):
			}
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("%w: request failed: %v", ErrProvider, err)
		}
		return decodeGoogleResponse(status, body)
	}
}

func (g *GoogleBackend) newRequest(ctx context.Context, method, endpoint string, params url.Values) (*http.Request, error) {
	query := url.Values{"key": {g.cfg.APIKey}}

	var body io.Reader
	if method == http.MethodGet {
		for k, v := range params {
			query[k] = v
		}
	} else {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint+"?"+query.Encode(), body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (g *GoogleBackend) do(req *http.Request) (int, []byte, error) {
	resp, err := g.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}

func decodeGoogleResponse(status int, body []byte) (*googleResponse, error) {
	var resp googleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		if status != http.StatusOK {
			return nil, fmt.Errorf("%w: status %d", ErrProvider, status)
		}
		return nil, fmt.Errorf("%w: decoding response: %v", ErrProvider, err)
	}

	if resp.Error != nil {
		return nil, fmt.Errorf("%w: %d %s", ErrProvider, resp.Error.Code, resp.Error.Message)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProvider, status)
	}
	return &resp, nil
}
