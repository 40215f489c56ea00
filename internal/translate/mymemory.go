// Package translate translates single text fields through the MyMemory
// public translation API.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pageza/receitas/backend/internal/model"
)

// DefaultEndpoint is MyMemory's anonymous GET endpoint.
const DefaultEndpoint = "https://api.mymemory.translated.net/get"

// Translator translates a text field into a target locale. Implementations
// never fail: on any error they return the original text.
type Translator interface {
	Translate(ctx context.Context, text string, target model.Locale) string
}

// MyMemory calls the MyMemory API with an "en|<target>" language pair.
type MyMemory struct {
	endpoint string
	email    string
	http     *http.Client
	log      *slog.Logger
}

var _ Translator = (*MyMemory)(nil)

// Options configures a MyMemory translator.
type Options struct {
	Endpoint string
	// Email is sent as the "de" parameter, which raises the anonymous daily quota.
	Email      string
	HTTPClient *http.Client
}

// NewMyMemory creates a translator.
func NewMyMemory(opts Options, logger *slog.Logger) *MyMemory {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	return &MyMemory{
		endpoint: opts.Endpoint,
		email:    opts.Email,
		http:     opts.HTTPClient,
		log:      logger,
	}
}

// response mirrors the subset of the MyMemory payload we read.
type response struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus statusCode `json:"responseStatus"`
	ResponseDetails string    `json:"responseDetails"`
}

// statusCode accepts both 200 and "200"; MyMemory quotes the status on
// some error responses.
type statusCode int

func (s *statusCode) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("responseStatus: %w", err)
	}
	*s = statusCode(n)
	return nil
}

// Translate returns text translated to target, or text itself when it is
// empty, already in the source language, or the API does not answer with a
// usable translation.
func (m *MyMemory) Translate(ctx context.Context, text string, target model.Locale) string {
	if text == "" || !target.NeedsTranslation() {
		return text
	}

	translated, err := m.call(ctx, text, target)
	if err != nil {
		m.log.Warn("translation failed, keeping original", "target", target, "error", err)
		return text
	}
	return translated
}

func (m *MyMemory) call(ctx context.Context, text string, target model.Locale) (string, error) {
	params := url.Values{
		"q":        {text},
		"langpair": {string(model.SourceLocale) + "|" + string(target)},
	}
	if m.email != "" {
		params.Set("de", m.email)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode (http %d): %w", resp.StatusCode, err)
	}
	if body.ResponseStatus != http.StatusOK {
		return "", fmt.Errorf("status %d: %s", body.ResponseStatus, body.ResponseDetails)
	}
	if body.ResponseData.TranslatedText == "" {
		return "", fmt.Errorf("empty translation")
	}
	return body.ResponseData.TranslatedText, nil
}
