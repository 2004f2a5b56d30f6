// Package genai implements the REST client for the image generation
// service. Requests go through the generateContent endpoint; responses
// carry interleaved text and inline image parts.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/artkeeper/internal/common"
	"github.com/dmitrijs2005/artkeeper/internal/studio/models"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash-image"

	maxRetries   = 3
	retryBackoff = 500 * time.Millisecond
)

// Part is a single element of a multimodal request. Exactly one of Text
// or Inline is set.
type Part struct {
	Text   string
	Inline *models.Payload
}

func TextPart(s string) Part          { return Part{Text: s} }
func ImagePart(p models.Payload) Part { return Part{Inline: &p} }

// Result is a generated image with any accompanying commentary text.
type Result struct {
	Payload models.Payload
	Text    string
}

type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   DefaultModel,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wire types

type wirePart struct {
	Text string `json:"text,omitempty"`
	// The service emits inlineData; some proxies rewrite it to
	// inline_data. Both are accepted on decode, inline_data is sent.
	InlineData *wireBlob `json:"inline_data,omitempty"`
	InlineCC   *wireBlob `json:"inlineData,omitempty"`
}

type wireBlob struct {
	MimeType string `json:"mime_type,omitempty"`
	MimeCC   string `json:"mimeType,omitempty"`
	Data     string `json:"data"`
}

func (b *wireBlob) mime() string {
	if b.MimeType != "" {
		return b.MimeType
	}
	return b.MimeCC
}

func (p *wirePart) inline() *wireBlob {
	if p.InlineData != nil {
		return p.InlineData
	}
	return p.InlineCC
}

type wireContent struct {
	Role  string     `json:"role,omitempty"`
	Parts []wirePart `json:"parts"`
}

type generationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
	Temperature        *float64 `json:"temperature,omitempty"`
}

type generateRequest struct {
	Contents         []wireContent     `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type candidate struct {
	Content      wireContent `json:"content"`
	FinishReason string      `json:"finishReason"`
}

type generateResponse struct {
	Candidates     []candidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// GenerateImage sends the ordered parts to the model and returns the
// first inline image of the first candidate.
func (c *Client) GenerateImage(ctx context.Context, parts []Part, temperature float64) (*Result, error) {
	temp := temperature
	req := generateRequest{
		Contents: []wireContent{{Role: "user", Parts: encodeParts(parts)}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
			Temperature:        &temp,
		},
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	cand := resp.Candidates[0]
	for _, p := range cand.Content.Parts {
		if blob := p.inline(); blob != nil && result.Payload.Empty() {
			data, err := base64.StdEncoding.DecodeString(blob.Data)
			if err != nil {
				return nil, fmt.Errorf("decoding image data: %w", err)
			}
			result.Payload = models.Payload{MimeType: blob.mime(), Data: data}
			continue
		}
		if p.Text != "" {
			result.Text += p.Text
		}
	}

	if result.Payload.Empty() {
		if result.Text != "" {
			return nil, fmt.Errorf("%w: %s", common.ErrNoImageInResponse, snippet(result.Text))
		}
		return nil, common.ErrNoImageInResponse
	}
	return result, nil
}

// EnhancePrompt asks the model to rewrite a raw prompt into a richer
// one and returns the first non-empty text part.
func (c *Client) EnhancePrompt(ctx context.Context, prompt string) (string, error) {
	instruction := "Rewrite the following image generation prompt to be more detailed and vivid. " +
		"Reply with the rewritten prompt only, no preamble:\n\n" + prompt

	req := generateRequest{
		Contents: []wireContent{{Role: "user", Parts: []wirePart{{Text: instruction}}}},
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}

	for _, p := range resp.Candidates[0].Content.Parts {
		if t := strings.TrimSpace(p.Text); t != "" {
			return t, nil
		}
	}
	return "", common.ErrNoTextInResponse
}

func (c *Client) generate(ctx context.Context, req generateRequest) (*generateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	var resp *generateResponse
	backoff := retry.WithMaxRetries(maxRetries, retry.NewExponential(retryBackoff))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		var attemptErr error
		resp, attemptErr = c.doOnce(ctx, url, body)
		return attemptErr
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) doOnce(ctx context.Context, url string, body []byte) (*generateResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, retry.RetryableError(err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, retry.RetryableError(fmt.Errorf("reading response body: %w", err))
	}

	if httpResp.StatusCode != http.StatusOK {
		err := fmt.Errorf("generate request failed: status %d, body: %s", httpResp.StatusCode, snippet(string(respBody)))
		if httpResp.StatusCode == http.StatusTooManyRequests || httpResp.StatusCode >= 500 {
			return nil, retry.RetryableError(err)
		}
		return nil, err
	}

	var resp generateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("%w: %s", common.ErrBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("empty response: no candidates")
	}
	if reason := resp.Candidates[0].FinishReason; reason == "SAFETY" || reason == "IMAGE_SAFETY" || reason == "PROHIBITED_CONTENT" {
		return nil, fmt.Errorf("%w: %s", common.ErrBlocked, reason)
	}
	return &resp, nil
}

func encodeParts(parts []Part) []wirePart {
	out := make([]wirePart, 0, len(parts))
	for _, p := range parts {
		if p.Inline != nil {
			out = append(out, wirePart{InlineData: &wireBlob{
				MimeType: p.Inline.MimeType,
				Data:     base64.StdEncoding.EncodeToString(p.Inline.Data),
			}})
			continue
		}
		out = append(out, wirePart{Text: p.Text})
	}
	return out
}

func snippet(s string) string {
	const max = 200
	s = strings.TrimSpace(s)
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
