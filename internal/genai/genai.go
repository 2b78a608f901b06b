// Package genai is a small client for the Gemini generateContent REST
// endpoint, used by admins to draft event descriptions and cover images.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"
	"go.uber.org/zap"

	"github.com/bariskaantoprak-ui/ITSO/internal/config"
	"github.com/bariskaantoprak-ui/ITSO/internal/logger"
)

// Placeholder texts returned instead of errors.
const (
	EmptyDescription  = "İçerik oluşturulamadı."
	FailedDescription = "İçerik oluşturulurken bir hata oluştu. Lütfen manuel olarak giriniz."
	imageSuffix       = " photorealistic, professional event banner"
)

var errDisabled = errors.New("genai: no API key configured")

const descriptionPrompt = `
Sen profesyonel bir etkinlik yöneticisi ve metin yazarısın. İskenderun Ticaret ve Sanayi Odası (İTSO) URGE projesi için aşağıdaki etkinlik başlığı ve ham notlardan yola çıkarak,
kurumsal, ilgi çekici ve profesyonel bir "Etkinlik Açıklaması" (yaklaşık 100-150 kelime) yaz.

Etkinlik Başlığı: %s
Ham Notlar: %s

Lütfen sadece oluşturulan metni döndür, başka bir açıklama ekleme.
`

// Doer is the subset of heimdall's client the assistant needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the generative model.
type Client struct {
	http       Doer
	baseURL    string
	apiKey     string
	textModel  string
	imageModel string
}

// New builds a Client from config. Retries use a constant backoff.
func New(cfg config.GenAI) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	backoff := heimdall.NewConstantBackoff(500*time.Millisecond, 50*time.Millisecond)
	hc := httpclient.NewClient(
		httpclient.WithHTTPTimeout(timeout),
		httpclient.WithRetrier(heimdall.NewRetrier(backoff)),
		httpclient.WithRetryCount(cfg.Retries),
	)
	return NewWithDoer(cfg, hc)
}

// NewWithDoer builds a Client on top of an existing HTTP doer.
func NewWithDoer(cfg config.GenAI, doer Doer) *Client {
	return &Client{
		http:       doer,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		textModel:  cfg.TextModel,
		imageModel: cfg.ImageModel,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GenerateDescription drafts a corporate event description in Turkish. It
// never fails; on error it returns one of the placeholder texts.
func (c *Client) GenerateDescription(ctx context.Context, title, notes string) string {
	resp, err := c.generate(ctx, c.textModel, fmt.Sprintf(descriptionPrompt, title, notes))
	if err != nil {
		logger.L().Error("generate description", zap.Error(err))
		return FailedDescription
	}

	var b strings.Builder
	if len(resp.Candidates) > 0 {
		for _, p := range resp.Candidates[0].Content.Parts {
			b.WriteString(p.Text)
		}
	}
	if b.Len() == 0 {
		return EmptyDescription
	}
	return b.String()
}

// GenerateImage returns a banner image as a data URI, or "" when the model
// returns no image or the call fails.
func (c *Client) GenerateImage(ctx context.Context, prompt string) string {
	resp, err := c.generate(ctx, c.imageModel, prompt+imageSuffix)
	if err != nil {
		logger.L().Error("generate image", zap.Error(err))
		return ""
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}
	p := resp.Candidates[0].Content.Parts[0]
	if p.InlineData == nil || p.InlineData.Data == "" {
		return ""
	}
	return "data:" + p.InlineData.MimeType + ";base64," + p.InlineData.Data
}

func (c *Client) generate(ctx context.Context, model, prompt string) (*generateResponse, error) {
	if !c.Enabled() {
		return nil, errDisabled
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", model, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	logger.L().Debug("genai call",
		zap.String("model", model),
		zap.Int("status", res.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		if res.StatusCode >= http.StatusBadRequest {
			return nil, fmt.Errorf("call %s: %s", model, res.Status)
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		if out.Error != nil && out.Error.Message != "" {
			return nil, fmt.Errorf("call %s: %s: %s", model, res.Status, out.Error.Message)
		}
		return nil, fmt.Errorf("call %s: %s", model, res.Status)
	}
	return &out, nil
}
