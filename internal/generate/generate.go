// Package generate synthesizes new wallpapers through the Gemini API. The
// gallery core never calls this directly; results enter the collection via
// the normal upload path.
package generate

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// ModelName is the image-capable Gemini model used for synthesis.
	ModelName = "gemini-2.5-flash-image"
	// requestTimeout bounds a single generation call.
	requestTimeout = 120 * time.Second
)

// AspectRatios lists the aspect ratios a generation request may ask for.
var AspectRatios = []string{"1:1", "3:4", "4:3", "9:16", "16:9"}

// ValidAspectRatio reports whether ratio is one of the supported values.
func ValidAspectRatio(ratio string) bool {
	for _, r := range AspectRatios {
		if r == ratio {
			return true
		}
	}
	return false
}

// Request describes one wallpaper to synthesize.
type Request struct {
	Prompt      string
	AspectRatio string
}

// Generator is the external image-synthesis collaborator. Implementations
// return a self-contained image reference (a data URL) usable as a record's
// URL, or a *Error on any failure.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Client talks to the Gemini API.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

var _ Generator = (*Client)(nil)

// NewClient creates a Gemini-backed generator.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &Client{
		client: client,
		model:  client.GenerativeModel(ModelName),
	}, nil
}

// Close closes the underlying genai client.
func (c *Client) Close() error {
	return c.client.Close()
}

// Generate asks the model for one wallpaper and returns it as a data URL.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if req.Prompt == "" {
		return "", newError("生成主题不能为空", nil)
	}
	if !ValidAspectRatio(req.AspectRatio) {
		return "", newError(fmt.Sprintf("不支持的画幅比例: %s", req.AspectRatio), nil)
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(BuildPrompt(req)))
	if err != nil {
		return "", newError("", err)
	}
	url, ok := extractImageURL(resp)
	if !ok {
		return "", newError("", nil)
	}
	return url, nil
}

// BuildPrompt decorates the user's theme with the house style so every
// generated wallpaper shares the same look.
func BuildPrompt(req Request) string {
	return fmt.Sprintf(
		"High-quality anime style masterpiece wallpaper, vibrant colors, detailed art, "+
			"professional lighting, centered composition, theme: %s. "+
			"Aspect ratio %s. 4k resolution, smooth textures, eye-catching.",
		req.Prompt, req.AspectRatio)
}

// extractImageURL scans every candidate part for inline image data; the
// image is not necessarily the first part.
func extractImageURL(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil {
		return "", false
	}
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				encoded := base64.StdEncoding.EncodeToString(blob.Data)
				return fmt.Sprintf("data:%s;base64,%s", blob.MIMEType, encoded), true
			}
		}
	}
	return "", false
}
