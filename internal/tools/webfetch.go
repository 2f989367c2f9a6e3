package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	ai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	// DefaultMaxChars is the default character limit for fetched page text.
	DefaultMaxChars = 5000

	// fetchMaxBytes caps the response body read (5 MB).
	fetchMaxBytes int64 = 5 * 1024 * 1024

	fetchTimeout = 10 * time.Second

	userAgent = "toolagent/1.0"
)

// WebFetchTool downloads a web page and returns its readable text,
// with scripts, styling and navigation boilerplate stripped.
type WebFetchTool struct {
	Client *http.Client
}

func NewWebFetchTool() *WebFetchTool {
	return &WebFetchTool{Client: &http.Client{Timeout: fetchTimeout}}
}

func (t *WebFetchTool) GetName() string { return "web_fetch" }

func (t *WebFetchTool) GetTool() ai.Tool {
	return ai.Tool{
		Type: ai.ToolTypeFunction,
		Function: &ai.FunctionDefinition{
			Name:        t.GetName(),
			Description: "Fetch a web page and return its readable text content.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"url": {
						Type:        jsonschema.String,
						Description: "The http or https URL to fetch.",
					},
					"max_length": {
						Type:        jsonschema.Integer,
						Description: "Maximum characters of text to return. Default: 5000.",
					},
				},
				Required: []string{"url"},
			},
		},
	}
}

func (t *WebFetchTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	rawURL, _ := args["url"].(string)
	if rawURL == "" {
		return "", fmt.Errorf("url is required")
	}

	maxChars := DefaultMaxChars
	if ml, ok := args["max_length"].(float64); ok && ml > 0 {
		maxChars = int(ml)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported URL scheme: %q (only http and https are allowed)", parsed.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,text/plain;q=0.8,*/*;q=0.5")

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("request failed: HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, fetchMaxBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	var title, text string
	switch {
	case strings.Contains(strings.ToLower(contentType), "text/html"),
		strings.Contains(strings.ToLower(contentType), "application/xhtml"):
		title, text = extractHTML(string(body))
	case utf8.Valid(body):
		text = string(body)
	default:
		return "", fmt.Errorf("binary content (%s), %d bytes", contentType, len(body))
	}

	truncated := false
	if len(text) > maxChars {
		text = truncateUTF8(text, maxChars)
		truncated = true
	}

	var sb strings.Builder
	if title != "" {
		fmt.Fprintf(&sb, "Title: %s\n\n", title)
	}
	sb.WriteString(text)
	if truncated {
		sb.WriteString("\n... [content truncated]")
	}
	return sb.String(), nil
}

// truncateUTF8 cuts a string to at most maxChars bytes without
// splitting a multi-byte rune.
func truncateUTF8(s string, maxChars int) string {
	if len(s) <= maxChars {
		return s
	}
	cut := maxChars
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
