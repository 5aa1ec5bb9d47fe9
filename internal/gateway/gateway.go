// Package gateway talks to a local text-generation server that speaks the
// Ollama /api/generate protocol.
package gateway

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultURL     = "http://localhost:11434/api/generate"
	DefaultModel   = "llama3"
	DefaultTimeout = 20 * time.Second

	// responseMarker prefixes the text fragment in each streamed line.
	responseMarker = `"response":`
	maxLineSize    = 1 << 20
)

// outputKeys are tried in order when a JSON object comes back.
var outputKeys = []string{"response", "text", "output"}

type Config struct {
	URL          string
	DefaultModel string
	Timeout      time.Duration
}

type Client struct {
	url   string
	model string
	http  *http.Client
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

func New(cfg Config) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.DefaultModel == "" {
		cfg.DefaultModel = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		url:   cfg.URL,
		model: cfg.DefaultModel,
		http:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Generate sends a single non-streaming request and extracts the generated
// text from the body.
func (c *Client) Generate(ctx context.Context, prompt, model string) (string, error) {
	resp, err := c.post(ctx, "generate", prompt, model, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{Op: "generate", Err: fmt.Errorf("read body: %w", err)}
	}

	return ExtractText(body), nil
}

// GenerateStream requests a streamed generation and joins the response
// fragments of every line.
func (c *Client) GenerateStream(ctx context.Context, prompt, model string) (string, error) {
	resp, err := c.post(ctx, "stream", prompt, model, true)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	text, err := ExtractStream(resp.Body)
	if err != nil {
		return "", &Error{Op: "stream", Err: err}
	}
	return text, nil
}

func (c *Client) post(ctx context.Context, op, prompt, model string, stream bool) (*http.Response, error) {
	if model == "" {
		model = c.model
	}

	payload, err := json.Marshal(generateRequest{Model: model, Prompt: prompt, Stream: stream})
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, &Error{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	return resp, nil
}

// ExtractText pulls the generated text out of a non-streaming response body.
// Bodies that are not JSON are returned as they are.
func ExtractText(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return strings.TrimSpace(parsed.String())
	}

	for _, key := range outputKeys {
		if v := parsed.Get(key); v.Exists() {
			return strings.TrimSpace(v.String())
		}
	}
	return strings.TrimSpace(parsed.Raw)
}

// ExtractStream reads newline-delimited chunks and concatenates the quoted
// string following each "response": marker. Lines are handled on their own,
// so a chunk that is not a complete JSON document still contributes.
func ExtractStream(r io.Reader) (string, error) {
	var out strings.Builder

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		out.WriteString(fragment(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}

	return strings.TrimSpace(out.String()), nil
}

func fragment(line string) string {
	i := strings.Index(line, responseMarker)
	if i < 0 {
		return ""
	}

	rest := strings.TrimLeft(line[i+len(responseMarker):], " \t")
	if !strings.HasPrefix(rest, `"`) {
		return ""
	}

	v := gjson.Parse(rest)
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}
