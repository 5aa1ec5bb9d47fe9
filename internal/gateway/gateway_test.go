package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskhero.com/taskhero/internal/gateway"
)

type captured struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

func newServer(t *testing.T, status int, body string, got *captured) *gateway.Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			_ = json.NewDecoder(r.Body).Decode(got)
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return gateway.New(gateway.Config{URL: srv.URL, DefaultModel: "test-model", Timeout: 2 * time.Second})
}

func TestGenerate_ExtractsText(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want string
	}{
		{name: "ResponseKey", body: `{"response": "Buy milk"}`, want: "Buy milk"},
		{name: "TextKey", body: `{"text": "X"}`, want: "X"},
		{name: "OutputKey", body: `{"output": " done "}`, want: "done"},
		{name: "ResponseWinsOverText", body: `{"text": "b", "response": "a"}`, want: "a"},
		{name: "NoKnownKey", body: `{"foo": 1}`, want: `{"foo": 1}`},
		{name: "PlainText", body: "  plain text\n", want: "plain text"},
		{name: "JSONString", body: `"quoted"`, want: "quoted"},
		{name: "JSONNumber", body: `42`, want: "42"},
		{name: "JSONArray", body: `["a","b"]`, want: `["a","b"]`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			client := newServer(t, http.StatusOK, testCase.body, nil)

			got, err := client.Generate(context.Background(), "prompt", "")
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestGenerate_SendsModelAndPrompt(t *testing.T) {
	var got captured
	client := newServer(t, http.StatusOK, `{"response":"ok"}`, &got)

	_, err := client.Generate(context.Background(), "plan my day", "")
	require.NoError(t, err)
	assert.Equal(t, captured{Model: "test-model", Prompt: "plan my day", Stream: false}, got)

	_, err = client.Generate(context.Background(), "again", "mistral")
	require.NoError(t, err)
	assert.Equal(t, "mistral", got.Model)
}

func TestGenerate_NonSuccessStatus(t *testing.T) {
	client := newServer(t, http.StatusBadGateway, "model not loaded", nil)

	_, err := client.Generate(context.Background(), "prompt", "")

	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusBadGateway, gwErr.StatusCode)
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestGenerate_ConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := gateway.New(gateway.Config{URL: url, Timeout: time.Second})
	_, err := client.Generate(context.Background(), "prompt", "")

	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
	assert.Zero(t, gwErr.StatusCode)
	assert.NotNil(t, errors.Unwrap(err))
}

func TestGenerate_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	client := gateway.New(gateway.Config{URL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := client.Generate(context.Background(), "prompt", "")

	var gwErr *gateway.Error
	require.ErrorAs(t, err, &gwErr)
}

func TestGenerateStream_ConcatenatesFragments(t *testing.T) {
	var got captured
	body := strings.Join([]string{
		`{"model":"m","response":"Buy "}`,
		`{"model":"m","done":false}`,
		`{"response":"milk"}`,
		`{"model":"m","response":"","done":true}`,
	}, "\n")
	client := newServer(t, http.StatusOK, body, &got)

	text, err := client.GenerateStream(context.Background(), "shopping", "")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", text)
	assert.True(t, got.Stream)
}

func TestExtractStream(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want string
	}{
		{name: "Empty", body: "", want: ""},
		{name: "NoMarker", body: "{\"done\":true}\n\n", want: ""},
		{name: "PartialLine", body: "{\"response\":\"Buy \"\n{\"response\": \"eggs\",\"done\"", want: "Buy eggs"},
		{name: "EscapedQuote", body: `{"response":"say \"hi\""}`, want: `say "hi"`},
		{name: "NonStringValue", body: `{"response":null}`, want: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := gateway.ExtractStream(strings.NewReader(testCase.body))
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}
