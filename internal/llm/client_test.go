package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTrip func(*http.Request) *http.Response

func (rt roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return rt(req), nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestChat(t *testing.T) {
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "gpt-test",
		APIKey:  "secret",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				if got := req.Header.Get("Authorization"); got != "Bearer secret" {
					t.Errorf("unexpected auth header %q", got)
				}
				var payload chatRequest
				if err := json.NewDecoder(req.Body).Decode(&payload); err != nil {
					t.Fatalf("decode request: %v", err)
				}
				if payload.Model != "gpt-test" || len(payload.Messages) != 2 || payload.Messages[1].Content != "鸟巢很好" {
					t.Errorf("unexpected payload %+v", payload)
				}
				return jsonResponse(200, `{"choices":[{"message":{"role":"assistant","content":"0.9"}}]}`)
			}),
		},
	}
	out, err := client.Chat(context.Background(), "system", "鸟巢很好")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if out != "0.9" {
		t.Fatalf("unexpected chat output %s", out)
	}
}

func TestChatError(t *testing.T) {
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "gpt-test",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return jsonResponse(200, `{"error":{"message":"bad"}}`)
			}),
		},
	}
	if _, err := client.Chat(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error")
	}
}

func TestChatStatus(t *testing.T) {
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "gpt-test",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return jsonResponse(500, `{}`)
			}),
		},
	}
	if _, err := client.Chat(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for status 500")
	}
}

func TestChatRequiresConfig(t *testing.T) {
	client := &Client{}
	if _, err := client.Chat(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error without base URL and model")
	}
}

func TestChatEmptyChoices(t *testing.T) {
	client := &Client{
		BaseURL: "https://api.test/v1/chat/completions",
		Model:   "gpt-test",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return jsonResponse(200, `{"choices":[]}`)
			}),
		},
	}
	if _, err := client.Chat(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
