package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ghuser/restockd/pkg/config"
)

func newTestClient(url string) *Client {
	return New(&config.Config{
		MailAPIURL:  url,
		MailAPIKey:  "test-key",
		MailFrom:    "orders@restockd.dev",
		MailTimeout: 5 * time.Second,
	})
}

func TestSend_Success(t *testing.T) {
	var gotAuth, gotContentType string
	var gotReq sendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg-123"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	err := c.Send(context.Background(), "orders@acme.example", "New Purchase Order", "<p>hi</p>")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotReq.From != "orders@restockd.dev" || gotReq.To != "orders@acme.example" {
		t.Errorf("request = %+v", gotReq)
	}
	if gotReq.HTMLContent != "<p>hi</p>" {
		t.Errorf("HTMLContent = %q", gotReq.HTMLContent)
	}
}

func TestSend_NotConfigured(t *testing.T) {
	c := New(&config.Config{MailTimeout: time.Second})

	err := c.Send(context.Background(), "a@b.c", "s", "b")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("error = %v, want ErrNotConfigured", err)
	}
}

func TestSend_ProviderErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantSubstr string
	}{
		{"server error", http.StatusInternalServerError, "boom", "returned 500"},
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad key"}`, "returned 401"},
		{"error field in 200 response", http.StatusOK, `{"error":"recipient suppressed"}`, "recipient suppressed"},
		{"malformed 200 response", http.StatusOK, "not json", "decode send response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := newTestClient(srv.URL).Send(context.Background(), "a@b.c", "s", "b")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSubstr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantSubstr)
			}
		})
	}
}

func TestSend_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := newTestClient(srv.URL).Send(ctx, "a@b.c", "s", "b"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
