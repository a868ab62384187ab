package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quillpress/quillctl/internal/adapter/outbound/credstore"
)

// TestSubmitContact_NoSessionRequired verifies the contact form works with
// an empty credential store and sends no bearer token.
func TestSubmitContact_NoSessionRequired(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/contact/submit/" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("unexpected auth header: %s", got)
		}
		var input ContactInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if input.Subject != "Hello" || !input.Newsletter {
			t.Errorf("unexpected payload: %+v", input)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	store := credstore.NewMemoryStore()
	client := NewClient(store, WithBaseURL(server.URL), WithLogger(testLogger()))

	err := client.SubmitContact(context.Background(), ContactInput{
		Name:       "Ada",
		Email:      "a@b.com",
		Subject:    "Hello",
		Message:    "Hi there",
		Newsletter: true,
	})
	if err != nil {
		t.Fatalf("SubmitContact() error: %v", err)
	}
}

func TestReplyContact(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/contact/m1/reply/" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if got := r.Header.Get("Authorization"); got != "Bearer AT1" {
			t.Errorf("unexpected auth header: %s", got)
		}
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["message"] != "Thanks for writing in" {
			t.Errorf("unexpected reply body: %v", req)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	store := newAuthedStore(t, "AT1", "RT1")
	client := NewClient(store, WithBaseURL(server.URL), WithLogger(testLogger()))

	if err := client.ReplyContact(context.Background(), "m1", "Thanks for writing in"); err != nil {
		t.Fatalf("ReplyContact() error: %v", err)
	}
}
