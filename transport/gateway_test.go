package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-shelf/core"
)

func newTestGateway(t *testing.T, handler http.Handler, store core.CredentialStore) (*Gateway, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	if store == nil {
		store = &countingStore{}
	}
	gateway, err := NewGateway(GatewayConfig{
		BaseURL:     server.URL + "/api",
		Credentials: store,
	})
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}
	return gateway, server
}

func TestGateway_GetJSONResolvesRelativePathAndQuery(t *testing.T) {
	var gotPath, gotQuery string
	gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 7})
	}), nil)

	var out struct {
		ID int64 `json:"id"`
	}
	err := gateway.GetJSON(context.Background(), "contents/", map[string]string{"q": "dune"}, &out)
	if err != nil {
		t.Fatalf("get json: %v", err)
	}
	if gotPath != "/api/contents/" {
		t.Fatalf("expected base path join, got %q", gotPath)
	}
	if !strings.Contains(gotQuery, "q=dune") {
		t.Fatalf("expected query parameter, got %q", gotQuery)
	}
	if out.ID != 7 {
		t.Fatalf("expected decoded payload, got %+v", out)
	}
}

func TestGateway_PostJSONSendsBody(t *testing.T) {
	var received map[string]any
	gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&received)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 1})
	}), nil)

	var out struct {
		ID int64 `json:"id"`
	}
	err := gateway.PostJSON(context.Background(), "ratings/", map[string]any{"content_id": 3, "score": 8}, &out)
	if err != nil {
		t.Fatalf("post json: %v", err)
	}
	if received["score"] != float64(8) {
		t.Fatalf("expected score in request body, got %+v", received)
	}
	if out.ID != 1 {
		t.Fatalf("expected decoded 201 payload, got %+v", out)
	}
}

func TestGateway_StatusErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		category goerrors.Category
	}{
		{"unauthorized", http.StatusUnauthorized, `{"detail":"Authentication credentials were not provided."}`, goerrors.CategoryAuth},
		{"forbidden", http.StatusForbidden, `{"detail":"forbidden"}`, goerrors.CategoryAuthz},
		{"not found", http.StatusNotFound, `{"detail":"not found"}`, goerrors.CategoryNotFound},
		{"validation", http.StatusBadRequest, `{"username":["already taken"]}`, goerrors.CategoryValidation},
		{"server failure", http.StatusInternalServerError, ``, goerrors.CategoryExternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}), nil)

			err := gateway.GetJSON(context.Background(), "contents/", nil, nil)
			if err == nil {
				t.Fatalf("expected error for status %d", tc.status)
			}
			var rich *goerrors.Error
			if !goerrors.As(err, &rich) {
				t.Fatalf("expected rich error, got %T", err)
			}
			if rich.Category != tc.category {
				t.Fatalf("expected category %s, got %s", tc.category, rich.Category)
			}
		})
	}
}

func TestGateway_ValidationErrorCarriesDetail(t *testing.T) {
	gateway, _ := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"email":["enter a valid email address"]}`))
	}), nil)

	err := gateway.PostJSON(context.Background(), "auth/register/", map[string]string{}, nil)
	if !core.IsValidationFailure(err) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "enter a valid email address") {
		t.Fatalf("expected field detail in message, got %q", err.Error())
	}
}

func TestGateway_UnauthorizedWithStoredTokenExpiresSession(t *testing.T) {
	store := &countingStore{cred: core.Credential{Access: "stale_access"}, ok: true}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	invalidator := &recordingInvalidator{}
	gateway, err := NewGateway(GatewayConfig{
		BaseURL:     server.URL,
		Credentials: store,
		Invalidator: invalidator,
	})
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}

	err = gateway.GetJSON(context.Background(), "library-entries/", nil, nil)
	if !core.IsSessionExpired(err) {
		t.Fatalf("expected session-expired error, got %v", err)
	}
	if len(invalidator.reasons) != 1 {
		t.Fatalf("expected invalidation, got %v", invalidator.reasons)
	}
}

type failingAdapter struct{}

func (failingAdapter) Kind() string { return "failing" }

func (failingAdapter) Do(context.Context, core.TransportRequest) (core.TransportResponse, error) {
	return core.TransportResponse{}, errors.New("connection refused")
}

func TestGateway_DoMapsAdapterFailures(t *testing.T) {
	gateway, err := NewGateway(GatewayConfig{
		Adapter:     failingAdapter{},
		Credentials: &countingStore{},
	})
	if err != nil {
		t.Fatalf("new gateway: %v", err)
	}

	// No logger injected: the error path logs through the ensured default.
	_, err = gateway.Do(context.Background(), core.TransportRequest{
		Method: http.MethodGet,
		Path:   "contents/",
	})
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected mapped error envelope, got %v", err)
	}
	if !strings.Contains(rich.Error(), "connection refused") {
		t.Fatalf("expected adapter failure preserved, got %q", rich.Error())
	}
}

func TestNewGateway_RequiresCredentialStore(t *testing.T) {
	if _, err := NewGateway(GatewayConfig{BaseURL: "https://api.example.com"}); err == nil {
		t.Fatalf("expected error without credential store")
	}
}
