package httpapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"diagnocare/internal/platform/httpapi"
)

type staticTokens string

func (s staticTokens) AccessToken(context.Context) (string, error) { return string(s), nil }

func TestErrorResponseCarriesServerMessageAndStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"X","statusCode":400}`))
	}))
	defer srv.Close()

	c := httpapi.New(srv.URL, nil)
	_, err := c.Do(context.Background(), httpapi.Request{Method: http.MethodGet, Path: "/api/v1/anything"})
	var apiErr *httpapi.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Error() != "X" || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("unexpected error %q status %d", apiErr.Error(), apiErr.Status)
	}
	if httpapi.StatusOf(err) != http.StatusBadRequest {
		t.Fatalf("StatusOf mismatch")
	}
}

func TestErrorWithoutMessageFallsBackToGenericText(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<html>boom</html>`))
	}))
	defer srv.Close()

	_, err := httpapi.New(srv.URL, nil).Do(context.Background(), httpapi.Request{Path: "/x"})
	if err == nil || err.Error() != httpapi.DefaultErrorMessage {
		t.Fatalf("expected generic message, got %v", err)
	}
}

func TestSuccessWithEmptyOrInvalidBodyResolvesToEmptyObject(t *testing.T) {
	t.Parallel()
	for _, body := range []string{"", "not json", `{"message":"ok"}`, `{"data":null}`} {
		body := body
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(body))
		}))
		data, err := httpapi.New(srv.URL, nil).Do(context.Background(), httpapi.Request{Path: "/x"})
		srv.Close()
		if err != nil {
			t.Fatalf("body %q: unexpected error %v", body, err)
		}
		if string(data) != "{}" {
			t.Fatalf("body %q: expected {}, got %s", body, data)
		}
	}
}

func TestCallDecodesDataAndToleratesEmptyObjectForSlices(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/list" {
			_, _ = w.Write([]byte(`{"data":[{"id":1,"label":"Fièvre"}]}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()
	c := httpapi.New(srv.URL, nil)

	type symptom struct {
		ID    int64  `json:"id"`
		Label string `json:"label"`
	}
	items, err := httpapi.Call[[]symptom](context.Background(), c, httpapi.Request{Path: "/list"})
	if err != nil {
		t.Fatalf("call list: %v", err)
	}
	if len(items) != 1 || items[0].Label != "Fièvre" {
		t.Fatalf("unexpected items %+v", items)
	}
	empty, err := httpapi.Call[[]symptom](context.Background(), c, httpapi.Request{Path: "/empty"})
	if err != nil {
		t.Fatalf("call empty: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected an empty non-nil slice, got %#v", empty)
	}
}

func TestAuthHeaderAndJSONBody(t *testing.T) {
	t.Parallel()
	var gotAuth, gotType, gotReqID, gotCustom string
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotReqID = r.Header.Get("X-Request-ID")
		gotCustom = r.Header.Get("X-Custom")
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := httpapi.New(srv.URL, staticTokens("tok-1"))
	_, err := c.Do(context.Background(), httpapi.Request{
		Method:  http.MethodPost,
		Path:    "/p",
		Body:    map[string]string{"a": "b"},
		Headers: map[string]string{"X-Custom": "yes"},
		Auth:    true,
	})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if gotAuth != "Bearer tok-1" || gotType != "application/json" || gotCustom != "yes" || gotReqID == "" {
		t.Fatalf("unexpected headers auth=%q type=%q custom=%q reqid=%q", gotAuth, gotType, gotCustom, gotReqID)
	}
	if gotBody != `{"a":"b"}` {
		t.Fatalf("unexpected body %s", gotBody)
	}

	gotAuth = ""
	if _, err := httpapi.New(srv.URL, staticTokens("")).Do(context.Background(), httpapi.Request{Path: "/p", Auth: true}); err != nil {
		t.Fatalf("do without token: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no auth header without token, got %q", gotAuth)
	}
	if _, err := c.Do(context.Background(), httpapi.Request{Path: "/p", Auth: false}); err != nil {
		t.Fatalf("do unauthenticated: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no auth header when auth disabled, got %q", gotAuth)
	}
}

func TestDownloadReturnsRawBytes(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Prediction not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.3 fake"))
	}))
	defer srv.Close()
	c := httpapi.New(srv.URL, nil)
	raw, err := c.Download(context.Background(), "/pdf")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if string(raw) != "%PDF-1.3 fake" {
		t.Fatalf("unexpected bytes %q", raw)
	}
	if _, err := c.Download(context.Background(), "/missing"); err == nil || err.Error() != "Prediction not found" {
		t.Fatalf("expected not found message, got %v", err)
	}
}
