package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestHTTPClientFetchPortfolio(t *testing.T) {
	t.Run("payload ok", func(t *testing.T) {
		var gotPath, gotMethod string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotMethod = r.Method
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"profile":{"nom":"Jane Doe","email":"j@x.com"},"competences":[],"projets":[],"experiences":[]}`))
		}))
		defer srv.Close()

		c := NewHTTPClient(srv.URL+"/", time.Second, zap.NewNop())
		resp, err := c.FetchPortfolio(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodGet || gotPath != PortfolioPath {
			t.Fatalf("expected GET %s, got %s %s", PortfolioPath, gotMethod, gotPath)
		}
		if !resp.Success || resp.Profile == nil || resp.Profile.Nom != "Jane Doe" {
			t.Fatalf("unexpected payload: %+v", resp)
		}
	})

	t.Run("success false con 200 no es error de transporte", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"error":"DB down"}`))
		}))
		defer srv.Close()

		resp, err := NewHTTPClient(srv.URL, time.Second, nil).FetchPortfolio(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if resp.Success {
			t.Fatalf("expected success=false")
		}
		if msg, _ := resp.Error.Get(); msg != "DB down" {
			t.Fatalf("expected server message, got %q", msg)
		}
	})

	t.Run("status no-2xx", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"error":"boom"}`))
		}))
		defer srv.Close()

		_, err := NewHTTPClient(srv.URL, time.Second, nil).FetchPortfolio(context.Background())
		if !errors.Is(err, ErrTransport) {
			t.Fatalf("expected ErrTransport, got %v", err)
		}
	})

	t.Run("cuerpo invalido", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`<html>not json</html>`))
		}))
		defer srv.Close()

		_, err := NewHTTPClient(srv.URL, time.Second, nil).FetchPortfolio(context.Background())
		if !errors.Is(err, ErrTransport) {
			t.Fatalf("expected ErrTransport, got %v", err)
		}
	})

	t.Run("cuerpo que no es objeto", func(t *testing.T) {
		for _, body := range []string{"null", " null\n", "[]", `"ok"`, "true", ""} {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))

			_, err := NewHTTPClient(srv.URL, time.Second, nil).FetchPortfolio(context.Background())
			srv.Close()
			if !errors.Is(err, ErrTransport) {
				t.Fatalf("expected ErrTransport for body %q, got %v", body, err)
			}
		}
	})

	t.Run("backend caido", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := NewHTTPClient(url, time.Second, nil).FetchPortfolio(context.Background())
		if !errors.Is(err, ErrTransport) {
			t.Fatalf("expected ErrTransport, got %v", err)
		}
	})
}
