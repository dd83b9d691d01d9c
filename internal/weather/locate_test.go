package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/tessro/unyo/internal/core"
	uerrors "github.com/tessro/unyo/internal/errors"
	"github.com/tessro/unyo/internal/logging"
)

func TestResolve(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"status":"success","city":"Linz","lat":48.3,"lon":14.28}`))
	}))
	defer srv.Close()

	l := NewLocator(srv.URL, nil, srv.Client(), logging.Discard())
	for i := 0; i < 3; i++ {
		loc, err := l.Resolve(context.Background())
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		want := core.Location{Latitude: 48.3, Longitude: 14.28, City: "Linz"}
		if loc != want {
			t.Errorf("Resolve() = %+v, want %+v", loc, want)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("geolocation endpoint hit %d times, want 1", n)
	}
}

func TestResolveFixed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("lookup made despite fixed location")
	}))
	defer srv.Close()

	fixed := &core.Location{Latitude: 1, Longitude: 2, City: "Here"}
	loc, err := NewLocator(srv.URL, fixed, srv.Client(), logging.Discard()).Resolve(context.Background())
	if err != nil || loc != *fixed {
		t.Errorf("Resolve() = %+v, %v, want %+v", loc, err, *fixed)
	}
}

func TestResolveFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"fail status", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"fail","message":"private range"}`))
		}},
		{"no coordinates", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"success","city":"Nowhere"}`))
		}},
		{"http error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"not json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("nope"))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := NewLocator(srv.URL, nil, srv.Client(), logging.Discard()).Resolve(context.Background())
			if !errors.Is(err, uerrors.ErrLocation) {
				t.Errorf("Resolve() error = %v, want ErrLocation", err)
			}
		})
	}
}
