package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	ceuhttp "github.com/tasanda/ceu/http"
)

func TestRobotsPolicy_Allowed(t *testing.T) {
	t.Parallel()

	t.Run("applies disallow rules", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/robots.txt": "User-agent: *\nDisallow: /checkout/\nDisallow: /search\n",
		})
		defer srv.Close()

		p := ceuhttp.NewRobotsPolicy(srv.Client(), "")
		ctx := context.Background()

		assert.True(t, p.Allowed(ctx, srv.URL+"/course/1"))
		assert.True(t, p.Allowed(ctx, srv.URL+"/"))
		assert.False(t, p.Allowed(ctx, srv.URL+"/checkout/pay"))
		assert.False(t, p.Allowed(ctx, srv.URL+"/search?q=ethics"))
	})

	t.Run("allows everything without robots.txt", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{})
		defer srv.Close()

		p := ceuhttp.NewRobotsPolicy(srv.Client(), "")
		assert.True(t, p.Allowed(context.Background(), srv.URL+"/anything"))
	})

	t.Run("disallows everything when robots.txt errors", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		p := ceuhttp.NewRobotsPolicy(srv.Client(), "")
		assert.False(t, p.Allowed(context.Background(), srv.URL+"/course/1"))
	})

	t.Run("fetches robots.txt once per host", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/robots.txt" {
				hits.Add(1)
			}
			_, _ = w.Write([]byte("User-agent: *\nDisallow: /private\n"))
		}))
		defer srv.Close()

		p := ceuhttp.NewRobotsPolicy(srv.Client(), "")
		ctx := context.Background()
		for range 5 {
			p.Allowed(ctx, srv.URL+"/course/1")
		}

		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("rejects unparseable URLs", func(t *testing.T) {
		t.Parallel()

		p := ceuhttp.NewRobotsPolicy(nil, "")
		assert.False(t, p.Allowed(context.Background(), "::not a url"))
	})
}
