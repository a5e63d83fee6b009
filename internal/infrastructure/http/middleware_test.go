package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dwern/portfolio-chat/internal/config"
)

func originRouter(site config.SiteConfig) *gin.Engine {
	r := gin.New()
	r.Use(OriginCheck(site))
	r.POST("/chat", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestOriginCheck(t *testing.T) {
	site := config.SiteConfig{URL: "danielwern.dev", PreviewSuffix: ".vercel.app"}

	cases := []struct {
		name    string
		origin  string
		referer string
		want    int
	}{
		{"no headers", "", "", http.StatusForbidden},
		{"unknown origin", "https://evil.example.com", "", http.StatusForbidden},
		{"localhost origin", "http://localhost:3000", "", http.StatusOK},
		{"loopback origin", "http://127.0.0.1:3000", "", http.StatusOK},
		{"site origin", "https://danielwern.dev", "", http.StatusOK},
		{"preview origin", "https://portfolio-git-pr12.vercel.app", "", http.StatusOK},
		{"trusted referer only", "", "https://danielwern.dev/chat", http.StatusOK},
		{"untrusted both", "https://evil.example.com", "https://evil.example.com/", http.StatusForbidden},
	}

	router := originRouter(site)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/chat", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusForbidden {
				assert.JSONEq(t, `{"error":"Unauthorized request origin"}`, w.Body.String())
			}
		})
	}
}

func TestOriginCheckDisabled(t *testing.T) {
	router := originRouter(config.SiteConfig{DisableOriginCheck: true})
	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestClientKeyPrecedence(t *testing.T) {
	r := gin.New()
	var got string
	r.GET("/", func(c *gin.Context) {
		got = clientKey(c)
		c.Status(http.StatusOK)
	})

	serve := func(mutate func(*http.Request)) string {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		mutate(req)
		r.ServeHTTP(httptest.NewRecorder(), req)
		return got
	}

	// X-Forwarded-For wins and only its first hop counts.
	key := serve(func(req *http.Request) {
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
		req.Header.Set("X-Real-IP", "10.9.9.9")
	})
	assert.Equal(t, "10.0.0.1", key)

	key = serve(func(req *http.Request) {
		req.Header.Set("X-Real-IP", "10.9.9.9")
	})
	assert.Equal(t, "10.9.9.9", key)

	key = serve(func(req *http.Request) { req.RemoteAddr = "192.0.2.7:1234" })
	assert.Equal(t, "192.0.2.7", key)
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.POST("/chat", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))
}
