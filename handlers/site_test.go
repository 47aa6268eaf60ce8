package handlers

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/invirogens/website/internal/relay"
	"github.com/invirogens/website/internal/schema"
	"github.com/invirogens/website/internal/seed"
	"github.com/invirogens/website/internal/sitemap"
	"github.com/invirogens/website/internal/store"
)

type fakeRelay struct {
	mu   sync.Mutex
	sent []schema.InsertContact
	err  error
}

func (f *fakeRelay) Send(_ context.Context, msg schema.InsertContact) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

func newTestStore(t *testing.T) *store.MemoryStore {
	t.Helper()
	data, err := seed.Load()
	require.NoError(t, err)
	st, err := store.NewMemoryStore(data.Products, data.News)
	require.NoError(t, err)
	return st
}

func newTestRouter(t *testing.T, rl Relayer, opts Options) (*gin.Engine, *store.MemoryStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := newTestStore(t)
	r := gin.New()
	NewSiteHandler(st, rl, opts).Register(r)
	return r, st
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListProducts(t *testing.T) {
	r, st := newTestRouter(t, nil, Options{})

	w := do(r, "GET", "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []schema.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Equal(t, st.ListProducts(), got)
}

func TestGetProduct_FoundAndMissing(t *testing.T) {
	r, st := newTestRouter(t, nil, Options{})

	w := do(r, "GET", "/api/products/dna-extraction", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got schema.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	want, err := st.GetProductBySlug("dna-extraction")
	require.NoError(t, err)
	require.Equal(t, *want, got)

	w = do(r, "GET", "/api/products/does-not-exist", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"message":"Product not found"}`, w.Body.String())
}

func TestProductJSON_NullOptionals(t *testing.T) {
	r, _ := newTestRouter(t, nil, Options{})

	w := do(r, "GET", "/api/products/etbr-destroyer-bag", "")
	require.Equal(t, http.StatusOK, w.Code)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.Contains(t, raw, "components")
	require.Nil(t, raw["components"])
	require.Equal(t, false, raw["featured"])
}

func TestNews_SortedAndLookup(t *testing.T) {
	r, _ := newTestRouter(t, nil, Options{})

	w := do(r, "GET", "/api/news", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []schema.NewsArticle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.NotEmpty(t, list)
	require.Nil(t, list[0].PublishedAt, "undated articles sort first")
	for i := 2; i < len(list); i++ {
		require.False(t, list[i].PublishedAt.Before(*list[i-1].PublishedAt))
	}

	w = do(r, "GET", "/api/news/wide-mouth-bottle-pp", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, "GET", "/api/news/nope", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.JSONEq(t, `{"message":"Article not found"}`, w.Body.String())
}

func TestCreateContact_StoresAndRelays(t *testing.T) {
	rl := &fakeRelay{}
	r, st := newTestRouter(t, rl, Options{})
	body := `{"name":"Jane","email":"jane@x.com","subject":"Quote","message":"Need 10 kits"}`

	w1 := do(r, "POST", "/api/contact", body)
	require.Equal(t, http.StatusCreated, w1.Code)
	var first schema.ContactMessage
	require.NoError(t, json.Unmarshal(w1.Body.Bytes(), &first))
	require.Equal(t, "Jane", first.Name)
	require.Nil(t, first.Company)
	require.WithinDuration(t, time.Now(), first.CreatedAt, 5*time.Second)
	require.Contains(t, w1.Body.String(), `"company":null`)

	blank := do(r, "POST", "/api/contact", `{"name":"Jane","email":"jane@x.com","company":"","subject":"Quote","message":"Need 10 kits"}`)
	require.Equal(t, http.StatusCreated, blank.Code)
	require.Contains(t, blank.Body.String(), `"company":null`)

	w2 := do(r, "POST", "/api/contact", body)
	require.Equal(t, http.StatusCreated, w2.Code)
	var second schema.ContactMessage
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &second))
	require.NotEqual(t, first.ID, second.ID)

	require.Len(t, rl.sent, 3)
	require.Equal(t, "Quote", rl.sent[0].Subject)
	require.Equal(t, 3, st.Stats().Contacts)
}

func TestCreateContact_RelayFailureKeeps201(t *testing.T) {
	rl := &fakeRelay{err: &relay.DeliveryError{Channel: "formsubmit", StatusCode: 500, Body: "down"}}
	r, st := newTestRouter(t, rl, Options{})

	w := do(r, "POST", "/api/contact", `{"name":"Jane","email":"jane@x.com","company":"Acme","subject":"Quote","message":"Hi"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 1, st.Stats().Contacts)

	rl.err = relay.ErrNoChannel
	w = do(r, "POST", "/api/contact", `{"name":"Jane","email":"jane@x.com","subject":"Quote","message":"Hi"}`)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateContact_InvalidEmail(t *testing.T) {
	rl := &fakeRelay{}
	r, st := newTestRouter(t, rl, Options{})

	w := do(r, "POST", "/api/contact", `{"name":"Jane","email":"not-an-email","subject":"Quote","message":"Hi"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Message string              `json:"message"`
		Errors  []schema.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Invalid form data", resp.Message)
	require.Len(t, resp.Errors, 1)
	require.Equal(t, "email", resp.Errors[0].Field)

	require.Zero(t, st.Stats().Contacts)
	require.Empty(t, rl.sent)
}

func TestCreateContact_MalformedJSON(t *testing.T) {
	r, st := newTestRouter(t, nil, Options{})

	w := do(r, "POST", "/api/contact", `{"name":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Invalid form data")

	w = do(r, "POST", "/api/contact", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Errors []schema.FieldError `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Errors, 4, "every missing field is reported")
	require.Zero(t, st.Stats().Contacts)
}

func TestCreateContact_RunsContactMiddleware(t *testing.T) {
	st := newTestStore(t)
	r := gin.New()
	NewSiteHandler(st, nil, Options{}).Register(r, func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "slow down"})
	})

	w := do(r, "POST", "/api/contact", `{"name":"Jane","email":"jane@x.com","subject":"Quote","message":"Hi"}`)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Zero(t, st.Stats().Contacts)

	require.Equal(t, http.StatusOK, do(r, "GET", "/api/products", "").Code, "read routes are not limited")
}

type urlset struct {
	URLs []struct {
		Loc     string `xml:"loc"`
		LastMod string `xml:"lastmod"`
	} `xml:"url"`
}

func TestSitemap(t *testing.T) {
	fixed := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	r, st := newTestRouter(t, nil, Options{Now: func() time.Time { return fixed }})

	req := httptest.NewRequest("GET", "/sitemap.xml", nil)
	req.Host = "invirogens.site"
	req.Header.Set("X-Forwarded-Proto", "https")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/xml")

	var doc urlset
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &doc))
	stats := st.Stats()
	require.Len(t, doc.URLs, len(sitemap.StaticPaths)+stats.Products+stats.News)

	seen := map[string]bool{}
	for _, u := range doc.URLs {
		require.False(t, seen[u.Loc], "duplicate %s", u.Loc)
		seen[u.Loc] = true
		require.True(t, strings.HasPrefix(u.Loc, "https://invirogens.site/"))
	}
	require.True(t, seen["https://invirogens.site/products/dna-extraction"])
	require.Equal(t, "2025-05-06T07:08:09Z", doc.URLs[0].LastMod)
}

func TestRobots_UsesSiteURL(t *testing.T) {
	r, _ := newTestRouter(t, nil, Options{SiteURL: "https://invirogens.site"})

	w := do(r, "GET", "/robots.txt", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	require.Equal(t, "User-agent: *\nAllow: /\n\nSitemap: https://invirogens.site/sitemap.xml", w.Body.String())
}

func TestRSS(t *testing.T) {
	r, _ := newTestRouter(t, nil, Options{SiteURL: "https://invirogens.site"})

	w := do(r, "GET", "/rss.xml", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "application/rss+xml")
	require.Contains(t, w.Body.String(), "https://invirogens.site/news/wide-mouth-bottle-pp")
}

func TestSEOCache_IgnoresRequestHosts(t *testing.T) {
	st := newTestStore(t)
	for _, siteURL := range []string{"", "https://invirogens.site"} {
		h := NewSiteHandler(st, nil, Options{SiteURL: siteURL, SEOCacheTTL: 5 * time.Minute})
		r := gin.New()
		h.Register(r)

		for i := 0; i < 200; i++ {
			for _, path := range []string{"/sitemap.xml", "/rss.xml"} {
				req := httptest.NewRequest("GET", path, nil)
				req.Host = fmt.Sprintf("host-%d.example", i)
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)
				require.Equal(t, http.StatusOK, w.Code)
			}
		}

		if siteURL == "" {
			require.Nil(t, h.docs, "request-derived origins are never cached")
			continue
		}
		require.LessOrEqual(t, h.docs.ItemCount(), 2, "at most one entry per document")
	}
}

func TestSEOCache_ServesRenderedDocument(t *testing.T) {
	calls := 0
	now := func() time.Time {
		calls++
		return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(calls) * time.Hour)
	}
	r, _ := newTestRouter(t, nil, Options{SiteURL: "https://invirogens.site", SEOCacheTTL: time.Minute, Now: now})

	first := do(r, "GET", "/sitemap.xml", "").Body.String()
	second := do(r, "GET", "/sitemap.xml", "").Body.String()
	require.Equal(t, first, second)
	require.Equal(t, 1, calls)
}

type fakeSigner struct {
	url string
	err error
}

func (f fakeSigner) PresignedURL(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.url + key, nil
}

func TestMediaRedirect(t *testing.T) {
	r := gin.New()
	RegisterMedia(r, fakeSigner{url: "https://cdn.invirogens.site/"})

	w := do(r, "GET", "/media/products/dna-extraction.jpg", "")
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "https://cdn.invirogens.site/products/dna-extraction.jpg", w.Header().Get("Location"))

	w = do(r, "GET", "/media/../secret", "")
	require.NotEqual(t, http.StatusFound, w.Code)
}

func TestMediaErrors(t *testing.T) {
	r := gin.New()
	RegisterMedia(r, fakeSigner{err: errors.New("minio unreachable")})
	w := do(r, "GET", "/media/products/x.jpg", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthAndReady(t *testing.T) {
	st := newTestStore(t)
	r := gin.New()
	failing := false
	RegisterHealth(r, st, "formsubmit", map[string]Check{
		"redis": func(context.Context) error {
			if failing {
				return errors.New("down")
			}
			return nil
		},
	})

	w := do(r, "GET", "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "healthy", w.Body.String())

	w = do(r, "GET", "/ready", "")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Status  string          `json:"status"`
		Relay   string          `json:"relay"`
		Deps    map[string]bool `json:"deps"`
		Content store.Stats     `json:"content"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "ready", body.Status)
	require.Equal(t, "formsubmit", body.Relay)
	require.True(t, body.Deps["redis"])
	require.Equal(t, st.Stats(), body.Content)

	failing = true
	w = do(r, "GET", "/ready", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
