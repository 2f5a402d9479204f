package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insight-console/internal/bootstrap"
	"insight-console/internal/config"
	httptransport "insight-console/internal/transport/http"
	"insight-console/internal/transport/http/response"
)

type fakeBackend struct {
	hits     atomic.Int32
	upload   http.HandlerFunc
	insights http.HandlerFunc
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/upload-resume":
		f.hits.Add(1)
		f.upload(w, r)
	case "/insights":
		f.hits.Add(1)
		f.insights(w, r)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func jsonReply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func failReply(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend failure", status)
	}
}

func newRouter(t *testing.T, baseURL string) *gin.Engine {
	t.Helper()
	return newRouterWith(t, baseURL, nil)
}

func newRouterWith(t *testing.T, baseURL string, tweak func(*config.Config)) *gin.Engine {
	t.Helper()
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	cfg.Backend.BaseURL = baseURL
	cfg.App.GinMode = gin.TestMode
	cfg.UI.Timezone = "UTC"
	cfg.Redis.Enabled = false
	cfg.MySQL.Enabled = false
	cfg.RabbitMQ.Enabled = false
	if tweak != nil {
		tweak(cfg)
	}

	app, err := bootstrap.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return httptransport.NewRouter(app)
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, _ = part.Write([]byte(content))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/ui/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUploadWithoutFileIsRejectedLocally(t *testing.T) {
	fb := &fakeBackend{upload: jsonReply(`{}`)}
	srv := httptest.NewServer(fb)
	defer srv.Close()
	router := newRouter(t, srv.URL)

	// a browser sends an empty file part when nothing is chosen
	rec := serve(router, uploadRequest(t, "", ""))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Header().Get("HX-Trigger"), "Please select a PDF file")
	assert.Equal(t, int32(0), fb.hits.Load())

	var trigger map[string]string
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger))
	assert.Equal(t, "Please select a PDF file", trigger["showAlert"])
}

func TestUploadRendersCard(t *testing.T) {
	fb := &fakeBackend{upload: jsonReply(`{"filename":"resume.pdf","summary":"Strong candidate"}`)}
	srv := httptest.NewServer(fb)
	defer srv.Close()
	router := newRouter(t, srv.URL)

	rec := serve(router, uploadRequest(t, "resume.pdf", "%PDF-1.4"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "resume.pdf")
	assert.Contains(t, rec.Body.String(), "Strong candidate")
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestUploadBackendErrorShowsNotice(t *testing.T) {
	fb := &fakeBackend{upload: failReply(http.StatusInternalServerError)}
	srv := httptest.NewServer(fb)
	defer srv.Close()
	router := newRouter(t, srv.URL)

	rec := serve(router, uploadRequest(t, "resume.pdf", "%PDF-1.4"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error uploading file")
	assert.NotContains(t, rec.Body.String(), `class="card"`)
}

func TestUploadTooLargeIsRejectedLocally(t *testing.T) {
	fb := &fakeBackend{upload: jsonReply(`{"filename":"big.pdf","summary":"never"}`)}
	srv := httptest.NewServer(fb)
	defer srv.Close()
	router := newRouterWith(t, srv.URL, func(cfg *config.Config) {
		cfg.UI.MaxUploadBytes = 1024
	})

	rec := serve(router, uploadRequest(t, "big.pdf", strings.Repeat("x", 4096)))

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, int32(0), fb.hits.Load())

	var body response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, response.CodePayloadTooLarge, body.Code)
	assert.Equal(t, "file too large", body.Message)
}

func TestUploadNullReplyShowsNotice(t *testing.T) {
	fb := &fakeBackend{upload: jsonReply(`null`)}
	srv := httptest.NewServer(fb)
	defer srv.Close()
	router := newRouter(t, srv.URL)

	rec := serve(router, uploadRequest(t, "resume.pdf", "%PDF-1.4"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error uploading file")
	assert.NotContains(t, rec.Body.String(), `class="card"`)
}

func TestUploadEscapesBackendFields(t *testing.T) {
	fb := &fakeBackend{upload: jsonReply(`{"filename":"<script>alert(1)</script>","summary":"ok"}`)}
	srv := httptest.NewServer(fb)
	defer srv.Close()
	router := newRouter(t, srv.URL)

	rec := serve(router, uploadRequest(t, "resume.pdf", "%PDF-1.4"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "<script>")
	assert.Contains(t, rec.Body.String(), "&lt;script&gt;")
}

func TestHistoryEmpty(t *testing.T) {
	fb := &fakeBackend{insights: jsonReply(`[]`)}
	srv := httptest.NewServer(fb)
	defer srv.Close()
	router := newRouter(t, srv.URL)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/ui/history", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No history found")
	assert.Equal(t, 0, strings.Count(rec.Body.String(), `class="card"`))
}

func TestHistoryRendersEveryRecord(t *testing.T) {
	fb := &fakeBackend{insights: jsonReply(`[
		{"id":3,"filename":"c.pdf","summary":"three","timestamp":"2025-05-03T12:00:00"},
		{"id":2,"filename":"b.pdf","summary":"two","timestamp":"2025-05-02T12:00:00"},
		{"id":1,"filename":"a.pdf","summary":"one","timestamp":"2025-05-01T12:00:00"}
	]`)}
	srv := httptest.NewServer(fb)
	defer srv.Close()
	router := newRouter(t, srv.URL)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/ui/history", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, 3, strings.Count(body, `class="card"`))
	assert.Less(t, strings.Index(body, "c.pdf"), strings.Index(body, "b.pdf"))
	assert.Less(t, strings.Index(body, "b.pdf"), strings.Index(body, "a.pdf"))
	assert.Contains(t, body, "5/3/2025, 12:00:00 PM")
}

func TestBackendDownShowsNotices(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	router := newRouter(t, url)

	rec := serve(router, uploadRequest(t, "resume.pdf", "%PDF-1.4"))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error uploading file")

	rec = serve(router, httptest.NewRequest(http.MethodGet, "/ui/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error loading history")
}

func TestRegionFollowsWorkspaceCookie(t *testing.T) {
	fb := &fakeBackend{upload: jsonReply(`{"filename":"resume.pdf","summary":"Strong candidate"}`)}
	srv := httptest.NewServer(fb)
	defer srv.Close()
	router := newRouter(t, srv.URL)

	first := serve(router, uploadRequest(t, "resume.pdf", "%PDF-1.4"))
	require.Equal(t, http.StatusOK, first.Code)
	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/ui/regions/result", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Strong candidate")

	// a different browser has its own empty region
	rec = serve(router, httptest.NewRequest(http.MethodGet, "/ui/regions/result", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestUnknownRegion(t *testing.T) {
	srv := httptest.NewServer(&fakeBackend{})
	defer srv.Close()
	router := newRouter(t, srv.URL)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/ui/regions/uploadForm", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadsDisabledWithoutMySQL(t *testing.T) {
	srv := httptest.NewServer(&fakeBackend{})
	defer srv.Close()
	router := newRouter(t, srv.URL)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/ui/uploads", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(&fakeBackend{})
	defer srv.Close()
	router := newRouter(t, srv.URL)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Dependencies map[string]struct {
			Enabled bool `json:"enabled"`
			OK      bool `json:"ok"`
		} `json:"dependencies"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Dependencies["backend"].OK)
	assert.False(t, body.Dependencies["redis"].Enabled)
}

func TestHealthzBackendDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	router := newRouter(t, url)

	rec := serve(router, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
