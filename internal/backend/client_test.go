package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadResumeSendsMultipartFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/upload-resume", r.URL.Path)

		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			http.Error(w, "missing file", http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "resume.pdf", header.Filename)
		assert.Equal(t, "%PDF-1.4 body", string(data))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"filename":"resume.pdf","summary":"Strong candidate"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second)
	result, err := client.UploadResume(context.Background(), "resume.pdf", strings.NewReader("%PDF-1.4 body"))
	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", result.Filename)
	assert.Equal(t, "Strong candidate", result.Summary)
}

func TestUploadResumeRejectsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Failed to extract text"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).UploadResume(context.Background(), "a.pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestUploadResumeRejectsMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).UploadResume(context.Background(), "a.pdf", strings.NewReader("x"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrUnexpectedStatus))
}

func TestListInsightsKeepsServerOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/insights", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":2,"filename":"b.pdf","summary":"second","timestamp":"2025-03-02T10:00:00"},
			{"id":1,"filename":"a.pdf","summary":"first","timestamp":"2025-03-01T10:00:00"}
		]`))
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL, time.Second).ListInsights(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b.pdf", records[0].Filename)
	assert.Equal(t, "a.pdf", records[1].Filename)
	assert.Equal(t, "2025-03-01T10:00:00", records[1].Timestamp)
}

func TestListInsightsEmptyArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL, time.Second).ListInsights(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestListInsightsRejectsNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).ListInsights(context.Background())
	assert.Error(t, err)
}

func TestListInsightsRejectsNullRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"filename":"a.pdf","summary":"first","timestamp":"2025-03-01T10:00:00"},null]`))
	}))
	defer srv.Close()

	records, err := NewClient(srv.URL, time.Second).ListInsights(context.Background())
	assert.Error(t, err)
	assert.Nil(t, records)
}

func TestUploadResumeRejectsNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL, time.Second).UploadResume(context.Background(), "a.pdf", strings.NewReader("x"))
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, time.Second)
	_, err := client.ListInsights(context.Background())
	assert.Error(t, err)
	_, err = client.UploadResume(context.Background(), "a.pdf", strings.NewReader("x"))
	assert.Error(t, err)
	assert.Error(t, client.Ping(context.Background()))
}

func TestPingTreatsClientErrorsAsReachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL, time.Second).Ping(context.Background()))
}
