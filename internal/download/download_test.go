package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadWritesTempFile(t *testing.T) {
	var gotAgent atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent.Store(r.Header.Get("User-Agent"))
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	dl := NewDownloader(srv.Client(), t.TempDir())
	path, err := dl.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, userAgent, gotAgent.Load())
}

func TestDownloadRetriesServerErrors(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	dl := NewDownloader(srv.Client(), t.TempDir())
	dl.backoff.InitialInterval = 1 // keep the test fast

	path, err := dl.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	defer os.Remove(path)

	assert.Equal(t, int64(3), hits.Load())
}

func TestDownloadRejectsEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	dl := NewDownloader(srv.Client(), t.TempDir())
	_, err := dl.Download(context.Background(), srv.URL)
	require.ErrorContains(t, err, "empty response")
}

func TestDownloadGivesUpAfterMaxRetries(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	dl := NewDownloader(srv.Client(), t.TempDir())
	dl.backoff.InitialInterval = 1

	_, err := dl.Download(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int64(1+dl.backoff.MaxRetries), hits.Load())
}
