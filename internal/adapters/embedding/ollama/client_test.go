package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEmbed(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embeddings", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req embeddingsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "hello", req.Prompt)

		_ = json.NewEncoder(w).Encode(embeddingsResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL+"/", "", server.Client())
	vector, err := client.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vector)
}

func TestClientEmbedErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "non-200 status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			wantErr: "status 500",
		},
		{
			name: "empty embedding",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"embedding":[]}`))
			},
			wantErr: "empty embedding",
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{`))
			},
			wantErr: "decode ollama response",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(tc.handler)
			t.Cleanup(server.Close)

			_, err := NewClient(server.URL, "m", server.Client()).Embed(context.Background(), "x")
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestClientInstalledAndPull(t *testing.T) {
	t.Parallel()

	var installed atomic.Bool
	var pulls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/show":
			if !installed.Load() {
				http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(`{}`))
		case "/api/pull":
			var req pullRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "all-minilm", req.Model)
			assert.False(t, req.Stream)
			pulls.Add(1)
			installed.Store(true)
			_, _ = w.Write([]byte(`{"status":"success"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "all-minilm", server.Client())

	ok, err := client.Installed(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, client.Pull(context.Background()))
	assert.Equal(t, int32(1), pulls.Load())

	ok, err = client.Installed(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClientPullReportsServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":"pull model manifest: file does not exist"}`))
	}))
	t.Cleanup(server.Close)

	err := NewClient(server.URL, "missing", server.Client()).Pull(context.Background())
	assert.ErrorContains(t, err, "file does not exist")
}
