package wiki

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

// createMockClient creates a client for server with credentials and no retries
func createMockClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	config := &Config{
		BaseURL:   server.URL,
		Username:  "TestUser@bot",
		Password:  "TestPass",
		Timeout:   5 * time.Second,
		UserAgent: "TestClient/1.0",
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := NewClient(config, logger)
	t.Cleanup(client.Close)
	return client
}

// mockMediaWikiServer answers token and login requests itself and delegates
// everything else to handler
func mockMediaWikiServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	return newTestServer(t, mockHandler(handler))
}

func newTestServer(t *testing.T, h http.Handler) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return server
}

func mockHandler(handler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()

		if r.FormValue("meta") == "tokens" {
			key := r.FormValue("type") + "token"
			writeJSON(w, map[string]interface{}{
				"query": map[string]interface{}{
					"tokens": map[string]interface{}{key: "test-" + key + "+\\"},
				},
			})
			return
		}

		if r.FormValue("action") == "login" {
			writeJSON(w, map[string]interface{}{
				"login": map[string]interface{}{"result": "Success", "lgusername": "TestUser"},
			})
			return
		}

		handler(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
