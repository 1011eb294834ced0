package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/domain"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	cfg := adapter.DefaultConfig()
	_, err := NewClientFromConfig(cfg, "en-US", nil)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)

	cfg.TMDB.APIKey = "k"
	client, err := NewClientFromConfig(cfg, "en-US", nil)
	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestConfiguredLanguageWins(t *testing.T) {
	cfg := adapter.TMDBConfig{APIKey: "k", Language: "de-DE"}
	assert.Equal(t, "de-DE", options(&cfg, "zh-CN").Language)

	cfg.Language = ""
	assert.Equal(t, "zh-CN", options(&cfg, "zh-CN").Language)
}

func TestVerifyAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"status_code": 7, "status_message": "Invalid API key"}`))
			return
		}
		w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	cfg := adapter.TMDBConfig{BaseURL: srv.URL}
	ctx := context.Background()
	assert.NoError(t, VerifyAPIKey(ctx, &cfg, " good ", nil))
	assert.ErrorIs(t, VerifyAPIKey(ctx, &cfg, "bad", nil), domain.ErrUnauthorized)
	assert.ErrorIs(t, VerifyAPIKey(ctx, &cfg, "", nil), domain.ErrNotConfigured)
}
