package email

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMailerFallsBackToLog(t *testing.T) {
	m := NewMailer(Config{}, zerolog.Nop())
	_, ok := m.(*LogMailer)
	require.True(t, ok)

	sent, err := m.SendPasswordReset(context.Background(), "a@uni.edu", "A", "http://x/reset/tok", time.Now())
	assert.NoError(t, err)
	assert.False(t, sent)
}

func TestSendGridMailerPostsV3Mail(t *testing.T) {
	var body map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		auth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	m := NewMailer(Config{SendGridAPIKey: "SG.key", FromAddress: "noreply@uni.edu", FromName: "ProjectHub"}, zerolog.Nop()).(*SendGridMailer)
	m.host = srv.URL

	sent, err := m.SendPasswordReset(context.Background(), "ayse@uni.edu", "Ayşe", "http://localhost:3000/reset-password/abc", time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, sent)
	assert.Equal(t, "Bearer SG.key", auth)

	personalizations := body["personalizations"].([]any)
	to := personalizations[0].(map[string]any)["to"].([]any)[0].(map[string]any)
	assert.Equal(t, "ayse@uni.edu", to["email"])
}

func TestSendGridMailerReportsRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := NewMailer(Config{SendGridAPIKey: "bad", FromAddress: "noreply@uni.edu"}, zerolog.Nop()).(*SendGridMailer)
	m.host = srv.URL

	sent, err := m.SendPasswordReset(context.Background(), "x@uni.edu", "X", "link", time.Now())
	assert.Error(t, err)
	assert.False(t, sent)
}
