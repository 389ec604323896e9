package notify

import (
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWebhookSendTextOnly(t *testing.T) {
	var gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotContent = r.PostFormValue("content")
	}))
	defer srv.Close()

	wh := NewWebhook(zap.NewNop(), srv.URL)
	err := wh.Send(context.Background(), "hello operator", nil)

	require.NoError(t, err)
	assert.Equal(t, "hello operator", gotContent)
}

func TestWebhookSendWithCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "signed in", r.PostFormValue("content"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "Card.png", header.Filename)
		assert.Greater(t, header.Size, int64(0))
	}))
	defer srv.Close()

	wh := NewWebhook(zap.NewNop(), srv.URL)
	err := wh.Send(context.Background(), "signed in", image.NewRGBA(image.Rect(0, 0, 8, 8)))

	require.NoError(t, err)
}

func TestWebhookSendFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	wh := NewWebhook(zap.NewNop(), srv.URL)
	err := wh.Send(context.Background(), "hello", nil)

	var notifErr *NotificationError
	require.ErrorAs(t, err, &notifErr)
	assert.Contains(t, notifErr.Error(), "429")
}

func TestWebhookNoURLConfigured(t *testing.T) {
	wh := NewWebhook(zap.NewNop(), "")
	err := wh.Send(context.Background(), "hello", nil)

	var notifErr *NotificationError
	require.ErrorAs(t, err, &notifErr)
}

func TestAbbreviateURL(t *testing.T) {
	long := "https://discord.com/api/webhooks/123456789/secret-token-value"
	short := abbreviateURL(long)
	assert.NotEqual(t, long, short)
	assert.NotContains(t, short, "secret-token")
	assert.True(t, strings.Contains(short, "..."))

	assert.Equal(t, "https://x.test/a", abbreviateURL("https://x.test/a"))
}
