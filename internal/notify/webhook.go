package notify

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Webhook posts messages to a Discord-compatible webhook. Cards ride
// along as a multipart PNG attachment.
type Webhook struct {
	url  string
	http *http.Client
	log  *zap.Logger
}

func NewWebhook(log *zap.Logger, webhookURL string) *Webhook {
	return &Webhook{
		url:  webhookURL,
		http: &http.Client{},
		log:  log,
	}
}

func (w *Webhook) Send(ctx context.Context, message string, card image.Image) error {
	if w.url == "" {
		return &NotificationError{Target: "webhook", Err: errors.New("no webhook URL configured")}
	}

	var body bytes.Buffer
	var contentType string
	timeout := 10 * time.Second

	if card != nil {
		mw := multipart.NewWriter(&body)
		if err := mw.WriteField("content", message); err != nil {
			return &NotificationError{Target: abbreviateURL(w.url), Err: err}
		}
		part, err := mw.CreateFormFile("file", "Card.png")
		if err != nil {
			return &NotificationError{Target: abbreviateURL(w.url), Err: err}
		}
		if err := png.Encode(part, card); err != nil {
			return &NotificationError{Target: abbreviateURL(w.url), Err: errors.Wrap(err, "encode card png")}
		}
		if err := mw.Close(); err != nil {
			return &NotificationError{Target: abbreviateURL(w.url), Err: err}
		}
		contentType = mw.FormDataContentType()
		timeout = 15 * time.Second
	} else {
		form := url.Values{"content": {message}}
		body.WriteString(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, &body)
	if err != nil {
		return &NotificationError{Target: abbreviateURL(w.url), Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := w.http.Do(req)
	if err != nil {
		return &NotificationError{Target: abbreviateURL(w.url), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return &NotificationError{
			Target: abbreviateURL(w.url),
			Err:    errors.Errorf("http status %d: %s", resp.StatusCode, raw),
		}
	}
	w.log.Debug("webhook delivered", zap.String("target", abbreviateURL(w.url)))
	return nil
}

// abbreviateURL keeps webhook tokens out of logs and error messages.
func abbreviateURL(u string) string {
	if len(u) > 30 {
		return u[:15] + "..." + u[len(u)-15:]
	}
	return u
}
