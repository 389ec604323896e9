package card

import (
	"context"
	"fmt"
	"image"
	"net"
	"net/http"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/8FAX/HoyoHelper/internal/hoyolab"
)

const (
	defaultCDNBase = "https://cdn.hoyohelper.com/"
	fallbackGame   = "gi"
	iconSize       = 100
)

// AssetFetchError reports a failed or undecodable image download.
// Always degraded to a soft warning by the compositor.
type AssetFetchError struct {
	URL string
	Err error
}

func (e *AssetFetchError) Error() string {
	return fmt.Sprintf("asset fetch failed for %s: %v", e.URL, e.Err)
}

func (e *AssetFetchError) Unwrap() error { return e.Err }

// Assets fetches decorative images from the CDN and reward icons from
// the portal, always with the unauthenticated header profile.
type Assets struct {
	base string
	http *http.Client
	log  *zap.Logger
}

func NewAssets(log *zap.Logger, baseURL string) *Assets {
	if baseURL == "" {
		baseURL = defaultCDNBase
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &Assets{
		base: baseURL,
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		log: log,
	}
}

// assetURL follows the CDN scheme {base}/{game}/{category}/{game}_{category}_{id}.png.
func (a *Assets) assetURL(game, category string, id int) string {
	return fmt.Sprintf("%s%s/%s/%s_%s_%d.png", a.base, game, category, game, category, id)
}

func (a *Assets) fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &AssetFetchError{URL: url, Err: err}
	}
	req.Header = hoyolab.AssetHeaders()

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, &AssetFetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &AssetFetchError{URL: url, Err: errors.Errorf("http status %d", resp.StatusCode)}
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, &AssetFetchError{URL: url, Err: errors.Wrap(err, "decode image")}
	}
	return img, nil
}

// GetWithFallback loads a categorized asset for game, retrying exactly
// once against the gi path when the primary fetch fails. A nil return
// means both paths failed; the caller decides whether that is fatal.
func (a *Assets) GetWithFallback(ctx context.Context, category string, id int, game string) image.Image {
	primary := a.assetURL(game, category, id)
	img, err := a.fetch(ctx, primary)
	if err == nil {
		return img
	}

	fallback := a.assetURL(fallbackGame, category, id)
	if fallback == primary {
		a.log.Error("asset fetch failed with no distinct fallback",
			zap.String("url", primary), zap.Error(err))
		return nil
	}
	a.log.Warn("primary asset fetch failed, trying gi fallback",
		zap.String("url", primary), zap.Error(err))

	img, err = a.fetch(ctx, fallback)
	if err != nil {
		a.log.Error("fallback asset fetch failed",
			zap.String("url", fallback), zap.Error(err))
		return nil
	}
	return img
}

// GetFrame loads the shared decorative frame overlay.
func (a *Assets) GetFrame(ctx context.Context) image.Image {
	url := a.base + "frame/frame_1.png"
	img, err := a.fetch(ctx, url)
	if err != nil {
		a.log.Warn("frame image unavailable", zap.String("url", url), zap.Error(err))
		return nil
	}
	return img
}

// FetchIcon downloads a reward icon by its portal URL and normalizes it
// to a 100x100 alpha-capable square for compositing.
func (a *Assets) FetchIcon(ctx context.Context, url string) (*image.RGBA, error) {
	img, err := a.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	return resizeSquare(img, iconSize), nil
}

func resizeSquare(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
