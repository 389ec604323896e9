package service

import (
	"context"
	"image"

	"github.com/pkg/errors"

	"github.com/8FAX/HoyoHelper/internal/hoyolab"
	"github.com/8FAX/HoyoHelper/internal/model"
)

var (
	ErrMissingCookie = errors.New("account has no session cookie")
	ErrMissingLinks  = errors.New("game endpoint configuration is incomplete")
	ErrMissingName   = errors.New("account has no nickname")
)

// PortalAPI is the read-and-claim surface of the portal client.
type PortalAPI interface {
	CheckSignedIn(ctx context.Context, cookie string, links hoyolab.Links) (bool, error)
	FetchAwards(ctx context.Context, cookie string, links hoyolab.Links) ([]model.Award, error)
	FetchDayCount(ctx context.Context, cookie string, links hoyolab.Links) (int, error)
	FetchRefreshTime(ctx context.Context, cookie string, links hoyolab.Links) (string, error)
	Claim(ctx context.Context, cookie string, links hoyolab.Links) (bool, error)
}

// CardRenderer produces the visual summary card. A rendering failure
// is cosmetic; processing continues without a card.
type CardRenderer interface {
	Render(ctx context.Context, data *model.CardData, game string) (image.Image, error)
}
