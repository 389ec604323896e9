package service

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/8FAX/HoyoHelper/internal/card"
	"github.com/8FAX/HoyoHelper/internal/hoyolab"
	"github.com/8FAX/HoyoHelper/internal/model"
	"github.com/8FAX/HoyoHelper/internal/notify"
)

// Processor runs the daily check-in state machine, one account at a
// time, one game at a time. Claim and verify for a game depend on each
// other's outcomes, so per-account game processing stays sequential.
type Processor struct {
	portal   PortalAPI
	renderer CardRenderer
	notifier notify.Notifier
	games    map[string]hoyolab.Links
	log      *zap.Logger

	gamePause   time.Duration
	claimDelay  func() time.Duration
	verifyDelay func() time.Duration
}

func NewProcessor(log *zap.Logger, portal PortalAPI, renderer CardRenderer, notifier notify.Notifier, games map[string]hoyolab.Links) *Processor {
	return &Processor{
		portal:   portal,
		renderer: renderer,
		notifier: notifier,
		games:    games,
		log:      log.With(zap.String("run_id", uuid.NewString())),

		gamePause:   time.Second,
		claimDelay:  func() time.Duration { return jitter(1*time.Second, 3*time.Second) },
		verifyDelay: func() time.Duration { return jitter(1*time.Second, 2*time.Second) },
	}
}

func jitter(min, max time.Duration) time.Duration {
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

// ProcessAccounts walks every account and its games strictly in order,
// pausing briefly between games to avoid hammering the portal. It
// returns the number of failed account/game pairs; failures never stop
// the rest of the run.
func (p *Processor) ProcessAccounts(ctx context.Context, accounts []model.Account) int {
	failures := 0
	for _, account := range accounts {
		n := p.notifierFor(account)

		if len(account.Games) == 0 {
			p.log.Warn("account has no games linked, skipping", zap.String("account", account.Nickname))
			p.send(ctx, n, fmt.Sprintf("WARNING: Account %s - no games linked, skipping.", account.Nickname), nil)
			continue
		}

		p.log.Info("processing account",
			zap.String("account", account.Nickname),
			zap.Int("games", len(account.Games)))

		for _, code := range account.Games {
			code = strings.ToLower(strings.TrimSpace(code))
			if code == "" {
				continue
			}
			links, ok := p.games[code]
			if !ok {
				p.log.Warn("unknown game code, skipping",
					zap.String("account", account.Nickname),
					zap.String("game", code))
				p.send(ctx, n, fmt.Sprintf("WARNING: Account %s - game code %q is not recognized, skipping.", account.Nickname, code), nil)
				continue
			}

			if !p.ProcessAccount(ctx, account, links) {
				failures++
			}
			p.sleepCtx(ctx, p.gamePause)
		}
	}
	return failures
}

// ProcessAccount runs the check-in flow for one account and game. No
// error escapes: every outcome is logged, reported through the
// notifier, and folded into the boolean result.
func (p *Processor) ProcessAccount(ctx context.Context, account model.Account, links hoyolab.Links) (ok bool) {
	name := fmt.Sprintf("%s (%s)", account.Nickname, links.ShortName)
	n := p.notifierFor(account)

	defer func() {
		if r := recover(); r != nil {
			p.log.Error("unexpected panic while processing account",
				zap.String("account", name), zap.Any("panic", r))
			p.send(ctx, n, fmt.Sprintf("CRITICAL: %s - unexpected error during processing: %v", name, r), nil)
			ok = false
		}
	}()

	if err := validateInputs(account, links); err != nil {
		p.log.Error("missing required inputs, this is a configuration bug",
			zap.String("account", name), zap.Error(err))
		p.send(ctx, n, fmt.Sprintf("CRITICAL BUG: %s - %v. Cannot proceed.", name, err), nil)
		return false
	}

	signedIn, err := p.portal.CheckSignedIn(ctx, account.Cookie, links)
	if err != nil {
		return p.fail(ctx, n, name, "sign-in check", err)
	}
	p.log.Info("sign-in status", zap.String("account", name), zap.Bool("signed_in", signedIn))

	// Calendar data is needed for the card in both branches.
	awards, err := p.portal.FetchAwards(ctx, account.Cookie, links)
	if err != nil {
		return p.fail(ctx, n, name, "reward calendar", err)
	}
	dayCount, err := p.portal.FetchDayCount(ctx, account.Cookie, links)
	if err != nil {
		return p.fail(ctx, n, name, "day counter", err)
	}
	refreshUnix, err := p.portal.FetchRefreshTime(ctx, account.Cookie, links)
	if err != nil {
		return p.fail(ctx, n, name, "refresh time", err)
	}
	refreshLabel, err := card.FormatRefresh(refreshUnix)
	if err != nil {
		return p.fail(ctx, n, name, "refresh time", err)
	}

	data, err := card.BuildCardData(p.log, awards, dayCount, refreshLabel, signedIn)
	if err != nil {
		return p.fail(ctx, n, name, "reward data", err)
	}

	img := p.renderCard(ctx, n, name, data, links.ShortName)

	if signedIn {
		p.log.Info("already signed in today", zap.String("account", name))
		p.send(ctx, n, fmt.Sprintf("%s has already signed in today. Current rewards:", name), img)
		return true
	}

	p.send(ctx, n, fmt.Sprintf("%s is attempting to sign in. Today's expected reward:", name), img)
	p.sleepCtx(ctx, p.claimDelay())

	claimed, err := p.portal.Claim(ctx, account.Cookie, links)
	if err != nil {
		var signErr *hoyolab.SigninError
		if errors.As(err, &signErr) && signErr.RiskControl() {
			p.log.Error("sign-in blocked by risk control",
				zap.String("account", name),
				zap.Int("risk_code", signErr.RiskCode))
			p.send(ctx, n, fmt.Sprintf("ERROR: %s - sign-in blocked by captcha/risk control (risk code %d). Manual sign-in needed.", name, signErr.RiskCode), nil)
			return false
		}
		return p.fail(ctx, n, name, "sign-in", err)
	}
	if !claimed {
		p.log.Warn("claim returned false without an error", zap.String("account", name))
		p.send(ctx, n, fmt.Sprintf("ERROR: %s - sign-in attempt failed.", name), nil)
		return false
	}

	p.sleepCtx(ctx, p.verifyDelay())
	verified, err := p.portal.CheckSignedIn(ctx, account.Cookie, links)
	if err != nil {
		return p.fail(ctx, n, name, "post-claim verification", err)
	}
	if !verified {
		p.log.Warn("claim reported success but verification shows not signed in",
			zap.String("account", name))
		p.send(ctx, n, fmt.Sprintf("WARNING: %s - sign-in status is inconsistent after the attempt. Please check manually.", name), nil)
		return false
	}

	p.log.Info("sign-in complete and verified", zap.String("account", name))
	p.send(ctx, n, fmt.Sprintf("SUCCESS: %s has signed in and claimed today's reward!", name), nil)
	return true
}

func validateInputs(account model.Account, links hoyolab.Links) error {
	switch {
	case account.Nickname == "":
		return ErrMissingName
	case account.Cookie == "":
		return ErrMissingCookie
	case links.ShortName == "" || links.SigninURL == "" || links.RewardInfoURL == "" ||
		links.DayCounterURL == "" || links.TimeInfoURL == "" || links.ActivityID == "":
		return ErrMissingLinks
	}
	return nil
}

func (p *Processor) fail(ctx context.Context, n notify.Notifier, name, stage string, err error) bool {
	p.log.Error("account processing failed",
		zap.String("account", name),
		zap.String("stage", stage),
		zap.Error(err))
	p.send(ctx, n, fmt.Sprintf("ERROR: %s - %s failed: %v", name, stage, err), nil)
	return false
}

// A missing card is cosmetic; the sign-in flow continues regardless.
func (p *Processor) renderCard(ctx context.Context, n notify.Notifier, name string, data *model.CardData, game string) image.Image {
	if p.renderer == nil {
		return nil
	}
	img, err := p.renderer.Render(ctx, data, game)
	if err != nil {
		p.log.Warn("card rendering failed", zap.String("account", name), zap.Error(err))
		p.send(ctx, n, fmt.Sprintf("WARNING: %s - could not render the reward card. Sign-in will proceed.", name), nil)
		return nil
	}
	return img
}

// notifierFor honors a per-account webhook override, otherwise the
// run-wide sink.
func (p *Processor) notifierFor(account model.Account) notify.Notifier {
	if account.WebhookURL != "" {
		return notify.NewWebhook(p.log, account.WebhookURL)
	}
	return p.notifier
}

// Notification failures are logged and dropped; they never affect the
// sign-in outcome.
func (p *Processor) send(ctx context.Context, n notify.Notifier, message string, card image.Image) {
	if n == nil {
		return
	}
	if err := n.Send(ctx, message, card); err != nil {
		p.log.Warn("notification failed", zap.Error(err))
	}
}

func (p *Processor) sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
