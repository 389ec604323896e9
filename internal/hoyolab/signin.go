package hoyolab

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Retcode the portal answers when the reward was already claimed today.
const alreadySignedRetcode = -5003

type signRequest struct {
	ActID string `json:"act_id"`
	Lang  string `json:"lang"`
}

type signResponse struct {
	Retcode int    `json:"retcode"`
	Message string `json:"message"`
	Data    *struct {
		GtResult *struct {
			RiskCode int `json:"risk_code"`
		} `json:"gt_result"`
	} `json:"data"`
}

// Claim redeems today's reward. An "already claimed" answer counts as
// success: the server treats a repeat claim as a no-op, so should we.
// This call is never auto-retried; the orchestrator re-checks sign-in
// status before deciding on another attempt.
func (c *Client) Claim(ctx context.Context, cookie string, links Links) (bool, error) {
	lang := links.Lang
	if lang == "" {
		lang = "en-us"
	}
	payload := signRequest{ActID: links.ActivityID, Lang: lang}

	var resp signResponse
	if err := c.postJSON(ctx, links.SigninURL, APIHeaders(cookie, links.ShortName), payload, &resp); err != nil {
		return false, err
	}

	msg := strings.ToLower(resp.Message)
	switch {
	case resp.Retcode == 0 && strings.Contains(msg, "ok"):
		return true, nil
	case resp.Retcode == alreadySignedRetcode,
		strings.Contains(msg, "already signed in"),
		strings.Contains(msg, "claimed"):
		c.log.Info("portal reports reward already claimed",
			zap.String("game", links.ShortName),
			zap.Int("retcode", resp.Retcode),
			zap.String("api_message", resp.Message))
		return true, nil
	}

	if resp.Data != nil && resp.Data.GtResult != nil && resp.Data.GtResult.RiskCode != 0 {
		return false, &SigninError{Retcode: resp.Retcode, Message: resp.Message, RiskCode: resp.Data.GtResult.RiskCode}
	}
	return false, &SigninError{Retcode: resp.Retcode, Message: resp.Message}
}
