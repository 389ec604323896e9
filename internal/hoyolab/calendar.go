package hoyolab

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/8FAX/HoyoHelper/internal/model"
)

// Retcode the portal intermittently returns on otherwise healthy
// sign-in checks. Worth a couple of slow retries before giving up.
const transientRetcode = -500001

const maxSignCheckRetries = 2

type rewardHomeResponse struct {
	Retcode int    `json:"retcode"`
	Message string `json:"message"`
	Data    *struct {
		Month  int `json:"month"`
		Awards []struct {
			Icon string `json:"icon"`
			Name string `json:"name"`
			Cnt  int    `json:"cnt"`
		} `json:"awards"`
	} `json:"data"`
}

type signInfoResponse struct {
	Retcode int           `json:"retcode"`
	Message string        `json:"message"`
	Data    *signInfoData `json:"data"`
}

type signInfoData struct {
	TotalSignDay *int  `json:"total_sign_day"`
	IsSign       *bool `json:"is_sign"`
}

type recommendResponse struct {
	Retcode int    `json:"retcode"`
	Message string `json:"message"`
	Data    *struct {
		RefreshTime string `json:"refresh_time"`
		ResignTime  string `json:"resign_time"`
	} `json:"data"`
}

// FetchAwards returns the month's reward calendar, index 0 being day 1.
func (c *Client) FetchAwards(ctx context.Context, cookie string, links Links) ([]model.Award, error) {
	var resp rewardHomeResponse
	if err := c.getJSON(ctx, links.RewardInfoURL, APIHeaders(cookie, links.ShortName), &resp); err != nil {
		return nil, err
	}
	if resp.Retcode != 0 {
		return nil, &APIDataError{Op: "reward_info", Retcode: resp.Retcode, Message: resp.Message}
	}
	if resp.Data == nil || resp.Data.Awards == nil {
		return nil, &APIDataError{Op: "reward_info", Reason: "awards missing from response"}
	}

	awards := make([]model.Award, len(resp.Data.Awards))
	for i, a := range resp.Data.Awards {
		awards[i] = model.Award{Icon: a.Icon, Name: a.Name, Count: a.Cnt}
	}
	return awards, nil
}

// FetchDayCount returns how many days were claimed this period. Some
// endpoint variants omit total_sign_day on a fresh month; when is_sign
// is present the count is inferred as zero instead of failing.
func (c *Client) FetchDayCount(ctx context.Context, cookie string, links Links) (int, error) {
	var resp signInfoResponse
	if err := c.getJSON(ctx, links.DayCounterURL, APIHeaders(cookie, links.ShortName), &resp); err != nil {
		return 0, err
	}
	if resp.Retcode != 0 {
		return 0, &APIDataError{Op: "day_counter", Retcode: resp.Retcode, Message: resp.Message}
	}
	if resp.Data == nil {
		return 0, &APIDataError{Op: "day_counter", Reason: "data missing from response"}
	}
	if resp.Data.TotalSignDay == nil {
		if resp.Data.IsSign != nil {
			c.log.Info("total_sign_day missing but is_sign present, assuming 0 signed days",
				zap.String("game", links.ShortName))
			return 0, nil
		}
		return 0, &APIDataError{Op: "day_counter", Reason: "total_sign_day missing from response"}
	}
	return *resp.Data.TotalSignDay, nil
}

// FetchRefreshTime returns the next calendar refresh as a unix
// timestamp string. Genshin's endpoint labels it resign_time instead.
func (c *Client) FetchRefreshTime(ctx context.Context, cookie string, links Links) (string, error) {
	var resp recommendResponse
	if err := c.getJSON(ctx, links.TimeInfoURL, APIHeaders(cookie, links.ShortName), &resp); err != nil {
		return "", err
	}
	if resp.Retcode != 0 {
		return "", &APIDataError{Op: "time_info", Retcode: resp.Retcode, Message: resp.Message}
	}
	if resp.Data == nil {
		return "", &APIDataError{Op: "time_info", Reason: "data missing from response"}
	}
	if resp.Data.RefreshTime != "" {
		return resp.Data.RefreshTime, nil
	}
	if links.ShortName == "gi" && resp.Data.ResignTime != "" {
		c.log.Warn("using resign_time in place of refresh_time", zap.String("game", links.ShortName))
		return resp.Data.ResignTime, nil
	}
	return "", &APIDataError{Op: "time_info", Reason: "refresh_time missing from response"}
}

// CheckSignedIn reports whether today's reward is already claimed.
// Transport failures and the transient retcode get up to two extra
// attempts with a growing pause; any other non-zero retcode is fatal.
// A null data payload means not signed in, not an error.
func (c *Client) CheckSignedIn(ctx context.Context, cookie string, links Links) (bool, error) {
	url := links.SigninCheckURL
	if url == "" {
		url = links.DayCounterURL
	}
	for attempt := 0; ; attempt++ {
		signed, retry, err := c.checkSignedInOnce(ctx, url, cookie, links)
		if err == nil {
			return signed, nil
		}
		if retry && attempt < maxSignCheckRetries {
			c.log.Warn("retrying sign-in check",
				zap.String("game", links.ShortName),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			c.sleep(time.Duration(3*(attempt+1)) * time.Second)
			continue
		}
		return false, err
	}
}

func (c *Client) checkSignedInOnce(ctx context.Context, url, cookie string, links Links) (signed, retry bool, err error) {
	var resp signInfoResponse
	if err := c.getJSON(ctx, url, APIHeaders(cookie, links.ShortName), &resp); err != nil {
		return false, true, err
	}
	if resp.Retcode != 0 {
		return false, resp.Retcode == transientRetcode,
			&APIDataError{Op: "signin_check", Retcode: resp.Retcode, Message: resp.Message}
	}
	if resp.Data == nil {
		c.log.Info("sign-in check returned null data, assuming not signed in",
			zap.String("game", links.ShortName))
		return false, false, nil
	}
	if resp.Data.IsSign == nil {
		if resp.Data.TotalSignDay != nil && *resp.Data.TotalSignDay == 0 {
			c.log.Info("is_sign missing but total_sign_day is 0, assuming not signed in",
				zap.String("game", links.ShortName))
			return false, false, nil
		}
		return false, false, &APIDataError{Op: "signin_check", Reason: "is_sign missing from response"}
	}
	return *resp.Data.IsSign, false, nil
}
