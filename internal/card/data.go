package card

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/8FAX/HoyoHelper/internal/hoyolab"
	"github.com/8FAX/HoyoHelper/internal/model"
)

// BuildCardData turns the raw calendar, day counter and sign-in status
// into a display-ready summary.
//
// The portal's day counter already includes today once the reward is
// claimed, so the index steps back one in that case. A claimed state
// with a zero counter has been observed upstream; the index stays at
// zero then instead of going negative.
func BuildCardData(log *zap.Logger, awards []model.Award, dayCount int, refreshLabel string, signedIn bool) (*model.CardData, error) {
	idx := dayCount
	if signedIn {
		if dayCount == 0 {
			log.Warn("already signed in but day counter is 0, keeping index 0")
		} else {
			idx = dayCount - 1
		}
	}

	if len(awards) == 0 {
		return nil, &hoyolab.APIDataError{Op: "data_parser", Reason: "awards list is empty"}
	}
	if idx < 0 || idx >= len(awards) {
		return nil, &hoyolab.APIDataError{
			Op: "data_parser",
			Reason: fmt.Sprintf("reward index %d out of bounds for %d awards (day_count %d, signed_in %t)",
				idx, len(awards), dayCount, signedIn),
		}
	}

	data := &model.CardData{
		Today:        awards[idx],
		EndOfMonth:   idx+1 >= len(awards),
		DayNumber:    idx + 1,
		RefreshLabel: refreshLabel,
	}
	if !data.EndOfMonth {
		tomorrow := awards[idx+1]
		data.Tomorrow = &tomorrow
	}
	return data, nil
}

// FormatRefresh renders a unix timestamp string as a rough countdown
// label for the card.
func FormatRefresh(unixStr string) (string, error) {
	secs, err := strconv.ParseInt(strings.TrimSpace(unixStr), 10, 64)
	if err != nil {
		return "", errors.Wrapf(err, "invalid refresh timestamp %q", unixStr)
	}
	return formatDelta(time.Until(time.Unix(secs, 0))), nil
}

func formatDelta(d time.Duration) string {
	if d <= 0 {
		return "Refresh passed / imminent"
	}
	total := int(d.Seconds())
	days := total / 86400
	hours := (total / 3600) % 24
	minutes := (total % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	}
	return "<1m (Soon)"
}
