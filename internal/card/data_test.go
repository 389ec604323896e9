package card

import (
	"fmt"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/8FAX/HoyoHelper/internal/hoyolab"
	"github.com/8FAX/HoyoHelper/internal/model"
)

func makeAwards(n int) []model.Award {
	awards := make([]model.Award, n)
	for i := range awards {
		awards[i] = model.Award{Name: fmt.Sprintf("Reward %d", i+1), Count: i + 1}
	}
	return awards
}

func TestBuildCardData(t *testing.T) {
	log := zap.NewNop()

	tests := []struct {
		name         string
		awards       []model.Award
		dayCount     int
		signedIn     bool
		wantErr      bool
		wantDay      int
		wantEOM      bool
		wantTomorrow bool
	}{
		{
			name:         "mid month not signed in",
			awards:       makeAwards(31),
			dayCount:     5,
			signedIn:     false,
			wantDay:      6,
			wantEOM:      false,
			wantTomorrow: true,
		},
		{
			name:         "signed in steps index back",
			awards:       makeAwards(31),
			dayCount:     5,
			signedIn:     true,
			wantDay:      5,
			wantEOM:      false,
			wantTomorrow: true,
		},
		{
			name:         "signed in with zero counter keeps index zero",
			awards:       makeAwards(30),
			dayCount:     0,
			signedIn:     true,
			wantDay:      1,
			wantEOM:      false,
			wantTomorrow: true,
		},
		{
			name:         "last day of month signed in",
			awards:       makeAwards(30),
			dayCount:     30,
			signedIn:     true,
			wantDay:      30,
			wantEOM:      true,
			wantTomorrow: false,
		},
		{
			name:     "counter at calendar length while not signed in is out of bounds",
			awards:   makeAwards(30),
			dayCount: 30,
			signedIn: false,
			wantErr:  true,
		},
		{
			name:     "empty awards",
			awards:   nil,
			dayCount: 0,
			signedIn: false,
			wantErr:  true,
		},
		{
			name:     "counter far past calendar",
			awards:   makeAwards(28),
			dayCount: 40,
			signedIn: true,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := BuildCardData(log, tt.awards, tt.dayCount, "2h 10m", tt.signedIn)

			if tt.wantErr {
				var dataErr *hoyolab.APIDataError
				require.True(t, errors.As(err, &dataErr), "expected APIDataError, got %v", err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, data)

			assert.Equal(t, tt.wantDay, data.DayNumber)
			assert.Equal(t, tt.wantEOM, data.EndOfMonth)
			assert.Equal(t, tt.awards[data.DayNumber-1], data.Today)
			if tt.wantTomorrow {
				require.NotNil(t, data.Tomorrow)
				assert.Equal(t, tt.awards[data.DayNumber], *data.Tomorrow)
			} else {
				assert.Nil(t, data.Tomorrow)
			}
			assert.Equal(t, "2h 10m", data.RefreshLabel)
		})
	}
}

func TestBuildCardDataNeverIndexesOutOfBounds(t *testing.T) {
	log := zap.NewNop()
	for _, n := range []int{28, 29, 30, 31} {
		awards := makeAwards(n)
		for day := 0; day <= n; day++ {
			for _, signedIn := range []bool{false, true} {
				data, err := BuildCardData(log, awards, day, "1h 0m", signedIn)
				if err != nil {
					continue
				}
				assert.GreaterOrEqual(t, data.DayNumber-1, 0)
				assert.Less(t, data.DayNumber-1, n)
				assert.Equal(t, data.DayNumber == n, data.EndOfMonth)
			}
		}
	}
}

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		name     string
		delta    time.Duration
		expected string
	}{
		{"passed", -time.Minute, "Refresh passed / imminent"},
		{"seconds only", 40 * time.Second, "<1m (Soon)"},
		{"minutes", 12 * time.Minute, "12m"},
		{"hours and minutes", 5*time.Hour + 3*time.Minute, "5h 3m"},
		{"days", 49*time.Hour + 30*time.Minute, "2d 1h 30m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDelta(tt.delta))
		})
	}
}

func TestFormatRefresh(t *testing.T) {
	future := time.Now().Add(3 * time.Hour).Unix()
	label, err := FormatRefresh(fmt.Sprintf("%d", future))
	require.NoError(t, err)
	assert.Contains(t, label, "h")

	_, err = FormatRefresh("not-a-timestamp")
	assert.Error(t, err)
}
