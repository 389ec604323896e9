package hoyolab

// Links holds the endpoint set for one game's daily check-in campaign.
// Looked up once per game per run and never mutated afterwards.
type Links struct {
	RewardInfoURL  string
	DayCounterURL  string
	TimeInfoURL    string
	SigninCheckURL string
	SigninURL      string
	ActivityID     string
	ShortName      string
	Name           string
	Lang           string
}

// DefaultGames maps config game codes to their portal endpoints. The
// act_id is baked into each URL because the portal expects it as a
// query parameter on reads and as a JSON field on the claim POST.
func DefaultGames() map[string]Links {
	return map[string]Links{
		"gi": {
			RewardInfoURL:  "https://sg-hk4e-api.hoyolab.com/event/sol/home?lang=en-us&act_id=e202102251931481",
			DayCounterURL:  "https://sg-hk4e-api.hoyolab.com/event/sol/info?lang=en-us&act_id=e202102251931481",
			TimeInfoURL:    "https://sg-hk4e-api.hoyolab.com/event/sol/recommend/info?act_id=e202102251931481&plat=PT_PC&lang=en-us",
			SigninCheckURL: "https://sg-hk4e-api.hoyolab.com/event/sol/info?lang=en-us&act_id=e202102251931481",
			SigninURL:      "https://sg-hk4e-api.hoyolab.com/event/sol/sign?lang=en-us",
			ActivityID:     "e202102251931481",
			ShortName:      "gi",
			Name:           "Genshin Impact",
			Lang:           "en-us",
		},
		"hsr": {
			RewardInfoURL:  "https://sg-public-api.hoyolab.com/event/luna/hkrpg/os/home?lang=en-us&act_id=e202303301540311",
			DayCounterURL:  "https://sg-public-api.hoyolab.com/event/luna/hkrpg/os/info?lang=en-us&act_id=e202303301540311",
			TimeInfoURL:    "https://sg-public-api.hoyolab.com/event/luna/hkrpg/os/recommend?act_id=e202303301540311&plat=PT_PC&lang=en-us",
			SigninCheckURL: "https://sg-public-api.hoyolab.com/event/luna/hkrpg/os/info?lang=en-us&act_id=e202303301540311",
			SigninURL:      "https://sg-public-api.hoyolab.com/event/luna/hkrpg/os/sign",
			ActivityID:     "e202303301540311",
			ShortName:      "hkrpg",
			Name:           "Honkai: Star Rail",
			Lang:           "en-us",
		},
		"zzz": {
			RewardInfoURL:  "https://sg-public-api.hoyolab.com/event/luna/zzz/os/home?lang=en-us&act_id=e202406031448091",
			DayCounterURL:  "https://sg-public-api.hoyolab.com/event/luna/zzz/os/info?lang=en-us&act_id=e202406031448091",
			TimeInfoURL:    "https://sg-public-api.hoyolab.com/event/luna/zzz/os/recommend?act_id=e202406031448091&lang=en-us&plat=PT_M",
			SigninCheckURL: "https://sg-public-api.hoyolab.com/event/luna/zzz/os/info?lang=en-us&act_id=e202406031448091",
			SigninURL:      "https://sg-public-api.hoyolab.com/event/luna/zzz/os/sign",
			ActivityID:     "e202406031448091",
			ShortName:      "zzz",
			Name:           "Zenless Zone Zero",
			Lang:           "en-us",
		},
	}
}
