package model

// Account is one configured portal account. The cookie arrives ready to
// use from the account store; it is treated as an opaque bearer
// credential and never persisted by this pipeline.
type Account struct {
	Nickname   string
	Username   string
	Cookie     string
	Games      []string
	WebhookURL string
}
