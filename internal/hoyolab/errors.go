package hoyolab

import (
	"fmt"
	"strings"
)

// APIRequestError is a terminal transport-level failure: timeouts,
// connection errors, non-2xx statuses after retries, or a 2xx body that
// does not decode as JSON. It carries enough context to reconstruct the
// failure without re-running the call.
type APIRequestError struct {
	URL        string
	StatusCode int
	Preview    string
	Err        error
}

func (e *APIRequestError) Error() string {
	parts := []string{fmt.Sprintf("api request failed: %v", e.Err)}
	if e.URL != "" {
		parts = append(parts, "url: "+e.URL)
	}
	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("status: %d", e.StatusCode))
	}
	if e.Preview != "" {
		parts = append(parts, "response: "+e.Preview)
	}
	return strings.Join(parts, " | ")
}

func (e *APIRequestError) Unwrap() error { return e.Err }

// APIDataError is a well-formed HTTP response whose payload is
// semantically wrong: non-zero retcode, missing field, or an
// out-of-range value. Never retried by the transport layer.
type APIDataError struct {
	Op      string
	Reason  string
	Retcode int
	Message string
}

func (e *APIDataError) Error() string {
	parts := []string{"api data error"}
	if e.Op != "" {
		parts[0] += " in " + e.Op
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	if e.Retcode != 0 {
		parts = append(parts, fmt.Sprintf("retcode: %d", e.Retcode))
	}
	if e.Message != "" {
		parts = append(parts, "message: "+e.Message)
	}
	return strings.Join(parts, " | ")
}

// SigninError is a claim-specific failure. RiskCode is non-zero when
// the portal demanded a captcha / risk-control challenge, which needs
// manual operator intervention.
type SigninError struct {
	Retcode  int
	Message  string
	RiskCode int
}

func (e *SigninError) Error() string {
	if e.RiskCode != 0 {
		return fmt.Sprintf("sign-in blocked by risk control (risk code %d, retcode %d): %s", e.RiskCode, e.Retcode, e.Message)
	}
	return fmt.Sprintf("sign-in failed (retcode %d): %s", e.Retcode, e.Message)
}

// RiskControl reports whether the failure was a captcha challenge.
func (e *SigninError) RiskControl() bool { return e.RiskCode != 0 }
