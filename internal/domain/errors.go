package domain

import "strings"

// Machine-readable codes for schedule and configuration violations.
const (
	CodeInvalidSchedule  = "invalid_schedule"
	CodeNaiveTimestamp   = "naive_timestamp"
	CodeLoadingWindow    = "loading_window"
	CodeScheduleTooTight = "schedule_too_tight"
	CodeNegativeMargin   = "negative_margin"
	CodeMixedCurrency    = "mixed_currency"
	CodeInvalidSetting   = "invalid_cost_setting"
)

// ValidationError is a business-rule violation surfaced synchronously to the
// caller. Never retried; the HTTP layer maps it to a client error status.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Code + ": " + e.Message
}

// ValidationErrors aggregates every violation found in one pass so callers
// can report all of them at once.
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	msgs := make([]string, 0, len(es))
	for _, e := range es {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}
