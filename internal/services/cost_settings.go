package services

import (
	"fmt"
	"strings"

	"cargo-offer-service/internal/domain"
)

// ValidateCostSettings guards the settings-update boundary. The aggregator
// assumes validated inputs, so negative values, unknown categories, and
// mixed currencies must be rejected here, before anything is persisted.
func ValidateCostSettings(settings []domain.CostSetting) domain.ValidationErrors {
	var errs domain.ValidationErrors

	invalid := func(format string, args ...any) {
		errs = append(errs, &domain.ValidationError{
			Code:    domain.CodeInvalidSetting,
			Message: fmt.Sprintf(format, args...),
		})
	}

	currencies := make(map[string]struct{})
	for i, s := range settings {
		if strings.TrimSpace(s.Type) == "" {
			invalid("setting #%d: type must not be empty", i+1)
		}
		if !domain.ValidCategory(s.Category) {
			invalid("setting %q: unknown category %q", s.Type, s.Category)
		}
		if s.BaseValue < 0 {
			invalid("setting %q: base value must not be negative, got %v", s.Type, s.BaseValue)
		}
		if s.Multiplier < 0 {
			invalid("setting %q: multiplier must not be negative, got %v", s.Type, s.Multiplier)
		}
		if strings.TrimSpace(s.Currency) == "" {
			invalid("setting %q: currency must not be empty", s.Type)
		} else {
			currencies[s.Currency] = struct{}{}
		}
	}

	if len(currencies) > 1 {
		errs = append(errs, &domain.ValidationError{
			Code:    domain.CodeMixedCurrency,
			Message: "all cost settings must share one currency",
		})
	}

	return errs
}
