package services

import (
	"testing"

	"cargo-offer-service/internal/domain"
)

func TestValidateCostSettingsAcceptsSeedDefaults(t *testing.T) {
	if errs := ValidateCostSettings(testSettings()); len(errs) != 0 {
		t.Fatalf("unexpected violations: %v", errs)
	}
}

func TestValidateCostSettingsRejectsNegativeValues(t *testing.T) {
	settings := testSettings()
	settings[0].BaseValue = -1
	settings[1].Multiplier = -0.5

	errs := ValidateCostSettings(settings)
	if len(errs) != 2 {
		t.Fatalf("violations = %d, want 2: %v", len(errs), errs)
	}
	for _, e := range errs {
		if e.Code != domain.CodeInvalidSetting {
			t.Errorf("code = %q, want %q", e.Code, domain.CodeInvalidSetting)
		}
	}
}

func TestValidateCostSettingsRejectsUnknownCategory(t *testing.T) {
	settings := testSettings()
	settings[0].Category = "luxury"

	if errs := ValidateCostSettings(settings); len(errs) == 0 {
		t.Fatal("expected a violation for unknown category")
	}
}

func TestValidateCostSettingsRejectsEmptyType(t *testing.T) {
	settings := testSettings()
	settings[0].Type = "  "

	if errs := ValidateCostSettings(settings); len(errs) == 0 {
		t.Fatal("expected a violation for empty type")
	}
}

func TestValidateCostSettingsRejectsMixedCurrencies(t *testing.T) {
	settings := testSettings()
	settings[0].Currency = "PLN"

	errs := ValidateCostSettings(settings)
	found := false
	for _, e := range errs {
		if e.Code == domain.CodeMixedCurrency {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s violation, got %v", domain.CodeMixedCurrency, errs)
	}
}
