package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	restockdomain "github.com/ghuser/restockhub/services/restock/domain"
)

// requireNonEmpty fails when value is empty or whitespace-only.
func requireNonEmpty(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s cannot be empty", restockdomain.ErrValidation, field)
	}
	return nil
}

// requireLengthAtMost fails when the trimmed value exceeds max characters.
func requireLengthAtMost(value string, max int, field string) error {
	if utf8.RuneCountInString(strings.TrimSpace(value)) > max {
		return fmt.Errorf("%w: %s must not exceed %d characters", restockdomain.ErrValidation, field, max)
	}
	return nil
}

// requirePositive fails when quantity is zero or negative.
func requirePositive(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: Quantity must be greater than zero", restockdomain.ErrValidation)
	}
	return nil
}
