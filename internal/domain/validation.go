package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Required fails when value is blank.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ErrValidation{Field: field, Message: "This field is required."}
	}
	return nil
}

// ParseAmount parses a strictly positive money amount.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, &ErrValidation{Field: "amount", Message: "Amount is required."}
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &ErrValidation{Field: "amount", Message: "Amount must be a number."}
	}
	if !amount.IsPositive() {
		return decimal.Zero, &ErrValidation{Field: "amount", Message: "Amount must be greater than zero."}
	}
	return amount, nil
}

// ParseAccountID parses a positive numeric account id.
func ParseAccountID(field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ErrValidation{Field: field, Message: "Account id is required."}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &ErrValidation{Field: field, Message: "Account id must be a positive whole number."}
	}
	return id, nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
