package validate

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Accepts +-prefixed international numbers (7-15 digits) or NNN-NNN-NNNN.
var phonePattern = regexp.MustCompile(`^(\+?\d{7,15}|\d{3}-\d{3}-\d{4})$`)

// Phone treats an empty phone as valid, the field is optional.
func Phone(phone string) bool {
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phone)
}

func Price(price decimal.Decimal) bool {
	return price.IsPositive()
}

func Stock(stock int) bool {
	return stock >= 0
}
