package schemas

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"cryptoapp/src/utils"

	"github.com/shopspring/decimal"
)

// Amounts are stored as NUMERIC(38, 18).
const amountScale = 18

var maxAmount = decimal.New(1, 38-amountScale)

// fieldErrors collects validation failures as "field message" pairs.
type fieldErrors []string

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, field+" "+message)
}

func (f *fieldErrors) notBlank(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		f.add(field, "must not be blank")
		return false
	}
	return true
}

func (f *fieldErrors) size(field, value string, min, max int) {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		f.add(field, fmt.Sprintf("size must be between %d and %d", min, max))
	}
}

func (f *fieldErrors) email(field, value string) {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		f.add(field, "must be a well-formed email address")
	}
}

// amount rejects values the ledger columns would round or overflow.
func (f *fieldErrors) amount(field string, value decimal.Decimal) {
	if !value.Equal(value.Truncate(amountScale)) {
		f.add(field, fmt.Sprintf("must have at most %d decimal places", amountScale))
	}
	if value.Abs().GreaterThanOrEqual(maxAmount) {
		f.add(field, "must be less than "+maxAmount.String())
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return utils.BadRequest(strings.Join(f, "; "))
}
