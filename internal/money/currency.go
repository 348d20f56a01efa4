package money

import (
	"fmt"
	"strconv"
	"strings"

	"bima-invoice/internal/models"
)

// currencySymbols maps each supported code to its display symbol.
var currencySymbols = map[models.Currency]string{
	models.USD: "$",
	models.EUR: "€",
	models.JPY: "¥",
	models.GBP: "£",
	models.AUD: "A$",
	models.CAD: "C$",
	models.CHF: "CHF",
	models.CNH: "¥",
	models.HKD: "HK$",
	models.NZD: "NZ$",
	models.KSH: "KSh",
	models.NGN: "₦",
}

// Symbol returns the display symbol for a currency code.
func Symbol(c models.Currency) string {
	return currencySymbols[c]
}

// FormatAmount renders an amount with its currency symbol, thousands
// separators and two decimal places, e.g. "KSh 2,668.00".
func FormatAmount(amount float64, c models.Currency) string {
	return fmt.Sprintf("%s %s", currencySymbols[c], groupThousands(amount))
}

func groupThousands(amount float64) string {
	s := strconv.FormatFloat(amount, 'f', 2, 64)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, decPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	b.WriteByte('.')
	b.WriteString(decPart)
	return b.String()
}
