package money

import (
	"strconv"
	"strings"
)

var (
	onesWords  = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}
	teensWords = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}
	tensWords  = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}
)

// AmountInWords spells out an amount in English for the "Total Due ... Only"
// wording, with Hundred/Thousand/Million groupings and cents rendered as
// "NN/100". Supports 0 through 999,999,999.99; zero yields "Zero".
func AmountInWords(amount float64) string {
	if amount == 0 {
		return "Zero"
	}

	fixed := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, decPart, _ := strings.Cut(fixed, ".")
	intNum, _ := strconv.Atoi(intPart)
	cents, _ := strconv.Atoi(decPart)

	var b strings.Builder
	if intNum >= 1_000_000 {
		b.WriteString(hundredsInWords(intNum / 1_000_000))
		b.WriteString(" Million ")
	}
	if thousands := intNum % 1_000_000 / 1000; thousands > 0 {
		b.WriteString(hundredsInWords(thousands))
		b.WriteString(" Thousand ")
	}
	b.WriteString(hundredsInWords(intNum % 1000))

	if cents > 0 {
		b.WriteString(" and ")
		b.WriteString(decPart)
		b.WriteString("/100")
	}

	return strings.TrimSpace(b.String())
}

func hundredsInWords(n int) string {
	switch {
	case n == 0:
		return ""
	case n < 10:
		return onesWords[n]
	case n < 20:
		return teensWords[n-10]
	case n < 100:
		s := tensWords[n/10]
		if n%10 != 0 {
			s += " " + onesWords[n%10]
		}
		return s
	default:
		s := onesWords[n/100] + " Hundred"
		if n%100 != 0 {
			s += " and " + hundredsInWords(n%100)
		}
		return s
	}
}
