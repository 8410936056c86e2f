package render

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// NumberToWords spells num using the Indian grouping (thousand, lakh, crore).
// Zero is the empty string.
func NumberToWords(num int64) string {
	switch {
	case num <= 0:
		return ""
	case num < 20:
		return ones[num]
	case num < 100:
		return strings.TrimSpace(tens[num/10] + " " + ones[num%10])
	case num < 1000:
		return join(ones[num/100]+" Hundred", NumberToWords(num%100))
	case num < 100000:
		return join(NumberToWords(num/1000)+" Thousand", NumberToWords(num%1000))
	case num < 10000000:
		return join(NumberToWords(num/100000)+" Lakh", NumberToWords(num%100000))
	default:
		return join(NumberToWords(num/10000000)+" Crore", NumberToWords(num%10000000))
	}
}

// AmountInWords spells a rupee amount, e.g. "Two Hundred Thirty Six Rupees
// and Fifty Paise Only". The amount is rounded to paise first.
func AmountInWords(amount decimal.Decimal) string {
	amount = amount.Abs().Round(2)
	rupees := amount.IntPart()
	paise := amount.Sub(decimal.NewFromInt(rupees)).Shift(2).IntPart()

	var parts []string
	if rupees > 0 {
		parts = append(parts, fmt.Sprintf("%s Rupees", NumberToWords(rupees)))
	}
	if paise > 0 {
		parts = append(parts, fmt.Sprintf("%s Paise", NumberToWords(paise)))
	}

	if len(parts) == 0 {
		return "Zero Rupees Only"
	}
	return strings.Join(parts, " and ") + " Only"
}

func join(head, tail string) string {
	if tail == "" {
		return head
	}
	return head + " " + tail
}
