package tokenomics

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const notAvailable = "N/A"

var (
	printer   = message.NewPrinter(language.English)
	titleCase = cases.Title(language.English)
	markupTag = regexp.MustCompile(`<[^>]+>`)
)

// usdScaled renders a currency magnitude as $X.XXB at or above a billion,
// $X.XXM otherwise.
func usdScaled(v float64) string {
	if v >= 1e9 {
		return printer.Sprintf("$%.2fB", v/1e9)
	}
	return printer.Sprintf("$%.2fM", v/1e6)
}

// usdMillions renders a volume in millions with one decimal.
func usdMillions(v float64) string {
	return printer.Sprintf("$%.1fM", v/1e6)
}

func usdPrice(v float64) string {
	return printer.Sprintf("$%.8f", v)
}

// supplyCount renders token quantities with an M suffix from one million.
func supplyCount(v float64) string {
	if v >= 1e6 {
		return printer.Sprintf("%.2fM", v/1e6)
	}
	return printer.Sprintf("%.0f", v)
}

func grouped(v float64) string {
	return printer.Sprintf("%d", int64(v))
}

func percent(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64) + "%"
}

func signedPercent(v float64) string {
	return fmt.Sprintf("%+.2f%%", v)
}

// countOrNA renders a positive counter with thousands grouping.
func countOrNA(v float64) string {
	if v <= 0 {
		return notAvailable
	}
	return grouped(v)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

// datePart keeps the calendar date of an ISO-8601 timestamp.
func datePart(ts string) string {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return notAvailable
	}
	if i := strings.IndexByte(ts, 'T'); i >= 0 {
		return ts[:i]
	}
	return ts
}

const descriptionLimit = 200

// cleanDescription strips markup tags and truncates to descriptionLimit
// characters followed by an ellipsis.
func cleanDescription(desc string) string {
	if strings.TrimSpace(desc) == "" {
		return "No description available"
	}
	desc = markupTag.ReplaceAllString(desc, "")
	if utf8.RuneCountInString(desc) > descriptionLimit {
		return string([]rune(desc)[:descriptionLimit]) + "..."
	}
	return desc
}

// platformName turns a provider platform id such as "binance-smart-chain"
// into "Binance Smart Chain".
func platformName(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return "Native Blockchain"
	}
	return titleCase.String(strings.ReplaceAll(id, "-", " "))
}
