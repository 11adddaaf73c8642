package analysis

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	tenThousand    = decimal.NewFromInt(10_000)
	hundredMillion = decimal.NewFromInt(100_000_000)
)

// FormatCost 원 단위 금액을 읽기 쉬운 형태로 (원 / 만원 / 억원, 절사)
func FormatCost(won decimal.Decimal) string {
	switch {
	case won.LessThan(tenThousand):
		return groupThousands(won.IntPart()) + "원"
	case won.LessThan(hundredMillion):
		return fmt.Sprintf("%d만원", won.Div(tenThousand).IntPart())
	default:
		return fmt.Sprintf("%d억원", won.Div(hundredMillion).IntPart())
	}
}

// wonPrinter 한국어 로캘 천 단위 구분
var wonPrinter = message.NewPrinter(language.Korean)

func groupThousands(n int64) string {
	return wonPrinter.Sprintf("%d", n)
}
