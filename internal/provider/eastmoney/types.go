package eastmoney

import (
	"fmt"
	"strings"
)

// Adjust selects the price adjustment applied by the provider (fqt parameter).
type Adjust int

const (
	AdjustNone     Adjust = 0
	AdjustForward  Adjust = 1
	AdjustBackward Adjust = 2
)

// ParseAdjust accepts 0/1/2 or none/forward/backward (qfq/hfq).
func ParseAdjust(s string) (Adjust, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "0", "none":
		return AdjustNone, nil
	case "1", "forward", "qfq":
		return AdjustForward, nil
	case "2", "backward", "hfq":
		return AdjustBackward, nil
	default:
		return AdjustNone, fmt.Errorf("unknown adjust %q (use none, forward, backward)", s)
	}
}

// Requested kline fields, in the order the provider writes them into each kline string.
const (
	fields1 = "f1,f2,f3,f4,f5,f6"
	fields2 = "f51,f52,f53,f54,f55,f56,f57,f58,f59,f60,f61"
)

// klineColumns names the comma separated cells of one kline string. fields2 asks for
// eleven cells (f51-f61), so "amount" is only filled when the service appends an extra
// trailing cell; open interest is not requested and futures bars normally carry 0.
var klineColumns = []string{
	"datetime",
	"open",
	"close",
	"high",
	"low",
	"volume",
	"turnover",
	"amplitude",
	"change_pct",
	"change",
	"turnover_rate",
	"amount",
}

// splitKline splits one kline string into cells. Cells beyond the known columns are dropped.
func splitKline(s string) []string {
	cells := strings.Split(s, ",")
	if len(cells) > len(klineColumns) {
		cells = cells[:len(klineColumns)]
	}
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
