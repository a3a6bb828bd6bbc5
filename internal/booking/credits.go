package booking

import (
	"regexp"
	"strconv"
)

// creditRe matches the portal's confirmation button label, which reads
// "Book for 0 credit" or "Book for 2 credits".
var creditRe = regexp.MustCompile(`Book for (\d+)`)

// ParseCreditCost extracts the credit cost from a confirmation button label.
// The second return is false when the label does not carry a cost.
func ParseCreditCost(label string) (int, bool) {
	m := creditRe.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
