// internal/matching/salary.go
package matching

import (
	"regexp"
	"strconv"
	"strings"
)

var salaryNumberPattern = regexp.MustCompile(`[0-9][0-9,]*(\.[0-9]+)?`)

// ParseSalaryAmount extracts the first numeric token from a salary display
// string ("25,000/month", "6-8 LPA"). Absent or non-numeric salaries parse
// as zero, which sorts last under the salary sort mode.
func ParseSalaryAmount(display string) float64 {
	token := salaryNumberPattern.FindString(display)
	if token == "" {
		return 0
	}
	token = strings.ReplaceAll(token, ",", "")
	amount, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0
	}
	return amount
}
