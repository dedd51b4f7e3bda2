// Package fields implements the per-field type validation applied when a
// row is submitted against a generated API.
package fields

import (
	"regexp"

	"github.com/apiforge/apiforge/pkg/utils"
)

// AllowedTypes is the set of tags a schema may declare at creation time.
// Note that object, array, null and undefined are accepted as declarations
// but have no validation branch: any value submitted for such a field is
// rejected by the default case below.
var AllowedTypes = []string{
	"text", "number", "date", "email", "password",
	"boolean", "object", "array", "null", "undefined",
}

var allowedSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(AllowedTypes))
	for _, t := range AllowedTypes {
		m[t] = struct{}{}
	}
	return m
}()

// IsAllowedType reports whether tag may be used in a schema declaration.
func IsAllowedType(tag string) bool {
	_, ok := allowedSet[tag]
	return ok
}

var dateRegex = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`)

// Validate reports whether value satisfies the declared type tag.
func Validate(value any, declaredType string) bool {
	switch declaredType {
	case "text":
		_, ok := value.(string)
		return ok
	case "number":
		return isNumber(value)
	case "boolean":
		_, ok := value.(bool)
		return ok
	case "date":
		s, ok := value.(string)
		return ok && isCalendarDate(s)
	case "email":
		s, ok := value.(string)
		return ok && utils.IsValidEmail(s)
	case "password":
		s, ok := value.(string)
		return ok && len(s) >= 6
	default:
		return false
	}
}

// JSON bodies decode numbers as float64; the Go int cases cover values
// constructed in-process.
func isNumber(value any) bool {
	switch value.(type) {
	case float64, float32, int, int32, int64:
		return true
	default:
		return false
	}
}

// isCalendarDate checks the strict DD-MM-YYYY format and that the day
// actually exists in that month of that year.
func isCalendarDate(s string) bool {
	m := dateRegex.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	day := atoi2(m[1])
	month := atoi2(m[2])
	year := atoi4(m[3])

	if month < 1 || month > 12 {
		return false
	}
	return day >= 1 && day <= daysInMonth(month, year)
}

func daysInMonth(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default: // February
		if isLeapYear(year) {
			return 29
		}
		return 28
	}
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// The regexp guarantees digits only, so plain accumulation suffices.
func atoi2(s string) int { return int(s[0]-'0')*10 + int(s[1]-'0') }

func atoi4(s string) int {
	n := 0
	for i := 0; i < 4; i++ {
		n = n*10 + int(s[i]-'0')
	}
	return n
}
