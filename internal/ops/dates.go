package ops

import (
	"strconv"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// dateParser handles natural-language expressions like "tomorrow" or
// "next friday at 5pm". Parser state is read-only after construction.
var dateParser = newDateParser()

func newDateParser() *when.Parser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}

// ParseDueDate converts a due-date expression into a unix-millisecond
// timestamp. Accepted forms: raw unix milliseconds, RFC 3339, YYYY-MM-DD,
// and natural-language expressions. A failure to parse is a ValidationError
// naming the dueDate field.
func ParseDueDate(expr string) (int64, error) {
	return parseDueDateAt(expr, time.Now())
}

func parseDueDateAt(expr string, now time.Time) (int64, error) {
	if expr == "" {
		return 0, newValidationError("dueDate", "due date expression is empty")
	}

	// Raw unix milliseconds pass through unchanged.
	if ms, err := strconv.ParseInt(expr, 10, 64); err == nil {
		return ms, nil
	}

	if t, err := time.Parse(time.RFC3339, expr); err == nil {
		return t.UnixMilli(), nil
	}

	// Bare dates land on end of day local time, matching how due dates
	// are shown in the ClickUp UI.
	if t, err := time.ParseInLocation("2006-01-02", expr, now.Location()); err == nil {
		eod := t.Add(24*time.Hour - time.Millisecond)
		return eod.UnixMilli(), nil
	}

	result, err := dateParser.Parse(expr, now)
	if err != nil || result == nil {
		return 0, newValidationError("dueDate", "could not parse due date expression "+strconv.Quote(expr))
	}
	return result.Time.UnixMilli(), nil
}
