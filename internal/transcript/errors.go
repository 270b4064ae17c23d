package transcript

import (
	"errors"
	"fmt"
)

// ErrParse matches every *ParseError.
var ErrParse = errors.New("unrecognized transcript line")

// ParseError reports a line that matches none of the transcript shapes.
type ParseError struct {
	Line   int    // 1-based, 0 if unknown
	Text   string // the offending line as read
	Reason string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: %q", e.Reason, e.Text)
}

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
