package wx

import "fmt"

// DecodeErrorKind identifies which mandatory element of a report could not be
// located. Everything else in a report is optional and simply decodes to nil.
type DecodeErrorKind int

const (
	ErrMissingStation DecodeErrorKind = iota
	ErrMissingDatetime
	ErrMissingValidPeriod
	ErrMalformedChangeGroup
)

func (k DecodeErrorKind) String() string {
	switch k {
	case ErrMissingStation:
		return "missing station identifier"
	case ErrMissingDatetime:
		return "missing datetime group"
	case ErrMissingValidPeriod:
		return "missing valid period"
	case ErrMalformedChangeGroup:
		return "malformed change group"
	default:
		return "unknown decode error"
	}
}

// DecodeError is returned when a report is missing a mandatory anchor or a
// TAF change group cannot be segmented. Report is "METAR" or "TAF".
type DecodeError struct {
	Report string
	Kind   DecodeErrorKind
	Detail string
}

func (e *DecodeError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("decode %s: %s: %s", e.Report, e.Kind, e.Detail)
	}
	return fmt.Sprintf("decode %s: %s", e.Report, e.Kind)
}
