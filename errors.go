package mbconf

import "fmt"

// ErrorKind is the single-byte error taxonomy carried on the wire in a
// failure response (spec §7).
type ErrorKind uint8

const (
	ErrInvalidCommand ErrorKind = iota + 1
	ErrMissingArgument
	ErrInvalidData
	ErrInvalidField
	ErrInvalidSection
	ErrInvalidAction
	ErrInvalidEntry
	ErrInvalidQuery
	ErrInvalidOption
	ErrNotSupported
	ErrFailed
	ErrNoContent
)

var errorKindNames = map[ErrorKind]string{
	ErrInvalidCommand:  "InvalidCommand",
	ErrMissingArgument: "MissingArgument",
	ErrInvalidData:     "InvalidData",
	ErrInvalidField:    "InvalidField",
	ErrInvalidSection:  "InvalidSection",
	ErrInvalidAction:   "InvalidAction",
	ErrInvalidEntry:    "InvalidEntry",
	ErrInvalidQuery:    "InvalidQuery",
	ErrInvalidOption:   "InvalidOption",
	ErrNotSupported:    "NotSupported",
	ErrFailed:          "Failed",
	ErrNoContent:       "NoContent",
}

// String returns the printable, wire-transmitted identifier of the kind.
func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%.2X)", uint8(k))
}

// Error wraps an ErrorKind as a standard Go error. It is what parsing,
// dispatch, and the codec return on any protocol-level failure; handler
// implementations may return it directly to pick a specific wire code
// instead of the generic Failed.
type Error struct {
	Kind ErrorKind
}

// NewError constructs an Error for the given kind.
func NewError(kind ErrorKind) *Error {
	return &Error{Kind: kind}
}

func (e *Error) Error() string {
	return fmt.Sprintf("mbconf: %s", e.Kind)
}

// KindOf extracts the ErrorKind from err, defaulting to Failed for any
// error that isn't one of ours (the generic handler-failure mapping
// required by spec §7).
func KindOf(err error) ErrorKind {
	if err == nil {
		return 0
	}
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ErrFailed
}
