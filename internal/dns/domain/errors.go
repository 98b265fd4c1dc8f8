package domain

import "fmt"

// FlagField names the header flag subfield that failed validation.
type FlagField string

// Validated header flag subfields.
const (
	FlagFieldOpcode FlagField = "opcode"
	FlagFieldZ      FlagField = "z"
	FlagFieldRCode  FlagField = "rcode"
)

// FlagError reports a header flag subfield outside its allowed range.
type FlagError struct {
	Field FlagField
	Value uint16
}

func (e *FlagError) Error() string {
	switch e.Field {
	case FlagFieldOpcode:
		return fmt.Sprintf("invalid opcode flag %d (should be 0-2)", e.Value)
	case FlagFieldZ:
		return fmt.Sprintf("invalid z flag %d (should be 0)", e.Value)
	case FlagFieldRCode:
		return fmt.Sprintf("invalid rcode flag %d (should be 0-5)", e.Value)
	default:
		return fmt.Sprintf("invalid %s flag %d", e.Field, e.Value)
	}
}

// QTypeError reports a query type code outside the recognized set.
type QTypeError struct {
	Value uint16
}

func (e *QTypeError) Error() string {
	return fmt.Sprintf("invalid qtype %d (not an assigned record type)", e.Value)
}

// QClassError reports a query class code in a reserved or unassigned
// range of the class registry (RFC 6895 §3.2).
type QClassError struct {
	Value uint16
}

func (e *QClassError) Error() string {
	return fmt.Sprintf("invalid qclass %d (reserved or unassigned)", e.Value)
}
