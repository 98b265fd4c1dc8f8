package domain

import "fmt"

// RRClass represents a DNS class (usually IN for Internet).
type RRClass uint16

// DNS Resource Record Class constants.
const (
	RRClassIN   RRClass = 1   // IN - Internet
	RRClassCS   RRClass = 2   // CS - CSNET (obsolete but assigned)
	RRClassCH   RRClass = 3   // CH - Chaos
	RRClassHS   RRClass = 4   // HS - Hesiod
	RRClassNONE RRClass = 254 // NONE - No class (RFC 2136)
	RRClassANY  RRClass = 255 // ANY - Any class (query only)
)

// IsValid returns true if the RRClass is usable in a question section.
//
// The class registry (RFC 6895 §3.2) reserves 0 and 65535 and leaves
// 5-253 and 256-65279 unassigned; those are rejected. Everything else,
// including the private-use range 65280-65534, is accepted.
func (c RRClass) IsValid() bool {
	switch {
	case c == 0:
		return false
	case c >= 5 && c <= 253:
		return false
	case c >= 256 && c <= 65279:
		return false
	case c == 65535:
		return false
	default:
		return true
	}
}

// String returns the textual representation of the RRClass.
func (c RRClass) String() string {
	switch c {
	case RRClassIN:
		return "IN"
	case RRClassCS:
		return "CS"
	case RRClassCH:
		return "CH"
	case RRClassHS:
		return "HS"
	case RRClassNONE:
		return "NONE"
	case RRClassANY:
		return "ANY"
	default:
		return fmt.Sprintf("CLASS%d", c)
	}
}

// ParseRRClass converts a class mnemonic to an RRClass value.
// Returns 0 for unknown names.
func ParseRRClass(s string) RRClass {
	switch s {
	case "IN":
		return RRClassIN
	case "CS":
		return RRClassCS
	case "CH":
		return RRClassCH
	case "HS":
		return RRClassHS
	case "NONE":
		return RRClassNONE
	case "ANY":
		return RRClassANY
	default:
		return 0
	}
}
