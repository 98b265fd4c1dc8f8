package domain

import "fmt"

// RCode represents a DNS response code indicating the result of a query.
type RCode uint8

// IsValid returns true if the RCode is within the RFC 1035 response code
// range; values 6-15 are reserved.
func (r RCode) IsValid() bool {
	return r <= 5
}

// String returns the textual representation of the RCode.
func (r RCode) String() string {
	switch r {
	case 0:
		return "NOERROR"
	case 1:
		return "FORMERR"
	case 2:
		return "SERVFAIL"
	case 3:
		return "NXDOMAIN"
	case 4:
		return "NOTIMP"
	case 5:
		return "REFUSED"
	default:
		return fmt.Sprintf("RESERVED(%d)", r)
	}
}
