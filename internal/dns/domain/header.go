package domain

// Header represents the fixed 12-octet DNS message header (RFC 1035 §4.1.1).
//
// The four section counts are derived values: the wire encoder recomputes
// them from the sections a Message actually holds, and the decoder fills
// them in only so callers can see what the peer declared.
type Header struct {
	ID      uint16
	Flags   Flags
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// Flags is the packed 16-bit header flag field. Bit layout, MSB first:
//
//	QR(1) OPCODE(4) AA(1) TC(1) RD(1) RA(1) Z(3) RCODE(4)
type Flags uint16

const (
	flagQR     = 1 << 15
	flagAA     = 1 << 10
	flagTC     = 1 << 9
	flagRD     = 1 << 8
	flagRA     = 1 << 7
	opcodeMask = 0x7800
	zMask      = 0x0070
	rcodeMask  = 0x000F

	opcodeShift = 11
	zShift      = 4
)

// FlagRecursionDesired is the flag word of a standard query with RD set,
// the only flag word this client sends on its own behalf.
const FlagRecursionDesired Flags = flagRD

// QR reports whether the message is a response (true) or a query (false).
func (f Flags) QR() bool { return f&flagQR != 0 }

// AA reports the authoritative answer bit.
func (f Flags) AA() bool { return f&flagAA != 0 }

// TC reports the truncation bit.
func (f Flags) TC() bool { return f&flagTC != 0 }

// RD reports the recursion desired bit.
func (f Flags) RD() bool { return f&flagRD != 0 }

// RA reports the recursion available bit.
func (f Flags) RA() bool { return f&flagRA != 0 }

// Opcode extracts the 4-bit opcode field.
func (f Flags) Opcode() Opcode { return Opcode(uint16(f&opcodeMask) >> opcodeShift) }

// Z extracts the reserved 3-bit field, which must be zero.
func (f Flags) Z() uint8 { return uint8(uint16(f&zMask) >> zShift) }

// RCode extracts the 4-bit response code.
func (f Flags) RCode() RCode { return RCode(f & rcodeMask) }

// SetFlags validates v and stores it in the header.
//
// The protocol-significant subfields are checked in a fixed order
// (opcode, then Z, then rcode) and the first violation is reported.
// On success the full 16-bit value is stored; QR, AA, TC, RD and RA
// carry no protocol constraints and pass through unchecked.
func (h *Header) SetFlags(v uint16) error {
	f := Flags(v)
	if op := f.Opcode(); !op.IsValid() {
		return &FlagError{Field: FlagFieldOpcode, Value: uint16(op)}
	}
	if z := f.Z(); z != 0 {
		return &FlagError{Field: FlagFieldZ, Value: uint16(z)}
	}
	if rc := f.RCode(); !rc.IsValid() {
		return &FlagError{Field: FlagFieldRCode, Value: uint16(rc)}
	}
	h.Flags = f
	return nil
}

// Opcode represents the 4-bit header opcode indicating the kind of query.
type Opcode uint8

// DNS opcode constants (RFC 1035 §4.1.1).
const (
	OpcodeQuery  Opcode = 0 // QUERY - standard query
	OpcodeIQuery Opcode = 1 // IQUERY - inverse query (obsolete)
	OpcodeStatus Opcode = 2 // STATUS - server status request
)

// IsValid returns true if the Opcode is one of the assigned values.
// Values 3-15 are reserved.
func (o Opcode) IsValid() bool {
	return o <= OpcodeStatus
}

// String returns the textual representation of the Opcode.
func (o Opcode) String() string {
	switch o {
	case OpcodeQuery:
		return "QUERY"
	case OpcodeIQuery:
		return "IQUERY"
	case OpcodeStatus:
		return "STATUS"
	default:
		return "RESERVED"
	}
}
