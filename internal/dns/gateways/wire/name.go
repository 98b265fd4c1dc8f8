package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

const (
	// maxLabelLength is the longest label a 6-bit length octet can carry.
	maxLabelLength = 63

	// maxNameLength caps the full encoded name: length octets, label
	// bytes, and the zero terminator (RFC 1035 §2.3.4).
	maxNameLength = 255

	// pointerMask marks a length octet as a 14-bit compression pointer.
	pointerMask = 0xC0
)

// LabelLengthError reports a label longer than 63 octets.
type LabelLengthError struct {
	Label string
}

func (e *LabelLengthError) Error() string {
	return fmt.Sprintf("label %q is %d octets (max %d)", e.Label, len(e.Label), maxLabelLength)
}

// NameLengthError reports a domain name whose encoded form exceeds 255 octets.
type NameLengthError struct {
	Name    string
	Encoded int
}

func (e *NameLengthError) Error() string {
	return fmt.Sprintf("name %q encodes to %d octets (max %d)", e.Name, e.Encoded, maxNameLength)
}

// encodeName converts a dotted domain name into a label sequence: one
// length octet and the label bytes per label, terminated by a zero octet.
// Labels are trimmed of incidental whitespace; empty labels (consecutive
// or trailing dots) are skipped, so the root name encodes to a lone zero.
func encodeName(name string) ([]byte, error) {
	var buf bytes.Buffer
	for _, label := range strings.Split(name, ".") {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		if len(label) > maxLabelLength {
			return nil, &LabelLengthError{Label: label}
		}
		buf.WriteByte(byte(len(label)))
		buf.WriteString(label)
	}
	buf.WriteByte(0)
	if buf.Len() > maxNameLength {
		return nil, &NameLengthError{Name: name, Encoded: buf.Len()}
	}
	return buf.Bytes(), nil
}

// decodeName reads a possibly-compressed name from data starting at off.
// It returns the dotted name and the offset of the first byte after the
// name as it appears at off: once a compression pointer is followed, the
// caller's cursor lands two bytes past the pointer, never at the target.
//
// Pointers may chain, but every jump must target an offset strictly before
// the pointer octet itself. Together with the 255-octet name cap this
// guarantees termination on arbitrary input; self-references, forward
// references, and out-of-range targets are malformed.
func decodeName(data []byte, off int) (string, int, error) {
	var labels []string
	next := -1 // caller cursor, fixed at the first pointer
	pos := off
	encoded := 0 // accumulated length octets + label bytes
	for {
		if pos < 0 || pos >= len(data) {
			return "", 0, fmt.Errorf("%w: name at offset %d runs past end of buffer", ErrMalformed, off)
		}
		b := data[pos]
		switch {
		case b == 0:
			if next < 0 {
				next = pos + 1
			}
			return strings.Join(labels, "."), next, nil

		case b&pointerMask == pointerMask:
			if pos+2 > len(data) {
				return "", 0, fmt.Errorf("%w: truncated compression pointer at offset %d", ErrMalformed, pos)
			}
			target := int(binary.BigEndian.Uint16(data[pos:pos+2]) &^ (pointerMask << 8))
			if target >= pos {
				return "", 0, fmt.Errorf("%w: compression pointer at offset %d targets %d", ErrMalformed, pos, target)
			}
			if next < 0 {
				next = pos + 2
			}
			pos = target

		case b&pointerMask != 0:
			// 0x40 and 0x80 label types were never assigned.
			return "", 0, fmt.Errorf("%w: reserved label type 0x%02x at offset %d", ErrMalformed, b&pointerMask, pos)

		default:
			length := int(b)
			if pos+1+length > len(data) {
				return "", 0, fmt.Errorf("%w: label at offset %d runs past end of buffer", ErrMalformed, pos)
			}
			encoded += 1 + length
			if encoded+1 > maxNameLength {
				return "", 0, fmt.Errorf("%w: name at offset %d exceeds %d octets", ErrMalformed, off, maxNameLength)
			}
			labels = append(labels, string(data[pos+1:pos+1+length]))
			pos += 1 + length
		}
	}
}
