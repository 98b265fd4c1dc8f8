package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/haukened/dnsq/internal/dns/domain"
)

// headerLength is the fixed size of the DNS message header in octets.
const headerLength = 12

// EncodeMessage serializes m for transmission. Only the header and the
// question section are written: outgoing messages in this client are
// always queries, and their resource sections are empty. The section
// counts are recomputed from the slices m holds before writing.
func (c *codec) EncodeMessage(m *domain.Message) ([]byte, error) {
	if len(m.Answers) > 0 || len(m.Authority) > 0 || len(m.Additionals) > 0 {
		return nil, ErrResourceEncoding
	}
	m.SyncCounts()

	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, m.Header.ID)
	_ = binary.Write(&buf, binary.BigEndian, uint16(m.Header.Flags))
	_ = binary.Write(&buf, binary.BigEndian, m.Header.QDCount)
	_ = binary.Write(&buf, binary.BigEndian, m.Header.ANCount)
	_ = binary.Write(&buf, binary.BigEndian, m.Header.NSCount)
	_ = binary.Write(&buf, binary.BigEndian, m.Header.ARCount)

	for i, q := range m.Questions {
		name, err := encodeName(q.Name)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		buf.Write(name)
		_ = binary.Write(&buf, binary.BigEndian, uint16(q.Type))
		_ = binary.Write(&buf, binary.BigEndian, uint16(q.Class))
	}

	c.logger.Debug(map[string]any{
		"id":        m.Header.ID,
		"questions": len(m.Questions),
		"size":      buf.Len(),
	}, "Encoded DNS query")

	return buf.Bytes(), nil
}

// DecodeMessage parses a received datagram into a Message. The input is
// network-controlled: every multi-byte read is bounds-checked and failures
// come back as errors wrapping ErrMalformed, never as panics.
func (c *codec) DecodeMessage(data []byte) (*domain.Message, error) {
	if len(data) < headerLength {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the %d byte header", ErrMalformed, len(data), headerLength)
	}

	m := &domain.Message{
		Header: domain.Header{
			ID:      binary.BigEndian.Uint16(data[0:2]),
			Flags:   domain.Flags(binary.BigEndian.Uint16(data[2:4])),
			QDCount: binary.BigEndian.Uint16(data[4:6]),
			ANCount: binary.BigEndian.Uint16(data[6:8]),
			NSCount: binary.BigEndian.Uint16(data[8:10]),
			ARCount: binary.BigEndian.Uint16(data[10:12]),
		},
	}

	off := headerLength
	var err error
	for i := 0; i < int(m.Header.QDCount); i++ {
		var q domain.Question
		q, off, err = decodeQuestion(data, off)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		m.Questions = append(m.Questions, q)
	}

	sections := []struct {
		name  string
		count uint16
		dst   *[]domain.ResourceRecord
	}{
		{"answer", m.Header.ANCount, &m.Answers},
		{"authority", m.Header.NSCount, &m.Authority},
		{"additional", m.Header.ARCount, &m.Additionals},
	}
	for _, s := range sections {
		for i := 0; i < int(s.count); i++ {
			var rr domain.ResourceRecord
			rr, off, err = decodeResourceRecord(data, off)
			if err != nil {
				return nil, fmt.Errorf("%s record %d: %w", s.name, i, err)
			}
			*s.dst = append(*s.dst, rr)
		}
	}

	c.logger.Debug(map[string]any{
		"id":         m.Header.ID,
		"rcode":      m.Header.Flags.RCode().String(),
		"questions":  len(m.Questions),
		"answers":    len(m.Answers),
		"authority":  len(m.Authority),
		"additional": len(m.Additionals),
	}, "Decoded DNS message")

	return m, nil
}

// decodeQuestion reads one question section entry at off and returns it
// with the offset of the next field, which always lands immediately after
// QCLASS regardless of whether the name used compression.
func decodeQuestion(data []byte, off int) (domain.Question, int, error) {
	name, off, err := decodeName(data, off)
	if err != nil {
		return domain.Question{}, 0, err
	}
	if off+4 > len(data) {
		return domain.Question{}, 0, fmt.Errorf("%w: question truncated after name", ErrMalformed)
	}
	q := domain.Question{
		Name:  name,
		Type:  domain.RRType(binary.BigEndian.Uint16(data[off : off+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(data[off+2 : off+4])),
	}
	return q, off + 4, nil
}

// decodeResourceRecord reads one resource record at off: name, the ten
// fixed octets (TYPE, CLASS, TTL, RDLENGTH), then exactly RDLENGTH octets
// of RDATA copied verbatim with no per-type interpretation.
func decodeResourceRecord(data []byte, off int) (domain.ResourceRecord, int, error) {
	name, off, err := decodeName(data, off)
	if err != nil {
		return domain.ResourceRecord{}, 0, err
	}
	if off+10 > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: record truncated after name", ErrMalformed)
	}
	rr := domain.ResourceRecord{
		Name:  name,
		Type:  domain.RRType(binary.BigEndian.Uint16(data[off : off+2])),
		Class: domain.RRClass(binary.BigEndian.Uint16(data[off+2 : off+4])),
		TTL:   binary.BigEndian.Uint32(data[off+4 : off+8]),
	}
	rdLength := int(binary.BigEndian.Uint16(data[off+8 : off+10]))
	off += 10

	if off+rdLength > len(data) {
		return domain.ResourceRecord{}, 0, fmt.Errorf("%w: rdlength %d runs past end of buffer", ErrMalformed, rdLength)
	}
	rr.Data = make([]byte, rdLength)
	copy(rr.Data, data[off:off+rdLength])

	return rr, off + rdLength, nil
}
