package wire

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/dnsq/internal/dns/common/log"
	"github.com/haukened/dnsq/internal/dns/domain"
)

func newTestCodec() Codec {
	return NewCodec(log.NewNoopLogger())
}

// buildCompressedMessage returns a response-shaped buffer with two
// questions, the second name a pointer back to the first at offset 12,
// and one answer whose name is also a pointer.
func buildCompressedMessage(t *testing.T) []byte {
	t.Helper()
	buf := []byte{
		0x12, 0x34, // ID
		0x81, 0x80, // QR=1 RD=1 RA=1
		0x00, 0x02, // QDCOUNT
		0x00, 0x01, // ANCOUNT
		0x00, 0x00, // NSCOUNT
		0x00, 0x00, // ARCOUNT
	}
	// question 1: www.google.com A IN at offset 12
	buf = append(buf, 3, 'w', 'w', 'w', 6, 'g', 'o', 'o', 'g', 'l', 'e', 3, 'c', 'o', 'm', 0)
	buf = append(buf, 0x00, 0x01, 0x00, 0x01)
	// question 2: pointer to offset 12, AAAA IN
	buf = append(buf, 0xC0, 0x0C)
	buf = append(buf, 0x00, 0x1C, 0x00, 0x01)
	// answer: pointer to offset 12, A IN, TTL 300, 4 bytes rdata
	buf = append(buf, 0xC0, 0x0C)
	buf = append(buf, 0x00, 0x01, 0x00, 0x01)
	buf = append(buf, 0x00, 0x00, 0x01, 0x2C)
	buf = append(buf, 0x00, 0x04)
	buf = append(buf, 192, 0, 2, 53)
	return buf
}

func TestCodec_RoundTrip(t *testing.T) {
	c := newTestCodec()

	m := domain.NewMessage()
	m.SetID(0xABCD)
	require.NoError(t, m.SetFlags(0x0100))
	q := m.AddQuestion("example.com")
	require.NoError(t, q.SetType(uint16(domain.RRTypeAAAA)))

	data, err := c.EncodeMessage(m)
	require.NoError(t, err)

	decoded, err := c.DecodeMessage(data)
	require.NoError(t, err)

	assert.Equal(t, m.Header, decoded.Header)
	assert.Equal(t, m.Questions, decoded.Questions)
	assert.Empty(t, decoded.Answers)
	assert.Empty(t, decoded.Authority)
	assert.Empty(t, decoded.Additionals)
}

func TestCodec_EncodeRecomputesCounts(t *testing.T) {
	c := newTestCodec()

	m := domain.NewMessage()
	m.AddQuestion("a.example")
	m.AddQuestion("b.example")
	m.Header.QDCount = 40 // stale, must not survive encoding

	data, err := c.EncodeMessage(m)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), binary.BigEndian.Uint16(data[4:6]))
}

func TestCodec_EncodeRejectsResourceSections(t *testing.T) {
	c := newTestCodec()

	m := domain.NewMessage()
	m.AddQuestion("example.com")
	m.Answers = []domain.ResourceRecord{{Name: "example.com", Type: domain.RRTypeA, Class: domain.RRClassIN}}

	_, err := c.EncodeMessage(m)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrResourceEncoding))
}

func TestCodec_EncodePropagatesNameErrors(t *testing.T) {
	c := newTestCodec()

	m := domain.NewMessage()
	m.AddQuestion("this-label-is-way-too-long-to-fit-in-the-six-bit-length-field-of-a-dns-label.com")

	_, err := c.EncodeMessage(m)
	require.Error(t, err)
	var le *LabelLengthError
	assert.True(t, errors.As(err, &le))
}

func TestCodec_DecodeCompressedMessage(t *testing.T) {
	c := newTestCodec()
	data := buildCompressedMessage(t)

	m, err := c.DecodeMessage(data)
	require.NoError(t, err)

	assert.Equal(t, uint16(0x1234), m.Header.ID)
	assert.True(t, m.Header.Flags.QR())

	require.Len(t, m.Questions, 2)
	// both questions decode to the identical name despite compression
	assert.Equal(t, "www.google.com", m.Questions[0].Name)
	assert.Equal(t, "www.google.com", m.Questions[1].Name)
	assert.Equal(t, domain.RRTypeA, m.Questions[0].Type)
	assert.Equal(t, domain.RRTypeAAAA, m.Questions[1].Type)

	require.Len(t, m.Answers, 1)
	rr := m.Answers[0]
	assert.Equal(t, "www.google.com", rr.Name)
	assert.Equal(t, domain.RRTypeA, rr.Type)
	assert.Equal(t, domain.RRClassIN, rr.Class)
	assert.Equal(t, uint32(300), rr.TTL)
	assert.Equal(t, []byte{192, 0, 2, 53}, rr.Data)
}

func TestCodec_DecodeUnknownRecordTypesPass(t *testing.T) {
	c := newTestCodec()
	data := buildCompressedMessage(t)
	// rewrite the answer TYPE (octets 40-41) to an unassigned code;
	// decode must carry it opaquely rather than reject the message
	data[40] = 0xEE
	data[41] = 0xEE

	m, err := c.DecodeMessage(data)
	require.NoError(t, err)
	assert.Equal(t, domain.RRType(0xEEEE), m.Answers[0].Type)
}

func TestCodec_DecodeTruncationSweep(t *testing.T) {
	c := newTestCodec()
	data := buildCompressedMessage(t)

	// sanity: the full buffer decodes
	_, err := c.DecodeMessage(data)
	require.NoError(t, err)

	// every proper prefix must fail cleanly with a malformed error
	for i := 0; i < len(data); i++ {
		m, err := c.DecodeMessage(data[:i])
		require.Error(t, err, "truncation at %d bytes must fail", i)
		assert.True(t, errors.Is(err, ErrMalformed), "truncation at %d: got %v", i, err)
		assert.Nil(t, m)
	}
}

func TestCodec_DecodeRDLengthOverrun(t *testing.T) {
	c := newTestCodec()
	data := buildCompressedMessage(t)
	// declare more RDATA than the buffer holds
	data[len(data)-6] = 0xFF

	_, err := c.DecodeMessage(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestCodec_DecodeCountOverrun(t *testing.T) {
	c := newTestCodec()
	data := buildCompressedMessage(t)
	// header claims more answers than the message carries
	data[7] = 9

	_, err := c.DecodeMessage(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestCodec_ReencodeIdempotent(t *testing.T) {
	c := newTestCodec()

	decoded, err := c.DecodeMessage(buildCompressedMessage(t))
	require.NoError(t, err)

	// re-encode covers header and questions only; drop the sections the
	// encode path does not serialize
	decoded.Answers = nil

	data, err := c.EncodeMessage(decoded)
	require.NoError(t, err)

	again, err := c.DecodeMessage(data)
	require.NoError(t, err)
	assert.Equal(t, decoded.Questions, again.Questions)
	assert.Equal(t, decoded.Header.ID, again.Header.ID)
	assert.Equal(t, decoded.Header.Flags, again.Header.Flags)
}
