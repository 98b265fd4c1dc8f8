// Package wire implements encoding and decoding of DNS messages in the
// RFC 1035 wire format, including question-section serialization and
// full decoding of all four message sections with name compression.
package wire

import (
	"errors"

	"github.com/haukened/dnsq/internal/dns/common/log"
	"github.com/haukened/dnsq/internal/dns/domain"
)

// Codec converts between domain messages and their wire representation.
// Encode and decode are pure with respect to the codec: the type carries
// only a logger and can be shared freely across goroutines.
type Codec interface {
	// EncodeMessage serializes an outgoing query: the 12-octet header with
	// counts recomputed from the held sections, followed by each question.
	// Messages carrying resource records are not encodable and return
	// ErrResourceEncoding.
	EncodeMessage(m *domain.Message) ([]byte, error)

	// DecodeMessage parses a received buffer into a Message, reading
	// exactly the number of questions and records the header declares.
	// Any read past the end of the buffer, and any out-of-range or cyclic
	// compression pointer, fails with an error wrapping ErrMalformed.
	DecodeMessage(data []byte) (*domain.Message, error)
}

// Errors returned by the codec. Decode failures wrap ErrMalformed so
// callers can discard bad datagrams without inspecting message text.
var (
	ErrMalformed        = errors.New("malformed dns message")
	ErrResourceEncoding = errors.New("encoding resource record sections is not supported")
)

type codec struct {
	logger log.Logger
}

// NewCodec returns a message codec that logs wire-level detail at debug
// level through the provided logger.
func NewCodec(logger log.Logger) Codec {
	return &codec{logger: logger}
}

var _ Codec = (*codec)(nil)
