package domain

// Message is a complete DNS message: a header plus the question, answer,
// authority, and additional sections (RFC 1035 §4.1).
//
// The header counts are never trusted as independent state: encoding
// recomputes them from the section slices, and after decoding they only
// echo what the wire declared. A Message is built or parsed by a single
// call sequence and holds its sections exclusively; it is safe to use
// from multiple goroutines only once fully constructed and read-only.
type Message struct {
	Header      Header
	Questions   []Question
	Answers     []ResourceRecord
	Authority   []ResourceRecord
	Additionals []ResourceRecord
}

// NewMessage returns an empty outgoing message with all header fields zero,
// ready for AddQuestion, SetID and SetFlags.
func NewMessage() *Message {
	return &Message{}
}

// SetID sets the 16-bit transaction identifier echoed by a correlated
// response. The value is opaque to the codec.
func (m *Message) SetID(id uint16) {
	m.Header.ID = id
}

// SetFlags validates and stores the packed header flag field.
// See Header.SetFlags for the validation order.
func (m *Message) SetFlags(v uint16) error {
	return m.Header.SetFlags(v)
}

// AddQuestion appends one question for the given domain name, defaulting
// to type A, class IN. Exactly one question is added per call regardless
// of how many labels the name contains. Use the returned question's
// SetType and SetClass to change the defaults with validation.
func (m *Message) AddQuestion(name string) *Question {
	m.Questions = append(m.Questions, Question{
		Name:  name,
		Type:  RRTypeA,
		Class: RRClassIN,
	})
	return &m.Questions[len(m.Questions)-1]
}

// SyncCounts recomputes the header section counts from the sections the
// message actually holds, restoring the count invariant before encoding.
func (m *Message) SyncCounts() {
	m.Header.QDCount = uint16(len(m.Questions))
	m.Header.ANCount = uint16(len(m.Answers))
	m.Header.NSCount = uint16(len(m.Authority))
	m.Header.ARCount = uint16(len(m.Additionals))
}
