package domain

// Question represents one entry of a DNS message question section.
type Question struct {
	Name  string
	Type  RRType
	Class RRClass
}

// NewQuestion constructs a Question and validates its type and class.
func NewQuestion(name string, rrtype RRType, class RRClass) (Question, error) {
	q := Question{Name: name}
	if err := q.SetType(uint16(rrtype)); err != nil {
		return Question{}, err
	}
	if err := q.SetClass(uint16(class)); err != nil {
		return Question{}, err
	}
	return q, nil
}

// SetType sets the query type after checking it against the recognized
// record type set. Unrecognized codes are reported with their value.
func (q *Question) SetType(v uint16) error {
	t := RRType(v)
	if !t.IsValid() {
		return &QTypeError{Value: v}
	}
	q.Type = t
	return nil
}

// SetClass sets the query class after checking it against the class
// registry. Reserved and unassigned codes are reported with their value.
func (q *Question) SetClass(v uint16) error {
	c := RRClass(v)
	if !c.IsValid() {
		return &QClassError{Value: v}
	}
	q.Class = c
	return nil
}

// CacheKey returns a cache key string derived from the question's name,
// type, and class.
func (q Question) CacheKey() string {
	return q.Name + "|" + q.Type.String() + "|" + q.Class.String()
}
