package domain

import "fmt"

// ResourceRecord represents a DNS resource record from the answer,
// authority, or additional section of a decoded message.
//
// Type and Class are carried as they appeared on the wire and are not
// validated: a well-formed message may legitimately contain record types
// this client does not recognize, and rejecting them would make benign
// responses indistinguishable from malformed ones. Data is the raw RDATA
// with no per-type interpretation.
type ResourceRecord struct {
	Name  string
	Type  RRType
	Class RRClass
	TTL   uint32 // seconds; 0 means do not cache
	Data  []byte
}

// String returns a dig-style one line summary of the record.
// RDATA is rendered as hex since it is carried opaquely.
func (rr ResourceRecord) String() string {
	return fmt.Sprintf("%s\t%d\t%s\t%s\t%x", rr.Name, rr.TTL, rr.Class, rr.Type, rr.Data)
}

// CacheKey returns a cache key string derived from the record's name,
// type, and class.
func (rr ResourceRecord) CacheKey() string {
	return rr.Name + "|" + rr.Type.String() + "|" + rr.Class.String()
}
