package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_AddQuestion(t *testing.T) {
	m := NewMessage()

	// one question per call, however many labels the name has
	m.AddQuestion("www.google.com")
	m.AddQuestion("example.org")
	require.Len(t, m.Questions, 2)

	assert.Equal(t, "www.google.com", m.Questions[0].Name)
	assert.Equal(t, RRTypeA, m.Questions[0].Type)
	assert.Equal(t, RRClassIN, m.Questions[0].Class)

	// setter on the returned question mutates the stored entry
	q := m.AddQuestion("mail.example.org")
	require.NoError(t, q.SetType(uint16(RRTypeMX)))
	assert.Equal(t, RRTypeMX, m.Questions[2].Type)
}

func TestMessage_SyncCounts(t *testing.T) {
	m := NewMessage()
	m.AddQuestion("a.example")
	m.AddQuestion("b.example")
	m.Answers = []ResourceRecord{{Name: "a.example", Type: RRTypeA, Class: RRClassIN}}

	// stale counts are overwritten from the held sections
	m.Header.QDCount = 9
	m.Header.ARCount = 9
	m.SyncCounts()

	assert.Equal(t, uint16(2), m.Header.QDCount)
	assert.Equal(t, uint16(1), m.Header.ANCount)
	assert.Equal(t, uint16(0), m.Header.NSCount)
	assert.Equal(t, uint16(0), m.Header.ARCount)
}

func TestMessage_SetIDAndFlags(t *testing.T) {
	m := NewMessage()
	m.SetID(0xBEEF)
	assert.Equal(t, uint16(0xBEEF), m.Header.ID)

	require.NoError(t, m.SetFlags(0x0100))
	assert.True(t, m.Header.Flags.RD())

	assert.Error(t, m.SetFlags(0x0070))
}
