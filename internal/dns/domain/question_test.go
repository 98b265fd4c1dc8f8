package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestion_SetType(t *testing.T) {
	valid := []uint16{1, 2, 5, 6, 12, 15, 16, 28, 33, 252, 255, 256, 257, 32768, 32769}
	for _, v := range valid {
		var q Question
		assert.NoError(t, q.SetType(v), "qtype %d should be accepted", v)
		assert.Equal(t, RRType(v), q.Type)
	}

	// 3 and 4 are the obsolete MD/MF codes, deliberately unrecognized
	invalid := []uint16{0, 3, 4, 7, 11, 100, 200, 300, 32767, 65535}
	for _, v := range invalid {
		var q Question
		err := q.SetType(v)
		require.Error(t, err, "qtype %d should be rejected", v)

		var qe *QTypeError
		require.True(t, errors.As(err, &qe))
		assert.Equal(t, v, qe.Value)
		assert.Equal(t, RRType(0), q.Type, "failed SetType must not mutate")
	}
}

func TestQuestion_SetClass(t *testing.T) {
	tests := []struct {
		value uint16
		ok    bool
	}{
		{0, false}, // reserved
		{1, true},  // IN
		{2, true},  // CS
		{3, true},  // CH
		{4, true},  // HS
		{5, false}, // unassigned range start
		{100, false},
		{253, false},  // unassigned range end
		{254, true},   // NONE
		{255, true},   // ANY
		{256, false},  // unassigned range start
		{65279, false}, // unassigned range end
		{65280, true},  // private use start
		{65534, true},  // private use end
		{65535, false}, // reserved
	}

	for _, tt := range tests {
		var q Question
		err := q.SetClass(tt.value)
		if tt.ok {
			assert.NoError(t, err, "qclass %d should be accepted", tt.value)
			assert.Equal(t, RRClass(tt.value), q.Class)
			continue
		}
		require.Error(t, err, "qclass %d should be rejected", tt.value)

		var ce *QClassError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, tt.value, ce.Value)
	}
}

func TestNewQuestion(t *testing.T) {
	q, err := NewQuestion("example.com", RRTypeAAAA, RRClassIN)
	require.NoError(t, err)
	assert.Equal(t, "example.com", q.Name)
	assert.Equal(t, RRTypeAAAA, q.Type)
	assert.Equal(t, RRClassIN, q.Class)

	_, err = NewQuestion("example.com", 3, RRClassIN)
	assert.Error(t, err)

	_, err = NewQuestion("example.com", RRTypeA, 0)
	assert.Error(t, err)
}

func TestQuestion_CacheKey(t *testing.T) {
	q := Question{Name: "example.com", Type: RRTypeA, Class: RRClassIN}
	assert.Equal(t, "example.com|A|IN", q.CacheKey())
}
