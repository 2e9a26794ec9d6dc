package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Rating int    `json:"rating"`
}

func TestEncodeDecode(t *testing.T) {
	rec, err := Encode(testDoc{ID: "m1", UserID: "u1", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, "m1", rec["id"])
	assert.Equal(t, "u1", rec["user_id"])

	var out testDoc
	require.NoError(t, Decode(rec, &out))
	assert.Equal(t, "m1", out.ID)
	assert.Equal(t, 5, out.Rating)
}

func TestDecodeAll(t *testing.T) {
	recs := []Record{
		{"id": "m1", "user_id": "u1", "rating": 5},
		{"id": "m2", "user_id": "u1", "rating": 3},
	}

	var out []testDoc
	require.NoError(t, DecodeAll(recs, &out))
	require.Len(t, out, 2)
	assert.Equal(t, 5, out[0].Rating)
	assert.Equal(t, "m2", out[1].ID)
}

func TestDecode_TypeMismatch(t *testing.T) {
	var out testDoc
	err := Decode(Record{"rating": "not a number"}, &out)
	assert.Error(t, err)
}
