package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/redwan/internal/core"
)

func testDictionary() *Dictionary {
	return NewDictionary([]core.LexiconEntry{
		{Source: "love", Target: "প্রেম"},
		{Source: "friend", Target: "বন্ধু"},
		{Source: "water", Target: "পানি"},
		{Source: "ice cream", Target: "আইসক্রিম"},
	})
}

func TestLookup_ForwardPatterns(t *testing.T) {
	dict := testDictionary()
	want := core.LexiconEntry{Source: "love", Target: "প্রেম"}

	inputs := []string{
		"meaning of love",
		"what is the meaning of love",
		"whats the meaning of love",
		"what does love mean",
		"love mane ki",
		"love er mane ki",
		"love ortho ki",
		"love মানে কি",
		"love এর মানে কি",
		"love শব্দের অর্থ কি",
		"love অর্থ কি",
		"love means",
		"love meaning",
		"translate love",
		"love",
		"LOVE",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			tr, ok := Lookup(in, dict)
			require.True(t, ok)
			assert.Equal(t, want, tr.Entry)
			assert.False(t, tr.Reverse)
			assert.False(t, tr.Fuzzy)
		})
	}
}

func TestLookup_RoundTripResolvesSameEntry(t *testing.T) {
	dict := testDictionary()

	a, ok := Lookup("meaning of love", dict)
	require.True(t, ok)
	b, ok := Lookup("love mane ki", dict)
	require.True(t, ok)

	assert.Equal(t, a.Entry, b.Entry)
}

func TestLookup_Reverse(t *testing.T) {
	dict := testDictionary()

	tr, ok := Lookup("প্রেম মানে কি", dict)
	require.True(t, ok)
	assert.True(t, tr.Reverse)
	assert.Equal(t, "love", tr.Entry.Source)
	assert.Contains(t, tr.String(), "ইংরেজি")

	tr, ok = Lookup("বন্ধু", dict)
	require.True(t, ok)
	assert.True(t, tr.Reverse)
	assert.Equal(t, "friend", tr.Entry.Source)
}

func TestLookup_MultiWordTerm(t *testing.T) {
	tr, ok := Lookup("meaning of ice cream", testDictionary())
	require.True(t, ok)
	assert.Equal(t, "আইসক্রিম", tr.Entry.Target)
}

func TestLookup_Fuzzy(t *testing.T) {
	dict := testDictionary()

	tr, ok := Lookup("lov", dict)
	require.True(t, ok, "lov scores 0.75 against love")
	assert.True(t, tr.Fuzzy)
	assert.Equal(t, "love", tr.Entry.Source)
	assert.InDelta(t, 0.75, tr.Score, 1e-9)

	tr, ok = Lookup("meaning of frend", dict)
	require.True(t, ok)
	assert.Equal(t, "friend", tr.Entry.Source)
}

func TestLookup_ThresholdIsStrict(t *testing.T) {
	dict := testDictionary()

	_, ok := NewResolver(0.75).Lookup("lov", dict)
	assert.False(t, ok, "a score equal to the threshold is rejected")

	_, ok = NewResolver(0.74).Lookup("lov", dict)
	assert.True(t, ok)
}

func TestLookup_Misses(t *testing.T) {
	dict := testDictionary()

	for _, in := range []string{"", "   ", "how are you", "xyz", "meaning of quantum", "hello"} {
		_, ok := Lookup(in, dict)
		assert.False(t, ok, "input %q", in)
	}

	_, ok := Lookup("love", NewDictionary(nil))
	assert.False(t, ok)

	var nilDict *Dictionary
	_, ok = Lookup("love", nilDict)
	assert.False(t, ok)
}

func TestNewDictionary_LastWriteWins(t *testing.T) {
	dict := NewDictionary([]core.LexiconEntry{
		{Source: "Love", Target: "প্রেম"},
		{Source: "love", Target: "ভালোবাসা"},
		{Source: "", Target: "ignored"},
	})

	assert.Equal(t, 1, dict.Len())

	tr, ok := Lookup("love", dict)
	require.True(t, ok)
	assert.Equal(t, "ভালোবাসা", tr.Entry.Target)

	_, ok = Lookup("প্রেম", dict)
	assert.False(t, ok, "overwritten target must not resolve")
}

func TestTranslation_String(t *testing.T) {
	e := core.LexiconEntry{Source: "love", Target: "প্রেম"}

	assert.Equal(t, "\"love\" এর বাংলা অর্থ: প্রেম", Translation{Entry: e}.String())
	assert.Equal(t, "\"প্রেম\" এর ইংরেজি অর্থ: love", Translation{Entry: e, Reverse: true}.String())
	assert.Contains(t, Translation{Entry: e, Fuzzy: true}.String(), "বোঝাতে চেয়েছেন")
}
