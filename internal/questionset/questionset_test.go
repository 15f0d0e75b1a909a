package questionset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestions() []Question {
	return []Question{
		{Text: "What does HTTP stand for?", Options: []string{"HyperText Transfer Protocol", "High Throughput Protocol", "Host Transfer Path"}, CorrectIndex: 0},
		{Text: "Which port does HTTPS use by default?", Options: []string{"80", "443", "8080", "22"}, CorrectIndex: 1},
		{Text: "Is TCP connection oriented?", Options: []string{"Yes", "No"}, CorrectIndex: 0},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := sampleQuestions()

	blob, err := Encode(original)
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncodeRejectsInvalidQuestions(t *testing.T) {
	tests := []struct {
		name      string
		questions []Question
	}{
		{"empty text", []Question{{Text: "", Options: []string{"a", "b"}, CorrectIndex: 0}}},
		{"single option", []Question{{Text: "q", Options: []string{"a"}, CorrectIndex: 0}}},
		{"no options", []Question{{Text: "q", Options: nil, CorrectIndex: 0}}},
		{"blank option", []Question{{Text: "q", Options: []string{"a", ""}, CorrectIndex: 0}}},
		{"correct index negative", []Question{{Text: "q", Options: []string{"a", "b"}, CorrectIndex: -1}}},
		{"correct index past end", []Question{{Text: "q", Options: []string{"a", "b"}, CorrectIndex: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.questions)
			assert.Error(t, err)
		})
	}
}

func TestDecodeRejectsMalformedBlobs(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"not json", "not json at all"},
		{"object instead of array", `{"question":"q","options":["a","b"],"correctIndex":0}`},
		{"null instead of array", `null`},
		{"missing question field", `[{"options":["a","b"],"correctIndex":0}]`},
		{"missing options field", `[{"question":"q","correctIndex":0}]`},
		{"missing correct index", `[{"question":"q","options":["a","b"]}]`},
		{"unknown field", `[{"question":"q","options":["a","b"],"correctIndex":0,"hint":"b"}]`},
		{"correct index out of range", `[{"question":"q","options":["a","b"],"correctIndex":5}]`},
		{"correct index negative", `[{"question":"q","options":["a","b"],"correctIndex":-1}]`},
		{"options too short", `[{"question":"q","options":["a"],"correctIndex":0}]`},
		{"string correct index", `[{"question":"q","options":["a","b"],"correctIndex":"0"}]`},
		{"trailing data", `[{"question":"q","options":["a","b"],"correctIndex":0}] extra`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.blob))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	questions, err := Decode([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestDecodePreservesOrder(t *testing.T) {
	blob, err := Encode(sampleQuestions())
	require.NoError(t, err)

	decoded, err := Decode(blob)
	require.NoError(t, err)

	require.Len(t, decoded, 3)
	assert.Equal(t, "What does HTTP stand for?", decoded[0].Text)
	assert.Equal(t, "Which port does HTTPS use by default?", decoded[1].Text)
	assert.Equal(t, "Is TCP connection oriented?", decoded[2].Text)
}

func TestMaxScore(t *testing.T) {
	blob, err := Encode(sampleQuestions())
	require.NoError(t, err)

	assert.Equal(t, 3, MaxScore(blob))
	assert.Equal(t, 0, MaxScore([]byte(`[]`)))
	assert.Equal(t, 0, MaxScore([]byte(`garbage`)), "undecodable blob scores as zero")
}
