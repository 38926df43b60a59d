package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResult_NativeOutput(t *testing.T) {
	out := []byte("{ excellent_percent: 42.37, beat_the_game_percent: 3.1, cards_left_average: 15.2, cards_left_stddev: 8.1}\n")

	res, err := ParseResult(out)
	require.NoError(t, err)

	assert.Equal(t, 42.37, res.ExcellentPercent)
	assert.Equal(t, 3.1, res.BeatTheGamePercent)

	avg, ok := res.Field(FieldCardsLeftAverage)
	require.True(t, ok)
	assert.Equal(t, 15.2, avg)

	stddev, ok := res.Field(FieldCardsLeftStddev)
	require.True(t, ok)
	assert.Equal(t, 8.1, stddev)
}

func TestParseResult_JSON(t *testing.T) {
	out := []byte(`{"excellent_percent": 100, "beat_the_game_percent": 0.25}`)

	res, err := ParseResult(out)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.ExcellentPercent)
	assert.Equal(t, 0.25, res.BeatTheGamePercent)
}

func TestParseResult_IgnoresNonNumericExtras(t *testing.T) {
	out := []byte(`{"excellent_percent": 1, "beat_the_game_percent": 2, "note": "hello"}`)

	res, err := ParseResult(out)
	require.NoError(t, err)

	_, ok := res.Field("note")
	assert.False(t, ok)
}

func TestParseResult_Malformed(t *testing.T) {
	tests := []struct {
		name string
		out  string
	}{
		{"empty", ""},
		{"whitespace", "  \n"},
		{"plain text", "Segmentation fault"},
		{"array", "[1, 2, 3]"},
		{"broken mapping", "{ excellent_percent: 1, "},
		{"null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResult([]byte(tt.out))
			require.Error(t, err)
			assert.True(t, IsResponseError(err))

			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, CodeMalformedOutput, se.Code)
		})
	}
}

func TestParseResult_MissingField(t *testing.T) {
	tests := []struct {
		name  string
		out   string
		field string
	}{
		{"no excellent", `{ beat_the_game_percent: 2 }`, FieldExcellentPercent},
		{"no beat the game", `{ excellent_percent: 2 }`, FieldBeatTheGamePercent},
		{"single game output", "Cards remaining: 12", FieldExcellentPercent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResult([]byte(tt.out))
			require.Error(t, err)

			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, CodeMissingField, se.Code)
			assert.Equal(t, tt.field, se.Field)
		})
	}
}

func TestParseResult_NonNumericRequiredField(t *testing.T) {
	_, err := ParseResult([]byte(`{ excellent_percent: lots, beat_the_game_percent: 2 }`))
	require.Error(t, err)

	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, CodeMalformedOutput, se.Code)
	assert.Equal(t, FieldExcellentPercent, se.Field)
}

func TestResultField_Required(t *testing.T) {
	res := Result{ExcellentPercent: 1.5, BeatTheGamePercent: 0.5}

	v, ok := res.Field(FieldExcellentPercent)
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	v, ok = res.Field(FieldBeatTheGamePercent)
	assert.True(t, ok)
	assert.Equal(t, 0.5, v)

	_, ok = res.Field(FieldCardsLeftAverage)
	assert.False(t, ok)
}

func TestValidateTrials(t *testing.T) {
	assert.NoError(t, ValidateTrials(MinTrials))
	assert.NoError(t, ValidateTrials(DefaultTrials))
	assert.Error(t, ValidateTrials(0))
	assert.Error(t, ValidateTrials(1), "one trial prints a game, not statistics")
	assert.Error(t, ValidateTrials(MaxTrials+1))
}
