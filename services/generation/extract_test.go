package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextDirectField(t *testing.T) {
	text, err := ExtractText([]byte(`{"text": "hello world"}`))

	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestExtractTextGeminiEnvelope(t *testing.T) {
	raw := []byte(`{
		"candidates": [
			{"content": {"parts": [{"text": "first "}, {"text": "second"}]}}
		]
	}`)

	text, err := ExtractText(raw)

	require.NoError(t, err)
	assert.Equal(t, "first second", text)
}

func TestExtractTextPrefersDirectField(t *testing.T) {
	raw := []byte(`{"text": "direct", "candidates": [{"content": {"parts": [{"text": "nested"}]}}]}`)

	text, err := ExtractText(raw)

	require.NoError(t, err)
	assert.Equal(t, "direct", text)
}

func TestExtractTextUnrecognizedShapes(t *testing.T) {
	cases := [][]byte{
		[]byte(`{}`),
		[]byte(`{"output": "elsewhere"}`),
		[]byte(`{"candidates": []}`),
		[]byte(`{"candidates": [{"content": {"parts": []}}]}`),
		[]byte(`not json at all`),
		nil,
	}

	for _, raw := range cases {
		_, err := ExtractText(raw)
		var extractionErr *ExtractionError
		assert.ErrorAs(t, err, &extractionErr, "input: %s", raw)
	}
}
