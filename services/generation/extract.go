package generation

import (
	"encoding/json"
	"strings"
)

// Model client libraries change response envelopes between versions, so the
// extractor recognizes more than one shape and keeps that volatility away
// from the parser.

// directEnvelope is the simplest shape: the text sits in a top-level field.
type directEnvelope struct {
	Text string `json:"text"`
}

// geminiEnvelope is the generateContent REST shape.
type geminiEnvelope struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// ExtractText locates the generated text inside a raw response envelope.
// It tries the direct text field first, then the candidates/content/parts
// path, and returns an ExtractionError when neither yields text.
func ExtractText(raw []byte) (string, error) {
	var direct directEnvelope
	if err := json.Unmarshal(raw, &direct); err == nil && strings.TrimSpace(direct.Text) != "" {
		return direct.Text, nil
	}

	var envelope geminiEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Candidates) > 0 {
		var b strings.Builder
		for _, part := range envelope.Candidates[0].Content.Parts {
			b.WriteString(part.Text)
		}
		if strings.TrimSpace(b.String()) != "" {
			return b.String(), nil
		}
	}

	return "", &ExtractionError{Msg: "no text found in response envelope"}
}
