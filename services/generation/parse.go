package generation

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripFences removes surrounding whitespace and a single pair of markdown
// code-fence markers, with or without a language tag on the opening fence.
func StripFences(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line (``` or ```json etc.)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseCourseOutline parses and validates model text as a course outline.
// Validation is total: a single offending module rejects the whole outline.
func ParseCourseOutline(text string) (*CourseOutline, error) {
	var outline CourseOutline
	if err := json.Unmarshal([]byte(StripFences(text)), &outline); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	if strings.TrimSpace(outline.Title) == "" {
		return nil, schemaErr("title", "required and must be non-empty")
	}
	if strings.TrimSpace(outline.Description) == "" {
		return nil, schemaErr("description", "required and must be non-empty")
	}
	switch outline.Difficulty {
	case "beginner", "intermediate", "advanced":
	default:
		return nil, schemaErr("difficulty", fmt.Sprintf("%q is not one of beginner, intermediate, advanced", outline.Difficulty))
	}
	if outline.EstimatedHours < 0 {
		return nil, schemaErr("estimated_hours", "must be >= 0")
	}
	if len(outline.Modules) == 0 {
		return nil, schemaErr("modules", "at least one module is required")
	}

	for i := range outline.Modules {
		mod := &outline.Modules[i]
		if strings.TrimSpace(mod.Title) == "" {
			return nil, schemaErrAt("modules", i, "", "module title is required")
		}
		if len(mod.Lessons) == 0 {
			return nil, schemaErrAt("modules", i, "", fmt.Sprintf("module %q has no lessons", mod.Title))
		}
		if mod.Order == nil {
			order := i
			mod.Order = &order
		}
		for j := range mod.Lessons {
			lesson := &mod.Lessons[j]
			if strings.TrimSpace(lesson.Title) == "" {
				return nil, schemaErrAt(fmt.Sprintf("modules[%d].lessons", i), j, "", "lesson title is required")
			}
			if lesson.Order == nil {
				order := j
				lesson.Order = &order
			}
		}
	}

	return &outline, nil
}

// ParseLessonBody parses and validates model text as a lesson body. An
// unrecognized block kind fails the whole batch; no partial acceptance.
func ParseLessonBody(text string) (*LessonBody, error) {
	var body LessonBody
	if err := json.Unmarshal([]byte(StripFences(text)), &body); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}

	if strings.TrimSpace(body.Title) == "" {
		return nil, schemaErr("title", "required and must be non-empty")
	}
	if body.EstimatedMinutes == 0 {
		body.EstimatedMinutes = 15
	}
	if body.EstimatedMinutes < 1 || body.EstimatedMinutes > 240 {
		return nil, schemaErr("estimated_minutes", fmt.Sprintf("%d is outside [1, 240]", body.EstimatedMinutes))
	}
	if len(body.Content) == 0 {
		return nil, schemaErr("content", "at least one content block is required")
	}

	for i := range body.Content {
		if err := validateBlock(i, &body.Content[i]); err != nil {
			return nil, err
		}
	}

	return &body, nil
}

// validateBlock enforces the per-kind required-field contract.
func validateBlock(index int, block *ContentBlock) error {
	kind := string(block.Type)
	if !knownBlockTypes[block.Type] {
		return schemaErrAt("content", index, kind, "unrecognized block type")
	}

	switch block.Type {
	case BlockHeading:
		if strings.TrimSpace(block.Text) == "" {
			return schemaErrAt("content", index, kind, "heading requires text")
		}
		if block.Level < 1 || block.Level > 6 {
			return schemaErrAt("content", index, kind, fmt.Sprintf("heading level %d is outside [1, 6]", block.Level))
		}
	case BlockParagraph:
		if strings.TrimSpace(block.Text) == "" {
			return schemaErrAt("content", index, kind, "paragraph requires text")
		}
	case BlockCode:
		if strings.TrimSpace(block.Language) == "" {
			return schemaErrAt("content", index, kind, "code requires language")
		}
		if block.Text == "" {
			return schemaErrAt("content", index, kind, "code requires text")
		}
	case BlockList:
		if block.Style != "ordered" && block.Style != "unordered" {
			return schemaErrAt("content", index, kind, fmt.Sprintf("list style %q must be ordered or unordered", block.Style))
		}
		if len(block.Items) == 0 {
			return schemaErrAt("content", index, kind, "list requires at least one item")
		}
	case BlockVideo:
		if strings.TrimSpace(block.Query) == "" {
			return schemaErrAt("content", index, kind, "video requires query")
		}
	case BlockMCQ:
		if strings.TrimSpace(block.Question) == "" {
			return schemaErrAt("content", index, kind, "mcq requires question")
		}
		if len(block.Options) < 2 {
			return schemaErrAt("content", index, kind, "mcq requires at least 2 options")
		}
		if block.Answer == nil {
			return schemaErrAt("content", index, kind, "mcq requires answer")
		}
		if *block.Answer < 0 || *block.Answer >= len(block.Options) {
			return schemaErrAt("content", index, kind, fmt.Sprintf("mcq answer %d is not an index into %d options", *block.Answer, len(block.Options)))
		}
	case BlockImage:
		if strings.TrimSpace(block.URL) == "" {
			return schemaErrAt("content", index, kind, "image requires url")
		}
	}

	return nil
}

// ParseSuggestions parses model text as a JSON array of 1-5 non-empty topic
// strings. Callers degrade to an empty list on error; suggestions are
// advisory, never blocking.
func ParseSuggestions(text string) ([]string, error) {
	var topics []string
	if err := json.Unmarshal([]byte(StripFences(text)), &topics); err != nil {
		return nil, &MalformedResponseError{Err: err}
	}
	if len(topics) == 0 {
		return nil, schemaErr("suggestions", "at least one suggestion is required")
	}
	if len(topics) > 5 {
		topics = topics[:5]
	}
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		if strings.TrimSpace(t) != "" {
			out = append(out, strings.TrimSpace(t))
		}
	}
	if len(out) == 0 {
		return nil, schemaErr("suggestions", "all suggestions were empty")
	}
	return out, nil
}

// ValidateTranslation applies translation-mode validation: the output is
// plain text, so the only requirement is a non-empty trimmed string. No JSON
// parse is attempted.
func ValidateTranslation(text string) (string, error) {
	s := strings.TrimSpace(StripFences(text))
	if s == "" {
		return "", schemaErr("translation", "model returned empty text")
	}
	return s, nil
}
