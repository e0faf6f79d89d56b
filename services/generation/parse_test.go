package generation

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validOutlineJSON = `{
	"title": "Linear Algebra",
	"description": "A first course in linear algebra.",
	"difficulty": "beginner",
	"estimated_hours": 12,
	"tags": ["math", "algebra"],
	"modules": [
		{
			"title": "Vectors",
			"description": "Vectors and vector arithmetic.",
			"order": 0,
			"lessons": [
				{"title": "What is a vector?", "order": 0},
				{"title": "Vector addition", "order": 1},
				{"title": "Scalar multiplication", "order": 2}
			]
		},
		{
			"title": "Matrices",
			"description": "Matrix operations.",
			"order": 1,
			"lessons": [
				{"title": "Matrix notation", "order": 0},
				{"title": "Matrix multiplication", "order": 1},
				{"title": "Inverses", "order": 2}
			]
		}
	]
}`

const validLessonJSON = `{
	"title": "What is a vector?",
	"objectives": ["Define a vector", "Add two vectors"],
	"estimated_minutes": 25,
	"content": [
		{"type": "heading", "text": "Introduction", "level": 2},
		{"type": "paragraph", "text": "A vector is a quantity with magnitude and direction."},
		{"type": "code", "language": "python", "text": "v = [1, 2, 3]"},
		{"type": "list", "style": "unordered", "items": ["magnitude", "direction"]},
		{"type": "video", "query": "vector introduction linear algebra"},
		{"type": "mcq", "question": "Which of these is a vector?", "options": ["5", "(1, 2)"], "answer": 1},
		{"type": "image", "url": "https://example.com/vector.png"}
	]
}`

func TestStripFences(t *testing.T) {
	cases := map[string]string{
		"{\"a\":1}":                           `{"a":1}`,
		"```json\n{\"a\":1}\n```":             `{"a":1}`,
		"```\n{\"a\":1}\n```":                 `{"a":1}`,
		"  \n```json\n{\"a\":1}\n```  \n":     `{"a":1}`,
		"plain text with no fences":           "plain text with no fences",
	}

	for input, want := range cases {
		assert.Equal(t, want, StripFences(input))
	}
}

func TestParseCourseOutlineValid(t *testing.T) {
	outline, err := ParseCourseOutline(validOutlineJSON)

	require.NoError(t, err)
	assert.Equal(t, "Linear Algebra", outline.Title)
	assert.Equal(t, "beginner", outline.Difficulty)
	assert.Len(t, outline.Modules, 2)
	assert.Len(t, outline.Modules[0].Lessons, 3)

	// order fields form a contiguous 0-based sequence per parent
	for i, mod := range outline.Modules {
		require.NotNil(t, mod.Order)
		assert.Equal(t, i, *mod.Order)
		for j, lesson := range mod.Lessons {
			require.NotNil(t, lesson.Order)
			assert.Equal(t, j, *lesson.Order)
		}
	}
}

func TestParseCourseOutlineFenced(t *testing.T) {
	outline, err := ParseCourseOutline("```json\n" + validOutlineJSON + "\n```")

	require.NoError(t, err)
	assert.Equal(t, "Linear Algebra", outline.Title)
}

func TestParseCourseOutlineRoundTrip(t *testing.T) {
	first, err := ParseCourseOutline(validOutlineJSON)
	require.NoError(t, err)

	serialized, err := json.Marshal(first)
	require.NoError(t, err)

	second, err := ParseCourseOutline(string(serialized))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseCourseOutlineAssignsDefaultOrders(t *testing.T) {
	raw := `{
		"title": "T", "description": "D", "difficulty": "advanced",
		"modules": [
			{"title": "M1", "lessons": [{"title": "L1"}, {"title": "L2"}]},
			{"title": "M2", "lessons": [{"title": "L3"}]}
		]
	}`

	outline, err := ParseCourseOutline(raw)

	require.NoError(t, err)
	assert.Equal(t, 0, *outline.Modules[0].Order)
	assert.Equal(t, 1, *outline.Modules[1].Order)
	assert.Equal(t, 1, *outline.Modules[0].Lessons[1].Order)
}

func TestParseCourseOutlineProseWrappedJSON(t *testing.T) {
	_, err := ParseCourseOutline("Sure! Here's your course: ```json {invalid}```")

	var malformed *MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

func TestParseCourseOutlineMissingFields(t *testing.T) {
	cases := map[string]string{
		`{"description": "d", "difficulty": "beginner", "modules": [{"title": "m", "lessons": [{"title": "l"}]}]}`: "title",
		`{"title": "t", "difficulty": "beginner", "modules": [{"title": "m", "lessons": [{"title": "l"}]}]}`:       "description",
		`{"title": "t", "description": "d", "difficulty": "expert", "modules": [{"title": "m", "lessons": [{"title": "l"}]}]}`: "difficulty",
		`{"title": "t", "description": "d", "difficulty": "beginner", "modules": []}`:                              "modules",
	}

	for raw, field := range cases {
		_, err := ParseCourseOutline(raw)
		var schemaViolation *SchemaViolationError
		require.ErrorAs(t, err, &schemaViolation, "input: %s", raw)
		assert.Equal(t, field, schemaViolation.Field)
	}
}

func TestParseCourseOutlineModuleWithoutLessons(t *testing.T) {
	raw := `{
		"title": "t", "description": "d", "difficulty": "beginner",
		"modules": [
			{"title": "Good", "lessons": [{"title": "l"}]},
			{"title": "Empty", "lessons": []}
		]
	}`

	_, err := ParseCourseOutline(raw)

	var schemaViolation *SchemaViolationError
	require.ErrorAs(t, err, &schemaViolation)
	assert.Equal(t, 1, schemaViolation.Index)
	assert.Contains(t, schemaViolation.Msg, "Empty")
}

func TestParseLessonBodyValid(t *testing.T) {
	body, err := ParseLessonBody(validLessonJSON)

	require.NoError(t, err)
	assert.Equal(t, "What is a vector?", body.Title)
	assert.Equal(t, 25, body.EstimatedMinutes)
	assert.Len(t, body.Content, 7)
	assert.Equal(t, BlockHeading, body.Content[0].Type)
	require.NotNil(t, body.Content[5].Answer)
	assert.Equal(t, 1, *body.Content[5].Answer)
}

func TestParseLessonBodyUnknownBlockKind(t *testing.T) {
	raw := `{
		"title": "t",
		"estimated_minutes": 10,
		"content": [
			{"type": "paragraph", "text": "fine"},
			{"type": "quiz", "question": "not a recognized kind"}
		]
	}`

	_, err := ParseLessonBody(raw)

	var schemaViolation *SchemaViolationError
	require.ErrorAs(t, err, &schemaViolation)
	assert.Equal(t, 1, schemaViolation.Index)
	assert.Equal(t, "quiz", schemaViolation.Kind)
}

func TestParseLessonBodyBlockFieldViolations(t *testing.T) {
	cases := []string{
		`{"type": "heading", "text": "h", "level": 7}`,
		`{"type": "heading", "level": 2}`,
		`{"type": "paragraph"}`,
		`{"type": "code", "text": "x = 1"}`,
		`{"type": "list", "style": "fancy", "items": ["a"]}`,
		`{"type": "list", "style": "ordered", "items": []}`,
		`{"type": "video"}`,
		`{"type": "mcq", "question": "q", "options": ["only one"], "answer": 0}`,
		`{"type": "mcq", "question": "q", "options": ["a", "b"], "answer": 2}`,
		`{"type": "mcq", "question": "q", "options": ["a", "b"]}`,
		`{"type": "image"}`,
	}

	for _, block := range cases {
		raw := fmt.Sprintf(`{"title": "t", "estimated_minutes": 10, "content": [%s]}`, block)
		_, err := ParseLessonBody(raw)
		var schemaViolation *SchemaViolationError
		assert.ErrorAs(t, err, &schemaViolation, "block: %s", block)
	}
}

func TestParseLessonBodyMinutesBounds(t *testing.T) {
	template := `{"title": "t", "estimated_minutes": %d, "content": [{"type": "paragraph", "text": "p"}]}`

	_, err := ParseLessonBody(fmt.Sprintf(template, 241))
	var schemaViolation *SchemaViolationError
	require.ErrorAs(t, err, &schemaViolation)
	assert.Equal(t, "estimated_minutes", schemaViolation.Field)

	// Absent minutes default rather than fail
	body, err := ParseLessonBody(`{"title": "t", "content": [{"type": "paragraph", "text": "p"}]}`)
	require.NoError(t, err)
	assert.Equal(t, 15, body.EstimatedMinutes)
}

func TestParseLessonBodyEmptyContent(t *testing.T) {
	_, err := ParseLessonBody(`{"title": "t", "estimated_minutes": 10, "content": []}`)

	var schemaViolation *SchemaViolationError
	require.ErrorAs(t, err, &schemaViolation)
	assert.Equal(t, "content", schemaViolation.Field)
}

func TestParseSuggestions(t *testing.T) {
	topics, err := ParseSuggestions(`["Linear Algebra", "Abstract Algebra"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Linear Algebra", "Abstract Algebra"}, topics)

	// Over-long lists truncate to 5
	topics, err = ParseSuggestions(`["a", "b", "c", "d", "e", "f", "g"]`)
	require.NoError(t, err)
	assert.Len(t, topics, 5)

	_, err = ParseSuggestions(`[]`)
	assert.Error(t, err)

	_, err = ParseSuggestions(`not json`)
	assert.Error(t, err)

	_, err = ParseSuggestions(`["", "  "]`)
	assert.Error(t, err)
}

func TestValidateTranslation(t *testing.T) {
	out, err := ValidateTranslation("  Variables values ko store karte hain.  ")
	require.NoError(t, err)
	assert.Equal(t, "Variables values ko store karte hain.", out)

	_, err = ValidateTranslation("   ")
	assert.Error(t, err)
}
