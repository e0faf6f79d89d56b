package generation

import (
	"fmt"
	"strings"
)

// Prompts embed a literal example of the expected output shape and end with an
// instruction to return the shape bare. Builders are pure string formatting so
// prompt behavior stays testable by snapshot.

const outlinePromptTemplate = `You are an expert curriculum designer. Create a complete course outline for the topic below.

Topic: %s

Rules:
- Produce between 4 and 6 modules.
- Each module must contain between 3 and 5 lessons.
- Order modules from foundational to advanced so difficulty progresses naturally.
- "difficulty" must be exactly one of: beginner, intermediate, advanced.
- "estimated_hours" is the total effort for the whole course, as a number.
- "order" values are 0-based and contiguous within their parent.
- Lesson titles must be concrete and specific, not generic filler.

Return JSON with exactly this shape:
{
  "title": "Course title",
  "description": "Two or three sentence course description",
  "difficulty": "beginner",
  "estimated_hours": 12,
  "tags": ["tag1", "tag2"],
  "modules": [
    {
      "title": "Module title",
      "description": "One sentence module description",
      "order": 0,
      "lessons": [
        {"title": "Lesson title", "order": 0}
      ]
    }
  ]
}

Respond with only the JSON object. No markdown fences, no commentary, no text before or after it.`

const lessonPromptTemplate = `You are an expert instructor writing one lesson of an online course.

Course: %s
Module: %s
Lesson %d: %s

Rules:
- Write substantial teaching content: explanations, examples, and checks for understanding.
- Use between 6 and 12 content blocks.
- Allowed block types and their required fields:
  heading: "text", "level" (1-6)
  paragraph: "text"
  code: "language", "text"
  list: "style" ("ordered" or "unordered"), "items" (non-empty array of strings)
  video: "query" (a YouTube search phrase for a relevant video)
  mcq: "question", "options" (at least 2), "answer" (0-based index of the correct option)
  image: "url"
- Do not invent block types outside that list.
- "estimated_minutes" must be between 1 and 240.
- Include at least one mcq block so the lesson is self-checkable.

Return JSON with exactly this shape:
{
  "title": "Lesson title",
  "objectives": ["objective 1", "objective 2"],
  "estimated_minutes": 25,
  "content": [
    {"type": "heading", "text": "Introduction", "level": 2},
    {"type": "paragraph", "text": "Explanatory prose."},
    {"type": "code", "language": "python", "text": "print('hello')"},
    {"type": "list", "style": "unordered", "items": ["first", "second"]},
    {"type": "video", "query": "search phrase"},
    {"type": "mcq", "question": "A question?", "options": ["a", "b", "c"], "answer": 1},
    {"type": "image", "url": "https://example.com/diagram.png"}
  ]
}

Respond with only the JSON object. No markdown fences, no commentary, no text before or after it.`

const translationPromptTemplate = `Translate the following educational text into Hinglish (Hindi written in Latin script, mixed naturally with English technical terms). Keep technical terms, code identifiers and proper nouns in English. Preserve the meaning and tone.

Text:
%s

Respond with only the translated text. No JSON, no quotes around it, no commentary.`

const suggestionsPromptTemplate = `Suggest course topics a learner might mean by the partial input below. Topics must be specific enough to build a course from.

Partial input: %s

Return a JSON array of 1 to 5 topic strings, for example:
["Linear Algebra for Machine Learning", "Applied Linear Algebra with Python"]

Respond with only the JSON array. No markdown fences, no commentary.`

// BuildPrompt turns a GenerationRequest into the model instruction string.
// Deterministic for identical input: no timestamps, no randomness.
func BuildPrompt(req GenerationRequest) string {
	switch req.Kind {
	case KindCourseOutline:
		return fmt.Sprintf(outlinePromptTemplate, strings.TrimSpace(req.Topic))
	case KindLessonBody:
		return fmt.Sprintf(lessonPromptTemplate,
			strings.TrimSpace(req.CourseTitle),
			strings.TrimSpace(req.ModuleTitle),
			req.LessonIndex+1,
			strings.TrimSpace(req.LessonTitle),
		)
	case KindTranslation:
		return fmt.Sprintf(translationPromptTemplate, req.Text)
	case KindSuggestions:
		return fmt.Sprintf(suggestionsPromptTemplate, strings.TrimSpace(req.PartialTopic))
	}
	return ""
}
