package generation

// RequestKind identifies what a GenerationRequest asks the model for.
type RequestKind string

const (
	KindCourseOutline RequestKind = "course_outline"
	KindLessonBody    RequestKind = "lesson_body"
	KindTranslation   RequestKind = "translation"
	KindSuggestions   RequestKind = "suggestions"
)

// GenerationRequest is an immutable description of one model call. Use the
// constructor for the variant you need; BuildPrompt reads only the fields
// belonging to that variant.
type GenerationRequest struct {
	Kind RequestKind

	// KindCourseOutline
	Topic string

	// KindLessonBody
	CourseTitle string
	ModuleTitle string
	LessonTitle string
	LessonIndex int

	// KindTranslation
	Text string

	// KindSuggestions
	PartialTopic string
}

// OutlineRequest asks for a full course outline on a topic.
func OutlineRequest(topic string) GenerationRequest {
	return GenerationRequest{Kind: KindCourseOutline, Topic: topic}
}

// LessonRequest asks for the body of a single lesson.
func LessonRequest(courseTitle, moduleTitle, lessonTitle string, lessonIndex int) GenerationRequest {
	return GenerationRequest{
		Kind:        KindLessonBody,
		CourseTitle: courseTitle,
		ModuleTitle: moduleTitle,
		LessonTitle: lessonTitle,
		LessonIndex: lessonIndex,
	}
}

// TranslationRequest asks for a Hinglish rendering of free text.
func TranslationRequest(text string) GenerationRequest {
	return GenerationRequest{Kind: KindTranslation, Text: text}
}

// SuggestionsRequest asks for topic suggestions for a partial input.
func SuggestionsRequest(partialTopic string) GenerationRequest {
	return GenerationRequest{Kind: KindSuggestions, PartialTopic: partialTopic}
}

// CourseOutline is the validated result of outline generation.
type CourseOutline struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Difficulty     string          `json:"difficulty"`
	EstimatedHours float64         `json:"estimated_hours"`
	Tags           []string        `json:"tags"`
	Modules        []ModuleOutline `json:"modules"`
}

// ModuleOutline is one module within a course outline. Order is authoritative
// for display order when the model supplies it; the parser assigns sequential
// defaults when it is absent.
type ModuleOutline struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Order       *int         `json:"order,omitempty"`
	Lessons     []LessonStub `json:"lessons"`
}

// LessonStub is a lesson title within a module outline.
type LessonStub struct {
	Title string `json:"title"`
	Order *int   `json:"order,omitempty"`
}

// LessonBody is the validated result of lesson generation.
type LessonBody struct {
	Title            string         `json:"title"`
	Objectives       []string       `json:"objectives"`
	EstimatedMinutes int            `json:"estimated_minutes"`
	Content          []ContentBlock `json:"content"`
}

// BlockType enumerates the recognized content block kinds.
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockCode      BlockType = "code"
	BlockList      BlockType = "list"
	BlockVideo     BlockType = "video"
	BlockMCQ       BlockType = "mcq"
	BlockImage     BlockType = "image"
)

// knownBlockTypes is the closed set of kinds the validator accepts.
var knownBlockTypes = map[BlockType]bool{
	BlockHeading:   true,
	BlockParagraph: true,
	BlockCode:      true,
	BlockList:      true,
	BlockVideo:     true,
	BlockMCQ:       true,
	BlockImage:     true,
}

// ContentBlock is one typed unit of lesson content. Which fields are required
// depends on Type; validateBlock enforces the per-kind contract.
type ContentBlock struct {
	Type BlockType `json:"type"`

	// heading, paragraph, code
	Text  string `json:"text,omitempty"`
	Level int    `json:"level,omitempty"` // heading: 1-6

	// code
	Language string `json:"language,omitempty"`

	// list
	Style string   `json:"style,omitempty"` // ordered, unordered
	Items []string `json:"items,omitempty"`

	// video
	Query    string `json:"query,omitempty"`
	VideoURL string `json:"video_url,omitempty"` // resolved by video search, best effort
	VideoID  string `json:"video_id,omitempty"`

	// mcq
	Question string   `json:"question,omitempty"`
	Options  []string `json:"options,omitempty"`
	Answer   *int     `json:"answer,omitempty"` // index into Options

	// image
	URL string `json:"url,omitempty"`
}
