package generation

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"coursify/models/course"
	"coursify/services/videosearch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeClient is a scripted TextClient that counts calls.
type fakeClient struct {
	mu      sync.Mutex
	calls   int32
	delay   time.Duration
	respond func(prompt string) ([]byte, error)
}

func (f *fakeClient) GenerateText(ctx context.Context, prompt string) ([]byte, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	respond := f.respond
	f.mu.Unlock()
	return respond(prompt)
}

func (f *fakeClient) callCount() int32 {
	return atomic.LoadInt32(&f.calls)
}

func (f *fakeClient) setResponse(respond func(prompt string) ([]byte, error)) {
	f.mu.Lock()
	f.respond = respond
	f.mu.Unlock()
}

// directText wraps text in the direct envelope shape.
func directText(text string) []byte {
	raw, _ := json.Marshal(map[string]string{"text": text})
	return raw
}

func respondWith(text string) func(string) ([]byte, error) {
	return func(string) ([]byte, error) {
		return directText(text), nil
	}
}

// fakeSearcher returns one canned video per query.
type fakeSearcher struct{}

func (fakeSearcher) Search(ctx context.Context, query string) ([]videosearch.Video, error) {
	return []videosearch.Video{{
		ID:    "abc123",
		Title: "Result for " + query,
		URL:   "https://www.youtube.com/watch?v=abc123",
	}}, nil
}

func newTestService(t *testing.T, client TextClient) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewService(db, client, fakeSearcher{}, 10*time.Second), db
}

// seedCourse persists the standard outline and returns the first lesson's ID.
func seedCourse(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	outline, err := ParseCourseOutline(validOutlineJSON)
	require.NoError(t, err)
	created, err := BuildCourseTree(db, 1, "Linear Algebra", outline)
	require.NoError(t, err)

	var lesson course.Lesson
	require.NoError(t, db.Where("course_id = ?", created.ID).Order("id").First(&lesson).Error)
	return lesson.ID
}

func TestGenerateCourseOutlineEmptyTopic(t *testing.T) {
	client := &fakeClient{respond: respondWith(validOutlineJSON)}
	svc, _ := newTestService(t, client)

	_, err := svc.GenerateCourseOutline(context.Background(), "   ")

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, int32(0), client.callCount(), "no model call for invalid input")
}

func TestCreateCoursePersistsTree(t *testing.T) {
	client := &fakeClient{respond: respondWith(validOutlineJSON)}
	svc, db := newTestService(t, client)

	created, err := svc.CreateCourse(context.Background(), 42, "Linear Algebra")
	require.NoError(t, err)

	var lessonCount int64
	db.Model(&course.Lesson{}).Where("course_id = ?", created.ID).Count(&lessonCount)
	assert.Equal(t, int64(6), lessonCount)
	assert.Equal(t, int32(1), client.callCount())
}

func TestCreateCourseFailureCreatesNothing(t *testing.T) {
	client := &fakeClient{respond: respondWith("Sure! Here's your course: ```json {invalid}```")}
	svc, db := newTestService(t, client)

	_, err := svc.CreateCourse(context.Background(), 42, "Linear Algebra")

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)

	var courseCount int64
	db.Model(&course.Course{}).Count(&courseCount)
	assert.Equal(t, int64(0), courseCount)
}

func TestEnrichLessonOnReadCommitsOnce(t *testing.T) {
	client := &fakeClient{respond: respondWith(validLessonJSON)}
	svc, db := newTestService(t, client)
	lessonID := seedCourse(t, db)

	first, err := svc.EnrichLessonOnRead(context.Background(), lessonID)
	require.NoError(t, err)
	assert.True(t, first.IsEnriched)
	assert.Equal(t, 25, first.EstimatedMinutes)
	assert.NotContains(t, string(first.Content), PlaceholderText)
	assert.Equal(t, int32(1), client.callCount())

	// Reading-time derives from the committed content
	assert.Equal(t, course.ReadingTimeFromContent(first.Content), first.ReadingTime)

	// The second read is served from the store, byte-identical, no new call
	second, err := svc.EnrichLessonOnRead(context.Background(), lessonID)
	require.NoError(t, err)
	assert.Equal(t, string(first.Content), string(second.Content))
	assert.Equal(t, int32(1), client.callCount())
}

func TestEnrichLessonResolvesVideoBlocks(t *testing.T) {
	client := &fakeClient{respond: respondWith(validLessonJSON)}
	svc, db := newTestService(t, client)
	lessonID := seedCourse(t, db)

	lesson, err := svc.EnrichLessonOnRead(context.Background(), lessonID)
	require.NoError(t, err)

	var blocks []ContentBlock
	require.NoError(t, json.Unmarshal(lesson.Content, &blocks))

	found := false
	for _, block := range blocks {
		if block.Type == BlockVideo {
			found = true
			assert.Equal(t, "abc123", block.VideoID)
			assert.NotEmpty(t, block.VideoURL)
		}
	}
	assert.True(t, found, "fixture contains a video block")
}

func TestEnrichLessonConcurrentFirstReads(t *testing.T) {
	client := &fakeClient{delay: 100 * time.Millisecond, respond: respondWith(validLessonJSON)}
	svc, db := newTestService(t, client)
	lessonID := seedCourse(t, db)

	const readers = 10
	results := make([]*course.Lesson, readers)
	errs := make([]error, readers)

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.EnrichLessonOnRead(context.Background(), lessonID)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), client.callCount(), "exactly one generation call for N concurrent first-reads")
	for i := 0; i < readers; i++ {
		require.NoError(t, errs[i])
		assert.True(t, results[i].IsEnriched)
		assert.Equal(t, string(results[0].Content), string(results[i].Content))
	}
}

func TestEnrichLessonFailureKeepsPlaceholder(t *testing.T) {
	client := &fakeClient{respond: respondWith(`{"title": "t", "estimated_minutes": 10, "content": [{"type": "quiz", "question": "?"}]}`)}
	svc, db := newTestService(t, client)
	lessonID := seedCourse(t, db)

	lesson, err := svc.EnrichLessonOnRead(context.Background(), lessonID)

	var schemaViolation *SchemaViolationError
	require.ErrorAs(t, err, &schemaViolation)
	assert.Equal(t, "quiz", schemaViolation.Kind)

	// Caller still gets the placeholder to render
	require.NotNil(t, lesson)
	assert.False(t, lesson.IsEnriched)
	assert.Contains(t, string(lesson.Content), PlaceholderText)

	// Nothing was persisted
	var stored course.Lesson
	require.NoError(t, db.First(&stored, lessonID).Error)
	assert.False(t, stored.IsEnriched)
}

func TestEnrichLessonRetryAfterFailure(t *testing.T) {
	client := &fakeClient{respond: func(string) ([]byte, error) {
		return nil, &TransportError{Err: context.DeadlineExceeded}
	}}
	svc, db := newTestService(t, client)
	lessonID := seedCourse(t, db)

	_, err := svc.EnrichLessonOnRead(context.Background(), lessonID)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)

	// The next read retries and succeeds
	client.setResponse(respondWith(validLessonJSON))
	lesson, err := svc.EnrichLessonOnRead(context.Background(), lessonID)
	require.NoError(t, err)
	assert.True(t, lesson.IsEnriched)
	assert.Equal(t, int32(2), client.callCount())
}

func TestEnrichLessonSurvivesCallerCancellation(t *testing.T) {
	client := &fakeClient{delay: 50 * time.Millisecond, respond: respondWith(validLessonJSON)}
	svc, db := newTestService(t, client)
	lessonID := seedCourse(t, db)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.EnrichLessonOnRead(ctx, lessonID)
	}()
	cancel() // abort the initiating request immediately
	<-done

	// The in-flight generation still completed and committed
	require.Eventually(t, func() bool {
		var stored course.Lesson
		if err := db.First(&stored, lessonID).Error; err != nil {
			return false
		}
		return stored.IsEnriched
	}, 2*time.Second, 20*time.Millisecond)
}

func TestTranslate(t *testing.T) {
	client := &fakeClient{respond: respondWith("Variables values ko store karte hain.")}
	svc, _ := newTestService(t, client)

	out, err := svc.Translate(context.Background(), "Variables store values.")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.NotEqual(t, "Variables store values.", out)

	_, err = svc.Translate(context.Background(), "  ")
	var inputErr *InputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestSuggestTopics(t *testing.T) {
	client := &fakeClient{respond: respondWith(`["Linear Algebra", "Calculus I"]`)}
	svc, _ := newTestService(t, client)

	topics := svc.SuggestTopics(context.Background(), "math")
	assert.Equal(t, []string{"Linear Algebra", "Calculus I"}, topics)
}

func TestSuggestTopicsDegradeToEmpty(t *testing.T) {
	cases := []func(string) ([]byte, error){
		respondWith("not json"),
		respondWith("[]"),
		func(string) ([]byte, error) { return nil, &TransportError{Err: context.DeadlineExceeded} },
		func(string) ([]byte, error) { return []byte(`{"no": "text"}`), nil },
	}

	for _, respond := range cases {
		svc, _ := newTestService(t, &fakeClient{respond: respond})
		topics := svc.SuggestTopics(context.Background(), "math")
		assert.NotNil(t, topics)
		assert.Empty(t, topics)
	}

	// Blank input short-circuits without a model call
	client := &fakeClient{respond: respondWith(`["x"]`)}
	svc, _ := newTestService(t, client)
	assert.Empty(t, svc.SuggestTopics(context.Background(), "  "))
	assert.Equal(t, int32(0), client.callCount())
}
