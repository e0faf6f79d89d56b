package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"coursify/models/course"
	"coursify/services/videosearch"

	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service drives course and lesson generation. The singleflight group is the
// only shared mutable state: it coalesces concurrent first-reads of the same
// lesson so at most one generation call is in flight per lesson ID, and its
// entries self-clean when each flight completes.
type Service struct {
	db         *gorm.DB
	client     TextClient
	videos     videosearch.Searcher
	group      singleflight.Group
	genTimeout time.Duration
}

// Default is the service instance wired at startup.
var Default *Service

// Init sets up the Default service.
func Init(db *gorm.DB, client TextClient, videos videosearch.Searcher) {
	Default = NewService(db, client, videos, 2*time.Minute)
}

// NewService builds a Service. videos may be nil; video blocks then keep
// their query without a resolved URL.
func NewService(db *gorm.DB, client TextClient, videos videosearch.Searcher, genTimeout time.Duration) *Service {
	return &Service{db: db, client: client, videos: videos, genTimeout: genTimeout}
}

// GenerateCourseOutline runs the outline pipeline: prompt, model call,
// extraction, parse, validation. Nothing is persisted here.
func (s *Service) GenerateCourseOutline(ctx context.Context, topic string) (*CourseOutline, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, ErrEmptyTopic
	}

	raw, err := s.client.GenerateText(ctx, BuildPrompt(OutlineRequest(topic)))
	if err != nil {
		return nil, err
	}
	text, err := ExtractText(raw)
	if err != nil {
		return nil, err
	}
	return ParseCourseOutline(text)
}

// CreateCourse generates an outline for the topic and persists the full
// Course tree with placeholder lessons. A generation failure creates nothing.
func (s *Service) CreateCourse(ctx context.Context, userID uint, topic string) (*course.Course, error) {
	outline, err := s.GenerateCourseOutline(ctx, topic)
	if err != nil {
		return nil, err
	}
	return BuildCourseTree(s.db, userID, strings.TrimSpace(topic), outline)
}

// EnrichLessonOnRead returns the lesson's content, generating it on first
// read. Already-enriched lessons are returned unchanged with no model call.
// On generation failure the placeholder lesson is returned together with the
// error; the lesson stays retryable on the next read.
func (s *Service) EnrichLessonOnRead(ctx context.Context, lessonID uint) (*course.Lesson, error) {
	var lesson course.Lesson
	if err := s.db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return nil, err
	}
	if lesson.IsEnriched {
		return &lesson, nil
	}

	key := fmt.Sprintf("lesson:%d", lessonID)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.enrichLesson(ctx, lessonID)
	})
	if err != nil {
		return &lesson, err
	}
	return v.(*course.Lesson), nil
}

// enrichLesson runs one generation flight for a lesson. It re-reads the row
// inside the flight so callers that lost the race to an already-finished
// flight see the committed content instead of generating again.
func (s *Service) enrichLesson(callerCtx context.Context, lessonID uint) (*course.Lesson, error) {
	// Detach from the caller: an aborted request must not cancel an
	// in-flight generation, only the timeout bounds it.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(callerCtx), s.genTimeout)
	defer cancel()

	var lesson course.Lesson
	if err := s.db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return nil, err
	}
	if lesson.IsEnriched {
		return &lesson, nil
	}

	var module course.Module
	if err := s.db.First(&module, lesson.ModuleID).Error; err != nil {
		return nil, err
	}
	var crs course.Course
	if err := s.db.First(&crs, lesson.CourseID).Error; err != nil {
		return nil, err
	}

	req := LessonRequest(crs.Title, module.Title, lesson.Title, lesson.OrderIndex)
	raw, err := s.client.GenerateText(ctx, BuildPrompt(req))
	if err != nil {
		return nil, err
	}
	text, err := ExtractText(raw)
	if err != nil {
		return nil, err
	}
	body, err := ParseLessonBody(text)
	if err != nil {
		return nil, err
	}

	s.resolveVideos(ctx, body.Content)

	contentJSON, err := json.Marshal(body.Content)
	if err != nil {
		return nil, err
	}
	objectivesJSON, err := json.Marshal(body.Objectives)
	if err != nil {
		return nil, err
	}

	// Commit exactly once: only a still-un-enriched row is updated.
	result := s.db.Model(&course.Lesson{}).
		Where("id = ? AND is_enriched = ?", lessonID, false).
		Updates(map[string]interface{}{
			"content":           datatypes.JSON(contentJSON),
			"objectives":        datatypes.JSON(objectivesJSON),
			"estimated_minutes": body.EstimatedMinutes,
			"reading_time":      course.ReadingTimeFromContent(datatypes.JSON(contentJSON)),
			"is_enriched":       true,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	if err := s.db.First(&lesson, lessonID).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

// resolveVideos fills video blocks with a concrete URL from video search.
// Strictly best-effort: a failed search leaves the query for the client to
// resolve and never fails enrichment.
func (s *Service) resolveVideos(ctx context.Context, blocks []ContentBlock) {
	if s.videos == nil {
		return
	}
	for i := range blocks {
		block := &blocks[i]
		if block.Type != BlockVideo || block.VideoURL != "" {
			continue
		}
		hits, err := s.videos.Search(ctx, block.Query)
		if err != nil {
			log.Printf("video search for %q failed: %v", block.Query, err)
			continue
		}
		if len(hits) > 0 {
			block.VideoID = hits[0].ID
			block.VideoURL = hits[0].URL
		}
	}
}

// Translate renders free text into Hinglish. The output is plain text; only
// non-empty validation applies.
func (s *Service) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &InputError{Field: "text", Msg: "text must not be empty"}
	}

	raw, err := s.client.GenerateText(ctx, BuildPrompt(TranslationRequest(text)))
	if err != nil {
		return "", err
	}
	out, err := ExtractText(raw)
	if err != nil {
		return "", err
	}
	return ValidateTranslation(out)
}

// SuggestTopics returns up to 5 topic suggestions for a partial input.
// Suggestions are advisory: every failure degrades to an empty list.
func (s *Service) SuggestTopics(ctx context.Context, partialTopic string) []string {
	if strings.TrimSpace(partialTopic) == "" {
		return []string{}
	}

	raw, err := s.client.GenerateText(ctx, BuildPrompt(SuggestionsRequest(partialTopic)))
	if err != nil {
		log.Printf("topic suggestion call failed: %v", err)
		return []string{}
	}
	text, err := ExtractText(raw)
	if err != nil {
		log.Printf("topic suggestion extraction failed: %v", err)
		return []string{}
	}
	topics, err := ParseSuggestions(text)
	if err != nil {
		log.Printf("topic suggestion parse failed: %v", err)
		return []string{}
	}
	return topics
}
