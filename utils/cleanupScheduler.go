package utils

import (
	"coursify/config"
	"coursify/database"
	courseModels "coursify/models/course"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// logCleanup logs cleanup events with timestamp
func logCleanup(message string) {
	log.Printf("[CLEANUP-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// purgeDeletedCourses hard-deletes soft-deleted courses past the retention
// window, cascading to their modules, lessons and enrollments.
func purgeDeletedCourses() {
	db := database.Database.Db
	cutoff := time.Now().AddDate(0, 0, -config.AppConfig.PurgeAfterDays)

	var courses []courseModels.Course
	if err := db.Unscoped().
		Where("is_deleted = ? AND updated_at < ?", true, cutoff).
		Find(&courses).Error; err != nil {
		logCleanup("Error fetching deleted courses: " + err.Error())
		return
	}

	for _, crs := range courses {
		if err := db.Unscoped().Where("course_id = ?", crs.ID).Delete(&courseModels.Lesson{}).Error; err != nil {
			logCleanup("Error purging lessons: " + err.Error())
			continue
		}
		db.Unscoped().Where("course_id = ?", crs.ID).Delete(&courseModels.Module{})
		db.Unscoped().Where("course_id = ?", crs.ID).Delete(&courseModels.Enrollment{})
		db.Unscoped().Where("course_id = ?", crs.ID).Delete(&courseModels.LessonCompletion{})
		db.Unscoped().Delete(&crs)
		logCleanup("Purged course " + crs.Title)
	}

	if len(courses) > 0 {
		logCleanup("Purge finished")
	}
}

// StartCleanupScheduler runs the purge job once a day
func StartCleanupScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("0 3 * * *", purgeDeletedCourses); err != nil {
		log.Fatalf("Failed to register cleanup job: %v", err)
	}

	c.Start()
	logCleanup("Cleanup scheduler started")
}
