package cache

import "fmt"

// InstructorAnalyticsKey is the cache key for an instructor's analytics view.
func InstructorAnalyticsKey(instructorID string) string {
	return fmt.Sprintf("analytics:instructor:%s", instructorID)
}
