package driving

import (
	"context"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// CourseBrowser lists remote courses and their contents.
type CourseBrowser interface {
	// Courses lists the user's courses matching filter.
	Courses(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error)

	// Contents lists a course's sections with their modules.
	Contents(ctx context.Context, courseID int) ([]domain.Section, error)

	// Module returns a course module. When course is non-nil the module must
	// belong to it.
	Module(ctx context.Context, cmid int, course *int) (*domain.CourseModule, error)
}
