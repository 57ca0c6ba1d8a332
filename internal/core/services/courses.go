package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/mdl/internal/core/domain"
	"github.com/custodia-labs/mdl/internal/core/ports/driven"
	"github.com/custodia-labs/mdl/internal/core/ports/driving"
)

// Ensure CourseBrowser implements the interface.
var _ driving.CourseBrowser = (*CourseBrowser)(nil)

// CourseBrowser answers read-only questions about remote courses.
type CourseBrowser struct {
	remote driven.RemoteService
}

// NewCourseBrowser creates a course browser.
func NewCourseBrowser(remote driven.RemoteService) *CourseBrowser {
	return &CourseBrowser{remote: remote}
}

// Courses lists the user's courses matching filter.
func (b *CourseBrowser) Courses(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error) {
	switch filter {
	case domain.CoursesEnrolled, domain.CoursesEditable:
	default:
		return nil, fmt.Errorf("%w: course filter %q (want %q or %q)",
			domain.ErrInvalidInput, filter, domain.CoursesEnrolled, domain.CoursesEditable)
	}
	return b.remote.SearchCourses(ctx, filter)
}

// Contents lists a course's sections and modules.
func (b *CourseBrowser) Contents(ctx context.Context, courseID int) ([]domain.Section, error) {
	if courseID <= 0 {
		return nil, fmt.Errorf("%w: course id must be positive, got %d", domain.ErrInvalidInput, courseID)
	}
	return b.remote.GetCourseContents(ctx, courseID, false)
}

// Module returns a course module, optionally checking its course.
func (b *CourseBrowser) Module(ctx context.Context, cmid int, course *int) (*domain.CourseModule, error) {
	if cmid <= 0 {
		return nil, fmt.Errorf("%w: cmid must be positive, got %d", domain.ErrInvalidInput, cmid)
	}
	cm, err := b.remote.GetCourseModule(ctx, cmid)
	if err != nil {
		return nil, err
	}
	if course != nil && cm.Course != *course {
		return nil, fmt.Errorf("%w: module %d is in course %d, not %d",
			domain.ErrVerification, cmid, cm.Course, *course)
	}
	return cm, nil
}
