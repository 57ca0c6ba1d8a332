package driven

import (
	"context"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// RemoteService is the Moodle web service as seen by the core.
// Implementations authenticate every call; callers never see the token.
type RemoteService interface {
	// Post calls a web service function and decodes its JSON result into out.
	// params may nest maps and slices; they are flattened into form fields.
	// out may be nil to discard the result.
	Post(ctx context.Context, function string, params map[string]any, out any) error

	// UploadFiles uploads files into a fresh draft area in one request.
	// All returned entries share the same item id.
	UploadFiles(ctx context.Context, files []domain.UploadFile) ([]domain.UploadedFile, error)

	// GetCourseModule returns the module with the given cmid.
	GetCourseModule(ctx context.Context, cmid int) (*domain.CourseModule, error)

	// GetCourseContents returns a course's sections in order.
	// With excludeModules the sections carry no modules.
	GetCourseContents(ctx context.Context, courseID int, excludeModules bool) ([]domain.Section, error)

	// SearchCourses returns the user's courses matching the filter.
	SearchCourses(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error)
}
