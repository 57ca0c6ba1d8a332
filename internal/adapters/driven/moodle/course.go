package moodle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

// Web service functions used for browsing and verification.
const (
	FuncGetCourseModule  = "core_course_get_course_module"
	FuncGetContents      = "core_course_get_contents"
	FuncSearchCourses    = "core_course_search_courses"
	CapabilityManageMods = "moodle/course:manageactivities"
)

// intBool decodes Moodle's visibility fields, which are 0/1 integers in some
// responses and booleans in others.
type intBool bool

func (b *intBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", "1", `"1"`:
		*b = true
	case "false", "0", `"0"`, "null":
		*b = false
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("moodle: invalid visibility flag %s", data)
		}
		i, err := n.Int64()
		if err != nil {
			return fmt.Errorf("moodle: invalid visibility flag %s", data)
		}
		*b = i != 0
	}
	return nil
}

type courseModuleJSON struct {
	ID      int     `json:"id"`
	Course  int     `json:"course"`
	ModName string  `json:"modname"`
	Name    string  `json:"name"`
	Visible intBool `json:"visible"`
}

func (m courseModuleJSON) toDomain(course int) domain.CourseModule {
	if m.Course != 0 {
		course = m.Course
	}
	return domain.CourseModule{
		ID:      m.ID,
		Course:  course,
		ModName: m.ModName,
		Name:    m.Name,
		Visible: bool(m.Visible),
	}
}

// GetCourseModule returns the module with the given cmid.
func (c *Client) GetCourseModule(ctx context.Context, cmid int) (*domain.CourseModule, error) {
	var resp struct {
		CM courseModuleJSON `json:"cm"`
	}
	if err := c.Post(ctx, FuncGetCourseModule, map[string]any{"cmid": cmid}, &resp); err != nil {
		return nil, err
	}
	if resp.CM.ID == 0 {
		return nil, fmt.Errorf("%w: module %d", domain.ErrNotFound, cmid)
	}
	cm := resp.CM.toDomain(0)
	return &cm, nil
}

// GetCourseContents returns a course's sections, optionally without modules.
func (c *Client) GetCourseContents(ctx context.Context, courseID int, excludeModules bool) ([]domain.Section, error) {
	params := map[string]any{"courseid": courseID}
	if excludeModules {
		params["options"] = []any{
			map[string]any{"name": "excludemodules", "value": true},
		}
	}

	var resp []struct {
		ID      int                `json:"id"`
		Name    string             `json:"name"`
		Visible intBool            `json:"visible"`
		Section int                `json:"section"`
		Modules []courseModuleJSON `json:"modules"`
	}
	if err := c.Post(ctx, FuncGetContents, params, &resp); err != nil {
		return nil, err
	}

	sections := make([]domain.Section, len(resp))
	for i, s := range resp {
		sections[i] = domain.Section{
			ID:      s.ID,
			Number:  s.Section,
			Name:    s.Name,
			Visible: bool(s.Visible),
		}
		for _, m := range s.Modules {
			sections[i].Modules = append(sections[i].Modules, m.toDomain(courseID))
		}
	}
	return sections, nil
}

// SearchCourses lists the user's courses. Editable restricts the result to
// courses where the user can manage activities.
func (c *Client) SearchCourses(ctx context.Context, filter domain.CourseFilter) ([]domain.Course, error) {
	params := map[string]any{
		"criterianame":  "search",
		"criteriavalue": "",
	}
	switch filter {
	case domain.CoursesEnrolled:
		params["limittoenrolled"] = 1
	case domain.CoursesEditable:
		params["requiredcapabilities"] = []any{CapabilityManageMods}
	default:
		return nil, fmt.Errorf("%w: course filter %q", domain.ErrInvalidInput, filter)
	}

	var resp struct {
		Total   int `json:"total"`
		Courses []struct {
			ID          int     `json:"id"`
			FullName    string  `json:"fullname"`
			ShortName   string  `json:"shortname"`
			DisplayName string  `json:"displayname"`
			Visible     intBool `json:"visible"`
		} `json:"courses"`
	}
	if err := c.Post(ctx, FuncSearchCourses, params, &resp); err != nil {
		return nil, err
	}

	courses := make([]domain.Course, len(resp.Courses))
	for i, co := range resp.Courses {
		courses[i] = domain.Course{
			ID:          co.ID,
			FullName:    co.FullName,
			ShortName:   co.ShortName,
			DisplayName: co.DisplayName,
			Visible:     bool(co.Visible),
		}
	}
	return courses, nil
}
