package domain

// TextFormat is a Moodle text format code.
type TextFormat int

// Moodle text formats.
const (
	FormatHTML     TextFormat = 1
	FormatPlain    TextFormat = 2
	FormatMarkdown TextFormat = 4
)

// String returns the format name.
func (f TextFormat) String() string {
	switch f {
	case FormatHTML:
		return "html"
	case FormatPlain:
		return "plain"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// FormatForExtension picks the text format for a source file extension.
// HTML, Typst and unknown extensions share the HTML format.
func FormatForExtension(ext string) TextFormat {
	switch ext {
	case ExtText:
		return FormatPlain
	case ExtMarkdown:
		return FormatMarkdown
	default:
		return FormatHTML
	}
}

// EditorPayload is prepared editor content as sent to Moodle.
// ItemID is nil when the editor has no attachments; the key is then omitted.
type EditorPayload struct {
	Text   string
	Format TextFormat
	ItemID *int
}

// UploadFile is a local file uploaded under a remote file name.
type UploadFile struct {
	Name string
	Path Path
}

// UploadFilesFor uploads each path under its base name.
func UploadFilesFor(paths []Path) []UploadFile {
	files := make([]UploadFile, len(paths))
	for i, p := range paths {
		files[i] = UploadFile{Name: p.Base(), Path: p}
	}
	return files
}

// UploadedFile is one entry of a file upload response.
type UploadedFile struct {
	ItemID    int
	Filename  string
	Filepath  string
	Component string
	FileArea  string
}

// CourseFilter selects a subset of the user's courses.
type CourseFilter string

const (
	// CoursesEnrolled selects all courses the user is enrolled in.
	CoursesEnrolled CourseFilter = "enrolled"

	// CoursesEditable selects courses in which the user can manage activities.
	CoursesEditable CourseFilter = "editable"
)

// Course is a remote course as returned by a course search.
type Course struct {
	ID          int
	FullName    string
	ShortName   string
	DisplayName string
	Visible     bool
}

// Section is a remote course section.
type Section struct {
	ID      int
	Number  int
	Name    string
	Visible bool
	Modules []CourseModule
}

// CourseModule is a remote module reference.
type CourseModule struct {
	ID      int
	Course  int
	ModName string
	Name    string
	Visible bool
}
