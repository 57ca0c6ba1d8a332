package domain

// SectionMeta describes a course section. Sections are addressed by their
// section id rather than a cmid.
type SectionMeta struct {
	Course  *int
	Section int
	Summary *EditorContent
}

// NewSectionMeta builds a section from a raw mapping. A "mod" key, if still
// present, must be "$section".
func NewSectionMeta(raw RawManifest) (*SectionMeta, error) {
	f := newFieldReader(string(ModSection), raw)

	if _, ok := raw["mod"]; ok {
		tag, err := f.requiredString("mod")
		if err != nil {
			return nil, err
		}
		if ModType(tag) != ModSection {
			return nil, f.errorf("mod", "expected %q, got %q", ModSection, tag)
		}
	}

	var (
		s   SectionMeta
		err error
	)
	if s.Course, err = f.optionalInt("course"); err != nil {
		return nil, err
	}
	if s.Section, err = f.requiredInt("section"); err != nil {
		return nil, err
	}
	if s.Summary, err = f.editor("summary"); err != nil {
		return nil, err
	}
	if err := f.finish(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *SectionMeta) Tag() ModType { return ModSection }

func (s *SectionMeta) DeclaredCourse() (int, bool) {
	if s.Course == nil {
		return 0, false
	}
	return *s.Course, true
}

// Dependencies returns the summary's dependencies.
func (s *SectionMeta) Dependencies(root Path, declared DeclaredFiles) (PathSet, error) {
	return s.Summary.Dependencies(root, declared)
}

func (s *SectionMeta) target() {}
