package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/mdl/internal/core/domain"
)

var coursesFilter string

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List your courses",
	Long: `Lists the courses of the token's user.

With --filter editable (the default) only courses in which you can manage
activities are listed; --filter enrolled lists every enrolled course.`,
	Args: cobra.NoArgs,
	RunE: runCourses,
}

var contentsCmd = &cobra.Command{
	Use:   "contents <course-id>",
	Short: "List the sections and modules of a course",
	Args:  cobra.ExactArgs(1),
	RunE:  runContents,
}

var moduleCourse int

var moduleCmd = &cobra.Command{
	Use:   "module <cmid>",
	Short: "Show a course module",
	Long: `Shows the name, type and course of a course module.

With --course the module must belong to that course.`,
	Args: cobra.ExactArgs(1),
	RunE: runModule,
}

func init() {
	coursesCmd.Flags().StringVar(&coursesFilter, "filter", string(domain.CoursesEditable),
		"which courses to list: enrolled or editable")
	moduleCmd.Flags().IntVar(&moduleCourse, "course", 0, "course the module must belong to")

	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(contentsCmd)
	rootCmd.AddCommand(moduleCmd)
}

func runCourses(cmd *cobra.Command, _ []string) error {
	s, err := loadServices(cmd)
	if err != nil {
		return err
	}
	if err := s.requireRemote(); err != nil {
		return err
	}

	courses, err := s.Courses.Courses(cmd.Context(), domain.CourseFilter(coursesFilter))
	if err != nil {
		return fmt.Errorf("failed to list courses: %w", err)
	}

	p := newPainter(cmd.OutOrStdout())
	if len(courses) == 0 {
		cmd.Println(p.muted("No courses found."))
		return nil
	}
	for _, c := range courses {
		cmd.Printf("- %s %s%s\n", c.DisplayName, p.muted(fmt.Sprintf("(ID=%d)", c.ID)), p.hiddenSuffix(c.Visible))
	}
	return nil
}

func runContents(cmd *cobra.Command, args []string) error {
	courseID, err := parseID("course id", args[0])
	if err != nil {
		return err
	}
	s, err := loadServices(cmd)
	if err != nil {
		return err
	}
	if err := s.requireRemote(); err != nil {
		return err
	}

	sections, err := s.Courses.Contents(cmd.Context(), courseID)
	if err != nil {
		return fmt.Errorf("failed to get course contents: %w", err)
	}

	p := newPainter(cmd.OutOrStdout())
	for _, sec := range sections {
		cmd.Printf("- %s %s%s\n",
			p.title(fmt.Sprintf("%d: %s", sec.Number, sec.Name)),
			p.muted(fmt.Sprintf("(ID=%d)", sec.ID)),
			p.hiddenSuffix(sec.Visible))
		for _, m := range sec.Modules {
			cmd.Printf("  - %s %s%s\n",
				m.Name,
				p.muted(fmt.Sprintf("(mod_%s, ID=%d)", m.ModName, m.ID)),
				p.hiddenSuffix(m.Visible))
		}
	}
	return nil
}

func runModule(cmd *cobra.Command, args []string) error {
	cmid, err := parseID("cmid", args[0])
	if err != nil {
		return err
	}
	s, err := loadServices(cmd)
	if err != nil {
		return err
	}
	if err := s.requireRemote(); err != nil {
		return err
	}

	var course *int
	if cmd.Flags().Changed("course") {
		c := moduleCourse
		course = &c
	}

	cm, err := s.Courses.Module(cmd.Context(), cmid, course)
	if err != nil {
		return fmt.Errorf("failed to get module: %w", err)
	}

	p := newPainter(cmd.OutOrStdout())
	cmd.Printf("%s %s%s\n",
		p.title(cm.Name),
		p.muted(fmt.Sprintf("(mod_%s, ID=%d, in course %d)", cm.ModName, cm.ID, cm.Course)),
		p.hiddenSuffix(cm.Visible))
	return nil
}
