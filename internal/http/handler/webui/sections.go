package webui

// Section is a "new record" page backed by a schema of the store.
type Section struct {
	// Schema is the schema id.
	Schema string
	// Path serves the form.
	Path string
	// Collection is the backend endpoint the form posts to.
	Collection string
	Roles      []string
	// SuccessPath is where an accepted submission redirects. Empty keeps the
	// user on a fresh form.
	SuccessPath string
	Success     string
}

var (
	adminOnly        = []string{"admin"}
	adminsOrTeachers = []string{"admin", "teacher"}
)

// DefaultSections lists the create pages of the dashboard.
var DefaultSections = []Section{
	{Schema: "department", Path: "/departments/new", Collection: "/departments", Roles: adminOnly, SuccessPath: "/departments", Success: "Department added"},
	{Schema: "student", Path: "/students/new", Collection: "/students", Roles: adminOnly, Success: "Student added"},
	{Schema: "teacher", Path: "/teachers/new", Collection: "/teachers", Roles: adminOnly, Success: "Teacher added"},
	{Schema: "course", Path: "/courses/new", Collection: "/courses", Roles: adminOnly, Success: "Course added"},
	{Schema: "attendance", Path: "/attendance/new", Collection: "/attendance", Roles: adminsOrTeachers, Success: "Attendance recorded"},
	{Schema: "result", Path: "/results/new", Collection: "/results", Roles: adminsOrTeachers, Success: "Result published"},
}

// Page sizes offered on list pages.
var pageSizes = []int{10, 25, 50}

const defaultPageSize = 10
