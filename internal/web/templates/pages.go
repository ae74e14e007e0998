package templates

import (
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/portal/internal/core"
	"github.com/JonMunkholm/portal/internal/models"
)

// Login is the sign-in page. flash is shown above the form when set.
func Login(flash string) templ.Component {
	return component(func(h *html) {
		layout(h, "Login", "", func(h *html) {
			if flash != "" {
				h.raw(`<div class="alert alert-error" role="alert">`)
				h.text(flash)
				h.raw(`</div>`)
			}
			h.raw(`<form method="post" action="/login" class="login">`)
			h.raw(`<label>Username <input name="username" required></label>`)
			h.raw(`<label>Password <input name="password" type="password" required></label>`)
			h.raw(`<label>Role <select name="role">`)
			for _, r := range []models.Role{models.RoleStudent, models.RoleFaculty, models.RoleAdmin} {
				h.raw(`<option value="`)
				h.text(string(r))
				h.raw(`">`)
				h.text(string(r))
				h.raw(`</option>`)
			}
			h.raw(`</select></label><button type="submit">Login</button></form>`)
		})
	})
}

// AdminDashboard lists users and headline counts.
func AdminDashboard(d *core.AdminDashboard) templ.Component {
	return component(func(h *html) {
		layout(h, "Admin Dashboard", d.Principal.Name, func(h *html) {
			h.raw(`<section class="stats">`)
			stat(h, "Students", strconv.Itoa(d.StudentsCount))
			stat(h, "Faculty", strconv.Itoa(d.FacultyCount))
			stat(h, "Pending Permissions", strconv.Itoa(d.PendingPermissions))
			stat(h, "Events", strconv.Itoa(d.EventsCount))
			h.raw(`</section>`)

			h.raw(`<section><h2>Upload Rosters</h2>`)
			for _, kind := range []string{"students", "faculty"} {
				h.raw(`<form method="post" enctype="multipart/form-data" action="/api/upload_`)
				h.text(kind)
				h.raw(`"><input type="file" name="file" accept=".xlsx,.xls"><button type="submit">Upload `)
				h.text(kind)
				h.raw(`</button></form>`)
			}
			h.raw(`<a href="/api/upload_template/student">Student template</a> `)
			h.raw(`<a href="/api/upload_template/faculty">Faculty template</a></section>`)

			h.raw(`<section><h2>Students</h2>`)
			table(h, "students", []string{"ID", "Roll No", "Name", "Email", "Section", "Department"}, userRows(d.Students, true))
			h.raw(`</section><section><h2>Faculty</h2>`)
			table(h, "faculty", []string{"ID", "Username", "Name", "Email", "Department"}, userRows(d.Faculty, false))
			h.raw(`</section>`)
		})
	})
}

// FacultyDashboard shows requests to review and today's attendance sheet.
func FacultyDashboard(d *core.FacultyDashboard) templ.Component {
	return component(func(h *html) {
		layout(h, "Faculty Dashboard", d.Principal.Name, func(h *html) {
			h.raw(`<section class="stats">`)
			stat(h, "Classes", strconv.Itoa(d.ClassesCount))
			stat(h, "Students", strconv.Itoa(d.StudentsCount))
			stat(h, "Pending Permissions", strconv.Itoa(d.PendingPermissions))
			h.raw(`</section>`)

			h.raw(`<section><h2>Classes</h2>`)
			rows := make([][]string, 0, len(d.Classes))
			for _, c := range d.Classes {
				rows = append(rows, []string{c.Name, c.Schedule, c.Room})
			}
			table(h, "classes", []string{"Class", "Schedule", "Room"}, rows)
			h.raw(`</section>`)

			h.raw(`<section><h2>Permission Requests</h2>`)
			rows = make([][]string, 0, len(d.Permissions))
			for _, p := range d.Permissions {
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10), p.RollNo, p.StudentName,
					p.Date.Format(time.DateOnly), p.Reason, string(p.Status),
				})
			}
			table(h, "permissions", []string{"ID", "Roll No", "Student", "Date", "Reason", "Status"}, rows)
			h.raw(`</section>`)

			h.raw(`<section><h2>Today's Attendance</h2>`)
			rows = make([][]string, 0, len(d.Students))
			for _, s := range d.Students {
				status := string(d.TodayAttendance[s.ID])
				if status == "" {
					status = "not marked"
				}
				rows = append(rows, []string{strconv.FormatInt(s.ID, 10), s.RollNo, s.Name, s.Section, status})
			}
			table(h, "attendance", []string{"ID", "Roll No", "Name", "Section", "Status"}, rows)
			h.raw(`</section>`)
		})
	})
}

// StudentDashboard shows attendance, requests and the clubs to choose from.
func StudentDashboard(d *core.StudentDashboard) templ.Component {
	return component(func(h *html) {
		layout(h, "Student Dashboard", d.Principal.Name, func(h *html) {
			h.raw(`<section class="stats">`)
			stat(h, "Attendance", strconv.FormatFloat(d.AttendancePercentage, 'f', 1, 64)+"%")
			stat(h, "Pending Permissions", strconv.Itoa(d.PendingPermissions))
			stat(h, "Events", strconv.Itoa(d.EventsCount))
			h.raw(`</section>`)

			h.raw(`<section><h2>Profile</h2><dl>`)
			for _, kv := range [][2]string{
				{"Name", d.Student.Name}, {"Roll No", d.Student.RollNo},
				{"Section", d.Student.Section}, {"Department", d.Student.Department},
			} {
				h.raw(`<dt>`)
				h.text(kv[0])
				h.raw(`</dt><dd>`)
				h.text(kv[1])
				h.raw(`</dd>`)
			}
			h.raw(`</dl></section>`)

			h.raw(`<section><h2>Request Permission</h2><form id="permission-form">`)
			h.raw(`<input type="date" name="date" required><select name="reason">`)
			for _, group := range []struct {
				label   string
				entries []models.ClubEvent
			}{{"Clubs", d.Clubs}, {"Events", d.Events}} {
				h.raw(`<optgroup label="`)
				h.text(group.label)
				h.raw(`">`)
				for _, e := range group.entries {
					h.raw(`<option>`)
					h.text(e.Name)
					h.raw(`</option>`)
				}
				h.raw(`</optgroup>`)
			}
			h.raw(`</select><input name="proof" placeholder="Proof (optional)"><button type="submit">Submit</button></form></section>`)

			h.raw(`<section><h2>Attendance History</h2>`)
			rows := make([][]string, 0, len(d.Attendance))
			for _, a := range d.Attendance {
				rows = append(rows, []string{a.Date.Format(time.DateOnly), a.Subject, string(a.Status), a.MarkedBy})
			}
			table(h, "attendance", []string{"Date", "Subject", "Status", "Marked By"}, rows)
			h.raw(`</section>`)

			h.raw(`<section><h2>My Permissions</h2>`)
			rows = make([][]string, 0, len(d.Permissions))
			for _, p := range d.Permissions {
				rows = append(rows, []string{p.Date.Format(time.DateOnly), p.Reason, p.FacultyName, string(p.Status)})
			}
			table(h, "permissions", []string{"Date", "Reason", "Faculty", "Status"}, rows)
			h.raw(`</section>`)
		})
	})
}

func userRows(users []models.User, student bool) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		id := strconv.FormatInt(u.ID, 10)
		if student {
			rows = append(rows, []string{id, u.RollNo, u.Name, u.Email, u.Section, u.Department})
		} else {
			rows = append(rows, []string{id, u.Username, u.Name, u.Email, u.Department})
		}
	}
	return rows
}
