// Package core provides the business logic of the college portal.
//
// It is independent of HTTP: web handlers, tests and tools call [Service]
// with a context carrying the acting user's [Principal].
//
// # Architecture
//
//   - Roster import: [Service.ImportRoster] reads an uploaded spreadsheet and
//     hands it to the roster package, which resolves columns, validates rows
//     and writes users in one transaction. An [ImportLimiter] caps concurrent
//     imports.
//   - Users: admin create, edit, delete and self-service password change.
//   - Permissions: students file leave requests, faculty review them.
//   - Attendance: faculty replace today's marks in one transaction.
//   - Clubs and events: admin maintained list shown to students.
//   - Dashboards: per-role read models for the HTML pages.
//
// # Authorization
//
// Every operation except [Service.Login] and [Service.ListClubsEvents]
// requires a principal. A missing principal yields [ErrUnauthenticated] and
// a principal with the wrong role yields [ErrForbidden].
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError]. Errors
// that already carry a user-facing message are *[PublicError] values or
// *roster.RejectError values.
package core
