package repository

import (
	"time"

	"github.com/anever/school-portal/portal/internal/model"
)

// Seed is the catalog and ledger content the memory store starts with.
type Seed struct {
	Books      []model.Book
	Events     []model.Event
	Loans      []model.Loan
	Passes     []model.EventPass
	Notices    []model.Notice
	Attendance map[string][]model.Attendance
	Routes     map[string]model.Route
}

// DefaultSeed builds the sample catalog relative to today, so overdue loans
// stay overdue no matter when the process starts. holderID owns the seeded
// loans, passes and attendance.
func DefaultSeed(holderID string, today time.Time) Seed {
	day := func(n int) time.Time { return today.AddDate(0, 0, n) }

	return Seed{
		Books: []model.Book{
			{ID: "b1", Title: "Introduction to Algorithms", Author: "Cormen, Leiserson, Rivest, Stein", ISBN: "978-0262033848", Copies: 5, Available: 2},
			{ID: "b2", Title: "Clean Code", Author: "Robert C. Martin", ISBN: "978-0132350884", Copies: 3, Available: 2},
			{ID: "b3", Title: "The Pragmatic Programmer", Author: "Andrew Hunt, David Thomas", ISBN: "978-0201616224", Copies: 2, Available: 1},
			{ID: "b4", Title: "Physics for Scientists and Engineers", Author: "Raymond A. Serway", ISBN: "978-1133947271", Copies: 4, Available: 4},
			{ID: "b5", Title: "A Brief History of Time", Author: "Stephen Hawking", ISBN: "978-0553380163", Copies: 1, Available: 0},
			{ID: "b6", Title: "Calculus: Early Transcendentals", Author: "James Stewart", ISBN: "978-1285741550", Copies: 6, Available: 6},
		},
		Events: []model.Event{
			{ID: "ev1", Title: "Tech Fest 2026", Category: "Cultural", Date: day(12), Start: "10:00", End: "17:00", Venue: "Main Auditorium", Description: "Annual technology festival with project demos and workshops.", Capacity: 2},
			{ID: "ev2", Title: "Inter-School Football Final", Category: "Sports", Date: day(5), Start: "15:00", End: "17:30", Venue: "Sports Ground", Description: "Final match of the inter-school football tournament.", Capacity: 50},
			{ID: "ev3", Title: "Science Exhibition", Category: "Academic", Date: day(20), Start: "09:00", End: "13:00", Venue: "Science Block", Description: "Student science projects open to parents and visitors.", Capacity: 30},
		},
		Loans: []model.Loan{
			// Seeded directly as CURRENT, the way the sample data ships.
			{ID: "l1", BookID: "b2", HolderID: holderID, Status: model.LoanCurrent, IssueDate: day(-9), DueDate: day(5), Renewals: 0},
			{ID: "l2", BookID: "b3", HolderID: holderID, Status: model.LoanCurrent, IssueDate: day(-25), DueDate: day(-11), Renewals: 1},
		},
		Passes: []model.EventPass{
			{ID: "p1", EventID: "ev2", HolderID: holderID, Code: "PASS-EV2-7Q4K", Status: model.PassActive, IssuedAt: day(-2)},
		},
		Notices: []model.Notice{
			{ID: "n1", Category: "Class", Title: "CS Lab moved to Lab-3", Body: "Tomorrow's CS lab will be in Lab-3.", From: "Admin", PostedAt: day(-1).Add(18*time.Hour + 45*time.Minute)},
			{ID: "n2", Category: "Exams", Title: "Midterm Timetable", Body: "Midterm exam schedule has been posted.", From: "Examination Cell", PostedAt: day(-3).Add(9 * time.Hour)},
			{ID: "n3", Category: "Events", Title: "Tech Fest Registration", Body: "Register for the tech fest before seats run out.", From: "Cultural Committee", PostedAt: day(-4).Add(12*time.Hour + 10*time.Minute)},
		},
		Attendance: map[string][]model.Attendance{
			holderID: {
				{ID: "at1", Date: day(-5), Status: model.AttendancePresent},
				{ID: "at2", Date: day(-4), Status: model.AttendancePresent},
				{ID: "at3", Date: day(-3), Status: model.AttendanceLate},
				{ID: "at4", Date: day(-2), Status: model.AttendanceAbsent},
				{ID: "at5", Date: day(-1), Status: model.AttendancePresent},
			},
		},
		Routes: map[string]model.Route{
			holderID: {
				ID:   "r1",
				Name: "Route 7 - North Campus",
				Stops: []model.BusStop{
					{ID: "st1", Name: "Depot", EtaOffsetMin: 0},
					{ID: "st2", Name: "Maple Crossing", EtaOffsetMin: 10},
					{ID: "st3", Name: "Riverside Gate", EtaOffsetMin: 18},
					{ID: "st4", Name: "School Main Gate", EtaOffsetMin: 30},
				},
				StudentStopID: "st2",
			},
		},
	}
}
