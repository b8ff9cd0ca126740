package model

import (
	"time"
)

type LoanStatus string

const (
	LoanReserved LoanStatus = "RESERVED"
	LoanCurrent  LoanStatus = "CURRENT"
	LoanReturned LoanStatus = "RETURNED"
)

type PassStatus string

const (
	PassActive    PassStatus = "ACTIVE"
	PassCancelled PassStatus = "CANCELLED"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestApproved RequestStatus = "APPROVED"
	RequestRejected RequestStatus = "REJECTED"
)

type RequestType string

const (
	RequestLeave      RequestType = "LEAVE"
	RequestStopChange RequestType = "STOP_CHANGE"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceLate    AttendanceStatus = "LATE"
)

type Book struct {
	ID        string `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Author    string `json:"author" db:"author"`
	ISBN      string `json:"isbn" db:"isbn"`
	Copies    int    `json:"copies" db:"copies"`
	Available int    `json:"available" db:"available"`
}

// Loan is the sole record of a hold on a Book. A RESERVED loan already
// accounts for one unit of the book's availability.
type Loan struct {
	ID        string     `json:"id" db:"id"`
	BookID    string     `json:"bookId" db:"book_id"`
	HolderID  string     `json:"holderId" db:"holder_id"`
	Status    LoanStatus `json:"status" db:"status"`
	IssueDate time.Time  `json:"issueDate" db:"issue_date"`
	DueDate   time.Time  `json:"dueDate" db:"due_date"`
	Renewals  int        `json:"renewals" db:"renewals"`
}

type Event struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Category    string    `json:"category" db:"category"`
	Date        time.Time `json:"date" db:"date"`
	Start       string    `json:"start" db:"start_time"`
	End         string    `json:"end" db:"end_time"`
	Venue       string    `json:"venue" db:"venue"`
	Description string    `json:"description" db:"description"`
	Capacity    int       `json:"capacity" db:"capacity"`
}

type EventPass struct {
	ID       string     `json:"id" db:"id"`
	EventID  string     `json:"eventId" db:"event_id"`
	HolderID string     `json:"holderId" db:"holder_id"`
	Code     string     `json:"code" db:"code"`
	Status   PassStatus `json:"status" db:"status"`
	IssuedAt time.Time  `json:"issuedAt" db:"issued_at"`
}

type Request struct {
	ID        string        `json:"id" db:"id"`
	HolderID  string        `json:"holderId" db:"holder_id"`
	Type      RequestType   `json:"type" db:"type"`
	Reason    string        `json:"reason" db:"reason"`
	FromDate  time.Time     `json:"fromDate" db:"from_date"`
	ToDate    time.Time     `json:"toDate" db:"to_date"`
	Status    RequestStatus `json:"status" db:"status"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at"`
}

type Notice struct {
	ID       string    `json:"id" db:"id"`
	Category string    `json:"category" db:"category"`
	Title    string    `json:"title" db:"title"`
	Body     string    `json:"body" db:"body"`
	From     string    `json:"from" db:"posted_by"`
	PostedAt time.Time `json:"postedAt" db:"posted_at"`
}

type Attendance struct {
	ID     string           `json:"id" db:"id"`
	Date   time.Time        `json:"date" db:"date"`
	Status AttendanceStatus `json:"status" db:"status"`
}

type BusStop struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	// EtaOffsetMin is minutes after the route's departure at which the bus
	// reaches this stop.
	EtaOffsetMin int `json:"etaOffsetMin" db:"eta_offset_min"`
}

type Route struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Stops         []BusStop `json:"stops"`
	StudentStopID string    `json:"studentStopId"`
}

// Projection rows returned by the query layer.

type BookRow struct {
	Book           Book    `json:"book"`
	IsBorrowed     bool    `json:"isBorrowed"`
	ReservedLoanID *string `json:"reservedLoanId,omitempty"`
}

type LoanRow struct {
	Loan     Loan `json:"loan"`
	Book     Book `json:"book"`
	DaysLeft int  `json:"daysLeft"`
	Fine     int  `json:"fine"`
}

type EventRow struct {
	Event     Event   `json:"event"`
	SeatsLeft int     `json:"seatsLeft"`
	MyPassID  *string `json:"myPassId,omitempty"`
}

type PassRow struct {
	Pass  EventPass `json:"pass"`
	Event Event     `json:"event"`
}

type AttendanceSummary struct {
	Present int     `json:"present"`
	Absent  int     `json:"absent"`
	Late    int     `json:"late"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

type StopETA struct {
	Stop BusStop   `json:"stop"`
	ETA  time.Time `json:"eta"`
}

type RouteView struct {
	Route   Route     `json:"route"`
	MyStop  *StopETA  `json:"myStop,omitempty"`
	Arrival []StopETA `json:"arrival"`
}
