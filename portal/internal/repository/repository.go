package repository

import (
	"context"
	"time"

	"github.com/anever/school-portal/portal/internal/model"
)

// Repository owns the catalog (books, events, campus reference data) and the
// ledger (loans, passes, requests). Mutating engine operations run inside
// Atomic so that read-check-write never interleaves with another writer.
type Repository interface {
	// Atomic runs fn against a view of the store that is exclusive for the
	// duration of the call: the store's write lock for the in-memory
	// implementation, a database transaction for postgres. Returning an
	// error rolls back everything fn did.
	Atomic(ctx context.Context, fn func(r Repository) error) error

	GetBook(ctx context.Context, id string) (model.Book, error)
	ListBooks(ctx context.Context) ([]model.Book, error)
	SearchBooks(ctx context.Context, query string) ([]model.Book, error)
	// AdjustAvailable moves a book's available counter by delta, failing
	// with ErrNoCopiesAvailable below zero and ErrInvalidState above copies.
	AdjustAvailable(ctx context.Context, bookID string, delta int) error

	GetLoan(ctx context.Context, id string) (model.Loan, error)
	ListLoans(ctx context.Context, holderID string, statuses ...model.LoanStatus) ([]model.Loan, error)
	FindLoanByBook(ctx context.Context, holderID, bookID string, statuses ...model.LoanStatus) (model.Loan, error)
	CreateLoan(ctx context.Context, loan model.Loan) error
	UpdateLoan(ctx context.Context, loan model.Loan) error
	DeleteLoan(ctx context.Context, id string) error

	GetEvent(ctx context.Context, id string) (model.Event, error)
	ListEvents(ctx context.Context, category, query string) ([]model.Event, error)
	CountActivePasses(ctx context.Context, eventID string) (int, error)
	GetPass(ctx context.Context, id string) (model.EventPass, error)
	FindActivePass(ctx context.Context, holderID, eventID string) (model.EventPass, error)
	ListActivePasses(ctx context.Context, holderID string) ([]model.EventPass, error)
	CreatePass(ctx context.Context, pass model.EventPass) error
	UpdatePass(ctx context.Context, pass model.EventPass) error

	CreateRequest(ctx context.Context, req model.Request) error
	ListRequests(ctx context.Context, holderID string) ([]model.Request, error)

	ListNotices(ctx context.Context, limit int) ([]model.Notice, error)
	GetNotice(ctx context.Context, id string) (model.Notice, error)

	ListAttendanceBetween(ctx context.Context, holderID string, from, to time.Time) ([]model.Attendance, error)

	GetRoute(ctx context.Context, holderID string) (model.Route, error)
	UpdateStudentStop(ctx context.Context, holderID, stopID string) (model.Route, error)
}
