package handler

import (
	"context"
	"time"

	"github.com/anever/school-portal/portal/internal/model"
	"github.com/anever/school-portal/portal/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type PortalService interface {
	ReserveBook(ctx context.Context, holderID, bookID string) (model.Loan, string, error)
	CancelReservation(ctx context.Context, holderID, loanID string) (string, error)
	RenewLoan(ctx context.Context, holderID, loanID string) (model.Loan, string, error)
	FulfillReservation(ctx context.Context, loanID string) (model.Loan, string, error)
	ReturnLoan(ctx context.Context, loanID string) (model.Loan, string, error)

	RSVP(ctx context.Context, holderID, eventID string) (model.EventPass, string, error)
	CancelPass(ctx context.Context, holderID, passID string) (string, error)

	BrowseBooks(ctx context.Context, holderID, query string) ([]model.BookRow, error)
	MyLoans(ctx context.Context, holderID string) ([]model.LoanRow, error)
	BrowseEvents(ctx context.Context, holderID, category, query string) ([]model.EventRow, error)
	MyPasses(ctx context.Context, holderID string) ([]model.PassRow, error)
	GetBook(ctx context.Context, id string) (model.Book, error)
	GetEvent(ctx context.Context, id string) (model.Event, error)

	SubmitRequest(ctx context.Context, holderID string, in service.SubmitRequestInput) (model.Request, error)
	ListRequests(ctx context.Context, holderID string) ([]model.Request, error)
	LatestNotices(ctx context.Context, limit int) ([]model.Notice, error)
	GetNotice(ctx context.Context, id string) (model.Notice, error)
	Attendance(ctx context.Context, holderID string, from, to time.Time) ([]model.Attendance, model.AttendanceSummary, error)
	Route(ctx context.Context, holderID string) (model.RouteView, error)
	ChangeStop(ctx context.Context, holderID, stopID string) (model.RouteView, error)
}

var _ PortalService = (*service.Service)(nil)
