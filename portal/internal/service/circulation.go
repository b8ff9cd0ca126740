package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/anever/school-portal/pkg/clock"
	"github.com/anever/school-portal/portal/internal/errs"
	"github.com/anever/school-portal/portal/internal/model"
	"github.com/anever/school-portal/portal/internal/repository"
)

// ReserveBook places a hold: one available copy leaves the pool and a
// RESERVED loan records it until the hold is fulfilled or cancelled.
func (s *Service) ReserveBook(ctx context.Context, holderID, bookID string) (model.Loan, string, error) {
	var (
		loan model.Loan
		book model.Book
	)
	today := s.clock.Today()
	err := s.repo.Atomic(ctx, func(r repository.Repository) error {
		var err error
		book, err = r.GetBook(ctx, bookID)
		if err != nil {
			return err
		}
		if book.Available <= 0 {
			return errs.ErrNoCopiesAvailable
		}
		if _, err = r.FindLoanByBook(ctx, holderID, bookID, model.LoanCurrent); err == nil {
			return errs.ErrAlreadyBorrowed
		} else if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		if _, err = r.FindLoanByBook(ctx, holderID, bookID, model.LoanReserved); err == nil {
			return errs.ErrAlreadyReserved
		} else if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
		loan = model.Loan{
			ID:        s.newID(),
			BookID:    bookID,
			HolderID:  holderID,
			Status:    model.LoanReserved,
			IssueDate: today,
			DueDate:   s.clock.AddDays(today, s.policy.HoldDays),
			Renewals:  0,
		}
		if err = r.AdjustAvailable(ctx, bookID, -1); err != nil {
			return err
		}
		return r.CreateLoan(ctx, loan)
	})
	if err != nil {
		return model.Loan{}, "", err
	}
	s.audit.Emit(ctx, AuditEvent{Kind: "circulation.book_reserved", HolderID: holderID, EntityID: loan.ID, At: s.clock.Now()})
	s.log.Debug("book reserved",
		zap.String("holder", holderID),
		zap.String("book", bookID),
		zap.String("loan", loan.ID))
	msg := fmt.Sprintf("Reserved %q until %s", book.Title, loan.DueDate.Format(time.DateOnly))
	return loan, msg, nil
}

// CancelReservation releases a hold: the loan record is removed and the copy
// returns to the available pool.
func (s *Service) CancelReservation(ctx context.Context, holderID, loanID string) (string, error) {
	err := s.repo.Atomic(ctx, func(r repository.Repository) error {
		loan, err := r.GetLoan(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.HolderID != holderID {
			return errors.Wrap(errs.ErrNotFound, "loan "+loanID)
		}
		if loan.Status != model.LoanReserved {
			return errors.Wrap(errs.ErrInvalidState, "only reservations can be cancelled")
		}
		if err = r.DeleteLoan(ctx, loanID); err != nil {
			return err
		}
		return r.AdjustAvailable(ctx, loan.BookID, +1)
	})
	if err != nil {
		return "", err
	}
	s.audit.Emit(ctx, AuditEvent{Kind: "circulation.reservation_cancelled", HolderID: holderID, EntityID: loanID, At: s.clock.Now()})
	return "Reservation cancelled", nil
}

// RenewLoan extends a current loan's due date once. The renewal limit is
// checked before the overdue rule, so an exhausted loan reports the limit no
// matter how late it is.
func (s *Service) RenewLoan(ctx context.Context, holderID, loanID string) (model.Loan, string, error) {
	var loan model.Loan
	today := s.clock.Today()
	err := s.repo.Atomic(ctx, func(r repository.Repository) error {
		var err error
		loan, err = r.GetLoan(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.HolderID != holderID {
			return errors.Wrap(errs.ErrNotFound, "loan "+loanID)
		}
		if loan.Status != model.LoanCurrent {
			return errors.Wrap(errs.ErrInvalidState, "only current loans can be renewed")
		}
		if loan.Renewals >= s.policy.MaxRenewals {
			return errs.ErrRenewalExceeded
		}
		if today.After(loan.DueDate) {
			return errs.ErrLoanOverdue
		}
		loan.DueDate = s.clock.AddDays(loan.DueDate, s.policy.RenewalDays)
		loan.Renewals++
		return r.UpdateLoan(ctx, loan)
	})
	if err != nil {
		return model.Loan{}, "", err
	}
	s.audit.Emit(ctx, AuditEvent{Kind: "circulation.loan_renewed", HolderID: holderID, EntityID: loanID, At: s.clock.Now()})
	return loan, fmt.Sprintf("Renewed until %s", loan.DueDate.Format(time.DateOnly)), nil
}

// FulfillReservation is the staff-side checkout: the held copy changes hands
// and the hold becomes a current loan. Availability is untouched, the hold
// already removed the copy from the pool.
func (s *Service) FulfillReservation(ctx context.Context, loanID string) (model.Loan, string, error) {
	var loan model.Loan
	today := s.clock.Today()
	err := s.repo.Atomic(ctx, func(r repository.Repository) error {
		var err error
		loan, err = r.GetLoan(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.Status != model.LoanReserved {
			return errors.Wrap(errs.ErrInvalidState, "only reservations can be fulfilled")
		}
		loan.Status = model.LoanCurrent
		loan.IssueDate = today
		loan.DueDate = s.clock.AddDays(today, s.policy.CheckoutDays)
		return r.UpdateLoan(ctx, loan)
	})
	if err != nil {
		return model.Loan{}, "", err
	}
	s.audit.Emit(ctx, AuditEvent{Kind: "circulation.loan_fulfilled", HolderID: loan.HolderID, EntityID: loanID, At: s.clock.Now()})
	return loan, fmt.Sprintf("Checked out until %s", loan.DueDate.Format(time.DateOnly)), nil
}

// ReturnLoan closes a current loan and puts the copy back into the pool. The
// confirmation carries the fine owed, if any; fines are derived, never stored.
func (s *Service) ReturnLoan(ctx context.Context, loanID string) (model.Loan, string, error) {
	var loan model.Loan
	err := s.repo.Atomic(ctx, func(r repository.Repository) error {
		var err error
		loan, err = r.GetLoan(ctx, loanID)
		if err != nil {
			return err
		}
		if loan.Status != model.LoanCurrent {
			return errors.Wrap(errs.ErrInvalidState, "only current loans can be returned")
		}
		loan.Status = model.LoanReturned
		if err = r.UpdateLoan(ctx, loan); err != nil {
			return err
		}
		return r.AdjustAvailable(ctx, loan.BookID, +1)
	})
	if err != nil {
		return model.Loan{}, "", err
	}
	s.audit.Emit(ctx, AuditEvent{Kind: "circulation.loan_returned", HolderID: loan.HolderID, EntityID: loanID, At: s.clock.Now()})
	msg := "Returned on time"
	if fine := s.Fine(loan); fine > 0 {
		msg = fmt.Sprintf("Returned %d day(s) late, fine %d", s.daysLate(loan), fine)
	}
	return loan, msg, nil
}

func (s *Service) daysLate(loan model.Loan) int {
	late := clock.DaysBetween(loan.DueDate, s.clock.Today())
	if late < 0 {
		return 0
	}
	return late
}

// Fine is max(0, daysLate) * ratePerDay, recomputed from the clock on every
// call.
func (s *Service) Fine(loan model.Loan) int {
	return s.daysLate(loan) * s.policy.FineRatePerDay
}

// DaysLeft is negative when the loan is overdue.
func (s *Service) DaysLeft(loan model.Loan) int {
	return clock.DaysBetween(s.clock.Today(), loan.DueDate)
}
