package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/anever/school-portal/pkg/clock"
	"github.com/anever/school-portal/portal/internal/errs"
	"github.com/anever/school-portal/portal/internal/model"
	"github.com/anever/school-portal/portal/internal/repository"
	"github.com/anever/school-portal/portal/internal/service"
)

const holder = "me"

var today = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return today.AddDate(0, 0, n) }

func newTestService(seed repository.Seed) (*service.Service, repository.Repository) {
	repo := repository.NewMemory(seed)
	n := 0
	svc := service.NewService(repo, clock.Fixed{T: today}, zap.NewNop(),
		service.WithIDSource(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	return svc, repo
}

func circulationSeed() repository.Seed {
	return repository.Seed{
		Books: []model.Book{
			{ID: "b1", Title: "Introduction to Algorithms", Author: "Cormen", ISBN: "978-0262033848", Copies: 5, Available: 2},
			{ID: "b2", Title: "Clean Code", Author: "Martin", ISBN: "978-0132350884", Copies: 1, Available: 0},
			{ID: "b3", Title: "The Pragmatic Programmer", Author: "Hunt", ISBN: "978-0201616224", Copies: 2, Available: 1},
		},
		Loans: []model.Loan{
			{ID: "l-current", BookID: "b3", HolderID: holder, Status: model.LoanCurrent, IssueDate: day(-9), DueDate: day(5), Renewals: 0},
		},
	}
}

func TestReserveBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("reserve takes a copy and holds it three days", func(t *testing.T) {
		svc, repo := newTestService(circulationSeed())

		loan, msg, err := svc.ReserveBook(ctx, holder, "b1")
		require.NoError(t, err)
		require.Equal(t, model.LoanReserved, loan.Status)
		require.Equal(t, holder, loan.HolderID)
		require.True(t, loan.DueDate.Equal(day(3)))
		require.Equal(t, 0, loan.Renewals)
		require.Contains(t, msg, "Introduction to Algorithms")
		require.Contains(t, msg, day(3).Format(time.DateOnly))

		book, err := repo.GetBook(ctx, "b1")
		require.NoError(t, err)
		require.Equal(t, 1, book.Available)
	})

	t.Run("unknown book", func(t *testing.T) {
		svc, _ := newTestService(circulationSeed())
		_, _, err := svc.ReserveBook(ctx, holder, "nope")
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("no copies available leaves state unchanged", func(t *testing.T) {
		svc, repo := newTestService(circulationSeed())
		_, _, err := svc.ReserveBook(ctx, holder, "b2")
		require.ErrorIs(t, err, errs.ErrNoCopiesAvailable)

		book, err := repo.GetBook(ctx, "b2")
		require.NoError(t, err)
		require.Equal(t, 0, book.Available)
		loans, err := repo.ListLoans(ctx, holder)
		require.NoError(t, err)
		require.Len(t, loans, 1) // just the seeded one
	})

	t.Run("already borrowed", func(t *testing.T) {
		svc, _ := newTestService(circulationSeed())
		_, _, err := svc.ReserveBook(ctx, holder, "b3")
		require.ErrorIs(t, err, errs.ErrAlreadyBorrowed)
	})

	t.Run("already reserved", func(t *testing.T) {
		svc, repo := newTestService(circulationSeed())
		_, _, err := svc.ReserveBook(ctx, holder, "b1")
		require.NoError(t, err)
		_, _, err = svc.ReserveBook(ctx, holder, "b1")
		require.ErrorIs(t, err, errs.ErrAlreadyReserved)

		book, err := repo.GetBook(ctx, "b1")
		require.NoError(t, err)
		require.Equal(t, 1, book.Available) // only the first reserve counted
	})

	t.Run("second holder takes the next copy", func(t *testing.T) {
		svc, repo := newTestService(circulationSeed())
		_, _, err := svc.ReserveBook(ctx, holder, "b1")
		require.NoError(t, err)
		_, _, err = svc.ReserveBook(ctx, "other", "b1")
		require.NoError(t, err)

		book, err := repo.GetBook(ctx, "b1")
		require.NoError(t, err)
		require.Equal(t, 0, book.Available)

		// pool exhausted now
		_, _, err = svc.ReserveBook(ctx, "third", "b1")
		require.ErrorIs(t, err, errs.ErrNoCopiesAvailable)
	})
}

func TestCancelReservation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("cancel restores the copy and removes the loan", func(t *testing.T) {
		svc, repo := newTestService(circulationSeed())
		loan, _, err := svc.ReserveBook(ctx, holder, "b1")
		require.NoError(t, err)

		msg, err := svc.CancelReservation(ctx, holder, loan.ID)
		require.NoError(t, err)
		require.Equal(t, "Reservation cancelled", msg)

		book, err := repo.GetBook(ctx, "b1")
		require.NoError(t, err)
		require.Equal(t, 2, book.Available)

		rows, err := svc.MyLoans(ctx, holder)
		require.NoError(t, err)
		for _, row := range rows {
			require.NotEqual(t, loan.ID, row.Loan.ID)
		}
	})

	t.Run("unknown loan", func(t *testing.T) {
		svc, _ := newTestService(circulationSeed())
		_, err := svc.CancelReservation(ctx, holder, "nope")
		require.ErrorIs(t, err, errs.ErrNotFound)
	})

	t.Run("current loan cannot be cancelled", func(t *testing.T) {
		svc, _ := newTestService(circulationSeed())
		_, err := svc.CancelReservation(ctx, holder, "l-current")
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("someone else's loan reads as not found", func(t *testing.T) {
		svc, _ := newTestService(circulationSeed())
		loan, _, err := svc.ReserveBook(ctx, holder, "b1")
		require.NoError(t, err)
		_, err = svc.CancelReservation(ctx, "other", loan.ID)
		require.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestRenewLoan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("one renewal extends the due date by seven days", func(t *testing.T) {
		svc, _ := newTestService(circulationSeed())
		loan, msg, err := svc.RenewLoan(ctx, holder, "l-current")
		require.NoError(t, err)
		require.True(t, loan.DueDate.Equal(day(5+7)))
		require.Equal(t, 1, loan.Renewals)
		require.Equal(t, model.LoanCurrent, loan.Status)
		require.Contains(t, msg, day(12).Format(time.DateOnly))
	})

	t.Run("second renewal hits the limit", func(t *testing.T) {
		svc, _ := newTestService(circulationSeed())
		_, _, err := svc.RenewLoan(ctx, holder, "l-current")
		require.NoError(t, err)
		_, _, err = svc.RenewLoan(ctx, holder, "l-current")
		require.ErrorIs(t, err, errs.ErrRenewalExceeded)
	})

	t.Run("overdue loan cannot be renewed", func(t *testing.T) {
		seed := circulationSeed()
		seed.Loans = append(seed.Loans, model.Loan{
			ID: "l-late", BookID: "b1", HolderID: holder,
			Status: model.LoanCurrent, IssueDate: day(-20), DueDate: day(-2), Renewals: 0,
		})
		svc, _ := newTestService(seed)
		_, _, err := svc.RenewLoan(ctx, holder, "l-late")
		require.ErrorIs(t, err, errs.ErrLoanOverdue)
	})

	t.Run("renewal limit wins over overdue", func(t *testing.T) {
		seed := circulationSeed()
		seed.Loans = append(seed.Loans, model.Loan{
			ID: "l1", BookID: "b1", HolderID: holder,
			Status: model.LoanCurrent, IssueDate: day(-30), DueDate: day(-11), Renewals: 1,
		})
		svc, _ := newTestService(seed)
		_, _, err := svc.RenewLoan(ctx, holder, "l1")
		require.ErrorIs(t, err, errs.ErrRenewalExceeded)
	})

	t.Run("reserved hold cannot be renewed", func(t *testing.T) {
		svc, _ := newTestService(circulationSeed())
		loan, _, err := svc.ReserveBook(ctx, holder, "b1")
		require.NoError(t, err)
		_, _, err = svc.RenewLoan(ctx, holder, loan.ID)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestFulfillAndReturn(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("fulfill turns the hold into a checkout without touching availability", func(t *testing.T) {
		svc, repo := newTestService(circulationSeed())
		loan, _, err := svc.ReserveBook(ctx, holder, "b1")
		require.NoError(t, err)

		fulfilled, msg, err := svc.FulfillReservation(ctx, loan.ID)
		require.NoError(t, err)
		require.Equal(t, model.LoanCurrent, fulfilled.Status)
		require.True(t, fulfilled.DueDate.Equal(day(14)))
		require.Contains(t, msg, day(14).Format(time.DateOnly))

		book, err := repo.GetBook(ctx, "b1")
		require.NoError(t, err)
		require.Equal(t, 1, book.Available)
	})

	t.Run("fulfill rejects non-reserved loans", func(t *testing.T) {
		svc, _ := newTestService(circulationSeed())
		_, _, err := svc.FulfillReservation(ctx, "l-current")
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("return closes the loan and frees the copy", func(t *testing.T) {
		svc, repo := newTestService(circulationSeed())
		loan, msg, err := svc.ReturnLoan(ctx, "l-current")
		require.NoError(t, err)
		require.Equal(t, model.LoanReturned, loan.Status)
		require.Equal(t, "Returned on time", msg)

		book, err := repo.GetBook(ctx, "b3")
		require.NoError(t, err)
		require.Equal(t, 2, book.Available)
	})

	t.Run("late return reports the fine", func(t *testing.T) {
		seed := circulationSeed()
		seed.Loans = append(seed.Loans, model.Loan{
			ID: "l-late", BookID: "b1", HolderID: holder,
			Status: model.LoanCurrent, IssueDate: day(-20), DueDate: day(-3), Renewals: 1,
		})
		svc, _ := newTestService(seed)
		_, msg, err := svc.ReturnLoan(ctx, "l-late")
		require.NoError(t, err)
		require.Contains(t, msg, "3 day(s) late")
	})

	t.Run("return rejects reserved and returned loans", func(t *testing.T) {
		svc, _ := newTestService(circulationSeed())
		loan, _, err := svc.ReserveBook(ctx, holder, "b1")
		require.NoError(t, err)
		_, _, err = svc.ReturnLoan(ctx, loan.ID)
		require.ErrorIs(t, err, errs.ErrInvalidState)

		_, _, err = svc.ReturnLoan(ctx, "l-current")
		require.NoError(t, err)
		_, _, err = svc.ReturnLoan(ctx, "l-current")
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestFineAndDaysLeft(t *testing.T) {
	t.Parallel()
	svc, _ := newTestService(circulationSeed())

	overdue := model.Loan{DueDate: day(-3)}
	require.Equal(t, 3, svc.Fine(overdue))
	require.Equal(t, -3, svc.DaysLeft(overdue))

	future := model.Loan{DueDate: day(4)}
	require.Equal(t, 0, svc.Fine(future))
	require.Equal(t, 4, svc.DaysLeft(future))

	dueToday := model.Loan{DueDate: today}
	require.Equal(t, 0, svc.Fine(dueToday))
	require.Equal(t, 0, svc.DaysLeft(dueToday))
}

func TestAvailabilityBounds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, repo := newTestService(circulationSeed())

	// run reserve/cancel cycles; available must stay within [0, copies]
	for i := 0; i < 5; i++ {
		holderID := fmt.Sprintf("h%d", i)
		loan, _, err := svc.ReserveBook(ctx, holderID, "b1")
		if err != nil {
			require.ErrorIs(t, err, errs.ErrNoCopiesAvailable)
			continue
		}
		if i%2 == 0 {
			_, err = svc.CancelReservation(ctx, holderID, loan.ID)
			require.NoError(t, err)
		}
		book, err := repo.GetBook(ctx, "b1")
		require.NoError(t, err)
		require.GreaterOrEqual(t, book.Available, 0)
		require.LessOrEqual(t, book.Available, book.Copies)
	}
}
