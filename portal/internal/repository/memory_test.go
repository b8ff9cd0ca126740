package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/anever/school-portal/portal/internal/errs"
	"github.com/anever/school-portal/portal/internal/model"
	"github.com/anever/school-portal/portal/internal/repository"
)

var day0 = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func seed() repository.Seed {
	return repository.Seed{
		Books: []model.Book{
			{ID: "b1", Title: "Clean Code", Author: "Martin", Copies: 3, Available: 2},
		},
		Loans: []model.Loan{
			{ID: "l1", BookID: "b1", HolderID: "me", Status: model.LoanCurrent, IssueDate: day0.AddDate(0, 0, -9), DueDate: day0.AddDate(0, 0, 5)},
		},
	}
}

func TestMemory_AdjustAvailableBounds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewMemory(seed())

	require.NoError(t, repo.AdjustAvailable(ctx, "b1", -1))
	require.NoError(t, repo.AdjustAvailable(ctx, "b1", -1))
	err := repo.AdjustAvailable(ctx, "b1", -1)
	require.ErrorIs(t, err, errs.ErrNoCopiesAvailable)

	require.NoError(t, repo.AdjustAvailable(ctx, "b1", +2))
	require.NoError(t, repo.AdjustAvailable(ctx, "b1", +1))
	err = repo.AdjustAvailable(ctx, "b1", +1)
	require.ErrorIs(t, err, errs.ErrInvalidState)

	book, err := repo.GetBook(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, 3, book.Available)

	require.ErrorIs(t, repo.AdjustAvailable(ctx, "missing", -1), errs.ErrNotFound)
}

func TestMemory_AtomicRollsBackOnError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewMemory(seed())

	boom := errors.New("boom")
	err := repo.Atomic(ctx, func(r repository.Repository) error {
		if err := r.AdjustAvailable(ctx, "b1", -1); err != nil {
			return err
		}
		if err := r.CreateLoan(ctx, model.Loan{ID: "l2", BookID: "b1", HolderID: "me", Status: model.LoanReserved}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	book, err := repo.GetBook(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, 2, book.Available)

	_, err = repo.GetLoan(ctx, "l2")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMemory_AtomicCommits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewMemory(seed())

	err := repo.Atomic(ctx, func(r repository.Repository) error {
		if err := r.AdjustAvailable(ctx, "b1", -1); err != nil {
			return err
		}
		return r.CreateLoan(ctx, model.Loan{ID: "l2", BookID: "b1", HolderID: "me", Status: model.LoanReserved, DueDate: day0.AddDate(0, 0, 3)})
	})
	require.NoError(t, err)

	book, err := repo.GetBook(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, 1, book.Available)

	loan, err := repo.GetLoan(ctx, "l2")
	require.NoError(t, err)
	require.Equal(t, model.LoanReserved, loan.Status)
}

func TestMemory_LoanFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewMemory(seed())

	_, err := repo.FindLoanByBook(ctx, "me", "b1", model.LoanCurrent)
	require.NoError(t, err)

	_, err = repo.FindLoanByBook(ctx, "me", "b1", model.LoanReserved)
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = repo.FindLoanByBook(ctx, "other", "b1", model.LoanCurrent)
	require.ErrorIs(t, err, errs.ErrNotFound)

	loans, err := repo.ListLoans(ctx, "me")
	require.NoError(t, err)
	require.Len(t, loans, 1)
}

func TestMemory_DefaultSeedInvariants(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := repository.NewMemory(repository.DefaultSeed("me", day0))

	books, err := repo.ListBooks(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, books)
	for _, b := range books {
		require.GreaterOrEqual(t, b.Available, 0, b.ID)
		require.LessOrEqual(t, b.Available, b.Copies, b.ID)
	}

	// seeded current loans must be consistent with the availability gap
	loans, err := repo.ListLoans(ctx, "me", model.LoanCurrent)
	require.NoError(t, err)
	for _, l := range loans {
		b, err := repo.GetBook(ctx, l.BookID)
		require.NoError(t, err)
		require.Less(t, b.Available, b.Copies, "loaned book %s must have a copy out", b.ID)
	}
}
