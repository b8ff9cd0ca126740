package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anever/school-portal/portal/internal/model"
	"github.com/anever/school-portal/portal/internal/repository"
)

func querySeed() repository.Seed {
	return repository.Seed{
		Books: []model.Book{
			{ID: "b1", Title: "Introduction to Algorithms", Author: "Cormen", Copies: 5, Available: 2},
			{ID: "b2", Title: "Clean Code", Author: "Robert C. Martin", Copies: 3, Available: 2},
			{ID: "b3", Title: "The Pragmatic Programmer", Author: "Hunt", Copies: 2, Available: 1},
		},
		Events: []model.Event{
			{ID: "ev1", Title: "Tech Fest", Category: "Cultural", Date: day(12), Start: "10:00", Description: "Annual technology festival.", Capacity: 2},
			{ID: "ev2", Title: "Football Final", Category: "Sports", Date: day(5), Start: "15:00", Description: "Tournament final.", Capacity: 50},
		},
		Loans: []model.Loan{
			{ID: "l1", BookID: "b2", HolderID: holder, Status: model.LoanCurrent, IssueDate: day(-9), DueDate: day(5)},
			{ID: "l2", BookID: "b3", HolderID: holder, Status: model.LoanCurrent, IssueDate: day(-25), DueDate: day(-11), Renewals: 1},
			{ID: "l3", BookID: "b1", HolderID: "other", Status: model.LoanCurrent, IssueDate: day(-1), DueDate: day(13)},
			{ID: "l4", BookID: "b1", HolderID: holder, Status: model.LoanReturned, IssueDate: day(-60), DueDate: day(-46)},
		},
		Passes: []model.EventPass{
			{ID: "p1", EventID: "ev2", HolderID: holder, Code: "PASS-EV2-7Q4K", Status: model.PassActive, IssuedAt: day(-2)},
			{ID: "p2", EventID: "ev1", HolderID: holder, Code: "PASS-EV1-XY12", Status: model.PassCancelled, IssuedAt: day(-3)},
		},
	}
}

func TestBrowseBooks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("blank query lists everything with holder flags", func(t *testing.T) {
		svc, _ := newTestService(querySeed())
		rows, err := svc.BrowseBooks(ctx, holder, "")
		require.NoError(t, err)
		require.Len(t, rows, 3)

		byID := map[string]model.BookRow{}
		for _, r := range rows {
			byID[r.Book.ID] = r
		}
		require.True(t, byID["b2"].IsBorrowed)
		require.Nil(t, byID["b2"].ReservedLoanID)
		// returned loan does not flag the book
		require.False(t, byID["b1"].IsBorrowed)
	})

	t.Run("substring match on title or author, case-insensitive", func(t *testing.T) {
		svc, _ := newTestService(querySeed())
		rows, err := svc.BrowseBooks(ctx, holder, "mArTiN")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, "b2", rows[0].Book.ID)

		rows, err = svc.BrowseBooks(ctx, holder, "pragmatic")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, "b3", rows[0].Book.ID)

		rows, err = svc.BrowseBooks(ctx, holder, "zzz")
		require.NoError(t, err)
		require.Empty(t, rows)
	})

	t.Run("reservation surfaces its loan id", func(t *testing.T) {
		svc, _ := newTestService(querySeed())
		loan, _, err := svc.ReserveBook(ctx, holder, "b1")
		require.NoError(t, err)

		rows, err := svc.BrowseBooks(ctx, holder, "Algorithms")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.NotNil(t, rows[0].ReservedLoanID)
		require.Equal(t, loan.ID, *rows[0].ReservedLoanID)
	})
}

func TestMyLoans(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(querySeed())

	rows, err := svc.MyLoans(ctx, holder)
	require.NoError(t, err)
	require.Len(t, rows, 2) // returned loan excluded

	// due date ascending: the overdue one first
	require.Equal(t, "l2", rows[0].Loan.ID)
	require.Equal(t, "l1", rows[1].Loan.ID)

	require.Equal(t, -11, rows[0].DaysLeft)
	require.Equal(t, 11, rows[0].Fine)
	require.Equal(t, 5, rows[1].DaysLeft)
	require.Equal(t, 0, rows[1].Fine)

	require.Equal(t, "The Pragmatic Programmer", rows[0].Book.Title)
}

func TestBrowseEvents(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("date order with fresh seat counts and pass ids", func(t *testing.T) {
		svc, _ := newTestService(querySeed())
		rows, err := svc.BrowseEvents(ctx, holder, "", "")
		require.NoError(t, err)
		require.Len(t, rows, 2)
		require.Equal(t, "ev2", rows[0].Event.ID)
		require.Equal(t, "ev1", rows[1].Event.ID)

		require.Equal(t, 49, rows[0].SeatsLeft)
		require.NotNil(t, rows[0].MyPassID)
		require.Equal(t, "p1", *rows[0].MyPassID)

		// cancelled pass neither counts nor surfaces
		require.Equal(t, 2, rows[1].SeatsLeft)
		require.Nil(t, rows[1].MyPassID)
	})

	t.Run("category is exact, query is substring", func(t *testing.T) {
		svc, _ := newTestService(querySeed())
		rows, err := svc.BrowseEvents(ctx, holder, "sports", "")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, "ev2", rows[0].Event.ID)

		rows, err = svc.BrowseEvents(ctx, holder, "", "technology")
		require.NoError(t, err)
		require.Len(t, rows, 1)
		require.Equal(t, "ev1", rows[0].Event.ID)

		rows, err = svc.BrowseEvents(ctx, holder, "Sport", "")
		require.NoError(t, err)
		require.Empty(t, rows)
	})
}

func TestMyPasses(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, _ := newTestService(querySeed())

	rows, err := svc.MyPasses(ctx, holder)
	require.NoError(t, err)
	require.Len(t, rows, 1) // cancelled pass excluded
	require.Equal(t, "p1", rows[0].Pass.ID)
	require.Equal(t, "Football Final", rows[0].Event.Title)

	// a new pass for the earlier event sorts first
	_, _, err = svc.RSVP(ctx, holder, "ev1")
	require.NoError(t, err)
	rows, err = svc.MyPasses(ctx, holder)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "ev2", rows[0].Event.ID)
	require.Equal(t, "ev1", rows[1].Event.ID)
}
