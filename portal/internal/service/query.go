package service

import (
	"context"
	"sort"

	"github.com/anever/school-portal/portal/internal/model"
)

// BrowseBooks lists the catalog with the holder's circulation flags. A blank
// query lists everything; otherwise title/author substring match,
// case-insensitive.
func (s *Service) BrowseBooks(ctx context.Context, holderID, query string) ([]model.BookRow, error) {
	books, err := s.repo.SearchBooks(ctx, query)
	if err != nil {
		return nil, err
	}
	loans, err := s.repo.ListLoans(ctx, holderID, model.LoanCurrent, model.LoanReserved)
	if err != nil {
		return nil, err
	}
	current := map[string]bool{}
	reserved := map[string]string{}
	for _, l := range loans {
		switch l.Status {
		case model.LoanCurrent:
			current[l.BookID] = true
		case model.LoanReserved:
			reserved[l.BookID] = l.ID
		}
	}
	rows := make([]model.BookRow, 0, len(books))
	for _, b := range books {
		row := model.BookRow{Book: b, IsBorrowed: current[b.ID]}
		if id, ok := reserved[b.ID]; ok {
			loanID := id
			row.ReservedLoanID = &loanID
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MyLoans lists the holder's open loans (current and reserved) with derived
// days-left and fine, due date ascending.
func (s *Service) MyLoans(ctx context.Context, holderID string) ([]model.LoanRow, error) {
	loans, err := s.repo.ListLoans(ctx, holderID, model.LoanCurrent, model.LoanReserved)
	if err != nil {
		return nil, err
	}
	rows := make([]model.LoanRow, 0, len(loans))
	for _, l := range loans {
		book, err := s.repo.GetBook(ctx, l.BookID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, model.LoanRow{
			Loan:     l,
			Book:     book,
			DaysLeft: s.DaysLeft(l),
			Fine:     s.Fine(l),
		})
	}
	return rows, nil
}

// BrowseEvents lists events with fresh seat counts and the holder's active
// pass id, filtered by exact category (case-insensitive) and title or
// description substring.
func (s *Service) BrowseEvents(ctx context.Context, holderID, category, query string) ([]model.EventRow, error) {
	events, err := s.repo.ListEvents(ctx, category, query)
	if err != nil {
		return nil, err
	}
	rows := make([]model.EventRow, 0, len(events))
	for _, e := range events {
		left, err := s.SeatsLeft(ctx, e.ID)
		if err != nil {
			return nil, err
		}
		row := model.EventRow{Event: e, SeatsLeft: left}
		if pass, err := s.repo.FindActivePass(ctx, holderID, e.ID); err == nil {
			passID := pass.ID
			row.MyPassID = &passID
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MyPasses lists the holder's active passes joined with their events, sorted
// by event date then start time.
func (s *Service) MyPasses(ctx context.Context, holderID string) ([]model.PassRow, error) {
	passes, err := s.repo.ListActivePasses(ctx, holderID)
	if err != nil {
		return nil, err
	}
	rows := make([]model.PassRow, 0, len(passes))
	for _, p := range passes {
		event, err := s.repo.GetEvent(ctx, p.EventID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, model.PassRow{Pass: p, Event: event})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Event.Date.Equal(rows[j].Event.Date) {
			return rows[i].Event.Start < rows[j].Event.Start
		}
		return rows[i].Event.Date.Before(rows[j].Event.Date)
	})
	return rows, nil
}

func (s *Service) GetBook(ctx context.Context, id string) (model.Book, error) {
	return s.repo.GetBook(ctx, id)
}

func (s *Service) GetEvent(ctx context.Context, id string) (model.Event, error) {
	return s.repo.GetEvent(ctx, id)
}
