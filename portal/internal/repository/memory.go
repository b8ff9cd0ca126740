package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/anever/school-portal/portal/internal/errs"
	"github.com/anever/school-portal/portal/internal/model"
)

// memory is the reference store: plain maps behind one RWMutex. Atomic takes
// the write lock, snapshots the state and restores it when fn fails, so a
// failed operation never leaves a partial effect behind.
type memory struct {
	mu sync.RWMutex
	s  *state
}

type state struct {
	books      map[string]model.Book
	events     map[string]model.Event
	loans      map[string]model.Loan
	passes     map[string]model.EventPass
	requests   []model.Request
	notices    []model.Notice
	attendance map[string][]model.Attendance
	routes     map[string]model.Route
}

func NewMemory(seed Seed) *memory {
	s := &state{
		books:      map[string]model.Book{},
		events:     map[string]model.Event{},
		loans:      map[string]model.Loan{},
		passes:     map[string]model.EventPass{},
		attendance: map[string][]model.Attendance{},
		routes:     map[string]model.Route{},
	}
	for _, b := range seed.Books {
		s.books[b.ID] = b
	}
	for _, e := range seed.Events {
		s.events[e.ID] = e
	}
	for _, l := range seed.Loans {
		s.loans[l.ID] = l
	}
	for _, p := range seed.Passes {
		s.passes[p.ID] = p
	}
	s.notices = append(s.notices, seed.Notices...)
	for holder, recs := range seed.Attendance {
		s.attendance[holder] = append([]model.Attendance{}, recs...)
	}
	for holder, r := range seed.Routes {
		s.routes[holder] = r
	}
	return &memory{s: s}
}

func (m *memory) Atomic(_ context.Context, fn func(r Repository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.s.clone()
	if err := fn(&txView{s: m.s}); err != nil {
		m.s = snapshot
		return err
	}
	return nil
}

func (m *memory) read(fn func(s *state) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(m.s)
}

func (m *memory) write(fn func(s *state) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(m.s)
}

// txView exposes the state without locking; it only exists inside Atomic,
// where the write lock is already held. Nested Atomic reuses the same view.
type txView struct {
	s *state
}

func (t *txView) Atomic(_ context.Context, fn func(r Repository) error) error {
	return fn(t)
}

func (s *state) clone() *state {
	cp := &state{
		books:      make(map[string]model.Book, len(s.books)),
		events:     make(map[string]model.Event, len(s.events)),
		loans:      make(map[string]model.Loan, len(s.loans)),
		passes:     make(map[string]model.EventPass, len(s.passes)),
		requests:   append([]model.Request{}, s.requests...),
		notices:    append([]model.Notice{}, s.notices...),
		attendance: make(map[string][]model.Attendance, len(s.attendance)),
		routes:     make(map[string]model.Route, len(s.routes)),
	}
	for k, v := range s.books {
		cp.books[k] = v
	}
	for k, v := range s.events {
		cp.events[k] = v
	}
	for k, v := range s.loans {
		cp.loans[k] = v
	}
	for k, v := range s.passes {
		cp.passes[k] = v
	}
	for k, v := range s.attendance {
		cp.attendance[k] = append([]model.Attendance{}, v...)
	}
	for k, v := range s.routes {
		v.Stops = append([]model.BusStop{}, v.Stops...)
		cp.routes[k] = v
	}
	return cp
}

/* ---------------- books ---------------- */

func (s *state) getBook(id string) (model.Book, error) {
	b, ok := s.books[id]
	if !ok {
		return model.Book{}, errors.Wrap(errs.ErrNotFound, "book "+id)
	}
	return b, nil
}

func (s *state) listBooks() []model.Book {
	out := make([]model.Book, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (s *state) searchBooks(query string) []model.Book {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.listBooks()
	}
	var out []model.Book
	for _, b := range s.listBooks() {
		if strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q) {
			out = append(out, b)
		}
	}
	return out
}

func (s *state) adjustAvailable(bookID string, delta int) error {
	b, err := s.getBook(bookID)
	if err != nil {
		return err
	}
	next := b.Available + delta
	if next < 0 {
		return errs.ErrNoCopiesAvailable
	}
	if next > b.Copies {
		return errors.Wrap(errs.ErrInvalidState, "available exceeds copies")
	}
	b.Available = next
	s.books[bookID] = b
	return nil
}

/* ---------------- loans ---------------- */

func (s *state) getLoan(id string) (model.Loan, error) {
	l, ok := s.loans[id]
	if !ok {
		return model.Loan{}, errors.Wrap(errs.ErrNotFound, "loan "+id)
	}
	return l, nil
}

func matchStatus(st model.LoanStatus, statuses []model.LoanStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, want := range statuses {
		if st == want {
			return true
		}
	}
	return false
}

func (s *state) listLoans(holderID string, statuses ...model.LoanStatus) []model.Loan {
	var out []model.Loan
	for _, l := range s.loans {
		if l.HolderID == holderID && matchStatus(l.Status, statuses) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

func (s *state) findLoanByBook(holderID, bookID string, statuses ...model.LoanStatus) (model.Loan, error) {
	for _, l := range s.listLoans(holderID, statuses...) {
		if l.BookID == bookID {
			return l, nil
		}
	}
	return model.Loan{}, errs.ErrNotFound
}

/* ---------------- events & passes ---------------- */

func (s *state) getEvent(id string) (model.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return model.Event{}, errors.Wrap(errs.ErrNotFound, "event "+id)
	}
	return e, nil
}

func (s *state) listEvents(category, query string) []model.Event {
	cat := strings.ToLower(strings.TrimSpace(category))
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Event, 0, len(s.events))
	for _, e := range s.events {
		if cat != "" && strings.ToLower(e.Category) != cat {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(e.Title), q) &&
			!strings.Contains(strings.ToLower(e.Description), q) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].Start < out[j].Start
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

func (s *state) countActivePasses(eventID string) int {
	n := 0
	for _, p := range s.passes {
		if p.EventID == eventID && p.Status == model.PassActive {
			n++
		}
	}
	return n
}

func (s *state) getPass(id string) (model.EventPass, error) {
	p, ok := s.passes[id]
	if !ok {
		return model.EventPass{}, errors.Wrap(errs.ErrNotFound, "pass "+id)
	}
	return p, nil
}

func (s *state) findActivePass(holderID, eventID string) (model.EventPass, error) {
	for _, p := range s.passes {
		if p.HolderID == holderID && p.EventID == eventID && p.Status == model.PassActive {
			return p, nil
		}
	}
	return model.EventPass{}, errs.ErrNotFound
}

func (s *state) listActivePasses(holderID string) []model.EventPass {
	var out []model.EventPass
	for _, p := range s.passes {
		if p.HolderID == holderID && p.Status == model.PassActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

/* ---------------- Repository wrappers ---------------- */

func (m *memory) GetBook(_ context.Context, id string) (b model.Book, err error) {
	err = m.read(func(s *state) error { b, err = s.getBook(id); return err })
	return b, err
}

func (t *txView) GetBook(_ context.Context, id string) (model.Book, error) {
	return t.s.getBook(id)
}

func (m *memory) ListBooks(_ context.Context) (out []model.Book, err error) {
	err = m.read(func(s *state) error { out = s.listBooks(); return nil })
	return out, err
}

func (t *txView) ListBooks(_ context.Context) ([]model.Book, error) {
	return t.s.listBooks(), nil
}

func (m *memory) SearchBooks(_ context.Context, query string) (out []model.Book, err error) {
	err = m.read(func(s *state) error { out = s.searchBooks(query); return nil })
	return out, err
}

func (t *txView) SearchBooks(_ context.Context, query string) ([]model.Book, error) {
	return t.s.searchBooks(query), nil
}

func (m *memory) AdjustAvailable(_ context.Context, bookID string, delta int) error {
	return m.write(func(s *state) error { return s.adjustAvailable(bookID, delta) })
}

func (t *txView) AdjustAvailable(_ context.Context, bookID string, delta int) error {
	return t.s.adjustAvailable(bookID, delta)
}

func (m *memory) GetLoan(_ context.Context, id string) (l model.Loan, err error) {
	err = m.read(func(s *state) error { l, err = s.getLoan(id); return err })
	return l, err
}

func (t *txView) GetLoan(_ context.Context, id string) (model.Loan, error) {
	return t.s.getLoan(id)
}

func (m *memory) ListLoans(_ context.Context, holderID string, statuses ...model.LoanStatus) (out []model.Loan, err error) {
	err = m.read(func(s *state) error { out = s.listLoans(holderID, statuses...); return nil })
	return out, err
}

func (t *txView) ListLoans(_ context.Context, holderID string, statuses ...model.LoanStatus) ([]model.Loan, error) {
	return t.s.listLoans(holderID, statuses...), nil
}

func (m *memory) FindLoanByBook(_ context.Context, holderID, bookID string, statuses ...model.LoanStatus) (l model.Loan, err error) {
	err = m.read(func(s *state) error { l, err = s.findLoanByBook(holderID, bookID, statuses...); return err })
	return l, err
}

func (t *txView) FindLoanByBook(_ context.Context, holderID, bookID string, statuses ...model.LoanStatus) (model.Loan, error) {
	return t.s.findLoanByBook(holderID, bookID, statuses...)
}

func (m *memory) CreateLoan(_ context.Context, loan model.Loan) error {
	return m.write(func(s *state) error { s.loans[loan.ID] = loan; return nil })
}

func (t *txView) CreateLoan(_ context.Context, loan model.Loan) error {
	t.s.loans[loan.ID] = loan
	return nil
}

func (m *memory) UpdateLoan(_ context.Context, loan model.Loan) error {
	return m.write(func(s *state) error {
		if _, ok := s.loans[loan.ID]; !ok {
			return errs.ErrNotFound
		}
		s.loans[loan.ID] = loan
		return nil
	})
}

func (t *txView) UpdateLoan(_ context.Context, loan model.Loan) error {
	if _, ok := t.s.loans[loan.ID]; !ok {
		return errs.ErrNotFound
	}
	t.s.loans[loan.ID] = loan
	return nil
}

func (m *memory) DeleteLoan(_ context.Context, id string) error {
	return m.write(func(s *state) error {
		if _, ok := s.loans[id]; !ok {
			return errs.ErrNotFound
		}
		delete(s.loans, id)
		return nil
	})
}

func (t *txView) DeleteLoan(_ context.Context, id string) error {
	if _, ok := t.s.loans[id]; !ok {
		return errs.ErrNotFound
	}
	delete(t.s.loans, id)
	return nil
}

func (m *memory) GetEvent(_ context.Context, id string) (e model.Event, err error) {
	err = m.read(func(s *state) error { e, err = s.getEvent(id); return err })
	return e, err
}

func (t *txView) GetEvent(_ context.Context, id string) (model.Event, error) {
	return t.s.getEvent(id)
}

func (m *memory) ListEvents(_ context.Context, category, query string) (out []model.Event, err error) {
	err = m.read(func(s *state) error { out = s.listEvents(category, query); return nil })
	return out, err
}

func (t *txView) ListEvents(_ context.Context, category, query string) ([]model.Event, error) {
	return t.s.listEvents(category, query), nil
}

func (m *memory) CountActivePasses(_ context.Context, eventID string) (n int, err error) {
	err = m.read(func(s *state) error { n = s.countActivePasses(eventID); return nil })
	return n, err
}

func (t *txView) CountActivePasses(_ context.Context, eventID string) (int, error) {
	return t.s.countActivePasses(eventID), nil
}

func (m *memory) GetPass(_ context.Context, id string) (p model.EventPass, err error) {
	err = m.read(func(s *state) error { p, err = s.getPass(id); return err })
	return p, err
}

func (t *txView) GetPass(_ context.Context, id string) (model.EventPass, error) {
	return t.s.getPass(id)
}

func (m *memory) FindActivePass(_ context.Context, holderID, eventID string) (p model.EventPass, err error) {
	err = m.read(func(s *state) error { p, err = s.findActivePass(holderID, eventID); return err })
	return p, err
}

func (t *txView) FindActivePass(_ context.Context, holderID, eventID string) (model.EventPass, error) {
	return t.s.findActivePass(holderID, eventID)
}

func (m *memory) ListActivePasses(_ context.Context, holderID string) (out []model.EventPass, err error) {
	err = m.read(func(s *state) error { out = s.listActivePasses(holderID); return nil })
	return out, err
}

func (t *txView) ListActivePasses(_ context.Context, holderID string) ([]model.EventPass, error) {
	return t.s.listActivePasses(holderID), nil
}

func (m *memory) CreatePass(_ context.Context, pass model.EventPass) error {
	return m.write(func(s *state) error { s.passes[pass.ID] = pass; return nil })
}

func (t *txView) CreatePass(_ context.Context, pass model.EventPass) error {
	t.s.passes[pass.ID] = pass
	return nil
}

func (m *memory) UpdatePass(_ context.Context, pass model.EventPass) error {
	return m.write(func(s *state) error {
		if _, ok := s.passes[pass.ID]; !ok {
			return errs.ErrNotFound
		}
		s.passes[pass.ID] = pass
		return nil
	})
}

func (t *txView) UpdatePass(_ context.Context, pass model.EventPass) error {
	if _, ok := t.s.passes[pass.ID]; !ok {
		return errs.ErrNotFound
	}
	t.s.passes[pass.ID] = pass
	return nil
}

func (m *memory) CreateRequest(_ context.Context, req model.Request) error {
	return m.write(func(s *state) error { s.requests = append(s.requests, req); return nil })
}

func (t *txView) CreateRequest(_ context.Context, req model.Request) error {
	t.s.requests = append(t.s.requests, req)
	return nil
}

func (s *state) listRequests(holderID string) []model.Request {
	var out []model.Request
	for _, r := range s.requests {
		if r.HolderID == holderID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memory) ListRequests(_ context.Context, holderID string) (out []model.Request, err error) {
	err = m.read(func(s *state) error { out = s.listRequests(holderID); return nil })
	return out, err
}

func (t *txView) ListRequests(_ context.Context, holderID string) ([]model.Request, error) {
	return t.s.listRequests(holderID), nil
}

func (s *state) listNotices(limit int) []model.Notice {
	out := append([]model.Notice{}, s.notices...)
	sort.Slice(out, func(i, j int) bool { return out[i].PostedAt.After(out[j].PostedAt) })
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

func (m *memory) ListNotices(_ context.Context, limit int) (out []model.Notice, err error) {
	err = m.read(func(s *state) error { out = s.listNotices(limit); return nil })
	return out, err
}

func (t *txView) ListNotices(_ context.Context, limit int) ([]model.Notice, error) {
	return t.s.listNotices(limit), nil
}

func (s *state) getNotice(id string) (model.Notice, error) {
	for _, n := range s.notices {
		if n.ID == id {
			return n, nil
		}
	}
	return model.Notice{}, errors.Wrap(errs.ErrNotFound, "notice "+id)
}

func (m *memory) GetNotice(_ context.Context, id string) (n model.Notice, err error) {
	err = m.read(func(s *state) error { n, err = s.getNotice(id); return err })
	return n, err
}

func (t *txView) GetNotice(_ context.Context, id string) (model.Notice, error) {
	return t.s.getNotice(id)
}

func (s *state) listAttendanceBetween(holderID string, from, to time.Time) []model.Attendance {
	var out []model.Attendance
	for _, a := range s.attendance[holderID] {
		if a.Date.Before(from) || a.Date.After(to) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (m *memory) ListAttendanceBetween(_ context.Context, holderID string, from, to time.Time) (out []model.Attendance, err error) {
	err = m.read(func(s *state) error { out = s.listAttendanceBetween(holderID, from, to); return nil })
	return out, err
}

func (t *txView) ListAttendanceBetween(_ context.Context, holderID string, from, to time.Time) ([]model.Attendance, error) {
	return t.s.listAttendanceBetween(holderID, from, to), nil
}

func (s *state) getRoute(holderID string) (model.Route, error) {
	r, ok := s.routes[holderID]
	if !ok {
		return model.Route{}, errors.Wrap(errs.ErrNotFound, "route for "+holderID)
	}
	r.Stops = append([]model.BusStop{}, r.Stops...)
	return r, nil
}

func (m *memory) GetRoute(_ context.Context, holderID string) (r model.Route, err error) {
	err = m.read(func(s *state) error { r, err = s.getRoute(holderID); return err })
	return r, err
}

func (t *txView) GetRoute(_ context.Context, holderID string) (model.Route, error) {
	return t.s.getRoute(holderID)
}

func (s *state) updateStudentStop(holderID, stopID string) (model.Route, error) {
	r, ok := s.routes[holderID]
	if !ok {
		return model.Route{}, errors.Wrap(errs.ErrNotFound, "route for "+holderID)
	}
	found := false
	for _, st := range r.Stops {
		if st.ID == stopID {
			found = true
			break
		}
	}
	if !found {
		return model.Route{}, errors.Wrap(errs.ErrNotFound, "stop "+stopID)
	}
	r.StudentStopID = stopID
	s.routes[holderID] = r
	return s.getRoute(holderID)
}

func (m *memory) UpdateStudentStop(_ context.Context, holderID, stopID string) (r model.Route, err error) {
	err = m.write(func(s *state) error { r, err = s.updateStudentStop(holderID, stopID); return err })
	return r, err
}

func (t *txView) UpdateStudentStop(_ context.Context, holderID, stopID string) (model.Route, error) {
	return t.s.updateStudentStop(holderID, stopID)
}
