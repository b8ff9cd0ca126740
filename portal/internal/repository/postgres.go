package repository

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/anever/school-portal/portal/internal/errs"
	"github.com/anever/school-portal/portal/internal/model"
)

const (
	booksTable      = `books`
	loansTable      = `loans`
	eventsTable     = `events`
	passesTable     = `passes`
	requestsTable   = `requests`
	noticesTable    = `notices`
	attendanceTable = `attendance`
	routesTable     = `routes`
	routeStopsTable = `route_stops`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// ext is satisfied by both *sqlx.DB and *sqlx.Tx, so the same methods serve
// plain calls and Atomic blocks.
type ext interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

type postgres struct {
	db  *sqlx.DB
	ext ext
	log *zap.Logger
}

func NewPostgres(db *sqlx.DB, log *zap.Logger) (*postgres, error) {
	return &postgres{
		db:  db,
		ext: db,
		log: log.Named("repo"),
	}, nil
}

func (p *postgres) Atomic(ctx context.Context, fn func(r Repository) error) error {
	if _, isTx := p.ext.(*sqlx.Tx); isTx {
		return fn(p)
	}
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	txRepo := &postgres{db: p.db, ext: tx, log: p.log}
	if err := fn(txRepo); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// wrapErr maps driver errors onto the store's sentinel taxonomy.
func wrapErr(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(errs.ErrNotFound, what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return errors.Wrap(errs.ErrAlreadyReserved, what)
		case pgerrcode.CheckViolation:
			return errors.Wrap(errs.ErrInvalidState, what)
		}
	}
	return err
}

/* ---------------- books ---------------- */

func (p *postgres) GetBook(ctx context.Context, id string) (model.Book, error) {
	query, args, err := qb.Select("id", "title", "author", "isbn", "copies", "available").
		From(booksTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var b model.Book
	if err := p.ext.GetContext(ctx, &b, query, args...); err != nil {
		return model.Book{}, wrapErr(err, "book "+id)
	}
	return b, nil
}

func (p *postgres) ListBooks(ctx context.Context) ([]model.Book, error) {
	return p.SearchBooks(ctx, "")
}

func (p *postgres) SearchBooks(ctx context.Context, query string) ([]model.Book, error) {
	q := qb.Select("id", "title", "author", "isbn", "copies", "available").
		From(booksTable).
		OrderBy("title")
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(sq.Or{sq.ILike{"title": like}, sq.ILike{"author": like}})
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var books []model.Book
	if err := p.ext.SelectContext(ctx, &books, sqlStr, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (p *postgres) AdjustAvailable(ctx context.Context, bookID string, delta int) error {
	q := `update books set available = available + $2 where id = $1 returning available`
	var available int
	if err := p.ext.GetContext(ctx, &available, q, bookID, delta); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
			if delta < 0 {
				return errs.ErrNoCopiesAvailable
			}
			return errors.Wrap(errs.ErrInvalidState, "available exceeds copies")
		}
		return wrapErr(err, "book "+bookID)
	}
	return nil
}

/* ---------------- loans ---------------- */

func loanColumns() []string {
	return []string{"id", "book_id", "holder_id", "status", "issue_date", "due_date", "renewals"}
}

func (p *postgres) GetLoan(ctx context.Context, id string) (model.Loan, error) {
	query, args, err := qb.Select(loanColumns()...).
		From(loansTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var l model.Loan
	if err := p.ext.GetContext(ctx, &l, query, args...); err != nil {
		return model.Loan{}, wrapErr(err, "loan "+id)
	}
	return l, nil
}

func (p *postgres) ListLoans(ctx context.Context, holderID string, statuses ...model.LoanStatus) ([]model.Loan, error) {
	q := qb.Select(loanColumns()...).
		From(loansTable).
		Where(sq.Eq{"holder_id": holderID}).
		OrderBy("due_date", "id")
	if len(statuses) > 0 {
		q = q.Where(sq.Eq{"status": statuses})
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var loans []model.Loan
	if err := p.ext.SelectContext(ctx, &loans, sqlStr, args...); err != nil {
		return nil, err
	}
	return loans, nil
}

func (p *postgres) FindLoanByBook(ctx context.Context, holderID, bookID string, statuses ...model.LoanStatus) (model.Loan, error) {
	q := qb.Select(loanColumns()...).
		From(loansTable).
		Where(sq.Eq{"holder_id": holderID, "book_id": bookID}).
		Limit(1)
	if len(statuses) > 0 {
		q = q.Where(sq.Eq{"status": statuses})
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var l model.Loan
	if err := p.ext.GetContext(ctx, &l, sqlStr, args...); err != nil {
		return model.Loan{}, wrapErr(err, "loan for book "+bookID)
	}
	return l, nil
}

func (p *postgres) CreateLoan(ctx context.Context, loan model.Loan) error {
	query, args, err := qb.Insert(loansTable).
		Columns(loanColumns()...).
		Values(loan.ID, loan.BookID, loan.HolderID, loan.Status, loan.IssueDate, loan.DueDate, loan.Renewals).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := p.ext.ExecContext(ctx, query, args...); err != nil {
		p.log.Error("CreateLoan", zap.String("q", query), zap.Any("args", args))
		return wrapErr(err, "loan "+loan.ID)
	}
	return nil
}

func (p *postgres) UpdateLoan(ctx context.Context, loan model.Loan) error {
	query, args, err := qb.Update(loansTable).
		Set("status", loan.Status).
		Set("issue_date", loan.IssueDate).
		Set("due_date", loan.DueDate).
		Set("renewals", loan.Renewals).
		Where(sq.Eq{"id": loan.ID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := p.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapErr(err, "loan "+loan.ID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrap(errs.ErrNotFound, "loan "+loan.ID)
	}
	return nil
}

func (p *postgres) DeleteLoan(ctx context.Context, id string) error {
	query, args, err := qb.Delete(loansTable).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := p.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrap(errs.ErrNotFound, "loan "+id)
	}
	return nil
}

/* ---------------- events & passes ---------------- */

func eventColumns() []string {
	return []string{"id", "title", "category", "date", "start_time", "end_time", "venue", "description", "capacity"}
}

func (p *postgres) GetEvent(ctx context.Context, id string) (model.Event, error) {
	query, args, err := qb.Select(eventColumns()...).
		From(eventsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Event{}, err
	}
	var e model.Event
	if err := p.ext.GetContext(ctx, &e, query, args...); err != nil {
		return model.Event{}, wrapErr(err, "event "+id)
	}
	return e, nil
}

func (p *postgres) ListEvents(ctx context.Context, category, query string) ([]model.Event, error) {
	q := qb.Select(eventColumns()...).
		From(eventsTable).
		OrderBy("date", "start_time")
	if category != "" {
		q = q.Where(sq.Expr("lower(category) = lower(?)", category))
	}
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(sq.Or{sq.ILike{"title": like}, sq.ILike{"description": like}})
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var events []model.Event
	if err := p.ext.SelectContext(ctx, &events, sqlStr, args...); err != nil {
		return nil, err
	}
	return events, nil
}

func (p *postgres) CountActivePasses(ctx context.Context, eventID string) (int, error) {
	q := `select count(*) from passes where event_id = $1 and status = 'ACTIVE'`
	var count int
	if err := p.ext.GetContext(ctx, &count, q, eventID); err != nil {
		return 0, err
	}
	return count, nil
}

func passColumns() []string {
	return []string{"id", "event_id", "holder_id", "code", "status", "issued_at"}
}

func (p *postgres) GetPass(ctx context.Context, id string) (model.EventPass, error) {
	query, args, err := qb.Select(passColumns()...).
		From(passesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.EventPass{}, err
	}
	var pass model.EventPass
	if err := p.ext.GetContext(ctx, &pass, query, args...); err != nil {
		return model.EventPass{}, wrapErr(err, "pass "+id)
	}
	return pass, nil
}

func (p *postgres) FindActivePass(ctx context.Context, holderID, eventID string) (model.EventPass, error) {
	query, args, err := qb.Select(passColumns()...).
		From(passesTable).
		Where(sq.Eq{"holder_id": holderID, "event_id": eventID, "status": model.PassActive}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.EventPass{}, err
	}
	var pass model.EventPass
	if err := p.ext.GetContext(ctx, &pass, query, args...); err != nil {
		return model.EventPass{}, wrapErr(err, "pass for event "+eventID)
	}
	return pass, nil
}

func (p *postgres) ListActivePasses(ctx context.Context, holderID string) ([]model.EventPass, error) {
	query, args, err := qb.Select(passColumns()...).
		From(passesTable).
		Where(sq.Eq{"holder_id": holderID, "status": model.PassActive}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	var passes []model.EventPass
	if err := p.ext.SelectContext(ctx, &passes, query, args...); err != nil {
		return nil, err
	}
	return passes, nil
}

func (p *postgres) CreatePass(ctx context.Context, pass model.EventPass) error {
	query, args, err := qb.Insert(passesTable).
		Columns(passColumns()...).
		Values(pass.ID, pass.EventID, pass.HolderID, pass.Code, pass.Status, pass.IssuedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := p.ext.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errs.ErrPassAlreadyIssued
		}
		return err
	}
	return nil
}

func (p *postgres) UpdatePass(ctx context.Context, pass model.EventPass) error {
	query, args, err := qb.Update(passesTable).
		Set("status", pass.Status).
		Where(sq.Eq{"id": pass.ID}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := p.ext.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrap(errs.ErrNotFound, "pass "+pass.ID)
	}
	return nil
}

/* ---------------- requests, notices, attendance, transport ---------------- */

func (p *postgres) CreateRequest(ctx context.Context, req model.Request) error {
	query, args, err := qb.Insert(requestsTable).
		Columns("id", "holder_id", "type", "reason", "from_date", "to_date", "status", "created_at").
		Values(req.ID, req.HolderID, req.Type, req.Reason, req.FromDate, req.ToDate, req.Status, req.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}
	_, err = p.ext.ExecContext(ctx, query, args...)
	return err
}

func (p *postgres) ListRequests(ctx context.Context, holderID string) ([]model.Request, error) {
	query, args, err := qb.Select("id", "holder_id", "type", "reason", "from_date", "to_date", "status", "created_at").
		From(requestsTable).
		Where(sq.Eq{"holder_id": holderID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var reqs []model.Request
	if err := p.ext.SelectContext(ctx, &reqs, query, args...); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (p *postgres) ListNotices(ctx context.Context, limit int) ([]model.Notice, error) {
	q := qb.Select("id", "category", "title", "body", "posted_by", "posted_at").
		From(noticesTable).
		OrderBy("posted_at desc")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	var notices []model.Notice
	if err := p.ext.SelectContext(ctx, &notices, sqlStr, args...); err != nil {
		return nil, err
	}
	return notices, nil
}

func (p *postgres) GetNotice(ctx context.Context, id string) (model.Notice, error) {
	query, args, err := qb.Select("id", "category", "title", "body", "posted_by", "posted_at").
		From(noticesTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Notice{}, err
	}
	var n model.Notice
	if err := p.ext.GetContext(ctx, &n, query, args...); err != nil {
		return model.Notice{}, wrapErr(err, "notice "+id)
	}
	return n, nil
}

func (p *postgres) ListAttendanceBetween(ctx context.Context, holderID string, from, to time.Time) ([]model.Attendance, error) {
	query, args, err := qb.Select("id", "date", "status").
		From(attendanceTable).
		Where(sq.Eq{"holder_id": holderID}).
		Where(sq.GtOrEq{"date": from}).
		Where(sq.LtOrEq{"date": to}).
		OrderBy("date").
		ToSql()
	if err != nil {
		return nil, err
	}
	var recs []model.Attendance
	if err := p.ext.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, err
	}
	return recs, nil
}

type routeRow struct {
	ID            string `db:"id"`
	Name          string `db:"name"`
	StudentStopID string `db:"student_stop_id"`
}

func (p *postgres) GetRoute(ctx context.Context, holderID string) (model.Route, error) {
	query, args, err := qb.Select("id", "name", "student_stop_id").
		From(routesTable).
		Where(sq.Eq{"holder_id": holderID}).
		ToSql()
	if err != nil {
		return model.Route{}, err
	}
	var row routeRow
	if err := p.ext.GetContext(ctx, &row, query, args...); err != nil {
		return model.Route{}, wrapErr(err, "route for "+holderID)
	}

	stopsQ, stopsArgs, err := qb.Select("id", "name", "eta_offset_min").
		From(routeStopsTable).
		Where(sq.Eq{"route_id": row.ID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return model.Route{}, err
	}
	var stops []model.BusStop
	if err := p.ext.SelectContext(ctx, &stops, stopsQ, stopsArgs...); err != nil {
		return model.Route{}, err
	}

	return model.Route{
		ID:            row.ID,
		Name:          row.Name,
		Stops:         stops,
		StudentStopID: row.StudentStopID,
	}, nil
}

func (p *postgres) UpdateStudentStop(ctx context.Context, holderID, stopID string) (model.Route, error) {
	route, err := p.GetRoute(ctx, holderID)
	if err != nil {
		return model.Route{}, err
	}
	found := false
	for _, st := range route.Stops {
		if st.ID == stopID {
			found = true
			break
		}
	}
	if !found {
		return model.Route{}, errors.Wrap(errs.ErrNotFound, "stop "+stopID)
	}
	query, args, err := qb.Update(routesTable).
		Set("student_stop_id", stopID).
		Where(sq.Eq{"holder_id": holderID}).
		ToSql()
	if err != nil {
		return model.Route{}, err
	}
	if _, err := p.ext.ExecContext(ctx, query, args...); err != nil {
		return model.Route{}, err
	}
	route.StudentStopID = stopID
	return route, nil
}
