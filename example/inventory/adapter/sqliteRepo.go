package adapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/paulvitic/cqrs-go/example/inventory/domain"
)

const itemsTable = "items"

const schema = `CREATE TABLE IF NOT EXISTS items (
	id       TEXT PRIMARY KEY,
	name     TEXT NOT NULL,
	quantity INTEGER NOT NULL
)`

type itemRow struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Quantity int    `db:"quantity"`
}

func (row itemRow) toItem() (domain.Item, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return domain.Item{}, fmt.Errorf("stored item id %q: %w", row.ID, err)
	}
	return domain.Item{ID: id, Name: row.Name, Quantity: row.Quantity}, nil
}

// SQLiteRepo keeps items in a SQLite database.
type SQLiteRepo struct {
	db      *sqlx.DB
	dialect goqu.DialectWrapper
}

// OpenSQLite opens path, ":memory:" included, and creates the items table.
func OpenSQLite(ctx context.Context, path string) (*SQLiteRepo, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if path == ":memory:" {
		// every connection to :memory: is a separate database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteRepo{db: db, dialect: goqu.Dialect("sqlite3")}, nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepo) Save(ctx context.Context, item *domain.Item) error {
	query, args, err := r.dialect.Insert(itemsTable).
		Rows(goqu.Record{"id": item.ID.String(), "name": item.Name, "quantity": item.Quantity}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return &domain.ItemExistsError{ID: item.ID}
		}
		return fmt.Errorf("insert item %s: %w", item.ID, err)
	}
	return nil
}

func (r *SQLiteRepo) Update(ctx context.Context, item *domain.Item) error {
	query, args, err := r.dialect.Update(itemsTable).
		Set(goqu.Record{"name": item.Name, "quantity": item.Quantity}).
		Where(goqu.C("id").Eq(item.ID.String())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	return r.execOne(ctx, item.ID, query, args)
}

func (r *SQLiteRepo) Load(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	query, args, err := r.dialect.From(itemsTable).
		Select("id", "name", "quantity").
		Where(goqu.C("id").Eq(id.String())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var row itemRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &domain.ItemNotFoundError{ID: id}
		}
		return nil, fmt.Errorf("load item %s: %w", id, err)
	}
	item, err := row.toItem()
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *SQLiteRepo) LoadAll(ctx context.Context, offset, limit int) ([]domain.Item, error) {
	if limit <= 0 {
		return []domain.Item{}, nil
	}
	query, args, err := r.dialect.From(itemsTable).
		Select("id", "name", "quantity").
		Order(goqu.C("name").Asc(), goqu.C("id").Asc()).
		Limit(uint(limit)).
		Offset(uint(max(offset, 0))).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var rows []itemRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	items := make([]domain.Item, 0, len(rows))
	for _, row := range rows {
		item, err := row.toItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *SQLiteRepo) Count(ctx context.Context) (int, error) {
	query, args, err := r.dialect.From(itemsTable).
		Select(goqu.COUNT(goqu.Star())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := r.dialect.Delete(itemsTable).
		Where(goqu.C("id").Eq(id.String())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	return r.execOne(ctx, id, query, args)
}

// execOne runs a statement that must touch exactly the row with id.
func (r *SQLiteRepo) execOne(ctx context.Context, id uuid.UUID, query string, args []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("write item %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("write item %s: %w", id, err)
	}
	if affected == 0 {
		return &domain.ItemNotFoundError{ID: id}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}
