package postgres

import (
	"context"
	"errors"
	"fmt"
	"shortener/pkg/domain"
	"shortener/pkg/serrors"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	linksTable = "links"
)

// StoreLink inserts link, or returns the row already stored for its URL.
// The no-op update on conflict makes RETURNING yield the existing row.
func (p *PgSQL) StoreLink(ctx context.Context, link domain.Link) (*domain.Link, error) {
	var row PgLink
	row.FromDomain(link)

	found, err := p.Builder.Insert(linksTable).
		Rows(row).
		OnConflict(goqu.DoUpdate("original_url", goqu.Record{
			"original_url": goqu.L("EXCLUDED.original_url"),
		})).
		Returning(&PgLink{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return nil, serrors.Wrap(serrors.ErrConflict, err, "code %s is taken by another URL", link.Code)
			case pgerrcode.ProgramLimitExceeded:
				return nil, serrors.Wrap(serrors.ErrBadRequest, err, "url is too long")
			}
		}

		return nil, fmt.Errorf("could not store link into pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("could not store link into pg: no row returned")
	}

	return row.ToDomain(), nil
}

// LinkByCode returns the link stored under code, or nil.
func (p *PgSQL) LinkByCode(ctx context.Context, code domain.ShortCode) (*domain.Link, error) {
	var row PgLink
	found, err := p.Builder.From(linksTable).
		Where(goqu.I("code").Eq(string(code))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch link by code: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// IncrementClicks adds n to the click counter of code.
func (p *PgSQL) IncrementClicks(ctx context.Context, code domain.ShortCode, n int64) (bool, error) {
	res, err := p.Builder.Update(linksTable).
		Set(goqu.Record{
			"clicks": goqu.L("clicks + ?", n),
		}).
		Where(goqu.I("code").Eq(string(code))).
		Executor().ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not increment clicks in pg: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not read affected rows: %w", err)
	}

	return affected > 0, nil
}
