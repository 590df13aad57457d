package postgres

import (
	"shortener/pkg/domain"
	"time"
)

// PgLink is the row shape of the links table.
type PgLink struct {
	Code        string    `db:"code"`
	OriginalURL string    `db:"original_url"`
	Clicks      int64     `db:"clicks"     goqu:"skipinsert"`
	CreatedAt   time.Time `db:"created_at" goqu:"skipinsert"`
}

func (p *PgLink) ToDomain() *domain.Link {
	return &domain.Link{
		Code:      domain.ShortCode(p.Code),
		URL:       p.OriginalURL,
		Clicks:    p.Clicks,
		CreatedAt: p.CreatedAt,
	}
}

func (p *PgLink) FromDomain(link domain.Link) {
	*p = PgLink{
		Code:        string(link.Code),
		OriginalURL: link.URL,
		Clicks:      link.Clicks,
		CreatedAt:   link.CreatedAt,
	}
}
