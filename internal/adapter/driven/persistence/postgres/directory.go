package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Hiba-Rafique/Calling-System/internal/core/port"
)

type Directory struct {
	db *sqlx.DB
}

func NewDirectory(db *sqlx.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) ResolveInternalID(ctx context.Context, alias string) (string, error) {
	var id string
	err := d.db.GetContext(ctx, &id, `SELECT id FROM users WHERE alias = $1`, alias)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", port.ErrUnknownAlias, alias)
	}
	if err != nil {
		return "", err
	}
	return id, nil
}
