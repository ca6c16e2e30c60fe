package repository_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/anuragsharanjuspay/jaf-agent-builder/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	passthrough := errors.New("connection refused")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows becomes not found", sql.ErrNoRows, errNotFound},
		{"unique violation becomes duplicate", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"other pg errors pass through", &pgconn.PgError{Code: "23503"}, nil},
		{"other errors pass through", passthrough, passthrough},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errNotFound, errDuplicate)

			switch tt.name {
			case "other pg errors pass through":
				var pgErr *pgconn.PgError
				if !errors.As(got, &pgErr) {
					t.Errorf("MapError() = %v, want original pg error", got)
				}
			default:
				if !errors.Is(got, tt.want) && got != tt.want {
					t.Errorf("MapError() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestMapError_WrappedNoRows(t *testing.T) {
	wrapped := errors.Join(errors.New("load record"), sql.ErrNoRows)

	if got := repository.MapError(wrapped, errNotFound, errDuplicate); !errors.Is(got, errNotFound) {
		t.Errorf("MapError() = %v, want not found for wrapped ErrNoRows", got)
	}
}
