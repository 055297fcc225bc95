package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/assessor/pkg/repository"
)

var (
	errEvaluationNotFound = errors.New("evaluation not found")
	errDuplicateKey       = errors.New("duplicate storage key")
)

func TestMapError(t *testing.T) {
	foreignKey := &pgconn.PgError{Code: "23503"}
	timeout := errors.New("i/o timeout")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "no rows", err: sql.ErrNoRows, want: errEvaluationNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("find evaluation: %w", sql.ErrNoRows), want: errEvaluationNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505", ConstraintName: "evaluations_storage_key_key"}, want: errDuplicateKey},
		{name: "wrapped unique violation", err: fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), want: errDuplicateKey},
		{name: "other constraint", err: foreignKey, want: foreignKey},
		{name: "driver error", err: timeout, want: timeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.err, errEvaluationNotFound, errDuplicateKey)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
