package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"aukra/apperr"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperr.Kind
	}{
		{"no rows", sql.ErrNoRows, apperr.KindNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), apperr.KindNotFound},
		{"unique violation", &pq.Error{Code: "23505"}, apperr.KindConflict},
		{"foreign key violation", &pq.Error{Code: "23503"}, apperr.KindDependency},
		{"connection exception", &pq.Error{Code: "08006"}, apperr.KindTransient},
		{"bad conn", driver.ErrBadConn, apperr.KindTransient},
		{"deadline", context.DeadlineExceeded, apperr.KindTransient},
		{"syntax error", &pq.Error{Code: "42601"}, apperr.KindUnknown},
		{"already classified", apperr.Validation("bad"), apperr.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.err, "dish")
			if k := apperr.KindOf(got); k != tt.want {
				t.Errorf("KindOf(translate(%v)) = %v, want %v", tt.err, k, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("translate(%v) lost the cause", tt.err)
			}
		})
	}
}

func TestTranslate_Nil(t *testing.T) {
	if err := translate(nil, "dish"); err != nil {
		t.Errorf("translate(nil) = %v", err)
	}
}

func TestTranslate_Message(t *testing.T) {
	got := apperr.Message(translate(sql.ErrNoRows, "dish"))
	if got != "dish not found" {
		t.Errorf("Message = %q, want %q", got, "dish not found")
	}
}
