package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows should be not found")
	}
	if !isNotFound(fmt.Errorf("get row: %w", sql.ErrNoRows)) {
		t.Fatal("wrapped sql.ErrNoRows should be not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatal("arbitrary error should not be not found")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	pqErr := &pq.Error{Code: uniqueViolationCode}
	if !isUniqueViolation(pqErr) {
		t.Fatal("code 23505 should be a unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("insert: %w", pqErr)) {
		t.Fatal("wrapped unique violation should match")
	}
	if isUniqueViolation(&pq.Error{Code: "23503"}) {
		t.Fatal("foreign key violation should not match")
	}
	if isUniqueViolation(errors.New("boom")) {
		t.Fatal("arbitrary error should not match")
	}
}
