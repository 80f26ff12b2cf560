package logging

import (
	"context"
	"errors"
	"testing"
)

func TestSetMirror_ReceivesRecords(t *testing.T) {
	var (
		gotLevel Level
		gotMsg   string
		gotArgs  []any
	)
	SetMirror(func(ctx context.Context, level Level, msg string, args ...any) {
		gotLevel = level
		gotMsg = msg
		gotArgs = args
	})
	defer SetMirror(nil)

	logger := NewNop()
	logger.InfoContext(context.Background(), "enrollment created", "contest_id", "cst-weekly-open")

	if gotLevel != LevelInfo {
		t.Fatalf("unexpected mirrored level: %v", gotLevel)
	}
	if gotMsg != "enrollment created" {
		t.Fatalf("unexpected mirrored message: %q", gotMsg)
	}
	if len(gotArgs) != 2 || gotArgs[0] != "contest_id" {
		t.Fatalf("unexpected mirrored args: %v", gotArgs)
	}
}

func TestSetMirror_NilRemovesMirror(t *testing.T) {
	calls := 0
	SetMirror(func(context.Context, Level, string, ...any) { calls++ })
	SetMirror(nil)

	NewNop().Info("ignored")

	if calls != 0 {
		t.Fatalf("expected no mirror calls after removal, got %d", calls)
	}
}

func TestZapFields_NamesErrors(t *testing.T) {
	fields := zapFields([]any{"error", errors.New("boom"), "count", 3})
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != "error" {
		t.Fatalf("unexpected first field key: %s", fields[0].Key)
	}
}

func TestZapFields_OddArgsKeepLastKey(t *testing.T) {
	fields := zapFields([]any{"team_id"})
	if len(fields) != 1 || fields[0].Key != "team_id" {
		t.Fatalf("unexpected fields for dangling key: %v", fields)
	}
}
