package contest

import (
	"testing"
	"time"
)

func TestDeriveStatus_TimeWindow(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	c := Contest{StartAt: start, EndAt: end, Status: StatusUpcoming}

	cases := []struct {
		name string
		now  time.Time
		want Status
	}{
		{"before start", start.Add(-time.Minute), StatusUpcoming},
		{"exactly at start", start, StatusOngoing},
		{"inside window", start.Add(time.Hour), StatusOngoing},
		{"exactly at end", end, StatusCompleted},
		{"after end", end.Add(time.Hour), StatusCompleted},
	}
	for _, tc := range cases {
		if got := DeriveStatus(c, tc.now); got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestDeriveStatus_ArchivedIsSticky(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := Contest{StartAt: start, EndAt: start.Add(time.Hour), Status: StatusArchived}

	for _, now := range []time.Time{
		start.Add(-time.Hour),
		start.Add(time.Minute),
		start.Add(2 * time.Hour),
	} {
		if got := DeriveStatus(c, now); got != StatusArchived {
			t.Fatalf("archived contest derived %s at %s", got, now)
		}
	}
}

func TestContest_AllowsTeam(t *testing.T) {
	daily := Contest{Type: TypeDaily, AllowedTeams: []string{"CSK", "MI"}}
	if !daily.AllowsTeam("CSK") {
		t.Fatal("listed team should be allowed")
	}
	if daily.AllowsTeam("RCB") {
		t.Fatal("unlisted team should be rejected")
	}

	unrestricted := Contest{Type: TypeDaily}
	if !unrestricted.AllowsTeam("RCB") {
		t.Fatal("daily contest without allowed list should accept any team")
	}

	full := Contest{Type: TypeFull, AllowedTeams: []string{"CSK"}}
	if !full.AllowsTeam("RCB") {
		t.Fatal("allowed list only applies to daily contests")
	}
}

func TestContest_Validate(t *testing.T) {
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	valid := Contest{
		ID:         "c1",
		Code:       "IPL-01",
		Name:       "Opening Day",
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Visibility: VisibilityPublic,
		Type:       TypeDaily,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid contest rejected: %v", err)
	}

	inverted := valid
	inverted.StartAt, inverted.EndAt = inverted.EndAt, inverted.StartAt
	if err := inverted.Validate(); err == nil {
		t.Fatal("expected error for inverted time window")
	}
}
