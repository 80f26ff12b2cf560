package memory

import (
	"time"

	"github.com/riskibarqy/fantasy-contests/internal/domain/contest"
	"github.com/riskibarqy/fantasy-contests/internal/domain/player"
	"github.com/riskibarqy/fantasy-contests/internal/domain/slot"
	"github.com/riskibarqy/fantasy-contests/internal/domain/user"
)

const (
	SlotIDWicketKeeper = "slot-wk"
	SlotIDBatter       = "slot-bat"
	SlotIDAllRounder   = "slot-ar"
	SlotIDBowler       = "slot-bowl"
)

func SeedSlots() []slot.Slot {
	return []slot.Slot{
		{ID: SlotIDWicketKeeper, Code: "WK", Name: "Wicket Keeper", MinSelect: 1, MaxSelect: 2},
		{ID: SlotIDBatter, Code: "BAT", Name: "Batter", MinSelect: 3, MaxSelect: 5},
		{ID: SlotIDAllRounder, Code: "AR", Name: "All Rounder", MinSelect: 1, MaxSelect: 3},
		{ID: SlotIDBowler, Code: "BOWL", Name: "Bowler", MinSelect: 3, MaxSelect: 5},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "plr-wk-01", Name: "Rahul Verma", Team: "Mumbai", Role: "Wicket Keeper", SlotID: SlotIDWicketKeeper, Price: 9.5, IsAvailable: true},
		{ID: "plr-wk-02", Name: "Sandeep Rao", Team: "Chennai", Role: "Wicket Keeper", SlotID: SlotIDWicketKeeper, Price: 8.0, IsAvailable: true},
		{ID: "plr-bat-01", Name: "Arjun Mehta", Team: "Mumbai", Role: "Batter", SlotID: SlotIDBatter, Price: 10.5, IsAvailable: true},
		{ID: "plr-bat-02", Name: "Vikram Shetty", Team: "Chennai", Role: "Batter", SlotID: SlotIDBatter, Price: 10.0, IsAvailable: true},
		{ID: "plr-bat-03", Name: "Devansh Patel", Team: "Bangalore", Role: "Batter", SlotID: SlotIDBatter, Price: 9.0, IsAvailable: true},
		{ID: "plr-bat-04", Name: "Karan Joshi", Team: "Kolkata", Role: "Batter", SlotID: SlotIDBatter, Price: 8.5, IsAvailable: true},
		{ID: "plr-bat-05", Name: "Nitin Kulkarni", Team: "Bangalore", Role: "Batter", SlotID: SlotIDBatter, Price: 7.5, IsAvailable: true},
		{ID: "plr-ar-01", Name: "Rohit Chandra", Team: "Mumbai", Role: "All Rounder", SlotID: SlotIDAllRounder, Price: 11.0, IsAvailable: true},
		{ID: "plr-ar-02", Name: "Imran Qureshi", Team: "Kolkata", Role: "All Rounder", SlotID: SlotIDAllRounder, Price: 9.5, IsAvailable: true},
		{ID: "plr-ar-03", Name: "Suresh Nair", Team: "Chennai", Role: "All Rounder", SlotID: SlotIDAllRounder, Price: 8.5, IsAvailable: true},
		{ID: "plr-bowl-01", Name: "Zaheer Ansari", Team: "Mumbai", Role: "Bowler", SlotID: SlotIDBowler, Price: 9.0, IsAvailable: true},
		{ID: "plr-bowl-02", Name: "Praveen Dubey", Team: "Chennai", Role: "Bowler", SlotID: SlotIDBowler, Price: 8.5, IsAvailable: true},
		{ID: "plr-bowl-03", Name: "Ashwin Pillai", Team: "Bangalore", Role: "Bowler", SlotID: SlotIDBowler, Price: 8.0, IsAvailable: true},
		{ID: "plr-bowl-04", Name: "Harpreet Singh", Team: "Kolkata", Role: "Bowler", SlotID: SlotIDBowler, Price: 7.5, IsAvailable: true},
		{ID: "plr-bowl-05", Name: "Lakshya Gupta", Team: "Bangalore", Role: "Bowler", SlotID: SlotIDBowler, Price: 7.0, IsAvailable: false},
	}
}

func SeedContests() []contest.Contest {
	now := time.Now().UTC()

	return []contest.Contest{
		{
			ID:         "cst-weekly-open",
			Code:       "WEEKLY-OPEN",
			Name:       "Weekly Open Contest",
			StartAt:    now.Add(24 * time.Hour),
			EndAt:      now.Add(8 * 24 * time.Hour),
			Visibility: contest.VisibilityPublic,
			Type:       contest.TypeFull,
			Status:     contest.StatusUpcoming,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			ID:           "cst-daily-derby",
			Code:         "DAILY-DERBY",
			Name:         "Mumbai vs Chennai Daily",
			StartAt:      now.Add(-2 * time.Hour),
			EndAt:        now.Add(6 * time.Hour),
			Visibility:   contest.VisibilityPublic,
			Type:         contest.TypeDaily,
			AllowedTeams: []string{"Mumbai", "Chennai"},
			Status:       contest.StatusOngoing,
			CreatedAt:    now.Add(-48 * time.Hour),
			UpdatedAt:    now,
		},
		{
			ID:         "cst-invite-only",
			Code:       "INVITE-ONLY",
			Name:       "Office League",
			StartAt:    now.Add(48 * time.Hour),
			EndAt:      now.Add(9 * 24 * time.Hour),
			Visibility: contest.VisibilityPrivate,
			Type:       contest.TypeFull,
			Status:     contest.StatusUpcoming,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
}

func SeedUsers() []user.Profile {
	return []user.Profile{
		{ID: "usr-001", Username: "asha.k", DisplayName: "Asha"},
		{ID: "usr-002", Username: "budi.s", DisplayName: "Budi"},
		{ID: "usr-003", Username: "chitra.m", DisplayName: ""},
	}
}
