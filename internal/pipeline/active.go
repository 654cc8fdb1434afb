package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"voirank/internal/survival"
)

// ActiveUser is one long-running uploader.
type ActiveUser struct {
	Rank     int       `json:"rank"`
	UserID   uint64    `json:"userId"`
	Debut    time.Time `json:"debut"`
	Last     time.Time `json:"last"`
	Posts    int       `json:"posts"`
	Nickname string    `json:"nickname"`
}

// ActiveUsersResult is the outcome of ActiveUsers.
type ActiveUsersResult struct {
	Category  string             `json:"category"`
	Reference survival.Reference `json:"reference"`
	Active    int                `json:"active"`
	Users     []ActiveUser       `json:"users"`
}

// ActiveUsers lists the currently active uploaders of category who debuted
// earliest, with their nicknames.
func (r *Runner) ActiveUsers(ctx context.Context, category string) (ActiveUsersResult, bool, error) {
	result := ActiveUsersResult{Category: category}
	records, err := r.Records(ctx, category)
	if err != nil {
		return result, false, fmt.Errorf("active users %s: %w", category, err)
	}
	uploaders := survival.Uploaders(records)
	ref, ok := survival.NewReference(uploaders, r.cfg.Analysis.ActiveWindowYears)
	if !ok {
		return result, false, nil
	}
	result.Reference = ref
	for _, u := range uploaders {
		if ref.Active(u) {
			result.Active++
		}
	}
	for i, u := range survival.LongestActive(uploaders, r.cfg.Analysis.ActiveWindowYears, r.cfg.Analysis.ActiveUsersLimit) {
		if err := ctx.Err(); err != nil {
			return result, false, err
		}
		name := strconv.FormatUint(u.UserID, 10)
		if r.nicknames != nil {
			name, _ = r.nicknames.Lookup(ctx, u.UserID)
		}
		result.Users = append(result.Users, ActiveUser{
			Rank:     i + 1,
			UserID:   u.UserID,
			Debut:    u.First,
			Last:     u.Last,
			Posts:    u.Posts,
			Nickname: name,
		})
	}
	return result, true, nil
}
