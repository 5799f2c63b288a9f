package github

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// UserSearch is the outcome of a location-based user search: how many users
// the location holds in total, and the pages of users actually fetched.
type UserSearch struct {
	UserCount int
	Users     []UserContribs
}

type searchQuery struct {
	Search struct {
		UserCount int `json:"userCount"`
		Paged[UserContribs]
	} `json:"search"`
}

// UserContributions searches for users in a given location, ordered by
// follower count. The search index is effectively unbounded, so pagination
// is capped both by a page budget and by an early stop once a page ends in
// users with no followers at all.
func UserContributions(ctx context.Context, c *Client, location string) (UserSearch, error) {
	var userCount int

	fetch := func(ctx context.Context, cursor string) (Page[UserContribs], error) {
		body, err := usersQuery(location, cursor)
		if err != nil {
			return Page[UserContribs]{}, err
		}

		raw, err := c.Post(ctx, body)
		if err != nil {
			return Page[UserContribs]{}, fmt.Errorf("searching users in %q: %w", location, err)
		}

		data, err := decode[searchQuery](raw)
		if err != nil {
			return Page[UserContribs]{}, err
		}

		userCount = data.Search.UserCount
		c.log.Debug("user search page fetched",
			zap.String("location", location),
			zap.Int("items", len(data.Search.Edges)))

		return Page[UserContribs]{
			Items:     data.Search.Nodes(),
			EndCursor: cursorOf(data.Search.PageInfo),
			HasNext:   data.Search.PageInfo.HasNextPage,
		}, nil
	}

	// Results are sorted by follower count, so once we see a user with none
	// there is nobody interesting left.
	stop := func(last UserContribs) bool {
		return last.Followers.TotalCount == 0
	}

	users, err := Cursor(ctx, fetch, stop, maxUserPages)
	if err != nil {
		return UserSearch{}, err
	}

	return UserSearch{UserCount: userCount, Users: users}, nil
}
