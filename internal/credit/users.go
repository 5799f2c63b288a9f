package credit

import (
	"sort"

	"github.com/fosskers/credit/internal/github"
)

// User is a ranked user and their public contribution count.
type User struct {
	Login               string  `json:"login"`
	Name                *string `json:"name,omitempty"`
	PublicContributions int     `json:"public_contributions"`
}

// UserContributions is the collated result of a location-based user search.
type UserContributions struct {
	TotalUsers    int    `json:"total_users"`
	Contributions []User `json:"contributions"`
}

// RankUsers curates the Top 100 users of a search result, ranked by their
// contribution counts and weighted by followers: the contribution leaders are
// narrowed to those with an actual audience, then re-ranked by contributions.
func RankUsers(search github.UserSearch) UserContributions {
	users := make([]github.UserContribs, len(search.Users))
	copy(users, search.Users)

	byContribs := func(i, j int) bool {
		return users[i].PublicContributions() > users[j].PublicContributions()
	}
	byFollowers := func(i, j int) bool {
		return users[i].Followers.TotalCount > users[j].Followers.TotalCount
	}

	sort.SliceStable(users, byContribs)
	users = take(users, 500)
	sort.SliceStable(users, byFollowers)
	users = take(users, 250)
	sort.SliceStable(users, byContribs)
	users = take(users, 100)

	ranked := make([]User, 0, len(users))
	for _, u := range users {
		ranked = append(ranked, User{
			Login:               u.Login,
			Name:                u.Name,
			PublicContributions: u.PublicContributions(),
		})
	}

	return UserContributions{
		TotalUsers:    search.UserCount,
		Contributions: ranked,
	}
}

func take[A any](items []A, n int) []A {
	if len(items) < n {
		return items
	}
	return items[:n]
}
