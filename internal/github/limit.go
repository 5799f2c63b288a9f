package github

import (
	"context"
	"fmt"
)

type rateLimitQuery struct {
	RateLimit RateLimit `json:"rateLimit"`
}

// Quota discovers the remaining GraphQL API quota of the client's token.
func Quota(ctx context.Context, c *Client) (RateLimit, error) {
	body, err := limitQuery()
	if err != nil {
		return RateLimit{}, err
	}

	raw, err := c.Post(ctx, body)
	if err != nil {
		return RateLimit{}, fmt.Errorf("fetching rate limit: %w", err)
	}

	data, err := decode[rateLimitQuery](raw)
	if err != nil {
		return RateLimit{}, err
	}

	return data.RateLimit, nil
}
