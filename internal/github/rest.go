package github

import (
	"context"
	"encoding/json"
	"fmt"
)

// Contributors lists every contributor of a repository via the REST API,
// following Link-header pagination to completion. Results keep the server's
// order: highest commit count first.
func Contributors(ctx context.Context, c *Client, owner, repo string) ([]Contributor, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contributors?per_page=100", c.restURL, owner, repo)

	var all []Contributor
	err := Links(ctx, c, url, func(body []byte) error {
		var page []Contributor
		if err := json.Unmarshal(body, &page); err != nil {
			return fmt.Errorf("the response couldn't be decoded into JSON: %w\n%s", err, body)
		}
		all = append(all, page...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetching contributors for %s/%s: %w", owner, repo, err)
	}

	return all, nil
}
