package wiki

import (
	"context"
	"fmt"
	"net/url"

	"github.com/olgasafonova/mediawiki-delete-category/metrics"
)

// Delete deletes a page or file with the given reason
func (c *Client) Delete(ctx context.Context, title, reason string) (DeleteResult, error) {
	if title == "" {
		return DeleteResult{}, &ValidationError{Field: "title", Message: "page title is required"}
	}

	token, err := c.getCSRFToken(ctx)
	if err != nil {
		metrics.RecordDeletion(false)
		return DeleteResult{}, fmt.Errorf("authentication failed: %w", err)
	}

	params := url.Values{}
	params.Set("action", "delete")
	params.Set("title", title)
	params.Set("token", token)
	if reason != "" {
		params.Set("reason", reason)
	}

	resp, err := c.apiRequest(ctx, params)
	if err != nil {
		metrics.RecordDeletion(false)
		return DeleteResult{}, fmt.Errorf("failed to delete %q: %w", title, err)
	}

	deleted := getMap(resp["delete"])
	if deleted == nil {
		metrics.RecordDeletion(false)
		return DeleteResult{}, fmt.Errorf("unexpected delete response for %q", title)
	}

	metrics.RecordDeletion(true)
	c.logger.Info("Page deleted", "title", title, "reason", reason)

	return DeleteResult{
		Title:  getString(deleted["title"]),
		Reason: getString(deleted["reason"]),
		LogID:  getInt(deleted["logid"]),
	}, nil
}
