package wiki

import (
	"context"
	"iter"
	"net/url"
)

// Query runs an action=query request and yields each response batch,
// following the API's "continue" object until the server stops returning one.
// The sequence stops after the first error.
func (c *Client) Query(ctx context.Context, params url.Values) iter.Seq2[Page, error] {
	return func(yield func(Page, error) bool) {
		base := cloneValues(params)
		base.Set("action", "query")
		base.Set("continue", "")

		next := cloneValues(base)
		for batch := 1; ; batch++ {
			resp, err := c.apiRequest(ctx, next)
			if err != nil {
				yield(nil, err)
				return
			}

			if !yield(Page(resp), nil) {
				return
			}

			cont := getMap(resp["continue"])
			if len(cont) == 0 {
				c.logger.Debug("Query exhausted", "action", actionLabel(base), "batches", batch)
				return
			}

			next = cloneValues(base)
			for key, value := range cont {
				next.Set(key, getString(value))
			}
		}
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for key, values := range v {
		out[key] = append([]string(nil), values...)
	}
	return out
}
