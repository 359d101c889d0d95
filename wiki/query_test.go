package wiki

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"sync"
	"testing"
)

func TestQuery_FollowsContinuation(t *testing.T) {
	var mu sync.Mutex
	var seen []url.Values

	server := mockMediaWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		seen = append(seen, r.PostForm)
		mu.Unlock()

		switch r.FormValue("blcontinue") {
		case "":
			writeJSON(w, map[string]interface{}{
				"continue": map[string]interface{}{"blcontinue": "0|42", "continue": "-||"},
				"query": map[string]interface{}{"backlinks": []interface{}{
					map[string]interface{}{"title": "First"},
					map[string]interface{}{"title": "Second"},
				}},
			})
		case "0|42":
			writeJSON(w, map[string]interface{}{
				"query": map[string]interface{}{"backlinks": []interface{}{
					map[string]interface{}{"title": "Third"},
				}},
			})
		default:
			t.Errorf("unexpected continuation %q", r.FormValue("blcontinue"))
		}
	})
	client := createMockClient(t, server)

	params := url.Values{}
	params.Set("list", "backlinks")
	params.Set("bltitle", "File:B")
	params.Set("bllimit", "max")

	var titles []string
	for page, err := range client.Query(context.Background(), params) {
		if err != nil {
			t.Fatalf("Query failed: %v", err)
		}
		titles = append(titles, page.Titles("backlinks")...)
	}

	if !reflect.DeepEqual(titles, []string{"First", "Second", "Third"}) {
		t.Errorf("titles = %v", titles)
	}
	if len(seen) != 2 {
		t.Fatalf("requests = %d, want 2", len(seen))
	}

	first, second := seen[0], seen[1]
	if first.Get("action") != "query" || first.Get("continue") != "" || !first.Has("continue") {
		t.Errorf("first request must be action=query with an empty continue: %v", first)
	}
	if second.Get("continue") != "-||" || second.Get("bltitle") != "File:B" || second.Get("bllimit") != "max" {
		t.Errorf("second request must merge the continue object into the original params: %v", second)
	}
	if params.Has("action") || params.Has("continue") {
		t.Error("Query must not modify the caller's params")
	}
}

func TestQuery_StopsOnError(t *testing.T) {
	calls := 0
	server := mockMediaWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			writeJSON(w, map[string]interface{}{
				"continue": map[string]interface{}{"cmcontinue": "page|2", "continue": "-||"},
				"query":    map[string]interface{}{"categorymembers": []interface{}{map[string]interface{}{"title": "A"}}},
			})
			return
		}
		writeJSON(w, map[string]interface{}{"error": map[string]interface{}{"code": "internal_api_error", "info": "boom"}})
	})
	client := createMockClient(t, server)

	params := url.Values{}
	params.Set("list", "categorymembers")

	var pages, errs int
	var lastErr error
	for _, err := range client.Query(context.Background(), params) {
		if err != nil {
			errs++
			lastErr = err
			continue
		}
		pages++
	}

	if pages != 1 || errs != 1 {
		t.Errorf("pages = %d, errors = %d; want 1 and 1", pages, errs)
	}
	var apiErr *APIError
	if !errors.As(lastErr, &apiErr) || apiErr.Code != "internal_api_error" {
		t.Errorf("expected APIError, got %v", lastErr)
	}
}

func TestQuery_EarlyBreak(t *testing.T) {
	calls := 0
	server := mockMediaWikiServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, map[string]interface{}{
			"continue": map[string]interface{}{"cmcontinue": "next", "continue": "-||"},
			"query":    map[string]interface{}{"categorymembers": []interface{}{}},
		})
	})
	client := createMockClient(t, server)

	for range client.Query(context.Background(), url.Values{"list": {"categorymembers"}}) {
		break
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestPage_Titles(t *testing.T) {
	page := Page{"query": map[string]interface{}{
		"imageusage": []interface{}{
			map[string]interface{}{"ns": float64(0), "title": "Main Page"},
			map[string]interface{}{"ns": float64(0)},
			map[string]interface{}{"ns": float64(2), "title": "User:Example"},
		},
	}}

	if got := page.Titles("imageusage"); !reflect.DeepEqual(got, []string{"Main Page", "User:Example"}) {
		t.Errorf("Titles = %v", got)
	}
	if got := page.Titles("backlinks"); len(got) != 0 {
		t.Errorf("missing list must yield no titles, got %v", got)
	}
	if got := (Page{}).Titles("backlinks"); len(got) != 0 {
		t.Errorf("empty page must yield no titles, got %v", got)
	}
}
