package wiki

import "fmt"

// Page is one response batch of a continued query
type Page map[string]interface{}

// Titles returns the "title" of every entry under query.<list>, in response order.
func (p Page) Titles(list string) []string {
	entries := getSlice(getMap(p["query"])[list])
	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		if title := getString(getMap(e)["title"]); title != "" {
			titles = append(titles, title)
		}
	}
	return titles
}

// DeleteResult describes a completed deletion
type DeleteResult struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
	LogID  int    `json:"log_id,omitempty"`
}

func getMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

func getSlice(v interface{}) []interface{} {
	s, _ := v.([]interface{})
	return s
}

func getString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

func getInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}
