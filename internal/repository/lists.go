package repository

import "encoding/json"

// String-list columns (tags, menu items, attachments) are stored as JSON
// text.  MySQL JSON functions are deliberately avoided; the lists are tiny
// and any filtering happens in Go.

func encodeList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
