package services

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

// matchesSearch does a case-insensitive substring match across the given
// fields and tags. Deliberately simple: there is no search index.
func matchesSearch(query string, name, text string, tags []string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(name), q) || strings.Contains(strings.ToLower(text), q) {
		return true
	}
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// tagsJSON splits a comma-separated tags field into a JSON array column
// value. Blank entries are dropped.
func tagsJSON(raw string) datatypes.JSON {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	b, _ := json.Marshal(tags)
	return datatypes.JSON(b)
}
