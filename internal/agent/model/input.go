package model

import (
	"strings"
	"time"
)

// RecommendRequest is the raw POST /recommend payload before validation.
type RecommendRequest struct {
	Mood     string `json:"mood"`
	Activity string `json:"activity"`
	Location string `json:"location"`
	Tags     string `json:"tags"`
}

// UserInput is the validated, parsed form of a recommendation request. Its
// JSON serialization is what the decision model sees.
type UserInput struct {
	Mood      string    `json:"mood"`
	Activity  string    `json:"activity"`
	Location  string    `json:"location,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ParseTags tokenizes a free-form tag string. Comma-delimited input is split
// on commas, anything else on whitespace; empty tokens are dropped and order
// is preserved.
func ParseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var tokens []string
	if strings.Contains(raw, ",") {
		tokens = strings.Split(raw, ",")
	} else {
		tokens = strings.Fields(raw)
	}

	tags := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// NewUserInput builds the validated input from trimmed request fields and
// stamps it at call time.
func NewUserInput(mood, activity, location string, tags []string) UserInput {
	return UserInput{
		Mood:      mood,
		Activity:  activity,
		Location:  location,
		Tags:      tags,
		Timestamp: time.Now().UTC(),
	}
}
