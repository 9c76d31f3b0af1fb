package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "comma separated",
			raw:  "pop, upbeat, summer",
			want: []string{"pop", "upbeat", "summer"},
		},
		{
			name: "whitespace separated",
			raw:  "pop upbeat summer",
			want: []string{"pop", "upbeat", "summer"},
		},
		{
			name: "comma preferred over whitespace",
			raw:  "lo fi, study beats",
			want: []string{"lo fi", "study beats"},
		},
		{
			name: "empty tokens dropped",
			raw:  "pop,, , upbeat,",
			want: []string{"pop", "upbeat"},
		},
		{
			name: "order preserved",
			raw:  "c, a, b",
			want: []string{"c", "a", "b"},
		},
		{
			name: "empty input",
			raw:  "",
			want: nil,
		},
		{
			name: "whitespace only",
			raw:  "   ",
			want: nil,
		},
		{
			name: "only separators",
			raw:  ", ,",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.raw))
		})
	}
}

func TestNewUserInput(t *testing.T) {
	in := NewUserInput("happy", "running", "park", []string{"pop"})

	assert.Equal(t, "happy", in.Mood)
	assert.Equal(t, "running", in.Activity)
	assert.Equal(t, "park", in.Location)
	assert.Equal(t, []string{"pop"}, in.Tags)
	assert.False(t, in.Timestamp.IsZero())
}
