package provider

import (
	"reflect"
	"testing"
)

func TestParseGlossReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "plain JSON array",
			reply: `["ME", "STORE", "GO"]`,
			want:  []string{"ME", "STORE", "GO"},
		},
		{
			name:  "json fenced",
			reply: "```json\n[\"HELLO\", \"YOU\"]\n```",
			want:  []string{"HELLO", "YOU"},
		},
		{
			name:  "bare fence",
			reply: "```\n[\"YES\"]\n```",
			want:  []string{"YES"},
		},
		{
			name:  "comma list fallback",
			reply: "ME, STORE, GO",
			want:  []string{"ME", "STORE", "GO"},
		},
		{
			name:  "bracketed but not JSON",
			reply: "[ME, STORE, GO]",
			want:  []string{"ME", "STORE", "GO"},
		},
		{
			name:  "fallback uppercases and trims",
			reply: "me,  store ,go",
			want:  []string{"ME", "STORE", "GO"},
		},
		{
			name:  "empty tokens dropped",
			reply: "ME,,GO,",
			want:  []string{"ME", "GO"},
		},
		{
			name:  "single word",
			reply: "HELLO",
			want:  []string{"HELLO"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseGlossReply(tt.reply)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseGlossReply(%q) = %v, want %v", tt.reply, got, tt.want)
			}
		})
	}
}
