package services

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain json", `{"subtasks": []}`, `{"subtasks": []}`},
		{"json fence", "```json\n{\"subtasks\": []}\n```", `{"subtasks": []}`},
		{"bare fence", "```\n{\"subtasks\": []}\n```", `{"subtasks": []}`},
		{"surrounding whitespace", "  {\"subtasks\": []}  \n", `{"subtasks": []}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, stripCodeFences(tt.input))
		})
	}
}
