package agents_test

import (
	"errors"
	"testing"

	"github.com/anuragsharanjuspay/jaf-agent-builder/internal/agents"
)

func TestStatusValidate(t *testing.T) {
	tests := []struct {
		status  agents.Status
		wantErr bool
	}{
		{agents.StatusDraft, false},
		{agents.StatusActive, false},
		{agents.StatusArchived, false},
		{agents.Status("published"), true},
		{agents.Status(""), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			err := tt.status.Validate()
			if tt.wantErr {
				if !errors.Is(err, agents.ErrInvalidStatus) {
					t.Errorf("Validate() = %v, want ErrInvalidStatus", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}
