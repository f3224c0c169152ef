// internal/models/application_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayState(t *testing.T) {
	openJob := &Job{ID: "job-1", Status: JobOpen}
	assignedJob := &Job{ID: "job-1", Status: JobAssigned}

	tests := []struct {
		name     string
		job      *Job
		app      *Application
		expected ApplicationDisplay
	}{
		{
			name:     "selected application always reads selected",
			job:      assignedJob,
			app:      &Application{Status: ApplicationSelected},
			expected: DisplaySelected,
		},
		{
			name:     "pending application on assigned job reads not selected",
			job:      assignedJob,
			app:      &Application{Status: ApplicationPending},
			expected: DisplayNotSelected,
		},
		{
			name:     "rejected application on assigned job reads not selected",
			job:      assignedJob,
			app:      &Application{Status: ApplicationRejected},
			expected: DisplayNotSelected,
		},
		{
			name:     "pending application on open job stays pending",
			job:      openJob,
			app:      &Application{Status: ApplicationPending},
			expected: DisplayPending,
		},
		{
			name:     "missing job defaults to pending",
			job:      nil,
			app:      &Application{Status: ApplicationPending},
			expected: DisplayPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DisplayState(tt.job, tt.app))
		})
	}
}

func TestCountUnread(t *testing.T) {
	assert.Equal(t, 0, CountUnread(nil))
	assert.Equal(t, 2, CountUnread([]Notification{
		{ID: "1", Read: false},
		{ID: "2", Read: true},
		{ID: "3", Read: false},
	}))
}
