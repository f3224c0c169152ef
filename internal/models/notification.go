// internal/models/notification.go
package models

type NotificationType string

const (
	NotifNewApplication      NotificationType = "new-application"
	NotifJobSelected         NotificationType = "job-selected"
	NotifJobCompleted        NotificationType = "job-completed"
	NotifApplicationRejected NotificationType = "application-rejected"
	NotifNewMatchingJob      NotificationType = "new-matching-job"
	NotifPaymentSuccess      NotificationType = "payment-success"
)

// Notification is created server-side as a side effect of job and
// application mutations; the client only reads and marks read.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	UserName  string           `json:"userName,omitempty"`
	UserType  UserType         `json:"userType,omitempty"`
	Read      bool             `json:"read"`
	Timestamp string           `json:"timestamp,omitempty"`
	JobTitle  string           `json:"jobTitle,omitempty"`
}

// CountUnread recomputes the unread counter from the read flags alone.
func CountUnread(notifications []Notification) int {
	n := 0
	for i := range notifications {
		if !notifications[i].Read {
			n++
		}
	}
	return n
}
