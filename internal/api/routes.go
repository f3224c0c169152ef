// internal/api/routes.go
package api

// Backend route constants and builders. The path shapes are fixed by the
// remote API; keeping them in one place stops each service from spelling
// its own strings.
const (
	PathSendOTP   = "/send-otp"
	PathVerifyOTP = "/verify-otp"
	PathRegister  = "/register"
	PathProfile   = "/users/me"

	PathJobs         = "/jobs"
	PathProviderJobs = "/jobs/provider"
	PathMatchingJobs = "/jobs/matching"
	PathSearchJobs   = "/jobs/search"

	PathApplications       = "/applications"
	PathSeekerApplications = "/applications/seeker"

	PathNotifications        = "/notifications"
	PathNotificationsReadAll = "/notifications/read-all"

	PathAdminStats              = "/admin/stats"
	PathAdminUsers              = "/admin/users"
	PathAdminJobs               = "/admin/jobs"
	PathAdminNotifications      = "/admin/notifications"
	PathAdminNotificationStats  = "/admin/notifications/stats"
	PathAdminNotificationsRead  = "/admin/notifications/mark-all-read"
)

func PathJob(jobID string) string {
	return PathJobs + "/" + jobID
}

func PathCompleteJob(jobID string) string {
	return PathJob(jobID) + "/complete"
}

func PathJobApplications(jobID string) string {
	return PathApplications + "/job/" + jobID
}

func PathSelectApplicant(applicationID string) string {
	return PathApplications + "/" + applicationID + "/select"
}

func PathNotificationRead(notificationID string) string {
	return PathNotifications + "/" + notificationID + "/read"
}

func PathAdminUser(userID string) string {
	return PathAdminUsers + "/" + userID
}

func PathAdminJob(jobID string) string {
	return PathAdminJobs + "/" + jobID
}

func PathAdminNotification(notificationID string) string {
	return PathAdminNotifications + "/" + notificationID
}
