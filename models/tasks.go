package models

// EmailTaskPayload is the queued unit of email delivery. The worker loads it
// from the task queue and hands it to the SMTP sender.
type EmailTaskPayload struct {
	NotificationID string `json:"notificationId"`
	To             string `json:"to"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
}
