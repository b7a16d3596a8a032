package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// When Template is set the worker renders it with Data; otherwise Subject,
// Text and optional HTML are sent as-is.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // currently only "welcome"
	Data     map[string]any `json:"data,omitempty"`
}
