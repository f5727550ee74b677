package mailer

// TemplateCommentNotification names the template rendered by the worker for
// comment notification jobs.
const TemplateCommentNotification = "comment_notification"

// EmailJob is the JSON payload put on the RabbitMQ queue by the API when a
// comment lands on someone's product. The worker renders and sends it.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "comment_notification"
	Data     map[string]any `json:"data,omitempty"`
}

// CommentNotification builds the job for a new comment on a product.
func CommentNotification(to, commenterName, productTitle, content string) EmailJob {
	return EmailJob{
		To:       to,
		Template: TemplateCommentNotification,
		Data: map[string]any{
			"CommenterName": commenterName,
			"ProductTitle":  productTitle,
			"Content":       content,
		},
	}
}
