package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

const CommentNotification = "comment_notification"

var commentNotificationHTML = template.Must(template.New(CommentNotification).Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>New comment on {{.ProductTitle}}</h2>
    <p><strong>{{.CommenterName}}</strong> commented on your listing:</p>
    <blockquote style="border-left: 3px solid #ccc; padding-left: 12px; color: #555;">{{.Content}}</blockquote>
    <p style="color:#888; font-size:12px;">You receive this because you own this listing.</p>
  </body>
</html>`))

// Render returns subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case CommentNotification:
		var buf bytes.Buffer
		if err = commentNotificationHTML.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		subject = fmt.Sprintf("New comment on %v", data["ProductTitle"])
		text = fmt.Sprintf("%v commented on %v: %v", data["CommenterName"], data["ProductTitle"], data["Content"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown template %q", name)
	}
}
