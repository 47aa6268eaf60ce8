package relay

import (
	"fmt"
	"html"
	"strings"

	"github.com/invirogens/website/internal/schema"
)

const subjectPrefix = "[INVIROGENS Inquiry] "

func subject(msg schema.InsertContact) string {
	return subjectPrefix + msg.Subject
}

func company(msg schema.InsertContact) string {
	if msg.Company == nil || *msg.Company == "" {
		return "N/A"
	}
	return *msg.Company
}

func textBody(msg schema.InsertContact) string {
	return strings.Join([]string{
		"Name: " + msg.Name,
		"Email: " + msg.Email,
		"Company: " + company(msg),
		"Subject: " + msg.Subject,
		"",
		"Message:",
		msg.Message,
	}, "\n")
}

// htmlBody escapes every user supplied value.
func htmlBody(msg schema.InsertContact) string {
	e := html.EscapeString
	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.5;">
  <h2>New Inquiry Submission</h2>
  <p><strong>Name:</strong> %s</p>
  <p><strong>Email:</strong> %s</p>
  <p><strong>Company:</strong> %s</p>
  <p><strong>Subject:</strong> %s</p>
  <p><strong>Message:</strong></p>
  <p>%s</p>
</div>`,
		e(msg.Name), e(msg.Email), e(company(msg)), e(msg.Subject),
		strings.ReplaceAll(e(msg.Message), "\n", "<br/>"))
}
