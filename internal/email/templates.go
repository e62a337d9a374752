package email

import (
	"fmt"
	"html"
)

// BuildContactAckBody builds the HTML body acknowledging a contact message.
func BuildContactAckBody(name, subject string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 22px;">Thanks for reaching out, %s</h1>
	<p>We received your message regarding <strong>%s</strong> and will get back to you within one business day.</p>
	<p style="font-size: 12px; color: #999;">This email was sent automatically. Replies to it are not monitored.</p>
</body>
</html>`, html.EscapeString(name), html.EscapeString(subject))
}

// BuildContactNoticeBody builds the HTML body forwarded to the support inbox.
func BuildContactNoticeBody(name, fromEmail, subject, message string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 20px;">New contact message</h1>
	<p><strong>From:</strong> %s &lt;%s&gt;</p>
	<p><strong>Subject:</strong> %s</p>
	<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; white-space: pre-wrap;">%s</div>
</body>
</html>`, html.EscapeString(name), html.EscapeString(fromEmail), html.EscapeString(subject), html.EscapeString(message))
}

// BuildNewsletterWelcomeBody builds the HTML body for a new subscriber.
func BuildNewsletterWelcomeBody(email string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h1 style="font-size: 22px;">Welcome aboard</h1>
	<p>%s is now subscribed to our newsletter. Expect product news and the occasional offer, never spam.</p>
	<p style="font-size: 12px; color: #999;">If this wasn't you, reply to this email and we'll remove the address.</p>
</body>
</html>`, html.EscapeString(email))
}
