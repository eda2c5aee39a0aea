package mail

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
	"time"

	"frontdesk/internal/intake"
)

// bodyData feeds both the plain-text and HTML templates so the two
// representations never diverge.
type bodyData struct {
	Name         string
	Date         string
	Time         string
	Phone        string
	Summary      string
	CalendarLink string
}

var textBody = texttemplate.Must(texttemplate.New("text").Parse(`Hello {{.Name}},

This email confirms your appointment with Maxi.

Appointment Details:
--------------------------------
Date: {{.Date}}
Time: {{.Time}}
Phone: {{.Phone}}

Summary:
{{.Summary}}

--------------------------------

{{if .CalendarLink}}View in Google Calendar: {{.CalendarLink}}

{{end}}If you need to reschedule or cancel, please contact us as soon as possible.

We look forward to speaking with you!

Best regards,
The Maxi Team

---
This is an automated confirmation. Please do not reply to this email.
`))

var htmlBody = htmltemplate.Must(htmltemplate.New("html").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
.header { background: #667eea; color: white; padding: 30px; text-align: center; border-radius: 10px 10px 0 0; }
.content { background: #ffffff; padding: 30px; border: 1px solid #e0e0e0; border-top: none; }
.details { background: #f8f9fa; border-left: 4px solid #667eea; padding: 20px; margin: 20px 0; border-radius: 5px; }
.summary { background: #fff9e6; border: 1px solid #ffd966; padding: 15px; margin: 20px 0; border-radius: 5px; }
.button { display: inline-block; background: #667eea; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; margin: 20px 0; }
.footer { background: #f8f9fa; padding: 20px; text-align: center; color: #666; font-size: 12px; border-radius: 0 0 10px 10px; border: 1px solid #e0e0e0; border-top: none; }
</style>
</head>
<body>
<div class="header"><h1>Appointment Confirmed</h1></div>
<div class="content">
<p>Hello <strong>{{.Name}}</strong>,</p>
<p>This email confirms your appointment with Maxi.</p>
<div class="details">
<h3>Appointment Details</h3>
<p>Date: {{.Date}}<br>
Time: {{.Time}}<br>
Phone: {{.Phone}}</p>
</div>
<div class="summary">
<h4>Summary</h4>
<p>{{.Summary}}</p>
</div>
{{if .CalendarLink}}<div style="text-align: center;">
<a href="{{.CalendarLink}}" class="button">View in Google Calendar</a>
</div>
{{end}}<p>If you need to reschedule or cancel, please contact us as soon as possible.</p>
<p>We look forward to speaking with you!</p>
<p><strong>Best regards,</strong><br>The Maxi Team</p>
</div>
<div class="footer">This is an automated confirmation. Please do not reply to this email.</div>
</body>
</html>
`))

// RenderBodies produces the plain-text and HTML confirmation bodies from
// the same field set. The appointment time is rendered in the business
// display timezone.
func RenderBodies(intent intake.Intent, calendarLink string, location *time.Location) (string, string, error) {
	local := intent.ScheduledAt.In(location)
	data := bodyData{
		Name:         intent.CustomerName,
		Date:         local.Format("Monday, January 2, 2006"),
		Time:         local.Format("3:04 PM MST"),
		Phone:        intent.CallerPhone,
		Summary:      intent.Summary,
		CalendarLink: calendarLink,
	}

	var text strings.Builder
	if err := textBody.Execute(&text, data); err != nil {
		return "", "", err
	}
	var html strings.Builder
	if err := htmlBody.Execute(&html, data); err != nil {
		return "", "", err
	}
	return text.String(), html.String(), nil
}
