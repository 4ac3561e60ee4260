package relay

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// ConfirmationSMS renders the appointment confirmation text: salutation,
// human-readable time, summary and reply instructions.
func ConfirmationSMS(name string, when time.Time, summary, brand string) string {
	return fmt.Sprintf(`Hi %s!

Your appointment has been confirmed for %s.

Details: %s

Reply CONFIRM to acknowledge or call us if you need to reschedule.

- %s Team`, name, FormatLong(when), summary, brand)
}

// BookingSMS renders the booking confirmation in the voice agent's voice.
func BookingSMS(name string, when time.Time, address, brand string) string {
	return fmt.Sprintf(
		"Hi %s, this is %s. We've got you scheduled for your visit on %s at %s. If you need to reschedule, just reply to this number.",
		name, brand, FormatLong(when), address,
	)
}

// ConfirmationEmail renders content-equivalent plain-text and HTML bodies for
// the appointment confirmation. Both carry the same facts: name, date, time,
// phone, summary and the calendar link when one exists.
func ConfirmationEmail(name string, when time.Time, phone, summary, calendarLink, brand string) (plain, htmlBody string) {
	date := FormatDate(when)
	clock := FormatClock(when)

	var sb strings.Builder
	fmt.Fprintf(&sb, `Hello %s,

This email confirms your appointment with %s.

Appointment Details:
--------------------------------
Date: %s
Time: %s
Phone: %s

Summary:
%s

--------------------------------

`, name, brand, date, clock, phone, summary)
	if calendarLink != "" {
		fmt.Fprintf(&sb, "View in Google Calendar: %s\n\n", calendarLink)
	}
	sb.WriteString(`If you need to reschedule or cancel, please contact us as soon as possible.

We look forward to speaking with you!

Best regards,
The ` + brand + ` Team

---
This is an automated confirmation. Please do not reply to this email.
`)
	plain = sb.String()

	linkBlock := ""
	if calendarLink != "" {
		linkBlock = fmt.Sprintf(`<p style="text-align: center;"><a href="%s" style="display: inline-block; background: #667eea; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px;">View in Google Calendar</a></p>`, html.EscapeString(calendarLink))
	}
	htmlBody = fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
<h2 style="color: #667eea;">Appointment Confirmed</h2>
<p>Hello <strong>%s</strong>,</p>
<p>This email confirms your appointment with %s.</p>
<table style="border-collapse: collapse; margin: 20px 0;">
  <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;"><strong>Date:</strong></td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>
  <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;"><strong>Time:</strong></td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;">%s</td></tr>
  <tr><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;"><strong>Phone:</strong></td><td style="padding: 8px; border-bottom: 1px solid #e5e7eb;"><a href="tel:%s">%s</a></td></tr>
</table>
<p style="background: #fff9e6; padding: 12px; border-radius: 8px; border-left: 4px solid #ffd966;">%s</p>
%s
<p>If you need to reschedule or cancel, please contact us as soon as possible.</p>
<p>We look forward to speaking with you!</p>
<p><strong>Best regards,</strong><br>The %s Team</p>
<p style="color: #6b7280; font-size: 12px; margin-top: 20px;">This is an automated confirmation. Please do not reply to this email.</p>
</div>`,
		html.EscapeString(name), html.EscapeString(brand),
		date, clock,
		html.EscapeString(phone), html.EscapeString(phone),
		html.EscapeString(summary),
		linkBlock,
		html.EscapeString(brand),
	)

	return plain, htmlBody
}
