// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// JoinRequestEmailData holds data for the pending-join-request email sent
// to a group owner.
type JoinRequestEmailData struct {
	SiteName   string
	GroupName  string
	Requester  string
	RequestRef string
	ReviewURL  string
}

// BuildJoinRequestEmail creates the owner notification with both HTML and
// text bodies. The caller sets To.
func BuildJoinRequestEmail(data JoinRequestEmailData) Email {
	return Email{
		Subject:  fmt.Sprintf("%s wants to join %s", data.Requester, data.GroupName),
		TextBody: buildJoinRequestText(data),
		HTMLBody: buildJoinRequestHTML(data),
	}
}

func buildJoinRequestText(data JoinRequestEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("%s has asked to join your group %q.\n\n", data.Requester, data.GroupName))
	buf.WriteString(fmt.Sprintf("Request reference: %s\n\n", data.RequestRef))
	if data.ReviewURL != "" {
		buf.WriteString("Review pending requests here:\n")
		buf.WriteString(data.ReviewURL + "\n\n")
	}
	buf.WriteString("The request stays pending until you approve or reject it.\n")
	return buf.String()
}

func buildJoinRequestHTML(data JoinRequestEmailData) string {
	tmpl := template.Must(template.New("joinrequest").Parse(joinRequestHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const joinRequestHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Pending Join Request</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px;">
              <p style="margin: 0 0 16px; font-size: 16px; color: #111827;">
                <strong>{{.Requester}}</strong> has asked to join your group
                <strong>{{.GroupName}}</strong>.
              </p>
              <p style="margin: 0 0 16px; font-size: 14px; color: #6b7280;">
                Request reference: <code>{{.RequestRef}}</code>
              </p>
              {{if .ReviewURL}}
              <p style="margin: 0 0 16px; text-align: center;">
                <a href="{{.ReviewURL}}" style="display: inline-block; padding: 12px 24px; background-color: #4f46e5; color: #ffffff; text-decoration: none; border-radius: 6px; font-size: 14px; font-weight: 600;">Review requests</a>
              </p>
              {{end}}
              <p style="margin: 0; font-size: 14px; color: #6b7280;">
                The request stays pending until you approve or reject it.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
