package notifier

import (
	"bytes"
	"fmt"
	"html/template"
)

type emailTemplate struct {
	subject string
	body    *template.Template
}

const layoutTop = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
<div style="max-width: 600px; margin: 0 auto; padding: 20px;">`

const layoutBottom = `<hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
<p style="color: #999; font-size: 12px;">This is an automated email. Please do not reply.</p>
</div>
</body>
</html>`

func mustTemplate(name, inner string) *template.Template {
	return template.Must(template.New(name).Parse(layoutTop + inner + layoutBottom))
}

var templates = map[Kind]emailTemplate{
	KindInvitation: {
		subject: "Invitation to MSME Awards Platform",
		body: mustTemplate("invitation", `
<h2 style="color: #4a90e2;">You're Invited</h2>
<p>{{.adminName}} has invited you to join the MSME Awards adjudication platform as a <strong>{{.role}}</strong>.</p>
<div style="text-align: center; margin: 30px 0;">
<a href="{{.registrationUrl}}" style="background-color: #4a90e2; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">Complete Registration</a>
</div>
<p>If the button doesn't work, copy and paste this link into your browser:</p>
<p style="word-break: break-all; color: #4a90e2;">{{.registrationUrl}}</p>
<p>This registration link will expire in 24 hours.</p>`),
	},
	KindApplicationApproved: {
		subject: "Congratulations! Your MSME Award Application Has Been Approved",
		body: mustTemplate("application-approved", `
<h2 style="color: #2e7d32;">Congratulations, {{.applicantName}}!</h2>
<p>We are delighted to inform you that the application for <strong>{{.companyName}}</strong> has been approved by the adjudication panel.</p>
<p>Our team will contact you with details on the next steps of the awards process.</p>`),
	},
	KindApplicationRejected: {
		subject: "MSME Award Application Status Update",
		body: mustTemplate("application-rejected", `
<h2 style="color: #4a90e2;">Dear {{.applicantName}},</h2>
<p>Thank you for submitting an application on behalf of <strong>{{.companyName}}</strong>.</p>
<p>After careful consideration, the panel was unable to approve the application at this time.</p>
{{if .reason}}<p><strong>Feedback:</strong> {{.reason}}</p>{{end}}
<p>We encourage you to apply again in the next awards cycle.</p>`),
	},
	KindAccountApproved: {
		subject: "Your MSME Awards Account Has Been Approved!",
		body: mustTemplate("account-approved", `
<h2 style="color: #2e7d32;">Welcome aboard, {{.userName}}!</h2>
<p>Your account has been approved with the role of <strong>{{.userRole}}</strong>.</p>
<p>You can now sign in and access the platform.</p>`),
	},
	KindAccountRejected: {
		subject: "MSME Awards Account Application Status",
		body: mustTemplate("account-rejected", `
<h2 style="color: #4a90e2;">Dear {{.userName}},</h2>
<p>Unfortunately your account application was not approved.</p>
<p><strong>Reason:</strong> {{.rejectionReason}}</p>
<p>If you believe this is an error, please contact the administrators.</p>`),
	},
	KindAdminNewUserAlert: {
		subject: "New User Registration - Approval Required",
		body: mustTemplate("admin-new-user-alert", `
<h2 style="color: #4a90e2;">New Registration Pending Approval</h2>
<p>Hello {{.adminName}},</p>
<p>A new user has registered and is awaiting approval:</p>
<ul>
<li><strong>Name:</strong> {{.newUserName}}</li>
<li><strong>Email:</strong> {{.newUserEmail}}</li>
<li><strong>Requested role:</strong> {{.newUserRole}}</li>
<li><strong>Registered:</strong> {{.registrationDate}}</li>
</ul>
<p>Please review the application in the admin dashboard.</p>`),
	},
}

// Render produces the subject and HTML body for a message.
func Render(m Message) (subject, body string, err error) {
	tmpl, ok := templates[m.Kind]
	if !ok {
		return "", "", fmt.Errorf("unknown template kind %q", m.Kind)
	}
	var buf bytes.Buffer
	if err := tmpl.body.Execute(&buf, m.Data); err != nil {
		return "", "", fmt.Errorf("failed to render %q template: %w", m.Kind, err)
	}
	return tmpl.subject, buf.String(), nil
}
