package notification

import (
	"bytes"
	"fmt"
	"text/template"
)

const (
	TemplateInvitationReceived   = "invitation_received"
	TemplateInvitationResponded  = "invitation_responded"
	TemplateInterviewScheduled   = "interview_scheduled"
	TemplateInterviewResponse    = "interview_response"
	TemplateInterviewRescheduled = "interview_rescheduled"
	TemplateInterviewCompleted   = "interview_completed"
	TemplateInterviewCancelled   = "interview_cancelled"
	TemplateApplicationReceived  = "application_received"
	TemplateApplicationUpdated   = "application_updated"
	TemplateOfferResponded       = "offer_responded"
	TemplateOnboardingStarted    = "onboarding_started"
	TemplateOnboardingUpdated    = "onboarding_updated"
	TemplateDocumentAdded        = "onboarding_document_added"
)

type mailTemplate struct {
	subject string
	body    *template.Template
}

func mustTemplate(name, subject, body string) mailTemplate {
	return mailTemplate{subject: subject, body: template.Must(template.New(name).Parse(body))}
}

var templates = map[string]mailTemplate{
	TemplateInvitationReceived: mustTemplate(TemplateInvitationReceived,
		"You have been invited to interview",
		"You were invited to the role {{.role_title}}.\n{{with .message}}\n{{.}}\n{{end}}"),
	TemplateInvitationResponded: mustTemplate(TemplateInvitationResponded,
		"A candidate responded to your invitation",
		"The invitation for {{.role_title}} was {{.status}}.\n{{with .response_text}}\n{{.}}\n{{end}}"),
	TemplateInterviewScheduled: mustTemplate(TemplateInterviewScheduled,
		"Interview scheduled",
		"Your interview for {{.role_title}} is scheduled at {{.scheduled_at}} ({{.mode}}, {{.duration_minutes}} minutes).\n{{with .meeting_details}}\n{{.}}\n{{end}}"),
	TemplateInterviewResponse: mustTemplate(TemplateInterviewResponse,
		"A candidate responded to an interview",
		"The candidate response for {{.role_title}} is {{.response}}.\n{{with .note}}\n{{.}}\n{{end}}"),
	TemplateInterviewRescheduled: mustTemplate(TemplateInterviewRescheduled,
		"Interview rescheduled",
		"Your interview for {{.role_title}} moved to {{.scheduled_at}}.\n"),
	TemplateInterviewCompleted: mustTemplate(TemplateInterviewCompleted,
		"Interview outcome",
		"The outcome of your interview for {{.role_title}} is {{.decision}}.\n{{with .joining_date}}Joining date: {{.}}\n{{end}}{{with .feedback}}\n{{.}}\n{{end}}"),
	TemplateInterviewCancelled: mustTemplate(TemplateInterviewCancelled,
		"Interview cancelled",
		"The interview for {{.role_title}} was cancelled.\n{{with .reason}}\n{{.}}\n{{end}}"),
	TemplateApplicationReceived: mustTemplate(TemplateApplicationReceived,
		"New application",
		"A candidate applied to {{.role_title}}.\n"),
	TemplateApplicationUpdated: mustTemplate(TemplateApplicationUpdated,
		"Application status updated",
		"Your application for {{.role_title}} is now {{.status}}.\n{{with .note}}\n{{.}}\n{{end}}"),
	TemplateOfferResponded: mustTemplate(TemplateOfferResponded,
		"A candidate responded to your offer",
		"The offer for {{.role_title}} was {{.status}}.\n"),
	TemplateOnboardingStarted: mustTemplate(TemplateOnboardingStarted,
		"Onboarding started",
		"Onboarding for {{.role_title}} has started.\n"),
	TemplateOnboardingUpdated: mustTemplate(TemplateOnboardingUpdated,
		"Onboarding updated",
		"Onboarding for {{.role_title}} is now {{.status}}.\n"),
	TemplateDocumentAdded: mustTemplate(TemplateDocumentAdded,
		"Onboarding document added",
		"A {{.document_type}} document ({{.document_name}}) was added to the onboarding for {{.role_title}}.\n"),
}

// Render returns the subject and plain-text body of msg.
func Render(msg Message) (string, string, error) {
	t, ok := templates[msg.Template]
	if !ok {
		return "", "", fmt.Errorf("unknown notification template %q", msg.Template)
	}
	var buf bytes.Buffer
	if err := t.body.Execute(&buf, msg.Data); err != nil {
		return "", "", fmt.Errorf("render %s: %w", msg.Template, err)
	}
	return t.subject, buf.String(), nil
}
