package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"crm-pulse/internal/config"
	"crm-pulse/internal/domain"
	"crm-pulse/internal/pkg/i18n"
)

//go:embed templates/*.html
var templates embed.FS

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, fullName, workspaceName string) error
	SendNotificationEmail(ctx context.Context, toEmail, recipientName string, notif *domain.Notification) error
}

type service struct {
	client  *resend.Client
	config  *config.Config
	catalog *i18n.Catalog
}

// NewService returns nil when no Resend API key is configured.
func NewService(cfg *config.Config, catalog *i18n.Catalog) Service {
	if cfg.ResendAPIKey == "" {
		return nil
	}
	return &service{
		client:  resend.NewClient(cfg.ResendAPIKey),
		config:  cfg,
		catalog: catalog,
	}
}

func render(templateName string, data any) (string, error) {
	tmpl, err := template.ParseFS(templates, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(ctx context.Context, toEmail, subject, templateName string, data any) error {
	html, err := render(templateName, data)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("CRM <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err = s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, fullName, workspaceName string) error {
	data := struct {
		Title     string
		Name      string
		Workspace string
		Link      string
	}{
		Title:     "Welcome to CRM",
		Name:      fullName,
		Workspace: workspaceName,
		Link:      s.config.AppURL + "/login",
	}
	return s.sendEmail(ctx, toEmail, "Welcome to CRM", "welcome.html", data)
}

func (s *service) SendNotificationEmail(ctx context.Context, toEmail, recipientName string, notif *domain.Notification) error {
	locale := s.config.DefaultLocale
	data := struct {
		Title     string
		Greeting  string
		Message   string
		Link      string
		LinkLabel string
	}{
		Title:     notif.Title,
		Greeting:  s.catalog.Render(locale, "EMAIL.greeting", map[string]string{"name": recipientName}),
		Message:   notif.Message,
		Link:      s.config.AppURL + "/notifications",
		LinkLabel: s.catalog.Translate(locale, "EMAIL.open"),
	}
	return s.sendEmail(ctx, toEmail, notif.Title, "notification.html", data)
}
