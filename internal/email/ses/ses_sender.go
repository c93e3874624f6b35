package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"healthmon/internal/config"
	"healthmon/internal/domain"
	"healthmon/internal/port"
)

// SendEmailAPI is the subset of the SES v2 client the sender uses.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesSender struct {
	client      SendEmailAPI
	fromAddress string
	fromName    string
	frontendURL string
}

// NewSESSender creates an SES-backed EmailSender from the default AWS credential chain.
func NewSESSender(ctx context.Context, cfg config.EmailConfig) (port.EmailSender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return NewWithClient(sesv2.NewFromConfig(awsCfg), cfg), nil
}

// NewWithClient creates an EmailSender over an existing client.
func NewWithClient(client SendEmailAPI, cfg config.EmailConfig) port.EmailSender {
	return &sesSender{
		client:      client,
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		frontendURL: cfg.FrontendURL,
	}
}

func (s *sesSender) SendAlertEmail(ctx context.Context, toEmail, toName string, alert *domain.Alert) error {
	subject := Subject(alert)
	htmlBody := buildAlertHTML(toName, alert, s.frontendURL)
	textBody := buildAlertText(toName, alert, s.frontendURL)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// Subject formats the email subject line for an alert.
func Subject(alert *domain.Alert) string {
	return fmt.Sprintf("[%s] %s - %s", alert.Severity, alert.Title, alert.Village)
}

func buildAlertText(name string, alert *domain.Alert, frontendURL string) string {
	return fmt.Sprintf("Hi %s,\n\nA %s severity alert was raised for %s, %s district:\n\n%s\n%s\n\nReview it on the dashboard:\n%s/dashboard\n\nHealth Monitor",
		name, alert.Severity, alert.Village, alert.District, alert.Title, alert.Description, frontendURL)
}

func buildAlertHTML(name string, alert *domain.Alert, frontendURL string) string {
	link := html.EscapeString(frontendURL + "/dashboard")
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: %s;">%s</h2>
  <p>Hi %s,</p>
  <p>A <strong>%s</strong> severity alert was raised for %s, %s district.</p>
  <p>%s</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Open Dashboard</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Health Monitor - Community Health Surveillance</p>
</body>
</html>`,
		domain.RiskColor(domain.RiskLevel(alert.Severity)),
		html.EscapeString(alert.Title),
		html.EscapeString(name),
		html.EscapeString(string(alert.Severity)),
		html.EscapeString(alert.Village),
		html.EscapeString(alert.District),
		html.EscapeString(alert.Description),
		link,
	)
}
