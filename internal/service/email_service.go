package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// EmailService sends backup exports via Amazon SES. With no from address
// configured the service is disabled and every send is a logged no-op.
type EmailService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewEmailService creates a new email service
func NewEmailService(awsRegion, fromEmail, fromName string) (*EmailService, error) {
	if fromEmail == "" {
		log.Println("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false}, nil
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := sesv2.NewFromConfig(cfg)
	log.Printf("Email service enabled: from=%s, region=%s", fromEmail, awsRegion)

	return &EmailService{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendBackupEmail sends a backup export as a JSON attachment
func (s *EmailService) SendBackupEmail(ctx context.Context, toEmail string, backupJSON []byte) error {
	if !s.enabled {
		log.Printf("Skipping email send (service disabled): backup to %s", toEmail)
		return nil
	}

	date := time.Now().Format("2006-01-02")
	subject := fmt.Sprintf("Foodie Friends backup %s", date)
	filename := fmt.Sprintf("foodiefriends-backup-%s.json", date)

	textBody := fmt.Sprintf(`Hi,

Attached is the Foodie Friends backup from %s. It contains the food catalog, the Hall of Fame scores, and the app settings.

To restore it, run:
  backup import %s

---
This is an automated email from Foodie Friends. Please do not reply.
`, date, filename)

	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	raw, err := buildRawEmail(fromAddress, toEmail, subject, textBody, filename, backupJSON)
	if err != nil {
		return fmt.Errorf("failed to build email: %w", err)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	}

	if _, err := s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	log.Printf("Backup email sent: to=%s, subject=%s", toEmail, subject)
	return nil
}
