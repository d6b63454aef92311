package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	// PortalBaseURL prefixes the approve/reject links embedded in
	// approval request emails.
	PortalBaseURL string
}

type LeaveEmailData struct {
	EmployeeName string
	LeaveType    string
	FromDate     time.Time
	ToDate       time.Time
	Days         int
	Reason       string
	DecidedBy    string
	ApproveLink  string
	RejectLink   string
}

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock
type Mailer interface {
	SendLeaveApprovalRequest(data LeaveEmailData, approverEmails []string) error
	SendLeaveApproved(data LeaveEmailData, to string) error
	SendLeaveRejected(data LeaveEmailData, to string, reason string) error
	DecisionLink(token string) string
}

type mailer struct {
	cfg       SMTPConfig
	templates *template.Template
	logger    *zap.Logger
}

func NewMailer(cfg SMTPConfig) (Mailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &mailer{
		cfg:       cfg,
		templates: tmpl,
		logger:    zap.L().Named("mail"),
	}, nil
}

func (m *mailer) SendLeaveApprovalRequest(data LeaveEmailData, approverEmails []string) error {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, "leave_approval_request.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Leave approval needed: %s (%s)", data.EmployeeName, data.LeaveType)

	var lastErr error
	for _, to := range approverEmails {
		if err := m.sendHTML(to, subject, body.String()); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

func (m *mailer) SendLeaveApproved(data LeaveEmailData, to string) error {
	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, "leave_approved.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return m.sendHTML(to, "Your leave request has been approved", body.String())
}

func (m *mailer) SendLeaveRejected(data LeaveEmailData, to string, reason string) error {
	payload := data
	if reason != "" {
		payload.Reason = reason
	}

	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, "leave_rejected.html", payload); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return m.sendHTML(to, "Your leave request has been rejected", body.String())
}

// DecisionLink is the one-click approve/reject URL embedded in
// approval request emails. The token carries the decision.
func (m *mailer) DecisionLink(token string) string {
	return fmt.Sprintf("%s/api/v1/leaves/decision?token=%s", m.cfg.PortalBaseURL, token)
}

func (m *mailer) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if m.cfg.Host == "" {
		m.logger.Warn("SMTP not configured, skipping email send",
			zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	from := m.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", m.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			m.logger.Info("email sent",
				zap.String("to", to), zap.String("subject", subject), zap.Int("attempt", attempt))
			return nil
		}

		lastErr = err
		m.logger.Error("send email failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		// Exponential backoff: 1s, 2s, 4s
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
