package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"studyflow-backend/internal/models"
)

type EmailService struct {
	host        string
	port        string
	user        string
	pass        string
	from        string
	frontendURL string
	devMode     bool
}

func NewEmailService(host, port, user, pass, from, frontendURL string) *EmailService {
	devMode := host == "" || user == ""
	if devMode {
		log.Println("⚠ Email service running in DEV MODE (logging to console)")
	}
	return &EmailService{
		host:        host,
		port:        port,
		user:        user,
		pass:        pass,
		from:        from,
		frontendURL: frontendURL,
		devMode:     devMode,
	}
}

// SendPlanReminder nudges a student who has not composed tomorrow's plan.
// tomorrowClasses may be empty for a free day.
func (s *EmailService) SendPlanReminder(to, fullName, date string, tomorrowClasses []models.Course) error {
	planURL := fmt.Sprintf("%s/planner?date=%s", s.frontendURL, date)

	classList := ""
	if len(tomorrowClasses) > 0 {
		var items strings.Builder
		for _, c := range tomorrowClasses {
			fmt.Fprintf(&items, `<li style="margin: 4px 0;">%s</li>`, c.Name)
		}
		classList = fmt.Sprintf(`
      <p style="color: #64748b; font-size: 14px; margin: 0 0 8px;">Classes tomorrow:</p>
      <ul style="color: #1e293b; font-size: 14px; margin: 0 0 24px; padding-left: 20px;">%s</ul>`, items.String())
	}

	subject := fmt.Sprintf("Plan your day for %s", date)
	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 0; background-color: #f8fafc;">
  <div style="max-width: 480px; margin: 40px auto; background: white; border-radius: 12px; box-shadow: 0 4px 24px rgba(0,0,0,0.08); overflow: hidden;">
    <div style="background: linear-gradient(135deg, #6366f1 0%%, #8b5cf6 100%%); padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 24px; font-weight: 700;">StudyFlow</h1>
      <p style="color: rgba(255,255,255,0.85); margin: 8px 0 0; font-size: 14px;">Plan. Focus. Finish.</p>
    </div>
    <div style="padding: 32px;">
      <h2 style="margin: 0 0 16px; font-size: 20px; color: #1e293b;">Hi %s</h2>
      <p style="color: #64748b; font-size: 14px; line-height: 1.6; margin: 0 0 24px;">
        You haven't planned %s yet. A few minutes tonight saves a scattered morning.
      </p>%s
      <a href="%s" style="display: inline-block; background: #6366f1; color: white; text-decoration: none; padding: 12px 32px; border-radius: 8px; font-weight: 600; font-size: 14px;">
        Compose Tomorrow's Plan
      </a>
      <p style="color: #94a3b8; font-size: 12px; margin: 24px 0 0;">
        You can turn these reminders off in your profile settings.
      </p>
    </div>
  </div>
</body>
</html>`, fullName, date, classList, planURL)

	return s.sendHTML(to, subject, body)
}

func (s *EmailService) sendHTML(to, subject, body string) error {
	if s.devMode {
		log.Printf("📧 [DEV MODE] Email to %s: %s", to, subject)
		return nil
	}

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := s.host + ":" + s.port

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg)); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return err
	}
	return nil
}
