// Package mailer sends question notification emails over SMTP
package mailer

import (
	"fmt"

	"github.com/dsareminder/backend/internal/models"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// Mailer sends question emails via an SMTP server
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *zap.Logger
}

// NewMailer creates a new SMTP mailer
func NewMailer(host string, port int, username, password, from string, logger *zap.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		logger:   logger,
	}
}

// SendQuestion sends the daily question email to a user
func (m *Mailer) SendQuestion(to, name string, problem models.Problem, link string) error {
	if name == "" {
		name = "Coding Enthusiast"
	}

	subject := fmt.Sprintf("Your Daily %s Challenge: %s", problem.Difficulty, problem.Title)
	body := buildQuestionBody(name, problem, link)

	if err := m.send(to, subject, body); err != nil {
		m.logger.Error("failed to send question email", zap.String("to", to), zap.Error(err))
		return err
	}

	m.logger.Info("question email sent", zap.String("to", to), zap.String("question", problem.Title))
	return nil
}

// send delivers a single HTML email using gopkg.in/mail.v2
func (m *Mailer) send(to, subject, body string) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	d := mail.NewDialer(m.host, m.port, m.username, m.password)
	if err := d.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// difficultyColor maps a difficulty label to its display color
func difficultyColor(difficulty string) string {
	switch difficulty {
	case "EASY", "Easy":
		return "green"
	case "MEDIUM", "Medium":
		return "orange"
	default:
		return "red"
	}
}

// buildQuestionBody renders the HTML body of the question email
func buildQuestionBody(name string, problem models.Problem, link string) string {
	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 5px;">
        <h2 style="color: #333;">Hello %s!</h2>
        <p>Here's your daily DSA challenge based on your preferences:</p>
        <div style="background-color: #f9f9f9; padding: 15px; border-radius: 5px; margin: 20px 0;">
          <h3 style="margin-top: 0; color: #2c3e50;">%s</h3>
          <p>Difficulty: <span style="font-weight: bold; color: %s;">%s</span></p>
          <a href="%s" style="display: inline-block; background-color: #3498db; color: white; text-decoration: none; padding: 10px 15px; border-radius: 4px; margin-top: 10px;">Solve Challenge</a>
        </div>
        <p>Consistent practice is key to mastering Data Structures and Algorithms. Keep up the great work!</p>
        <p style="color: #666; font-size: 0.9em; margin-top: 30px;">You received this email because you're subscribed to DSA Reminder. You can update your preferences in your profile settings.</p>
      </div>`,
		name,
		problem.Title,
		difficultyColor(problem.Difficulty),
		problem.Difficulty,
		link,
	)
}
