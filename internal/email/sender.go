// Package email delivers rendered notifications over SMTP. Gmail with an
// app password is the expected relay, per the site's deployment.
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/itwasdom/portfolio-service/config"
	"github.com/itwasdom/portfolio-service/internal/model"
)

var emailsSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "portfolio",
	Subsystem: "email",
	Name:      "sent_total",
	Help:      "Emails handed to the SMTP relay, by kind.",
}, []string{"kind"})

type Sender struct {
	cfg         config.SMTP
	adminEmail  string
	siteBaseURL string
}

func NewSender(cfg config.SMTP, adminEmail, siteBaseURL string) *Sender {
	return &Sender{
		cfg:         cfg,
		adminEmail:  adminEmail,
		siteBaseURL: strings.TrimRight(siteBaseURL, "/"),
	}
}

func (s *Sender) SendPinEmail(_ context.Context, email string, pin string) error {
	return s.deliver(model.ResetPinEmailKind, email, "Password Reset PIN Request", messageData{
		Title:  "Reset Your Password",
		Intro:  "You requested a password reset. Enter the following PIN on the reset page to continue:",
		Pin:    pin,
		Detail: "This PIN expires in 15 minutes.",
		Footer: "If you did not request this, you can ignore this email.",
	})
}

func (s *Sender) SendResetLinkEmail(_ context.Context, email string, link string) error {
	return s.deliver(model.ResetLinkEmailKind, email, "Password Reset Request", messageData{
		Title:    "Reset Your Password",
		Intro:    "You requested a password reset. Click the link below to set a new password:",
		LinkURL:  link,
		LinkText: "Reset Password",
		Footer:   "If you did not request this, you can ignore this email.",
	})
}

func (s *Sender) SendLikeEmail(_ context.Context, actorName, actorEmail, photoID string) error {
	return s.deliver(model.LikeEmailKind, s.adminEmail, "New Like on Your Portfolio!", messageData{
		Title:    "You've Got a New Like!",
		Intro:    fmt.Sprintf("%s (%s) just liked your photo!", actorName, actorEmail),
		Detail:   "Photo ID: " + photoID,
		LinkURL:  s.siteBaseURL + "/portfolio/feed.html",
		LinkText: "View Your Portfolio",
		Footer:   "Keep creating amazing content!",
	})
}

func (s *Sender) SendFollowEmail(_ context.Context, actorName, actorEmail string) error {
	return s.deliver(model.FollowEmailKind, s.adminEmail, "New Follower Alert!", messageData{
		Title:    "You Have a New Follower!",
		Intro:    fmt.Sprintf("%s (%s) started following you!", actorName, actorEmail),
		LinkURL:  s.siteBaseURL + "/portfolio/feed.html",
		LinkText: "View Your Portfolio",
		Footer:   "Your follower count is growing!",
	})
}

func (s *Sender) deliver(kind model.EmailKind, to, subject string, data messageData) error {
	data.Brand = s.cfg.FromName
	html, err := renderMessage(data)
	if err != nil {
		return err
	}
	if err := s.send(to, subject, html); err != nil {
		return err
	}
	emailsSent.WithLabelValues(string(kind)).Inc()
	return nil
}

func renderMessage(data messageData) (string, error) {
	var buf bytes.Buffer
	if err := layoutTpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// send pushes one HTML message through the relay, upgrading to TLS with
// STARTTLS. Plaintext submission is refused.
func (s *Sender) send(to, subject, htmlBody string) error {
	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = msg.WriteString(fmt.Sprintf(format, a...)) }

	write("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From)
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", subject)
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: text/html; charset=UTF-8\r\n")
	write("\r\n")
	write("%s\r\n", htmlBody)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	dialer := &net.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.Dial("tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if ok, _ := c.Extension("STARTTLS"); !ok {
		return fmt.Errorf("smtp server %s does not support STARTTLS", s.cfg.Host)
	}
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
	if err = c.StartTLS(tlsCfg); err != nil {
		return err
	}

	if err = c.Auth(auth); err != nil {
		return err
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg.Bytes()); err != nil {
		return err
	}
	return w.Close()
}
