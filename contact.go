package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"
)

var errSMTPNotConfigured = errors.New("SMTP credentials not configured")

// mailSender matches smtp.SendMail so tests can capture messages.
type mailSender func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

func (a *App) handleContact(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("fullName"))
	email := strings.TrimSpace(c.PostForm("email"))
	message := strings.TrimSpace(c.PostForm("message"))

	if name == "" || email == "" || message == "" {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, email and a message.",
		})
		return
	}

	if err := a.sendContactEmail(name, email, message); err != nil {
		log.Printf("Error sending email: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

func (a *App) sendContactEmail(name, email, message string) error {
	cfg := a.cfg.SMTP
	if cfg.User == "" || cfg.Pass == "" {
		return errSMTPNotConfigured
	}
	// Header injection: the reply-to and subject come from the form.
	if strings.ContainsAny(name+email, "\r\n") {
		return errors.New("invalid characters in contact form header fields")
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, message)

	msg := []byte("To: " + cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + cfg.User + "\r\n" +
		"Reply-To: " + email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	if err := a.sendMail(cfg.Host+":"+cfg.Port, auth, cfg.User, []string{cfg.To}, msg); err != nil {
		return err
	}

	log.Printf("Email sent successfully from %s (%s)", name, email)
	return nil
}
