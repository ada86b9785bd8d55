package mail

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"gopkg.in/gomail.v2"
)

func NewEmailSender(host string, port int, user, password, notifyTo string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		NotifyTo: notifyTo,
	}
}

func (s *EmailSender) SendTransferNotice(oldUserID, newUserID, leadCount int64) error {
	data := TransferNoticeData{
		OldUserID: oldUserID,
		NewUserID: newUserID,
		LeadCount: leadCount,
	}

	tmplPath := filepath.Join("templates", "transfer_notice.html")
	t, err := template.ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("error reading email template: %w", err)
	}

	var body bytes.Buffer
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("error rendering email template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", "no-reply@restro-crm.io")
	m.SetHeader("To", s.NotifyTo)
	m.SetHeader("Subject", fmt.Sprintf("%d leads transferred to account manager %d", leadCount, newUserID))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("error sending SMTP email: %w", err)
	}

	return nil
}
