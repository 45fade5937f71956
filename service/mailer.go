package service

import (
	"strings"

	"github.com/wneessen/go-mail"
	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/service/internal/mailer"
)

var _ core.MailerService = (*MailerServiceDefault)(nil)

type MailerServiceDefault struct {
	config           config.Manager
	client           *mail.Client
	templateRegistry *mailer.TemplateRegistry
}

func NewMailerService(cm config.Manager) (*MailerServiceDefault, error) {
	registry := mailer.NewTemplateRegistry()
	if err := registry.LoadTemplates(); err != nil {
		return nil, err
	}

	var options []mail.Option

	mailCfg := cm.Config().Core.Mail

	if mailCfg.Port != 0 {
		options = append(options, mail.WithPort(mailCfg.Port))
	}

	if mailCfg.AuthType != "" {
		options = append(options, mail.WithSMTPAuth(mail.SMTPAuthType(strings.ToUpper(mailCfg.AuthType))))
	}

	if mailCfg.SSL {
		options = append(options, mail.WithSSLPort(true))
	}

	options = append(options, mail.WithUsername(mailCfg.Username))
	options = append(options, mail.WithPassword(mailCfg.Password))

	client, err := mail.NewClient(mailCfg.Host, options...)
	if err != nil {
		return nil, err
	}

	return &MailerServiceDefault{
		config:           cm,
		client:           client,
		templateRegistry: registry,
	}, nil
}

func (m *MailerServiceDefault) TemplateSend(template string, subjectVars core.MailerTemplateData, bodyVars core.MailerTemplateData, to string) error {
	email, err := m.templateRegistry.RenderTemplate(template, subjectVars, bodyVars)

	if err != nil {
		return err
	}

	email.SetFrom(m.config.Config().Core.Mail.From)
	email.SetTo(to)

	msg, err := email.ToMessage()
	if err != nil {
		return err
	}

	return m.client.DialAndSend(msg)
}

func (m *MailerServiceDefault) TemplateRegister(name string, template core.MailerTemplate) error {
	m.templateRegistry.RegisterTemplate(name, template)
	return nil
}
