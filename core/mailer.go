package core

import (
	"text/template"
)

const MAILER_TPL_OTP_CODE = "otp_code"
const MAILER_TPL_WELCOME = "welcome"

type MailerTemplateData = map[string]any

type MailerTemplate interface {
	Subject() *template.Template
	Body() *template.Template
}

type MailerService interface {
	TemplateSend(template string, subjectVars MailerTemplateData, bodyVars MailerTemplateData, to string) error
	TemplateRegister(name string, template MailerTemplate) error
}
