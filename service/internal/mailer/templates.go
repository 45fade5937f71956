package mailer

import (
	"embed"
	"errors"
	"strings"
	"sync"
	"text/template"

	"go.morpionai.com/account/core"
)

const EMAIL_FS_PREFIX = "templates/"

//go:embed templates/*.tpl
var templateFS embed.FS

var _ core.MailerTemplate = (*EmailTemplate)(nil)

type EmailTemplate struct {
	subject *template.Template
	body    *template.Template
}

func (et *EmailTemplate) Subject() *template.Template {
	return et.subject
}

func (et *EmailTemplate) Body() *template.Template {
	return et.body
}

func NewMailerTemplate(subject *template.Template, body *template.Template) *EmailTemplate {
	return &EmailTemplate{
		subject: subject,
		body:    body,
	}
}

var ErrTemplateNotFound = errors.New("template not found")

type TemplateRegistry struct {
	templates   map[string]core.MailerTemplate
	templatesMu sync.RWMutex
}

func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]core.MailerTemplate),
	}
}

func (tr *TemplateRegistry) RegisterTemplate(name string, template core.MailerTemplate) {
	tr.templatesMu.Lock()
	defer tr.templatesMu.Unlock()
	tr.templates[name] = template
}

func (tr *TemplateRegistry) RenderTemplate(templateName string, subjectVars core.MailerTemplateData, bodyVars core.MailerTemplateData) (*Email, error) {
	tr.templatesMu.RLock()
	tmpl, ok := tr.templates[templateName]
	tr.templatesMu.RUnlock()
	if !ok {
		return nil, ErrTemplateNotFound
	}

	var subjectBuilder strings.Builder
	err := tmpl.Subject().Execute(&subjectBuilder, subjectVars)
	if err != nil {
		return nil, err
	}

	var bodyBuilder strings.Builder
	err = tmpl.Body().Execute(&bodyBuilder, bodyVars)
	if err != nil {
		return nil, err
	}

	return NewEmail(subjectBuilder.String(), bodyBuilder.String()), nil
}

// LoadTemplates registers every embedded <name>.subject.tpl /
// <name>.body.tpl pair.
func (tr *TemplateRegistry) LoadTemplates() error {
	entries, err := templateFS.ReadDir(strings.TrimSuffix(EMAIL_FS_PREFIX, "/"))
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".subject.tpl") {
			continue
		}

		base := strings.TrimSuffix(name, ".subject.tpl")

		subjectRaw, err := templateFS.ReadFile(EMAIL_FS_PREFIX + name)
		if err != nil {
			return err
		}

		bodyRaw, err := templateFS.ReadFile(EMAIL_FS_PREFIX + base + ".body.tpl")
		if err != nil {
			return err
		}

		subject, err := template.New(base + ".subject").Parse(string(subjectRaw))
		if err != nil {
			return err
		}

		body, err := template.New(base + ".body").Parse(string(bodyRaw))
		if err != nil {
			return err
		}

		tr.RegisterTemplate(base, NewMailerTemplate(subject, body))
	}

	return nil
}
