package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/db/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixedConfig struct {
	root *config.Config
}

func (f *fixedConfig) Init() error            { return nil }
func (f *fixedConfig) Config() *config.Config { return f.root }
func (f *fixedConfig) ConfigFile() string     { return "" }

func newTestConfig() config.Manager {
	return &fixedConfig{
		root: &config.Config{
			Core: config.CoreConfig{
				Domain: "morpionai.test",
				Port:   5001,
				Log:    config.LogConfig{Level: "error"},
				Auth: config.AuthConfig{
					TokenSecret:     "test-secret",
					AccessTokenTTL:  15 * time.Minute,
					SessionLifetime: 90 * 24 * time.Hour,
					OTPTTL:          10 * time.Minute,
				},
				OAuth: config.OAuthConfig{
					Google: config.GoogleConfig{Timeout: time.Second},
				},
			},
		},
	}
}

func newTestLogger() *core.Logger {
	return core.NewLogger(newTestConfig())
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(models.GetModels()...))

	return gdb
}

// recordingMailer captures sends instead of dialing SMTP.
type recordingMailer struct {
	mu    sync.Mutex
	sends []recordedSend
	fail  error
}

type recordedSend struct {
	template string
	bodyVars core.MailerTemplateData
	to       string
}

func (m *recordingMailer) TemplateSend(template string, subjectVars core.MailerTemplateData, bodyVars core.MailerTemplateData, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.fail != nil {
		return m.fail
	}

	m.sends = append(m.sends, recordedSend{template: template, bodyVars: bodyVars, to: to})
	return nil
}

func (m *recordingMailer) TemplateRegister(name string, template core.MailerTemplate) error {
	return nil
}

func (m *recordingMailer) sent() []recordedSend {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]recordedSend(nil), m.sends...)
}
