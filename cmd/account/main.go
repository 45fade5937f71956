package main

import (
	"os"

	gookit "github.com/gookit/event"
	"go.morpionai.com/account/api/account"
	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/db"
	"go.morpionai.com/account/db/models"
	"go.morpionai.com/account/event"
	"go.morpionai.com/account/service"
	"go.uber.org/zap"
)

const exitCodeFailedStartup = 2

func main() {
	cfg, err := config.NewManager()
	if err != nil {
		core.NewLogger(nil).Fatal("Failed to load config", zap.Error(err))
	}
	logger := core.NewLogger(cfg)

	if err := cfg.Init(); err != nil {
		logger.Fatal("Failed to initialize config", zap.Error(err))
	}

	logger.SetLevelFromConfig()

	gdb, err := db.NewDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open database", zap.Error(err))
	}

	events := event.NewManager()

	mailer, err := service.NewMailerService(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize mailer", zap.Error(err))
	}

	users := service.NewUserService(cfg, gdb, logger)
	profiles := service.NewProfileService(cfg, gdb, logger)
	sessions := service.NewSessionService(cfg, gdb, logger, users, profiles)
	otp := service.NewOTPService(cfg, gdb, logger, users, mailer)
	google := service.NewGoogleVerifier(cfg, logger)
	storage := service.NewStorageService(cfg, logger)
	auth := service.NewAuthService(cfg, logger, users, profiles, sessions, otp, google, events)

	registerWelcomeMail(events, mailer, logger)

	httpService := service.NewHTTPService(cfg, logger)

	api := account.NewAccountAPI(cfg, logger, sessions, account.NewHttpHandler(cfg, logger, auth, otp, sessions, profiles, storage))
	if err := api.Configure(httpService.Router()); err != nil {
		logger.Fatal("Failed to configure API", zap.Error(err))
	}

	trapSignals(httpService, logger)

	if err := httpService.Serve(); err != nil {
		logger.Error("Failed to serve", zap.Error(err))
		os.Exit(exitCodeFailedStartup)
	}
}

// registerWelcomeMail sends the welcome mail off the request path. A send
// failure is logged, never propagated to registration.
func registerWelcomeMail(events *gookit.Manager, mailer core.MailerService, logger *core.Logger) {
	event.OnUserCreated(events, func(user *models.User, profile *models.Profile) error {
		go func() {
			err := mailer.TemplateSend(core.MAILER_TPL_WELCOME, core.MailerTemplateData{}, core.MailerTemplateData{
				"Username": profile.Username,
			}, user.Email)
			if err != nil {
				logger.Error("failed to send welcome mail", zap.String("email", user.Email), zap.Error(err))
			}
		}()
		return nil
	})
}
