package event

import (
	gookit "github.com/gookit/event"
	"go.morpionai.com/account/db/models"
)

const EVENT_USER_CREATED = "user.created"

// NewManager returns the process-wide event manager. Constructed once at
// startup and passed to the services that fire or listen.
func NewManager() *gookit.Manager {
	return gookit.NewManager("account")
}

// FireUserCreated announces a freshly registered account. Listener failures
// surface to the firer, which treats them as best-effort.
func FireUserCreated(mgr *gookit.Manager, user *models.User, profile *models.Profile) error {
	err, _ := mgr.Fire(EVENT_USER_CREATED, gookit.M{
		"user":    user,
		"profile": profile,
	})
	return err
}

// OnUserCreated registers a listener for new accounts.
func OnUserCreated(mgr *gookit.Manager, fn func(user *models.User, profile *models.Profile) error) {
	mgr.On(EVENT_USER_CREATED, gookit.ListenerFunc(func(e gookit.Event) error {
		user, _ := e.Get("user").(*models.User)
		profile, _ := e.Get("profile").(*models.Profile)
		return fn(user, profile)
	}))
}
