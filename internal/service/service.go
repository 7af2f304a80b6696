package service

import (
	"github.com/redis/go-redis/v9"

	"crm-pulse/internal/config"
	"crm-pulse/internal/pkg/i18n"
	"crm-pulse/internal/repository"
	"crm-pulse/internal/service/activity"
	"crm-pulse/internal/service/auth"
	"crm-pulse/internal/service/customer"
	"crm-pulse/internal/service/dispatch"
	"crm-pulse/internal/service/email"
	"crm-pulse/internal/service/lead"
	"crm-pulse/internal/service/note"
	"crm-pulse/internal/service/notification"
	"crm-pulse/internal/service/session"
	"crm-pulse/internal/service/task"
	"crm-pulse/internal/service/user"
)

type Services struct {
	Session      session.Service
	Auth         auth.Service
	User         user.Service
	Activity     activity.Service
	Notification notification.Service
	Dispatch     dispatch.Service
	Customer     customer.Service
	Task         task.Service
	Lead         lead.Service
	Note         note.Service
	Email        email.Service
}

// NewServices wires every service. The dispatcher has no pusher until
// Dispatch.SetPusher is called with the realtime gateway.
func NewServices(repos *repository.Repositories, redis *redis.Client, catalog *i18n.Catalog, cfg *config.Config) *Services {
	emailService := email.NewService(cfg, catalog)
	sessionService := session.NewService(repos.Session, cfg.SessionTTL)
	authService := auth.NewService(repos.User, sessionService, emailService)
	userService := user.NewService(repos.User)

	activityService := activity.NewService(repos.Activity, repos.Customer)
	notificationService := notification.NewService(repos.Notification, repos.User, catalog, redis, notification.Options{
		Locale:   cfg.DefaultLocale,
		CacheTTL: cfg.UnreadCacheTTL,
	})
	dispatchService := dispatch.NewService(activityService, notificationService, nil, repos.User, emailService)

	return &Services{
		Session:      sessionService,
		Auth:         authService,
		User:         userService,
		Activity:     activityService,
		Notification: notificationService,
		Dispatch:     dispatchService,
		Customer:     customer.NewService(repos.Customer, repos.User, dispatchService),
		Task:         task.NewService(repos.Task, repos.Customer, repos.User, dispatchService),
		Lead:         lead.NewService(repos.Customer, dispatchService),
		Note:         note.NewService(repos.Note, repos.Customer, dispatchService),
		Email:        emailService,
	}
}
