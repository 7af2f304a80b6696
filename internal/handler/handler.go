package handler

import "crm-pulse/internal/service"

type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Notification *NotificationHandler
	Customer     *CustomerHandler
	Task         *TaskHandler
	Lead         *LeadHandler
	Note         *NoteHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         NewAuthHandler(services.Auth),
		User:         NewUserHandler(services.User),
		Notification: NewNotificationHandler(services.Notification),
		Customer:     NewCustomerHandler(services.Customer, services.Activity),
		Task:         NewTaskHandler(services.Task),
		Lead:         NewLeadHandler(services.Lead),
		Note:         NewNoteHandler(services.Note),
	}
}
