package repository

import (
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	User         UserRepository
	Session      SessionRepository
	Activity     ActivityRepository
	Notification NotificationRepository
	Customer     CustomerRepository
	Task         TaskRepository
	Note         NoteRepository
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Session:      NewSessionRepository(db),
		Activity:     NewActivityRepository(db),
		Notification: NewNotificationRepository(db),
		Customer:     NewCustomerRepository(db),
		Task:         NewTaskRepository(db),
		Note:         NewNoteRepository(db),
	}
}
