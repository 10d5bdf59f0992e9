package notification

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/kalendar/core"
)

var ErrNotFound = core.NewNotFoundError("notification")

type (
	Repository interface {
		CreateNotification(n Notification) (Notification, error)
		// QueryNotifications returns the notifications of recipient, newest first.
		QueryNotifications(recipient string) ([]Notification, error)
		GetNotificationByID(id string) (Notification, error)
		// MarkRead flags the given notifications of recipient as read (all of them when no id is given)
		// and returns how many changed.
		MarkRead(recipient string, ids ...string) (int, error)
		DeleteNotification(id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nn NewNotification) (Notification, error) {
	n := Notification{
		ID:        uuid.New().String(),
		Recipient: core.CleanPhone(nn.Recipient),
		Type:      nn.Type,
		Title:     nn.Title,
		Message:   nn.Message,
		Priority:  nn.Priority,
		CourseID:  nn.CourseID,
		CreatedAt: time.Now().UTC(),
	}
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	return svc.repo.CreateNotification(n)
}

// Invite records that phone was enrolled in a course.
func (svc *Service) Invite(phone, courseID, title, message string) (Notification, error) {
	return svc.Create(NewNotification{
		Recipient: phone,
		Type:      TypeInvite,
		Title:     title,
		Message:   message,
		Priority:  PriorityHigh,
		CourseID:  courseID,
	})
}

// Inbox lists the notifications of recipient with the unread count.
func (svc *Service) Inbox(recipient string) (Summary, error) {
	ns, err := svc.repo.QueryNotifications(core.CleanPhone(recipient))
	if err != nil {
		return Summary{}, err
	}
	if ns == nil {
		ns = []Notification{}
	}
	return Summary{Unread: UnreadCount(ns), Notifications: ns}, nil
}

// GetFor returns a notification only when it belongs to recipient.
func (svc *Service) GetFor(recipient, id string) (Notification, error) {
	n, err := svc.repo.GetNotificationByID(id)
	if err != nil {
		return Notification{}, err
	}
	if n.Recipient != core.CleanPhone(recipient) {
		return Notification{}, ErrNotFound
	}
	return n, nil
}

func (svc *Service) MarkAsRead(recipient, id string) (Notification, error) {
	if _, err := svc.GetFor(recipient, id); err != nil {
		return Notification{}, err
	}
	if _, err := svc.repo.MarkRead(core.CleanPhone(recipient), id); err != nil {
		return Notification{}, errors.Wrap(err, "marking notification read")
	}
	return svc.repo.GetNotificationByID(id)
}

// MarkAllAsRead flags every notification of recipient as read and returns how many changed.
func (svc *Service) MarkAllAsRead(recipient string) (int, error) {
	return svc.repo.MarkRead(core.CleanPhone(recipient))
}

func (svc *Service) Remove(recipient, id string) error {
	if _, err := svc.GetFor(recipient, id); err != nil {
		return err
	}
	return svc.repo.DeleteNotification(id)
}

// UnreadCount counts the unread notifications in ns.
func UnreadCount(ns []Notification) int {
	var n int
	for _, x := range ns {
		if !x.IsRead {
			n++
		}
	}
	return n
}
