package notification

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/kalendar/core"
)

type Type string

const (
	TypeReminder     Type = "reminder"
	TypeInvite       Type = "invite"
	TypeAnnouncement Type = "announcement"
	TypeSchedule     Type = "schedule"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Notification is an in-app message addressed to a phone number. Nothing is ever sent out.
type Notification struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Type      Type      `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Priority  Priority  `json:"priority"`
	IsRead    bool      `json:"is_read"`
	CourseID  string    `json:"course_id,omitempty"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

// NewNotification contains information needed to create a new Notification.
type NewNotification struct {
	Recipient string   `json:"recipient" validate:"required,phone"`
	Type      Type     `json:"type" validate:"required,oneof=reminder invite announcement schedule"`
	Title     string   `json:"title" validate:"required,notblank,max=120"`
	Message   string   `json:"message" validate:"max=500"`
	Priority  Priority `json:"priority" validate:"omitempty,oneof=low medium high"`
	CourseID  string   `json:"course_id"`
}

func (nn *NewNotification) Validate(validate *validator.Validate) error {
	nn.Recipient = core.CleanString(nn.Recipient)
	nn.Title = core.CleanString(nn.Title)
	nn.Message = core.CleanString(nn.Message)
	return validate.Struct(nn)
}

// Summary is a recipient's inbox.
type Summary struct {
	Unread        int            `json:"unread"`
	Notifications []Notification `json:"notifications"`
}
