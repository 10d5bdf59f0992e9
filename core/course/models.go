package course

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/kalendar/core"
)

const DefaultColor = "#3B82F6"

// Palette lists the colors offered when creating a course.
var Palette = []string{
	"#3B82F6", // blue
	"#10B981", // green
	"#F59E0B", // amber
	"#EF4444", // red
	"#8B5CF6", // violet
	"#F97316", // orange
	"#06B6D4", // cyan
	"#84CC16", // lime
}

type Course struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Students    []string  `json:"students"` // phone numbers, in enrolment order
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasStudent reports whether phone is enrolled.
func (c Course) HasStudent(phone string) bool {
	phone = core.CleanPhone(phone)
	for _, s := range c.Students {
		if s == phone {
			return true
		}
	}
	return false
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Name        string   `json:"name" validate:"required,notblank,max=80"`
	Description string   `json:"description" validate:"max=500"`
	Color       string   `json:"color" validate:"omitempty,hexcolor"`
	Students    []string `json:"students" validate:"omitempty,dive,phone"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Name = core.CleanString(nc.Name)
	nc.Description = core.CleanString(nc.Description)
	nc.Color = core.CleanString(nc.Color)
	if nc.Color == "" {
		nc.Color = DefaultColor
	}
	nc.Students = uniquePhones(core.CleanStrings(nc.Students))
	return validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
// Students are managed through Service.AddStudent and Service.RemoveStudent.
type UpdateCourse struct {
	Name        string  `json:"name" validate:"omitempty,notblank,max=80"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       string  `json:"color" validate:"omitempty,hexcolor"`
}

func (uc *UpdateCourse) Validate(orig Course, validate *validator.Validate) error {
	if name := core.CleanString(uc.Name); name != "" {
		uc.Name = name
	} else {
		uc.Name = orig.Name
	}
	if uc.Description != nil {
		desc := core.CleanString(*uc.Description)
		uc.Description = &desc
	} else {
		uc.Description = &orig.Description
	}
	if color := core.CleanString(uc.Color); color != "" {
		uc.Color = color
	} else {
		uc.Color = orig.Color
	}
	return validate.Struct(uc)
}

// Enrolment names a student to add to a course.
type Enrolment struct {
	PhoneNumber string `json:"phone_number" validate:"required,phone"`
}

func (e *Enrolment) Validate(validate *validator.Validate) error {
	e.PhoneNumber = core.CleanString(e.PhoneNumber)
	return validate.Struct(e)
}

// uniquePhones cleans phone numbers and drops repeats, keeping the first occurrence.
func uniquePhones(phones []string) []string {
	seen := make(map[string]bool, len(phones))
	out := make([]string, 0, len(phones))
	for _, p := range phones {
		p = core.CleanPhone(p)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
