package course

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/kalendar/core"
)

var (
	ErrStudentEnrolled    = errors.New("student is already enrolled in this course")
	ErrStudentNotEnrolled = core.NewNotFoundError("student enrolment")
)

// NotFoundError is returned when a course id matches no course.
type NotFoundError struct {
	ID string
}

func (err NotFoundError) Error() string { return fmt.Sprintf("course %q not found", err.ID) }
func (NotFoundError) NotFound() bool    { return true }

// IsNotFound reports whether the root cause of err is a missing course.
func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}

type (
	Repository interface {
		CreateCourse(c Course) (Course, error)
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		// UpdateCourse saves name, description and color of c. Students are left untouched.
		UpdateCourse(c Course) (Course, error)
		// AddCourseStudent appends phone to the students of course id.
		// It returns ErrStudentEnrolled when phone is already one of them.
		AddCourseStudent(id, phone string, at time.Time) (Course, error)
		// RemoveCourseStudent drops phone from the students of course id, keeping the order of the others.
		// It returns ErrStudentNotEnrolled when phone is not one of them.
		RemoveCourseStudent(id, phone string, at time.Time) (Course, error)
		DeleteCourse(id string) error
		// CoursesOfStudent returns the courses phone is enrolled in.
		CoursesOfStudent(phone string) ([]Course, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(nc NewCourse) (Course, error) {
	now := time.Now().UTC()
	c := Course{
		ID:          uuid.New().String(),
		Name:        nc.Name,
		Description: nc.Description,
		Color:       nc.Color,
		Students:    nc.Students,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if c.Color == "" {
		c.Color = DefaultColor
	}
	if c.Students == nil {
		c.Students = []string{}
	}
	return svc.repo.CreateCourse(c)
}

func (svc *Service) QueryAll() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) GetByID(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) OfStudent(phone string) ([]Course, error) {
	return svc.repo.CoursesOfStudent(core.CleanPhone(phone))
}

func (svc *Service) Update(id string, uc UpdateCourse) (Course, error) {
	c, err := svc.repo.GetCourseByID(id)
	if err != nil {
		return Course{}, err
	}
	c.Name = uc.Name
	if uc.Description != nil {
		c.Description = *uc.Description
	}
	c.Color = uc.Color
	c.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateCourse(c)
}

func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteCourse(id)
}

// AddStudent appends phone to the course's student list.
func (svc *Service) AddStudent(courseID, phone string) (Course, error) {
	c, err := svc.repo.AddCourseStudent(courseID, core.CleanPhone(phone), time.Now().UTC())
	switch {
	case err == nil:
		return c, nil
	case errors.Cause(err) == ErrStudentEnrolled:
		return Course{}, core.NewValidationError(
			ErrStudentEnrolled,
			core.FieldError{Field: "phone_number", Error: ErrStudentEnrolled.Error()},
		)
	default:
		return Course{}, errors.Wrap(err, "enrolling student")
	}
}

// RemoveStudent drops phone from the course's student list.
func (svc *Service) RemoveStudent(courseID, phone string) (Course, error) {
	c, err := svc.repo.RemoveCourseStudent(courseID, core.CleanPhone(phone), time.Now().UTC())
	if err != nil {
		if errors.Cause(err) == ErrStudentNotEnrolled {
			return Course{}, ErrStudentNotEnrolled
		}
		return Course{}, errors.Wrap(err, "unenrolling student")
	}
	return c, nil
}
