package user

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/kalendar/core"
)

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

var Roles = []Role{
	{Name: "Student", Value: RoleStudent},
	{Name: "Teacher", Value: RoleTeacher},
}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Profile is a person using the calendar, identified by their phone number.
type Profile struct {
	ID                string    `json:"id"`
	PhoneNumber       string    `json:"phone_number"`
	Name              string    `json:"name"`
	Role              string    `json:"role"`
	School            string    `json:"school"`
	Subjects          []string  `json:"subjects"`
	YearGrade         string    `json:"year_grade,omitempty"`
	PreferredLanguage string    `json:"preferred_language"`
	CreatedAt         time.Time `json:"created_at"` // UTC
	UpdatedAt         time.Time `json:"updated_at"` // UTC
	LastLogin         time.Time `json:"last_login"` // UTC
}

func (p Profile) IsTeacher() bool { return p.Role == RoleTeacher }
func (p Profile) IsStudent() bool { return p.Role == RoleStudent }

// DisplayName is the name when set, the phone number otherwise.
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.PhoneNumber
}

// NewProfile contains information needed to register a Profile ahead of its first login.
type NewProfile struct {
	PhoneNumber string   `json:"phone_number" validate:"required,phone"`
	Name        string   `json:"name" validate:"max=80"`
	Role        string   `json:"role" validate:"omitempty,oneof=student teacher"`
	School      string   `json:"school" validate:"max=120"`
	Subjects    []string `json:"subjects" validate:"omitempty,dive,notblank,max=60"`
	YearGrade   string   `json:"year_grade" validate:"max=20"`
	Language    string   `json:"preferred_language" validate:"omitempty,language"`
}

func (np *NewProfile) Validate(validate *validator.Validate) error {
	np.PhoneNumber = core.CleanString(np.PhoneNumber)
	np.Name = core.CleanString(np.Name)
	np.Role = core.CleanString(np.Role, true /* lower */)
	np.School = core.CleanString(np.School)
	np.Subjects = core.CleanStrings(np.Subjects)
	np.YearGrade = core.CleanString(np.YearGrade)
	np.Language = core.CleanString(np.Language, true /* lower */)
	return validate.Struct(np)
}

// UpdateProfile defines what information may be provided to modify an existing Profile.
// The phone number is the identity and cannot change.
type UpdateProfile struct {
	Name      string   `json:"name" validate:"max=80"`
	Role      string   `json:"role" validate:"omitempty,oneof=student teacher"`
	School    *string  `json:"school" validate:"omitempty,max=120"`
	Subjects  []string `json:"subjects" validate:"omitempty,dive,notblank,max=60"`
	YearGrade *string  `json:"year_grade" validate:"omitempty,max=20"`
}

func (up *UpdateProfile) Validate(orig Profile, validate *validator.Validate) error {
	if name := core.CleanString(up.Name); name != "" {
		up.Name = name
	} else {
		up.Name = orig.Name
	}
	if role := core.CleanString(up.Role, true /* lower */); role != "" {
		up.Role = role
	} else {
		up.Role = orig.Role
	}
	if up.School != nil {
		school := core.CleanString(*up.School)
		up.School = &school
	} else {
		up.School = &orig.School
	}
	if up.Subjects != nil {
		up.Subjects = core.CleanStrings(up.Subjects)
	} else {
		up.Subjects = orig.Subjects
	}
	if up.YearGrade != nil {
		grade := core.CleanString(*up.YearGrade)
		up.YearGrade = &grade
	} else {
		up.YearGrade = &orig.YearGrade
	}
	return validate.Struct(up)
}

// LanguagePreference is the explicit save of the UI language.
type LanguagePreference struct {
	Language string `json:"language" validate:"required,language"`
}

func (lp *LanguagePreference) Validate(validate *validator.Validate) error {
	lp.Language = core.CleanString(lp.Language, true /* lower */)
	return validate.Struct(lp)
}

type QueryFilter struct {
	Search        string `query:"search"`
	Role          string `query:"role"`
	ExcludeCourse string `query:"exclude_course"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Role = core.CleanString(qf.Role, true /* lower */)
	qf.ExcludeCourse = core.CleanString(qf.ExcludeCourse)
}
