package user

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/pkg/errors"

	"github.com/trezcool/kalendar/core"
)

var (
	// errors
	ErrNotFound     = core.NewNotFoundError("profile")
	ErrPhoneExists  = errors.New("a profile with this phone number already exists")
	ErrInvalidPhone = errors.New("invalid phone number")

	// minimum difflib ratio for a fuzzy search hit
	searchMinRatio = .7
)

type (
	Repository interface {
		CreateProfile(p Profile) (Profile, error)
		// QueryAllProfiles returns every profile in creation order.
		QueryAllProfiles() ([]Profile, error)
		GetProfileByID(id string) (Profile, error)
		GetProfileByPhone(phone string) (Profile, error)
		UpdateProfile(p Profile) (Profile, error)
	}

	Service struct {
		repo        Repository
		defaultLang string
	}
)

func NewService(repo Repository, conf *core.Config) *Service {
	return &Service{repo: repo, defaultLang: conf.Calendar.DefaultLanguage}
}

// Login returns the profile of phone, creating a student profile on first login.
func (svc *Service) Login(phone string) (Profile, error) {
	phone = core.CleanPhone(phone)
	if !core.IsPhone(phone) {
		return Profile{}, core.NewValidationError(
			ErrInvalidPhone,
			core.FieldError{Field: "phone_number", Error: ErrInvalidPhone.Error()},
		)
	}

	now := time.Now().UTC()
	p, err := svc.repo.GetProfileByPhone(phone)
	switch {
	case err == nil:
		p.LastLogin = now
		return svc.repo.UpdateProfile(p)
	case errors.Cause(err) == ErrNotFound:
		return svc.repo.CreateProfile(Profile{
			ID:                uuid.New().String(),
			PhoneNumber:       phone,
			Role:              RoleStudent,
			Subjects:          []string{},
			PreferredLanguage: svc.defaultLang,
			CreatedAt:         now,
			UpdatedAt:         now,
			LastLogin:         now,
		})
	default:
		return Profile{}, errors.Wrap(err, "finding profile by phone")
	}
}

// Register creates a profile ahead of its owner's first login.
func (svc *Service) Register(np NewProfile) (Profile, error) {
	phone := core.CleanPhone(np.PhoneNumber)
	if _, err := svc.repo.GetProfileByPhone(phone); err == nil {
		return Profile{}, core.NewValidationError(
			ErrPhoneExists,
			core.FieldError{Field: "phone_number", Error: ErrPhoneExists.Error()},
		)
	} else if errors.Cause(err) != ErrNotFound {
		return Profile{}, errors.Wrap(err, "finding profile by phone")
	}

	now := time.Now().UTC()
	p := Profile{
		ID:                uuid.New().String(),
		PhoneNumber:       phone,
		Name:              np.Name,
		Role:              np.Role,
		School:            np.School,
		Subjects:          np.Subjects,
		YearGrade:         np.YearGrade,
		PreferredLanguage: np.Language,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if p.Role == "" {
		p.Role = RoleStudent
	}
	if p.PreferredLanguage == "" {
		p.PreferredLanguage = svc.defaultLang
	}
	if p.Subjects == nil {
		p.Subjects = []string{}
	}
	return svc.repo.CreateProfile(p)
}

func (svc *Service) QueryAll() ([]Profile, error) {
	return svc.repo.QueryAllProfiles()
}

func (svc *Service) GetByID(id string) (Profile, error) {
	return svc.repo.GetProfileByID(id)
}

func (svc *Service) GetByPhone(phone string) (Profile, error) {
	return svc.repo.GetProfileByPhone(core.CleanPhone(phone))
}

func (svc *Service) Update(id string, up UpdateProfile) (Profile, error) {
	p, err := svc.repo.GetProfileByID(id)
	if err != nil {
		return Profile{}, err
	}
	p.Name = up.Name
	p.Role = up.Role
	if up.School != nil {
		p.School = *up.School
	}
	if up.Subjects != nil {
		p.Subjects = up.Subjects
	}
	if up.YearGrade != nil {
		p.YearGrade = *up.YearGrade
	}
	p.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateProfile(p)
}

// SetLanguage saves the preferred UI language of a profile.
func (svc *Service) SetLanguage(id, lang string) (Profile, error) {
	p, err := svc.repo.GetProfileByID(id)
	if err != nil {
		return Profile{}, err
	}
	p.PreferredLanguage = lang
	p.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateProfile(p)
}

// Search lists the profiles matching filter whose phone is not in exclude.
// The search term matches a name or phone number as a case-insensitive substring,
// or a name loosely (similarity ratio of at least searchMinRatio). Substring hits come first.
func (svc *Service) Search(filter QueryFilter, exclude ...string) ([]Profile, error) {
	all, err := svc.repo.QueryAllProfiles()
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(exclude))
	for _, phone := range exclude {
		excluded[core.CleanPhone(phone)] = true
	}

	type hit struct {
		p     Profile
		score float64
	}
	term := strings.ToLower(filter.Search)
	hits := make([]hit, 0, len(all))
	for _, p := range all {
		if excluded[p.PhoneNumber] || (filter.Role != "" && p.Role != filter.Role) {
			continue
		}
		if term == "" {
			hits = append(hits, hit{p: p, score: 1})
			continue
		}
		if score := matchScore(p, term); score > 0 {
			hits = append(hits, hit{p: p, score: score})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	profiles := make([]Profile, 0, len(hits))
	for _, h := range hits {
		profiles = append(profiles, h.p)
	}
	return profiles, nil
}

// matchScore is 2 for a substring hit, the similarity ratio for a loose name hit, 0 otherwise.
func matchScore(p Profile, term string) float64 {
	name := strings.ToLower(p.Name)
	phone := core.CleanPhone(term)
	if strings.Contains(name, term) || (phone != "" && strings.Contains(p.PhoneNumber, phone)) {
		return 2
	}
	if name == "" {
		return 0
	}
	ratio := difflib.NewMatcher(strings.Split(term, ""), strings.Split(name, "")).Ratio()
	if ratio >= searchMinRatio {
		return ratio
	}
	return 0
}
