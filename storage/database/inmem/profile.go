package inmemdb

import (
	"github.com/trezcool/kalendar/core/user"
)

type profileRepository struct {
	db *profileTable
}

var _ user.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(db *DB) user.Repository {
	return &profileRepository{db: db.profile}
}

func cloneProfile(p *user.Profile) user.Profile {
	out := *p
	out.Subjects = cloneStrings(p.Subjects)
	return out
}

func (repo *profileRepository) CreateProfile(p user.Profile) (user.Profile, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, row := range repo.db.rows {
		if row.PhoneNumber == p.PhoneNumber {
			return user.Profile{}, user.ErrPhoneExists
		}
	}
	row := cloneProfile(&p)
	repo.db.rows = append(repo.db.rows, &row)
	return p, nil
}

func (repo *profileRepository) QueryAllProfiles() ([]user.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	profiles := make([]user.Profile, 0, len(repo.db.rows))
	for _, p := range repo.db.rows {
		profiles = append(profiles, cloneProfile(p))
	}
	return profiles, nil
}

func (repo *profileRepository) GetProfileByID(id string) (user.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, p := range repo.db.rows {
		if p.ID == id {
			return cloneProfile(p), nil
		}
	}
	return user.Profile{}, user.ErrNotFound
}

func (repo *profileRepository) GetProfileByPhone(phone string) (user.Profile, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, p := range repo.db.rows {
		if p.PhoneNumber == phone {
			return cloneProfile(p), nil
		}
	}
	return user.Profile{}, user.ErrNotFound
}

func (repo *profileRepository) UpdateProfile(p user.Profile) (user.Profile, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, row := range repo.db.rows {
		if row.ID == p.ID {
			// the phone number is the identity and never changes
			row.Name = p.Name
			row.Role = p.Role
			row.School = p.School
			row.Subjects = cloneStrings(p.Subjects)
			row.YearGrade = p.YearGrade
			row.PreferredLanguage = p.PreferredLanguage
			row.UpdatedAt = p.UpdatedAt
			row.LastLogin = p.LastLogin
			return cloneProfile(row), nil
		}
	}
	return user.Profile{}, user.ErrNotFound
}
