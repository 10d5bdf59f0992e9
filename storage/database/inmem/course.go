package inmemdb

import (
	"time"

	"github.com/trezcool/kalendar/core/course"
)

type courseRepository struct {
	db *courseTable
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db.course}
}

func cloneCourse(c *course.Course) course.Course {
	out := *c
	out.Students = cloneStrings(c.Students)
	return out
}

func (repo *courseRepository) find(id string) (int, bool) {
	for i, c := range repo.db.rows {
		if c.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (repo *courseRepository) CreateCourse(c course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	row := cloneCourse(&c)
	repo.db.rows = append(repo.db.rows, &row)
	return c, nil
}

func (repo *courseRepository) QueryAllCourses() ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.rows))
	for _, c := range repo.db.rows {
		courses = append(courses, cloneCourse(c))
	}
	return courses, nil
}

func (repo *courseRepository) GetCourseByID(id string) (course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if i, ok := repo.find(id); ok {
		return cloneCourse(repo.db.rows[i]), nil
	}
	return course.Course{}, &course.NotFoundError{ID: id}
}

func (repo *courseRepository) UpdateCourse(c course.Course) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i, ok := repo.find(c.ID)
	if !ok {
		return course.Course{}, &course.NotFoundError{ID: c.ID}
	}
	row := repo.db.rows[i]
	row.Name = c.Name
	row.Description = c.Description
	row.Color = c.Color
	row.UpdatedAt = c.UpdatedAt
	return cloneCourse(row), nil
}

func (repo *courseRepository) AddCourseStudent(id, phone string, at time.Time) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i, ok := repo.find(id)
	if !ok {
		return course.Course{}, &course.NotFoundError{ID: id}
	}
	row := repo.db.rows[i]
	if row.HasStudent(phone) {
		return course.Course{}, course.ErrStudentEnrolled
	}
	row.Students = append(row.Students, phone)
	row.UpdatedAt = at
	return cloneCourse(row), nil
}

func (repo *courseRepository) RemoveCourseStudent(id, phone string, at time.Time) (course.Course, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	i, ok := repo.find(id)
	if !ok {
		return course.Course{}, &course.NotFoundError{ID: id}
	}
	row := repo.db.rows[i]
	if !row.HasStudent(phone) {
		return course.Course{}, course.ErrStudentNotEnrolled
	}
	students := make([]string, 0, len(row.Students)-1)
	for _, s := range row.Students {
		if s != phone {
			students = append(students, s)
		}
	}
	row.Students = students
	row.UpdatedAt = at
	return cloneCourse(row), nil
}

func (repo *courseRepository) DeleteCourse(id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	i, ok := repo.find(id)
	if !ok {
		return &course.NotFoundError{ID: id}
	}
	repo.db.rows = append(repo.db.rows[:i], repo.db.rows[i+1:]...)
	return nil
}

func (repo *courseRepository) CoursesOfStudent(phone string) ([]course.Course, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var courses []course.Course
	for _, c := range repo.db.rows {
		if c.HasStudent(phone) {
			courses = append(courses, cloneCourse(c))
		}
	}
	return courses, nil
}
