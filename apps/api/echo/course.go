package echoapi

import (
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kalendar/core/calendar"
	"github.com/trezcool/kalendar/core/course"
	"github.com/trezcool/kalendar/core/i18n"
	"github.com/trezcool/kalendar/core/notification"
	"github.com/trezcool/kalendar/core/user"
)

var errCourseNotFoundInCtx = errors.New("course object not found in echo.Context")

type courseApi struct {
	svc             *course.Service
	eventSvc        *calendar.Service
	profileSvc      *user.Service
	notificationSvc *notification.Service
	tr              *i18n.Translator
	validate        *validator.Validate
}

func registerCourseAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *course.Service,
	eventSvc *calendar.Service,
	profileSvc *user.Service,
	notificationSvc *notification.Service,
	tr *i18n.Translator,
	validate *validator.Validate,
) {
	api := courseApi{
		svc:             svc,
		eventSvc:        eventSvc,
		profileSvc:      profileSvc,
		notificationSvc: notificationSvc,
		tr:              tr,
		validate:        validate,
	}
	teacher := teacherMiddleware(profileSvc)

	cg := g.Group("/courses", jwt)
	cg.GET("", api.query)
	cg.POST("", api.create, teacher)
	cg.GET("/palette", api.palette)

	// detail endpoints
	dg := cg.Group("/:id", api.courseMiddleware)
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, teacher)
	dg.DELETE("", api.destroy, teacher)
	dg.POST("/students", api.addStudent, teacher)
	dg.DELETE("/students/:phone", api.removeStudent, teacher)
}

// Handlers

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	for _, phone := range c.Students {
		if err := api.invite(phone, c); err != nil {
			return errors.Wrap(err, "inviting student")
		}
	}
	return ctx.JSON(http.StatusCreated, c)
}

// query lists every course to teachers, and their own courses to students.
func (api *courseApi) query(ctx echo.Context) error {
	p, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	var courses []course.Course
	if p.IsTeacher() {
		courses, err = api.svc.QueryAll()
	} else {
		courses, err = api.svc.OfStudent(p.PhoneNumber)
	}
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) palette(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, course.Palette)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	c, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errCourseNotFoundInCtx, "retrieving object from context")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) update(ctx echo.Context) error {
	c, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errCourseNotFoundInCtx, "retrieving object from context")
	}

	var data course.UpdateCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err := data.Validate(c, api.validate); err != nil {
		return err
	}

	c, err := api.svc.Update(c.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, c)
}

// destroy deletes the course along with its events.
func (api *courseApi) destroy(ctx echo.Context) error {
	c, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errCourseNotFoundInCtx, "retrieving object from context")
	}

	if _, err := api.eventSvc.DeleteByCourse(c.ID); err != nil {
		return errors.Wrap(err, "deleting course events")
	}
	if err := api.svc.Delete(c.ID); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// addStudent enrols a student and leaves them an invite notification.
func (api *courseApi) addStudent(ctx echo.Context) error {
	c, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errCourseNotFoundInCtx, "retrieving object from context")
	}

	var data course.Enrolment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Enrolment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.AddStudent(c.ID, data.PhoneNumber)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	if err := api.invite(data.PhoneNumber, c); err != nil {
		return errors.Wrap(err, "inviting student")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) removeStudent(ctx echo.Context) error {
	c, ok := ctx.Get("object").(course.Course)
	if !ok {
		return errors.Wrap(errCourseNotFoundInCtx, "retrieving object from context")
	}

	// a percent-encoded "+" reaches us still escaped
	phone, err := url.PathUnescape(ctx.Param("phone"))
	if err != nil {
		return errBadPhoneParam
	}
	c, err = api.svc.RemoveStudent(c.ID, phone)
	if err != nil {
		return errors.Wrap(err, "removing student")
	}
	return ctx.JSON(http.StatusOK, c)
}

// invite notifies phone of its enrolment, in the student's language when they already have a profile.
func (api *courseApi) invite(phone string, c course.Course) error {
	lang := ""
	if p, err := api.profileSvc.GetByPhone(phone); err == nil {
		lang = p.PreferredLanguage
	} else if errors.Cause(err) != user.ErrNotFound {
		return errors.Wrap(err, "finding profile by phone")
	}

	title := api.tr.T("inviteTitle", lang)
	message := api.tr.T("inviteMessage", lang) + ` "` + c.Name + `"`
	_, err := api.notificationSvc.Invite(phone, c.ID, title, message)
	return err
}

// courseMiddleware loads the course in the path. Students only see the courses they are enrolled in.
func (api *courseApi) courseMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		p, err := getContextProfile(ctx, api.profileSvc)
		if err != nil {
			return errors.Wrap(err, "getting context profile")
		}

		c, err := api.svc.GetByID(ctx.Param("id"))
		if err != nil {
			if course.IsNotFound(err) {
				return errHttpNotFound
			}
			return errors.Wrap(err, "finding course by ID")
		}
		if !p.IsTeacher() && !c.HasStudent(p.PhoneNumber) {
			return errHttpNotFound
		}
		ctx.Set("object", c)
		return next(ctx)
	}
}
