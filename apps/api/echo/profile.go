package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kalendar/core/course"
	"github.com/trezcool/kalendar/core/user"
)

type profileApi struct {
	svc       *user.Service
	courseSvc *course.Service
	validate  *validator.Validate
}

func registerProfileAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *user.Service,
	courseSvc *course.Service,
	validate *validator.Validate,
) {
	api := profileApi{
		svc:       svc,
		courseSvc: courseSvc,
		validate:  validate,
	}

	g.GET("/roles", api.queryRoles)

	pg := g.Group("/profile", jwt)
	pg.GET("", api.retrieve)
	pg.PUT("", api.update)
	pg.PUT("/language", api.setLanguage)

	g.GET("/students", api.queryStudents, jwt, teacherMiddleware(svc))
}

// Handlers

func (api *profileApi) retrieve(ctx echo.Context) error {
	p, err := getContextProfile(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *profileApi) update(ctx echo.Context) error {
	p, err := getContextProfile(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	var data user.UpdateProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateProfile")
	}
	if err := data.Validate(p, api.validate); err != nil {
		return err
	}

	p, err = api.svc.Update(p.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating profile")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *profileApi) setLanguage(ctx echo.Context) error {
	p, err := getContextProfile(ctx, api.svc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	var data user.LanguagePreference
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LanguagePreference")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	p, err = api.svc.SetLanguage(p.ID, data.Language)
	if err != nil {
		return errors.Wrap(err, "setting language")
	}
	return ctx.JSON(http.StatusOK, p)
}

// queryStudents searches the student directory, leaving out those already enrolled in `exclude_course`.
func (api *profileApi) queryStudents(ctx echo.Context) error {
	filter := new(user.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []user.Profile{})
	}
	filter.Clean()
	filter.Role = user.RoleStudent

	var exclude []string
	if filter.ExcludeCourse != "" {
		c, err := api.courseSvc.GetByID(filter.ExcludeCourse)
		if err != nil {
			return errors.Wrap(err, "finding excluded course")
		}
		exclude = c.Students
	}

	students, err := api.svc.Search(*filter, exclude...)
	if err != nil {
		return errors.Wrap(err, "searching students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *profileApi) queryRoles(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, user.Roles)
}
