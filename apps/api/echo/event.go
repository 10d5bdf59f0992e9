package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kalendar/core/calendar"
	"github.com/trezcool/kalendar/core/user"
)

type eventApi struct {
	svc      *calendar.Service
	validate *validator.Validate
}

func registerEventAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *calendar.Service,
	profileSvc *user.Service,
	validate *validator.Validate,
) {
	api := eventApi{
		svc:      svc,
		validate: validate,
	}
	teacher := teacherMiddleware(profileSvc)

	eg := g.Group("/events", jwt)
	eg.GET("", api.query)
	eg.POST("", api.create, teacher)
	eg.GET("/:id", api.retrieve)
	eg.DELETE("/:id", api.destroy, teacher)
}

// Handlers

func (api *eventApi) create(ctx echo.Context) error {
	var data calendar.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	e, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *eventApi) query(ctx echo.Context) error {
	query := new(EventQuery)
	if err := query.Bind(ctx, api.svc.Location()); err != nil {
		return err
	}

	events, err := api.svc.Query(query.Filter)
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	if events == nil {
		events = []calendar.Event{}
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *eventApi) retrieve(ctx echo.Context) error {
	e, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding event by ID")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting event")
	}
	return ctx.NoContent(http.StatusNoContent)
}
