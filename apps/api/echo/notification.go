package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kalendar/core/notification"
	"github.com/trezcool/kalendar/core/user"
)

type notificationApi struct {
	svc        *notification.Service
	profileSvc *user.Service
	validate   *validator.Validate
}

func registerNotificationAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc *notification.Service,
	profileSvc *user.Service,
	validate *validator.Validate,
) {
	api := notificationApi{
		svc:        svc,
		profileSvc: profileSvc,
		validate:   validate,
	}

	ng := g.Group("/notifications", jwt)
	ng.GET("", api.inbox)
	ng.POST("", api.create, teacherMiddleware(profileSvc))
	ng.POST("/read-all", api.markAllRead)
	ng.POST("/:id/read", api.markRead)
	ng.DELETE("/:id", api.destroy)
}

type MarkedResponse struct {
	Updated int `json:"updated"`
}

// Handlers

func (api *notificationApi) inbox(ctx echo.Context) error {
	p, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}
	summary, err := api.svc.Inbox(p.PhoneNumber)
	if err != nil {
		return errors.Wrap(err, "querying notifications")
	}
	return ctx.JSON(http.StatusOK, summary)
}

// create lets a teacher post a notification to one recipient.
func (api *notificationApi) create(ctx echo.Context) error {
	var data notification.NewNotification
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotification")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	n, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating notification")
	}
	return ctx.JSON(http.StatusCreated, n)
}

func (api *notificationApi) markRead(ctx echo.Context) error {
	p, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}
	n, err := api.svc.MarkAsRead(p.PhoneNumber, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "marking notification read")
	}
	return ctx.JSON(http.StatusOK, n)
}

func (api *notificationApi) markAllRead(ctx echo.Context) error {
	p, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}
	n, err := api.svc.MarkAllAsRead(p.PhoneNumber)
	if err != nil {
		return errors.Wrap(err, "marking notifications read")
	}
	return ctx.JSON(http.StatusOK, MarkedResponse{Updated: n})
}

func (api *notificationApi) destroy(ctx echo.Context) error {
	p, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}
	if err := api.svc.Remove(p.PhoneNumber, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "removing notification")
	}
	return ctx.NoContent(http.StatusNoContent)
}
