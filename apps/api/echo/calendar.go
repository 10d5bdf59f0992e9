package echoapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/kalendar/core"
	"github.com/trezcool/kalendar/core/calendar"
	"github.com/trezcool/kalendar/core/i18n"
	"github.com/trezcool/kalendar/core/user"
)

type calendarApi struct {
	conf     *core.Config
	svc      *calendar.Service
	tr       *i18n.Translator
	validate *validator.Validate
	gestures calendar.GestureConfig
	now      func() time.Time
}

func registerCalendarAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	conf *core.Config,
	svc *calendar.Service,
	profileSvc *user.Service,
	tr *i18n.Translator,
	validate *validator.Validate,
	now func() time.Time,
) {
	api := calendarApi{
		conf:     conf,
		svc:      svc,
		tr:       tr,
		validate: validate,
		gestures: calendar.GestureConfig{
			Bounds:           calendar.ZoomBounds{Min: conf.Calendar.MinScale, Max: conf.Calendar.MaxScale},
			SwipeMinDistance: conf.Calendar.SwipeMinDistance,
		},
		now: now,
	}
	if api.gestures.Bounds.Min <= 0 || api.gestures.Bounds.Max < api.gestures.Bounds.Min {
		api.gestures.Bounds = calendar.DefaultZoomBounds
	}

	cg := g.Group("/calendar", jwt, langMiddleware(profileSvc, tr))
	cg.GET("/grid", api.grid)
	cg.GET("/month", api.month)
	cg.GET("/week", api.week)
	cg.GET("/day", api.day)
	cg.GET("/today", api.today)
	cg.POST("/view", api.view)
	cg.POST("/gesture", api.gesture)

	g.GET("/calendar.ics", api.exportICS, jwt)
}

type (
	GridResponse struct {
		calendar.Grid
		LeadingBlanks int     `json:"leading_blanks"`
		Weeks         [][]int `json:"weeks"`
	}

	MonthResponse struct {
		Title    string   `json:"title"`
		Weekdays []string `json:"weekdays"`
		MoreText string   `json:"more_text"`
		calendar.MonthView
	}

	WeekResponse struct {
		Title    string   `json:"title"`
		Weekdays []string `json:"weekdays"`
		calendar.WeekView
	}

	DayResponse struct {
		Title string `json:"title"`
		calendar.DayView
	}

	TodayResponse struct {
		Title     string `json:"title"`
		DateLabel string `json:"date_label"`
		calendar.Agenda
	}

	// ViewRequest applies one transition to a view state. A missing state starts from the initial view.
	ViewRequest struct {
		State  *calendar.ViewState `json:"state"`
		Action calendar.Action     `json:"action"`
	}

	ViewResponse struct {
		State calendar.ViewState `json:"state"`
		From  string             `json:"from"`
		To    string             `json:"to"` // exclusive
	}

	// GestureRequest replays recorded touch input against a view state.
	GestureRequest struct {
		State   *calendar.ViewState   `json:"state"`
		Touches []calendar.TouchEvent `json:"touches" validate:"required,dive"`
	}

	GestureResponse struct {
		ViewResponse
		Gestures []calendar.Gesture `json:"gestures"`
	}
)

// Handlers

func (api *calendarApi) grid(ctx echo.Context) error {
	ref, err := bindDate(ctx, api.svc.Location(), api.now())
	if err != nil {
		return err
	}
	grid, err := calendar.BuildMonthGrid(ref)
	if err != nil {
		return errors.Wrap(err, "building month grid")
	}
	return ctx.JSON(http.StatusOK, GridResponse{Grid: grid, LeadingBlanks: grid.LeadingBlanks(), Weeks: grid.Weeks()})
}

func (api *calendarApi) month(ctx echo.Context) error {
	now := api.now()
	ref, err := bindDate(ctx, api.svc.Location(), now)
	if err != nil {
		return err
	}
	view, err := api.svc.Month(ref, now)
	if err != nil {
		return errors.Wrap(err, "building month view")
	}

	lang := contextLang(ctx)
	return ctx.JSON(http.StatusOK, MonthResponse{
		Title:     fmt.Sprintf("%s %d", api.tr.MonthName(view.Month, lang), view.Year),
		Weekdays:  api.tr.WeekdayNames(lang),
		MoreText:  api.tr.T("more", lang),
		MonthView: view,
	})
}

func (api *calendarApi) week(ctx echo.Context) error {
	now := api.now()
	ref, err := bindDate(ctx, api.svc.Location(), now)
	if err != nil {
		return err
	}
	view, err := api.svc.Week(ref, now)
	if err != nil {
		return errors.Wrap(err, "building week view")
	}

	lang := contextLang(ctx)
	return ctx.JSON(http.StatusOK, WeekResponse{
		Title:    api.tr.T("week", lang),
		Weekdays: api.tr.WeekdayNames(lang),
		WeekView: view,
	})
}

func (api *calendarApi) day(ctx echo.Context) error {
	now := api.now()
	ref, err := bindDate(ctx, api.svc.Location(), now)
	if err != nil {
		return err
	}
	view, err := api.svc.Day(ref, now)
	if err != nil {
		return errors.Wrap(err, "building day view")
	}

	return ctx.JSON(http.StatusOK, DayResponse{
		Title:   api.tr.FormatDate(ref, contextLang(ctx)),
		DayView: view,
	})
}

func (api *calendarApi) today(ctx echo.Context) error {
	now := api.now()
	agenda, err := api.svc.Today(now)
	if err != nil {
		return errors.Wrap(err, "building agenda")
	}

	lang := contextLang(ctx)
	return ctx.JSON(http.StatusOK, TodayResponse{
		Title:     api.tr.T("today", lang),
		DateLabel: api.tr.FormatDate(now.In(api.svc.Location()), lang),
		Agenda:    agenda,
	})
}

func (api *calendarApi) view(ctx echo.Context) error {
	var data ViewRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ViewRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}
	state, err := api.initialState(data.State)
	if err != nil {
		return err
	}

	state, err = state.Apply(data.Action, api.gestures.Bounds)
	if err != nil {
		return errors.Wrap(err, "applying view action")
	}
	return ctx.JSON(http.StatusOK, api.viewResponse(state))
}

func (api *calendarApi) gesture(ctx echo.Context) error {
	var data GestureRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GestureRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}
	state, err := api.initialState(data.State)
	if err != nil {
		return err
	}

	state, gestures := calendar.ApplyTouches(state, data.Touches, api.gestures)
	if gestures == nil {
		gestures = []calendar.Gesture{}
	}
	return ctx.JSON(http.StatusOK, GestureResponse{ViewResponse: api.viewResponse(state), Gestures: gestures})
}

func (api *calendarApi) exportICS(ctx echo.Context) error {
	filter := calendar.QueryFilter{CourseID: ctx.QueryParam(courseIDParam)}
	ics, err := api.svc.ExportICS(filter, "-//"+api.conf.AppName+"//Calendar//EN")
	if err != nil {
		return errors.Wrap(err, "exporting calendar")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="kalendar.ics"`)
	return ctx.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(ics))
}

// initialState completes a client supplied state, or starts from the week of now.
func (api *calendarApi) initialState(s *calendar.ViewState) (calendar.ViewState, error) {
	if s == nil {
		return calendar.NewViewState(api.now().In(api.svc.Location())), nil
	}
	state := *s
	if state.ReferenceDate.IsZero() {
		state.ReferenceDate = api.now()
	}
	state.ReferenceDate = state.ReferenceDate.In(api.svc.Location())
	if state.Granularity == "" {
		state.Granularity = calendar.GranularityWeek
	} else if _, err := calendar.ParseGranularity(string(state.Granularity)); err != nil {
		return state, err
	}
	if state.ZoomLevel == 0 {
		state.ZoomLevel = 1
	}
	return state, nil
}

func (api *calendarApi) viewResponse(s calendar.ViewState) ViewResponse {
	from, to := s.Range()
	return ViewResponse{State: s, From: calendar.FormatDate(from), To: calendar.FormatDate(to)}
}
