package api

import (
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"alcyxob/workout-log/internal/daywindow"
	"alcyxob/workout-log/internal/domain"
	"alcyxob/workout-log/internal/service"
	"alcyxob/workout-log/internal/summary"
)

//go:embed templates/*.html
var templateFS embed.FS

// LoadTemplates parses the embedded dashboard templates.
func LoadTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// DashboardState is where a dashboard request stands in the timezone handshake.
type DashboardState int

const (
	// StateNoTimezoneKnown: no tz parameter yet. The browser is asked for one.
	StateNoTimezoneKnown DashboardState = iota
	// StateRedirecting: a tz was supplied but rejected. The browser is asked again,
	// and the page stops if it reports the same rejected value.
	StateRedirecting
	// StateResolved: date and tz are both usable.
	StateResolved
)

func (s DashboardState) String() string {
	switch s {
	case StateNoTimezoneKnown:
		return "NoTimezoneKnown"
	case StateRedirecting:
		return "Redirecting"
	case StateResolved:
		return "Resolved"
	default:
		return "Unknown"
	}
}

// ResolveDashboardState classifies a request by its tz query parameter.
func ResolveDashboardState(tz string) DashboardState {
	if tz == "" {
		return StateNoTimezoneKnown
	}
	if _, err := daywindow.LoadLocation(tz); err != nil {
		return StateRedirecting
	}
	return StateResolved
}

// DashboardHandler serves the HTML pages.
type DashboardHandler struct {
	workoutService service.WorkoutService
	tokens         service.TokenService
	now            func() time.Time
}

func NewDashboardHandler(workoutService service.WorkoutService, tokens service.TokenService) *DashboardHandler {
	return &DashboardHandler{workoutService: workoutService, tokens: tokens, now: time.Now}
}

type redirectPage struct {
	Rejected string
}

type dashboardPage struct {
	Date     string
	Timezone string
	Prev     string
	Next     string
	NewURL   string
	Workouts []workoutCard
}

type workoutCard struct {
	Name      string
	StartedAt string
	Duration  string
	Notes     string
	EditURL   string
	Exercises []exerciseLine
}

type exerciseLine struct {
	Name    string
	Summary string
}

type workoutForm struct {
	Title    string
	Action   string
	Name     string
	Notes    string
	Date     string
	Timezone string
	BackURL  string
	Errors   map[string]string
}

type statusPage struct {
	Status  int
	Title   string
	Message string
}

// Dashboard handles GET /dashboard?date=yyyy-MM-dd&tz=Area/City.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	tz := c.Query("tz")
	switch ResolveDashboardState(tz) {
	case StateNoTimezoneKnown:
		c.HTML(http.StatusOK, "redirect.html", redirectPage{})
		return
	case StateRedirecting:
		c.HTML(http.StatusBadRequest, "redirect.html", redirectPage{Rejected: tz})
		return
	}

	date := c.Query("date")
	if date == "" {
		today, err := daywindow.Today(h.now(), tz)
		if err != nil {
			renderPageError(c, err)
			return
		}
		date = today
	}
	day, err := daywindow.ParseDate(date)
	if err != nil {
		renderPageError(c, err)
		return
	}

	workouts, err := h.workoutService.ListWorkoutsForDate(c.Request.Context(), principal, day, tz)
	if err != nil {
		renderPageError(c, err)
		return
	}

	loc, _ := daywindow.LoadLocation(tz)
	page := dashboardPage{
		Date:     date,
		Timezone: tz,
		Prev:     dashboardURL(day.AddDate(0, 0, -1).Format(daywindow.DateLayout), tz),
		Next:     dashboardURL(day.AddDate(0, 0, 1).Format(daywindow.DateLayout), tz),
		NewURL:   withQuery("/dashboard/workout/new", date, tz),
		Workouts: make([]workoutCard, 0, len(workouts)),
	}
	for _, w := range workouts {
		page.Workouts = append(page.Workouts, newWorkoutCard(w, loc, date, tz))
	}
	c.HTML(http.StatusOK, "dashboard.html", page)
}

func newWorkoutCard(w domain.WorkoutDetail, loc *time.Location, date, tz string) workoutCard {
	card := workoutCard{
		Name:      workoutName(w.Name),
		StartedAt: w.StartedAt.In(loc).Format("15:04"),
		Duration:  summary.WorkoutDuration(w.Workout),
		EditURL:   withQuery("/dashboard/workout/"+idString(w.ID), date, tz),
	}
	if w.Notes != nil {
		card.Notes = *w.Notes
	}
	for _, we := range w.Exercises {
		card.Exercises = append(card.Exercises, exerciseLine{
			Name:    we.Exercise.Name,
			Summary: summary.ExerciseSets(we.Sets),
		})
	}
	return card
}

// NewWorkoutForm handles GET /dashboard/workout/new.
func (h *DashboardHandler) NewWorkoutForm(c *gin.Context) {
	if _, ok := requirePrincipal(c); !ok {
		return
	}
	c.HTML(http.StatusOK, "workout_form.html", newForm(c, "New workout", "/dashboard/workout/new"))
}

// CreateWorkout handles POST /dashboard/workout/new.
func (h *DashboardHandler) CreateWorkout(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	form := newForm(c, "New workout", "/dashboard/workout/new")
	form.Name = c.PostForm("name")
	form.Notes = c.PostForm("notes")

	_, err := h.workoutService.CreateWorkout(c.Request.Context(), principal, formInput(form))
	if err != nil {
		h.formError(c, form, err)
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardURL(form.Date, form.Timezone))
}

// EditWorkoutForm handles GET /dashboard/workout/:workoutId.
func (h *DashboardHandler) EditWorkoutForm(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pageIDParam(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), principal, id)
	if err != nil {
		renderPageError(c, err)
		return
	}

	form := newForm(c, "Edit workout", "/dashboard/workout/"+idString(id))
	if workout.Name != nil {
		form.Name = *workout.Name
	}
	if workout.Notes != nil {
		form.Notes = *workout.Notes
	}
	c.HTML(http.StatusOK, "workout_form.html", form)
}

// UpdateWorkout handles POST /dashboard/workout/:workoutId.
func (h *DashboardHandler) UpdateWorkout(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pageIDParam(c)
	if !ok {
		return
	}

	form := newForm(c, "Edit workout", "/dashboard/workout/"+idString(id))
	form.Name = c.PostForm("name")
	form.Notes = c.PostForm("notes")

	_, err := h.workoutService.UpdateWorkout(c.Request.Context(), principal, id, formInput(form))
	if err != nil {
		h.formError(c, form, err)
		return
	}
	c.Redirect(http.StatusSeeOther, dashboardURL(form.Date, form.Timezone))
}

// SignIn handles POST /dashboard/session. It stores a valid token in the session cookie.
func (h *DashboardHandler) SignIn(c *gin.Context) {
	token := strings.TrimSpace(c.PostForm("token"))
	if _, err := h.tokens.ParsePrincipal(token); err != nil {
		renderStatusPage(c, http.StatusUnauthorized, "That token is not valid.")
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, 0, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// formError re-renders the form with the submitted values on validation failure.
func (h *DashboardHandler) formError(c *gin.Context, form workoutForm, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		form.Errors = verr.Fields
		c.HTML(http.StatusUnprocessableEntity, "workout_form.html", form)
		return
	}
	renderPageError(c, err)
}

func newForm(c *gin.Context, title, action string) workoutForm {
	date := c.Query("date")
	if date == "" {
		date = c.PostForm("date")
	}
	tz := c.Query("tz")
	if tz == "" {
		tz = c.PostForm("tz")
	}
	return workoutForm{
		Title:    title,
		Action:   action,
		Date:     date,
		Timezone: tz,
		BackURL:  dashboardURL(date, tz),
	}
}

func formInput(form workoutForm) service.WorkoutInput {
	input := service.WorkoutInput{Name: form.Name}
	if strings.TrimSpace(form.Notes) != "" {
		notes := form.Notes
		input.Notes = &notes
	}
	return input
}

func requirePrincipal(c *gin.Context) (domain.Principal, bool) {
	principal := principalFromContext(c)
	if !principal.Authenticated() {
		renderStatusPage(c, http.StatusUnauthorized, "Please sign in to see your workouts.")
		return domain.Principal{}, false
	}
	return principal, true
}

func pageIDParam(c *gin.Context) (int64, bool) {
	id, err := parseID(c.Param("workoutId"))
	if err != nil {
		renderStatusPage(c, http.StatusNotFound, "Workout not found.")
		return 0, false
	}
	return id, true
}

// renderPageError maps err like respondError does, but as an HTML page.
func renderPageError(c *gin.Context, err error) {
	status := statusFor(err)
	var message string
	switch status {
	case http.StatusUnauthorized:
		message = "Please sign in to see your workouts."
	case http.StatusNotFound:
		message = "Workout not found."
	case http.StatusBadRequest:
		message = err.Error()
	default:
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "Something went wrong. Please try again."
	}
	renderStatusPage(c, status, message)
}

func renderStatusPage(c *gin.Context, status int, message string) {
	c.HTML(status, "status.html", statusPage{
		Status:  status,
		Title:   http.StatusText(status),
		Message: message,
	})
	c.Abort()
}

func workoutName(name *string) string {
	if name == nil || strings.TrimSpace(*name) == "" {
		return "Untitled workout"
	}
	return *name
}

// dashboardURL builds /dashboard with the given date and tz, omitting empty values.
func dashboardURL(date, tz string) string {
	return withQuery("/dashboard", date, tz)
}

func withQuery(path, date, tz string) string {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	if tz != "" {
		q.Set("tz", tz)
	}
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
