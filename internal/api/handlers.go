package api

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pedrohqs/atrio/internal/db"
	"github.com/pedrohqs/atrio/internal/feed"
	"github.com/pedrohqs/atrio/internal/i18n"
	"github.com/pedrohqs/atrio/internal/services"
)

var passwordUpperRegex = regexp.MustCompile(`\p{Lu}`)
var passwordLowerRegex = regexp.MustCompile(`\p{Ll}`)
var passwordDigitRegex = regexp.MustCompile(`\d`)

const authTokenTTL = 12 * time.Hour

type Handler struct {
	repos         *db.Repositories
	secretKey     []byte
	location      *time.Location
	i18n          *i18n.Manager
	validate      *validator.Validate
	hub           *feed.Hub
	goals         *services.GoalService
	notifications *services.NotificationService
	tickets       *services.TicketService
	loginLimiter  *attemptLimiter
	log           zerolog.Logger
}

func NewHandler(repos *db.Repositories, secretKey string, location *time.Location, i18nManager *i18n.Manager, hub *feed.Hub, log zerolog.Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		repos:         repos,
		secretKey:     []byte(secretKey),
		location:      location,
		i18n:          i18nManager,
		validate:      validator.New(),
		hub:           hub,
		goals:         services.NewGoalService(repos.Goals, repos.Users),
		notifications: services.NewNotificationService(repos.Notifications),
		tickets:       services.NewTicketService(repos.Tickets),
		loginLimiter:  newAttemptLimiter(),
		log:           log,
	}
}

func (handler *Handler) now() time.Time {
	return time.Now().In(handler.location)
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type createUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required"`
	Region   string `json:"region"`
}

type updateUserInput struct {
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required"`
	Region   string `json:"region"`
}

type productInput struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	PriceCents   int64    `json:"price_cents" validate:"gte=0"`
	Category     string   `json:"category"`
	ImageURL     string   `json:"image_url"`
	VisibleRoles []string `json:"visible_roles"`
	Regions      []string `json:"regions"`
}

type materialInput struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	FileURL      string   `json:"file_url" validate:"required"`
	ContentType  string   `json:"content_type"`
	VisibleRoles []string `json:"visible_roles"`
	Regions      []string `json:"regions"`
}

type notificationInput struct {
	Title        string   `json:"title" validate:"required"`
	Body         string   `json:"body" validate:"required"`
	VisibleRoles []string `json:"visible_roles"`
	Regions      []string `json:"regions"`
}

type goalInput struct {
	Title        string   `json:"title" validate:"required"`
	TargetValue  float64  `json:"target_value" validate:"required"`
	Unit         string   `json:"unit" validate:"required"`
	PeriodType   string   `json:"period_type" validate:"required"`
	Scope        string   `json:"scope" validate:"required"`
	TargetUserID *uint    `json:"target_user_id"`
	VisibleRoles []string `json:"visible_roles"`
}

type progressInput struct {
	UserID *uint   `json:"user_id"`
	Value  float64 `json:"value"`
}

type ticketInput struct {
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

type ticketReplyInput struct {
	Body string `json:"body" validate:"required"`
}

type ticketStatusInput struct {
	Status       string `json:"status" validate:"required"`
	AssignedToID *uint  `json:"assigned_to_id"`
}

func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	return passwordUpperRegex.MatchString(password) &&
		passwordLowerRegex.MatchString(password) &&
		passwordDigitRegex.MatchString(password)
}
