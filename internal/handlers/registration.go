package handlers

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/brightpine/camp-registry-api/internal/auth"
	"github.com/brightpine/camp-registry-api/internal/engine"
	"github.com/brightpine/camp-registry-api/internal/models"
	"github.com/brightpine/camp-registry-api/internal/notifier"
	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type RegistrationHandler struct {
	db       *gorm.DB
	notifier notifier.Notifier
}

func NewRegistrationHandler(db *gorm.DB, notifier notifier.Notifier) *RegistrationHandler {
	return &RegistrationHandler{db: db, notifier: notifier}
}

func (h *RegistrationHandler) actorName(ctx context.Context) string {
	userID, ok := ctx.Value(auth.UserIDKey).(uint)
	if !ok {
		return ""
	}
	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		return ""
	}
	if user.Username != "" {
		return user.Username
	}
	return user.Email
}

func (h *RegistrationHandler) snapshot(tx *gorm.DB, reg *models.Registration, changedBy string) error {
	history := models.RegistrationHistory{
		RegistrationPK:     reg.ID,
		RegistrationID:     reg.RegistrationID,
		ChangedBy:          changedBy,
		RegistrationFields: reg.RegistrationFields,
	}
	return tx.Create(&history).Error
}

func (h *RegistrationHandler) notify(reg models.Registration) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.NotifyRegistration(reg); err != nil {
		log.Printf("Failed to send notification: %v", err)
	}
}

type ListRegistrationsInput struct {
	Status      string `query:"status" doc:"Filter by status (enrolled or cancelled)"`
	ParentEmail string `query:"parent_email" doc:"Filter by parent email substring"`
	StartDate   string `query:"start_date" doc:"Enrolled on or after this date (YYYY-MM-DD)"`
	EndDate     string `query:"end_date" doc:"Enrolled on or before this date (YYYY-MM-DD)"`
	Skip        int    `query:"skip" minimum:"0" doc:"Number of records to skip"`
	Limit       int    `query:"limit" default:"100" minimum:"1" maximum:"500" doc:"Maximum number of records"`
}

type ListRegistrationsOutput struct {
	Body []models.Registration
}

func (h *RegistrationHandler) HandleList(ctx context.Context, input *ListRegistrationsInput) (*ListRegistrationsOutput, error) {
	query := h.db.Model(&models.Registration{})

	if input.Status != "" {
		status, err := parseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		query = query.Where("status = ?", status)
	}
	if input.ParentEmail != "" {
		query = query.Where("parent_email LIKE ?", "%"+input.ParentEmail+"%")
	}
	if input.StartDate != "" {
		start, err := parseDate(input.StartDate)
		if err != nil {
			return nil, err
		}
		query = query.Where("enrollment_date >= ?", start)
	}
	if input.EndDate != "" {
		end, err := parseDate(input.EndDate)
		if err != nil {
			return nil, err
		}
		query = query.Where("enrollment_date < ?", end.AddDate(0, 0, 1))
	}

	registrations := []models.Registration{}
	err := query.Order("enrollment_date desc").
		Offset(input.Skip).
		Limit(input.Limit).
		Find(&registrations).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to list registrations: " + err.Error())
	}

	return &ListRegistrationsOutput{Body: registrations}, nil
}

type PagedRegistrationsInput struct {
	Term     string `query:"q" doc:"Free-text search over child name, parent name, parent email and registration id"`
	Status   string `query:"status" doc:"Filter by status (enrolled or cancelled)"`
	Page     int    `query:"page" default:"1" minimum:"1" doc:"Page number, starting at 1"`
	PageSize int    `query:"page_size" default:"10" minimum:"1" maximum:"100" doc:"Records per page"`
}

type PagedRegistrationsOutput struct {
	Body engine.Page
}

// HandlePaged serves the dashboard table: status filter, then free-text
// search, then pagination, all over one fetched set so the semantics match
// across views.
func (h *RegistrationHandler) HandlePaged(ctx context.Context, input *PagedRegistrationsInput) (*PagedRegistrationsOutput, error) {
	var registrations []models.Registration
	if err := h.db.Order("enrollment_date desc").Find(&registrations).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list registrations: " + err.Error())
	}

	if input.Status != "" {
		status, err := parseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		registrations = engine.FilterStatus(registrations, status)
	}

	registrations = engine.Search(registrations, input.Term)

	page := input.Page
	if total := engine.Paginate(registrations, 1, input.PageSize).TotalPages; total > 0 && page > total {
		page = total
	}

	return &PagedRegistrationsOutput{Body: engine.Paginate(registrations, page, input.PageSize)}, nil
}

type ByCampDateInput struct {
	CampDate string `query:"camp_date" required:"true" doc:"Camp date to filter by (YYYY-MM-DD)"`
	Status   string `query:"status" doc:"Filter by status (enrolled or cancelled)"`
}

type ByCampDateOutput struct {
	Body struct {
		Registrations []models.Registration `json:"registrations"`
		Stats         engine.DailyStats     `json:"stats"`
	}
}

// HandleByCampDate returns the registrations with a camp occurrence on the
// given day plus the day-scoped stats. Stats are computed before the status
// filter so both counts are always present.
func (h *RegistrationHandler) HandleByCampDate(ctx context.Context, input *ByCampDateInput) (*ByCampDateOutput, error) {
	day, err := parseDate(input.CampDate)
	if err != nil {
		return nil, err
	}

	var registrations []models.Registration
	if err := h.db.Find(&registrations).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to load registrations: " + err.Error())
	}

	matched := engine.MatchDate(registrations, day)

	filtered := matched
	if input.Status != "" {
		status, err := parseStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filtered = engine.FilterStatus(matched, status)
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].ChildName < filtered[j].ChildName
	})
	if filtered == nil {
		filtered = []models.Registration{}
	}

	res := &ByCampDateOutput{}
	res.Body.Registrations = filtered
	res.Body.Stats = engine.ComputeDailyStats(matched)
	return res, nil
}

type SearchByChildInput struct {
	ChildName string `path:"childName" doc:"Child name substring to search for"`
}

type SearchByChildOutput struct {
	Body []models.Registration
}

func (h *RegistrationHandler) HandleSearchByChild(ctx context.Context, input *SearchByChildInput) (*SearchByChildOutput, error) {
	registrations := []models.Registration{}
	err := h.db.Where("child_name LIKE ?", "%"+input.ChildName+"%").
		Limit(100).
		Find(&registrations).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to search registrations: " + err.Error())
	}

	return &SearchByChildOutput{Body: registrations}, nil
}

type GetRegistrationInput struct {
	RegistrationID string `path:"registrationId"`
}

type GetRegistrationOutput struct {
	Body models.Registration
}

func (h *RegistrationHandler) HandleGet(ctx context.Context, input *GetRegistrationInput) (*GetRegistrationOutput, error) {
	var registration models.Registration
	err := h.db.Where("registration_id = ?", input.RegistrationID).First(&registration).Error
	if err == gorm.ErrRecordNotFound {
		return nil, huma.Error404NotFound("Registration not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load registration: " + err.Error())
	}

	return &GetRegistrationOutput{Body: registration}, nil
}

type CreateRegistrationInput struct {
	Body struct {
		Status         models.RegistrationStatus `json:"status,omitempty" enum:"enrolled,cancelled" doc:"Defaults to enrolled"`
		EnrollmentDate time.Time                 `json:"enrollmentDate,omitempty" doc:"Defaults to now"`
		ChildName      string                    `json:"childName" required:"true" doc:"Child name"`
		Children       []string                  `json:"children,omitempty" doc:"All child names for multi-child registrations"`
		ChildAge       *int                      `json:"childAge,omitempty"`
		ParentName     string                    `json:"parentName" required:"true"`
		ParentEmail    string                    `json:"parentEmail" required:"true" format:"email"`
		ParentPhone    string                    `json:"parentPhone,omitempty"`
		Employer       string                    `json:"employer,omitempty"`
		CampDates      models.OccurrenceList     `json:"campDates" required:"true" minItems:"1" doc:"Scheduled camp days"`
		CampType       string                    `json:"campType,omitempty"`
		Location       string                    `json:"location,omitempty"`
		TotalCost      *float64                  `json:"totalCost,omitempty"`
		AmountPaid     *float64                  `json:"amountPaid,omitempty"`
	}
}

type CreateRegistrationOutput struct {
	Status int
	Body   models.Registration
}

// validateCampDates rejects occurrence entries that don't resolve to a
// calendar day. The engine's skip-and-log handling covers already-stored
// rows; new data is refused at the boundary instead.
func validateCampDates(occurrences models.OccurrenceList) error {
	for _, occ := range occurrences {
		if _, err := occ.Day(); err != nil {
			return huma.Error400BadRequest("Invalid camp date: " + err.Error())
		}
	}
	return nil
}

func (h *RegistrationHandler) HandleCreate(ctx context.Context, input *CreateRegistrationInput) (*CreateRegistrationOutput, error) {
	if err := validateCampDates(input.Body.CampDates); err != nil {
		return nil, err
	}

	status := input.Body.Status
	if status == "" {
		status = models.StatusEnrolled
	}

	enrollmentDate := input.Body.EnrollmentDate
	if enrollmentDate.IsZero() {
		enrollmentDate = time.Now().UTC()
	}

	registration := models.Registration{
		RegistrationID: fmt.Sprintf("MANUAL-%s", uuid.NewString()),
		ManualEntry:    true,
		CreatedBy:      h.actorName(ctx),
		RegistrationFields: models.RegistrationFields{
			Status:         status,
			EnrollmentDate: enrollmentDate,
			ChildName:      input.Body.ChildName,
			Children:       models.StringList(input.Body.Children),
			ChildAge:       input.Body.ChildAge,
			ParentName:     input.Body.ParentName,
			ParentEmail:    input.Body.ParentEmail,
			ParentPhone:    input.Body.ParentPhone,
			Employer:       input.Body.Employer,
			CampDates:      input.Body.CampDates,
			CampType:       input.Body.CampType,
			Location:       input.Body.Location,
			TotalCost:      input.Body.TotalCost,
			AmountPaid:     input.Body.AmountPaid,
		},
	}
	if status == models.StatusCancelled {
		now := time.Now().UTC()
		registration.CancellationDate = &now
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&registration).Error; err != nil {
			return err
		}
		return h.snapshot(tx, &registration, registration.CreatedBy)
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to create registration: " + err.Error())
	}

	h.notify(registration)

	return &CreateRegistrationOutput{Status: 201, Body: registration}, nil
}

type UpdateRegistrationInput struct {
	RegistrationID string `path:"registrationId"`
	Body           struct {
		Status         *models.RegistrationStatus `json:"status,omitempty" enum:"enrolled,cancelled"`
		EnrollmentDate *time.Time                 `json:"enrollmentDate,omitempty"`
		ChildName      *string                    `json:"childName,omitempty"`
		Children       *[]string                  `json:"children,omitempty"`
		ChildAge       *int                       `json:"childAge,omitempty"`
		ParentName     *string                    `json:"parentName,omitempty"`
		ParentEmail    *string                    `json:"parentEmail,omitempty" format:"email"`
		ParentPhone    *string                    `json:"parentPhone,omitempty"`
		Employer       *string                    `json:"employer,omitempty"`
		CampDates      *models.OccurrenceList     `json:"campDates,omitempty"`
		CampType       *string                    `json:"campType,omitempty"`
		Location       *string                    `json:"location,omitempty"`
		TotalCost      *float64                   `json:"totalCost,omitempty"`
		AmountPaid     *float64                   `json:"amountPaid,omitempty"`
	}
}

type UpdateRegistrationOutput struct {
	Body models.Registration
}

func (h *RegistrationHandler) HandleUpdate(ctx context.Context, input *UpdateRegistrationInput) (*UpdateRegistrationOutput, error) {
	var registration models.Registration
	err := h.db.Where("registration_id = ?", input.RegistrationID).First(&registration).Error
	if err == gorm.ErrRecordNotFound {
		return nil, huma.Error404NotFound("Registration not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load registration: " + err.Error())
	}

	wasCancelled := registration.Cancelled()

	body := input.Body
	if body.Status != nil {
		registration.Status = *body.Status
		if *body.Status == models.StatusCancelled && registration.CancellationDate == nil {
			now := time.Now().UTC()
			registration.CancellationDate = &now
		}
		if *body.Status == models.StatusEnrolled {
			registration.CancellationDate = nil
		}
	}
	if body.EnrollmentDate != nil {
		registration.EnrollmentDate = *body.EnrollmentDate
	}
	if body.ChildName != nil {
		registration.ChildName = *body.ChildName
	}
	if body.Children != nil {
		registration.Children = models.StringList(*body.Children)
	}
	if body.ChildAge != nil {
		registration.ChildAge = body.ChildAge
	}
	if body.ParentName != nil {
		registration.ParentName = *body.ParentName
	}
	if body.ParentEmail != nil {
		registration.ParentEmail = *body.ParentEmail
	}
	if body.ParentPhone != nil {
		registration.ParentPhone = *body.ParentPhone
	}
	if body.Employer != nil {
		registration.Employer = *body.Employer
	}
	if body.CampDates != nil {
		if err := validateCampDates(*body.CampDates); err != nil {
			return nil, err
		}
		registration.CampDates = *body.CampDates
	}
	if body.CampType != nil {
		registration.CampType = *body.CampType
	}
	if body.Location != nil {
		registration.Location = *body.Location
	}
	if body.TotalCost != nil {
		registration.TotalCost = body.TotalCost
	}
	if body.AmountPaid != nil {
		registration.AmountPaid = body.AmountPaid
	}

	actor := h.actorName(ctx)
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&registration).Error; err != nil {
			return err
		}
		return h.snapshot(tx, &registration, actor)
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to update registration: " + err.Error())
	}

	if !wasCancelled && registration.Cancelled() {
		h.notify(registration)
	}

	return &UpdateRegistrationOutput{Body: registration}, nil
}

type CancelRegistrationInput struct {
	RegistrationID string `path:"registrationId"`
}

type CancelRegistrationOutput struct {
	Body struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
}

// HandleCancel is the DELETE endpoint. Registrations are never physically
// removed; deleting transitions the record to cancelled.
func (h *RegistrationHandler) HandleCancel(ctx context.Context, input *CancelRegistrationInput) (*CancelRegistrationOutput, error) {
	var registration models.Registration
	err := h.db.Where("registration_id = ?", input.RegistrationID).First(&registration).Error
	if err == gorm.ErrRecordNotFound {
		return nil, huma.Error404NotFound("Registration not found")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to load registration: " + err.Error())
	}

	now := time.Now().UTC()
	registration.Status = models.StatusCancelled
	if registration.CancellationDate == nil {
		registration.CancellationDate = &now
	}

	actor := h.actorName(ctx)
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&registration).Error; err != nil {
			return err
		}
		return h.snapshot(tx, &registration, actor)
	})
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to cancel registration: " + err.Error())
	}

	h.notify(registration)

	res := &CancelRegistrationOutput{}
	res.Body.Status = "success"
	res.Body.Message = "Registration cancelled"
	return res, nil
}

func parseStatus(raw string) (models.RegistrationStatus, error) {
	switch models.RegistrationStatus(raw) {
	case models.StatusEnrolled, models.StatusCancelled:
		return models.RegistrationStatus(raw), nil
	default:
		return "", huma.Error400BadRequest(fmt.Sprintf("Invalid status %q", raw))
	}
}

func parseDate(raw string) (time.Time, error) {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, huma.Error400BadRequest("Invalid date format. Use YYYY-MM-DD")
	}
	return t.UTC(), nil
}
