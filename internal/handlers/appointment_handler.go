package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httperr"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/httpresp"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/middleware"
	"github.com/BruksfildServices01/vehicle-maintenance/internal/models"
	ucAppointment "github.com/BruksfildServices01/vehicle-maintenance/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentUseCases struct {
	Create       *ucAppointment.CreateAppointment
	Get          *ucAppointment.GetAppointment
	History      *ucAppointment.ListHistory
	ListAll      *ucAppointment.ListAll
	Update       *ucAppointment.UpdateAppointment
	Cancel       *ucAppointment.CancelAppointment
	Availability *ucAppointment.GetAvailability
	Overview     *ucAppointment.Overview
}

type AppointmentHandler struct {
	uc  AppointmentUseCases
	log *zap.Logger
}

func NewAppointmentHandler(uc AppointmentUseCases, log *zap.Logger) *AppointmentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AppointmentHandler{uc: uc, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type VehicleRequest struct {
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year" binding:"required"`
	Registration string `json:"registration"`
}

type CustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

type CreateAppointmentRequest struct {
	ServiceCategory string          `json:"service_category" binding:"required"`
	SpecificService string          `json:"specific_service" binding:"required"`
	AppointmentDate string          `json:"appointment_date" binding:"required"`
	AppointmentTime string          `json:"appointment_time" binding:"required"`
	Vehicle         VehicleRequest  `json:"vehicle"`
	Customer        CustomerRequest `json:"customer"`
	AdditionalNotes string          `json:"additional_notes"`
}

func (r CreateAppointmentRequest) input() ucAppointment.CreateAppointmentInput {
	return ucAppointment.CreateAppointmentInput{
		ServiceCategory: r.ServiceCategory,
		SpecificService: r.SpecificService,
		Date:            r.AppointmentDate,
		Time:            r.AppointmentTime,
		Vehicle: models.VehicleSnapshot{
			Make:         r.Vehicle.Make,
			Model:        r.Vehicle.Model,
			Year:         r.Vehicle.Year,
			Registration: r.Vehicle.Registration,
		},
		Customer: models.CustomerSnapshot{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
		},
		AdditionalNotes: r.AdditionalNotes,
	}
}

// UpdateAppointmentRequest is a partial update; absent fields stay untouched.
type UpdateAppointmentRequest struct {
	Status          *string `json:"status"`
	Technician      *string `json:"technician"`
	Cost            *string `json:"cost"`
	Notes           *string `json:"notes"`
	AdditionalNotes *string `json:"additional_notes"`
}

func (r UpdateAppointmentRequest) request() ucAppointment.UpdateRequest {
	var out ucAppointment.UpdateRequest
	if r.Status != nil {
		out.Status = &ucAppointment.StatusChange{To: *r.Status}
	}
	if r.Technician != nil || r.Cost != nil || r.Notes != nil || r.AdditionalNotes != nil {
		out.Details = &ucAppointment.DetailUpdate{
			Technician:      r.Technician,
			Cost:            r.Cost,
			Notes:           r.Notes,
			AdditionalNotes: r.AdditionalNotes,
		}
	}
	return out
}

// ======================================================
// AVAILABILITY (public)
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	date := c.Query("date")

	avail, err := h.uc.Availability.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":         date,
		"availability": avail,
	})
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	h.create(c, domain.EntryBooking)
}

// Request queues an appointment in pending for an admin to confirm.
func (h *AppointmentHandler) Request(c *gin.Context) {
	h.create(c, domain.EntryReview)
}

func (h *AppointmentHandler) create(c *gin.Context, entry domain.EntryPoint) {
	var req CreateAppointmentRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	ap, err := h.uc.Create.Execute(
		c.Request.Context(),
		middleware.ActorFrom(c),
		entry,
		req.input(),
	)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.uc.Get.Execute(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) History(c *gin.Context) {
	page, err := h.uc.History.Execute(c.Request.Context(), middleware.ActorFrom(c), ucAppointment.HistoryQuery{
		Status: c.Query("status"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Paginated(c, page)
}

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	page, err := h.uc.ListAll.Execute(c.Request.Context(), middleware.ActorFrom(c), ucAppointment.AdminQuery{
		Status: c.Query("status"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 10),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Paginated(c, page)
}

func (h *AppointmentHandler) Overview(c *gin.Context) {
	out, err := h.uc.Overview.Execute(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// UPDATE / CANCEL
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req UpdateAppointmentRequest
	if !bindJSON(c, h.log, &req) {
		return
	}

	ap, err := h.uc.Update.Execute(
		c.Request.Context(),
		middleware.ActorFrom(c),
		c.Param("id"),
		req.request(),
	)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.uc.Cancel.Execute(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, ap)
}
