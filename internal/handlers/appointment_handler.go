package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucAppointment.CreateAppointment
	listMineUC     *ucAppointment.ListMyAppointments
	listForSalonUC *ucAppointment.ListSalonAppointments
	getUC          *ucAppointment.GetAppointment
	updateStatusUC *ucAppointment.UpdateAppointmentStatus
	cancelUC       *ucAppointment.CancelAppointment
	exportUC       *ucAppointment.ExportSalonAppointments
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	listMineUC *ucAppointment.ListMyAppointments,
	listForSalonUC *ucAppointment.ListSalonAppointments,
	getUC *ucAppointment.GetAppointment,
	updateStatusUC *ucAppointment.UpdateAppointmentStatus,
	cancelUC *ucAppointment.CancelAppointment,
	exportUC *ucAppointment.ExportSalonAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		listMineUC:     listMineUC,
		listForSalonUC: listForSalonUC,
		getUC:          getUC,
		updateStatusUC: updateStatusUC,
		cancelUC:       cancelUC,
		exportUC:       exportUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	Salon     string `json:"salon" binding:"required"`
	Service   string `json:"service" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required,clock"`
	EndTime   string `json:"endTime" binding:"required,clock"`
	Notes     string `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, ucAppointment.ErrInvalidInput)
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		UserID:    middleware.CurrentUser(c).ID,
		SalonID:   req.Salon,
		ServiceID: req.Service,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	list, err := h.listMineUC.Execute(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListForSalon(c *gin.Context) {
	list, err := h.listForSalonUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	view, err := h.getUC.Execute(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, view)
}

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, ucAppointment.ErrInvalidStatus)
		return
	}

	ap, err := h.updateStatusUC.Execute(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"), req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	if _, err := h.cancelUC.Execute(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Appointment cancelled")
}

func (h *AppointmentHandler) Export(c *gin.Context) {
	out, err := h.exportUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	c.Data(http.StatusOK, xlsxMime, out.Body.Bytes())
}
