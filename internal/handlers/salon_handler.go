package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucSalon "github.com/BruksfildServices01/salon-scheduler/internal/usecase/salon"
)

const maxImageUpload = 10 << 20

// ======================================================
// HANDLER
// ======================================================

type SalonHandler struct {
	list     *ucSalon.ListSalons
	get      *ucSalon.GetSalon
	create   *ucSalon.CreateSalon
	update   *ucSalon.UpdateSalon
	delete   *ucSalon.DeleteSalon
	addImage *ucSalon.AddSalonImage
}

// NewSalonHandler wires the salon use cases. addImage may be nil when no
// object storage is configured.
func NewSalonHandler(
	list *ucSalon.ListSalons,
	get *ucSalon.GetSalon,
	create *ucSalon.CreateSalon,
	update *ucSalon.UpdateSalon,
	del *ucSalon.DeleteSalon,
	addImage *ucSalon.AddSalonImage,
) *SalonHandler {
	return &SalonHandler{
		list:     list,
		get:      get,
		create:   create,
		update:   update,
		delete:   del,
		addImage: addImage,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateSalonRequest struct {
	Name          string                `json:"name" binding:"required"`
	Description   string                `json:"description" binding:"required"`
	Address       models.Address        `json:"address"`
	ContactNumber string                `json:"contactNumber" binding:"required"`
	Email         string                `json:"email" binding:"required,email"`
	Images        []string              `json:"images"`
	Services      []models.Service      `json:"services"`
	WorkingHours  []models.WorkingHours `json:"workingHours"`
}

// UpdateSalonRequest leaves a field nil when the client omitted it.
type UpdateSalonRequest struct {
	Name          *string                `json:"name"`
	Description   *string                `json:"description"`
	Address       *models.Address        `json:"address"`
	ContactNumber *string                `json:"contactNumber"`
	Email         *string                `json:"email" binding:"omitempty,email"`
	Images        *[]string              `json:"images"`
	Services      *[]models.Service      `json:"services"`
	WorkingHours  *[]models.WorkingHours `json:"workingHours"`
	IsVerified    *bool                  `json:"isVerified"`
}

// ======================================================
// ENDPOINTS
// ======================================================

func (h *SalonHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("pageNumber"))

	out, err := h.list.Execute(c.Request.Context(), ucSalon.ListSalonsInput{
		Keyword: c.Query("keyword"),
		Page:    page,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *SalonHandler) Get(c *gin.Context) {
	s, err := h.get.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *SalonHandler) Create(c *gin.Context) {
	var req CreateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid input data")
		return
	}

	s, err := h.create.Execute(c.Request.Context(), middleware.CurrentUser(c).ID, ucSalon.CreateSalonInput{
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Images:        req.Images,
		Services:      req.Services,
		WorkingHours:  req.WorkingHours,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, s)
}

func (h *SalonHandler) Update(c *gin.Context) {
	var req UpdateSalonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid input data")
		return
	}

	s, err := h.update.Execute(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"), domainSalon.Patch{
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Images:        req.Images,
		Services:      req.Services,
		WorkingHours:  req.WorkingHours,
		IsVerified:    req.IsVerified,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, s)
}

func (h *SalonHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Message(c, "Salon removed")
}

func (h *SalonHandler) UploadImage(c *gin.Context) {
	if h.addImage == nil {
		httperr.NotImplemented(c, "uploads_disabled", "Image uploads are not configured")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageUpload)

	file, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "An image file is required")
		return
	}

	f, err := file.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "An image file is required")
		return
	}
	defer f.Close()

	s, err := h.addImage.Execute(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("id"), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, s)
}
