package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// SalonRef is the salon embedded in an appointment response. Only the fields
// the endpoint asks for are set; a salon that no longer exists carries just
// its id.
type SalonRef struct {
	ID            string          `json:"id"`
	Name          string          `json:"name,omitempty"`
	Address       *models.Address `json:"address,omitempty"`
	Email         string          `json:"email,omitempty"`
	ContactNumber string          `json:"contactNumber,omitempty"`
}

type UserRef struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type AppointmentDTO struct {
	ID         string    `json:"id"`
	User       UserRef   `json:"user"`
	Salon      SalonRef  `json:"salon"`
	Service    string    `json:"service"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	Status     string    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	TotalPrice float64   `json:"totalPrice"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func NewAppointmentDTO(ap models.Appointment) AppointmentDTO {
	return AppointmentDTO{
		ID:         ap.ID,
		User:       UserRef{ID: ap.UserID},
		Salon:      SalonRef{ID: ap.SalonID},
		Service:    ap.ServiceID,
		Date:       ap.Date,
		StartTime:  ap.StartTime,
		EndTime:    ap.EndTime,
		Status:     ap.Status,
		Notes:      ap.Notes,
		TotalPrice: ap.TotalPrice,
		CreatedAt:  ap.CreatedAt,
		UpdatedAt:  ap.UpdatedAt,
	}
}

// SalonSummary is the salon as shown in the caller's own appointment list.
func SalonSummary(s models.Salon) SalonRef {
	addr := s.Address
	return SalonRef{ID: s.ID, Name: s.Name, Address: &addr}
}

// SalonDetail adds the contact fields shown on a single appointment.
func SalonDetail(s models.Salon) SalonRef {
	ref := SalonSummary(s)
	ref.Email = s.Email
	ref.ContactNumber = s.ContactNumber
	return ref
}

func UserContact(u models.User) UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email, PhoneNumber: u.PhoneNumber}
}

type SalonPageDTO struct {
	Salons []models.Salon `json:"salons"`
	Page   int            `json:"page"`
	Pages  int            `json:"pages"`
}

// AuthDTO is returned by register, login and OAuth login.
type AuthDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	IsAdmin     bool   `json:"isAdmin"`
	Token       string `json:"token"`
}

type MessageDTO struct {
	Message string `json:"message"`
}
