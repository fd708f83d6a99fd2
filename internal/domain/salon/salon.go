package salon

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

const PageSize = 10

// FindService looks up an embedded service by id.
func FindService(s *models.Salon, serviceID string) (*models.Service, bool) {
	for i := range s.Services {
		if s.Services[i].ID == serviceID {
			return &s.Services[i], true
		}
	}
	return nil, false
}

// PrepareServices gives every service without an id a fresh one.
func PrepareServices(services []models.Service) []models.Service {
	out := make([]models.Service, 0, len(services))
	for _, svc := range services {
		if svc.ID == "" {
			svc.ID = domain.NewID()
		}
		out = append(out, svc)
	}
	return out
}

func ValidateServices(services []models.Service) error {
	seen := make(map[string]bool, len(services))
	for _, svc := range services {
		if svc.Name == "" {
			return httperr.InvalidInput("invalid_service", "Service name is required")
		}
		if svc.Duration < 0 || svc.Price < 0 {
			return httperr.InvalidInput("invalid_service", fmt.Sprintf("Service %q has a negative duration or price", svc.Name))
		}
		if svc.ID != "" {
			if seen[svc.ID] {
				return httperr.InvalidInput("invalid_service", fmt.Sprintf("Duplicate service id %s", svc.ID))
			}
			seen[svc.ID] = true
		}
	}
	return nil
}

func ValidateWorkingHours(hours []models.WorkingHours) error {
	for _, wh := range hours {
		if !validators.IsWeekday(wh.Day) {
			return httperr.InvalidInput("invalid_working_hours", fmt.Sprintf("Invalid day: %s", wh.Day))
		}
		if !validators.IsClock(wh.Open) || !validators.IsClock(wh.Close) {
			return httperr.InvalidInput("invalid_working_hours", fmt.Sprintf("Invalid open/close time for %s", wh.Day))
		}
	}
	return nil
}

// Validate checks a full salon payload before it is created.
func Validate(s *models.Salon) error {
	required := map[string]string{
		"name":          s.Name,
		"description":   s.Description,
		"contactNumber": s.ContactNumber,
		"email":         s.Email,
	}
	for _, field := range []string{"name", "description", "contactNumber", "email"} {
		if strings.TrimSpace(required[field]) == "" {
			return httperr.InvalidInput("invalid_salon", fmt.Sprintf("Salon %s is required", field))
		}
	}
	if err := validateAddress(s.Address); err != nil {
		return err
	}
	if err := ValidateServices(s.Services); err != nil {
		return err
	}
	return ValidateWorkingHours(s.WorkingHours)
}

func validateAddress(a models.Address) error {
	if a.Street == "" || a.City == "" || a.State == "" || a.ZipCode == "" || a.Country == "" {
		return httperr.InvalidInput("invalid_salon", "Salon address must include street, city, state, zipCode and country")
	}
	return nil
}

// Patch carries the fields of a partial update; nil means "leave unchanged".
type Patch struct {
	Name          *string
	Description   *string
	Address       *models.Address
	ContactNumber *string
	Email         *string
	Images        *[]string
	Services      *[]models.Service
	WorkingHours  *[]models.WorkingHours
	IsVerified    *bool
}

func (p Patch) Validate() error {
	required := []struct {
		field string
		value *string
	}{
		{"name", p.Name},
		{"description", p.Description},
		{"contactNumber", p.ContactNumber},
		{"email", p.Email},
	}
	for _, r := range required {
		if r.value != nil && strings.TrimSpace(*r.value) == "" {
			return httperr.InvalidInput("invalid_salon", fmt.Sprintf("Salon %s cannot be empty", r.field))
		}
	}
	if p.Address != nil {
		if err := validateAddress(*p.Address); err != nil {
			return err
		}
	}
	if p.Services != nil {
		if err := ValidateServices(*p.Services); err != nil {
			return err
		}
	}
	if p.WorkingHours != nil {
		if err := ValidateWorkingHours(*p.WorkingHours); err != nil {
			return err
		}
	}
	return nil
}

func (p Patch) Apply(s *models.Salon) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.Address != nil {
		s.Address = *p.Address
	}
	if p.ContactNumber != nil {
		s.ContactNumber = *p.ContactNumber
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	if p.Images != nil {
		s.Images = nonNil(*p.Images)
	}
	if p.Services != nil {
		s.Services = PrepareServices(*p.Services)
	}
	if p.WorkingHours != nil {
		s.WorkingHours = nonNil(*p.WorkingHours)
	}
	if p.IsVerified != nil {
		s.IsVerified = *p.IsVerified
	}
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// Normalize makes the embedded lists empty instead of nil so they are stored
// and serialized as [].
func Normalize(s *models.Salon) {
	s.Images = nonNil(s.Images)
	s.Services = PrepareServices(s.Services)
	s.WorkingHours = nonNil(s.WorkingHours)
}
