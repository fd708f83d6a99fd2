package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainAppointment "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// MemoryStore keeps every collection in process memory. It backs
// DB_DRIVER=memory and the HTTP tests.
type MemoryStore struct {
	mu           sync.RWMutex
	users        map[string]models.User
	salons       map[string]models.Salon
	salonOrder   []string
	appointments map[string]models.Appointment
	auditLogs    []models.AuditLog
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]models.User),
		salons:       make(map[string]models.Salon),
		appointments: make(map[string]models.Appointment),
	}
}

// Store bundles the memory repositories.
func (m *MemoryStore) Store() *Store {
	return &Store{
		Users:        &memoryUsers{m},
		Salons:       &memorySalons{m},
		Appointments: &memoryAppointments{m},
		Audit:        m,
		Close:        func(context.Context) error { return nil },
	}
}

func (m *MemoryStore) AuditLogs() []models.AuditLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.AuditLog(nil), m.auditLogs...)
}

func (m *MemoryStore) CreateAuditLog(_ context.Context, e *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.auditLogs = append(m.auditLogs, *e)
	return nil
}

func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// --------------------------------------------------
// Users
// --------------------------------------------------

type memoryUsers struct{ m *MemoryStore }

func (r *memoryUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	u, ok := r.m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *memoryUsers) GetByIDs(_ context.Context, ids []string) (map[string]models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make(map[string]models.User, len(ids))
	for _, id := range ids {
		if u, ok := r.m.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (r *memoryUsers) find(match func(models.User) bool) (*models.User, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	for _, u := range r.m.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email == email })
}

func (r *memoryUsers) GetByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.GoogleID != nil && *u.GoogleID == googleID })
}

func (r *memoryUsers) conflicts(u *models.User) bool {
	for id, other := range r.m.users {
		if id == u.ID {
			continue
		}
		if other.Email == u.Email {
			return true
		}
		if u.GoogleID != nil && other.GoogleID != nil && *u.GoogleID == *other.GoogleID {
			return true
		}
	}
	return false
}

func (r *memoryUsers) Create(_ context.Context, u *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, exists := r.m.users[u.ID]; exists || r.conflicts(u) {
		return domain.ErrDuplicateKey
	}
	stamp(&u.CreatedAt, &u.UpdatedAt)
	r.m.users[u.ID] = *u
	return nil
}

func (r *memoryUsers) Update(_ context.Context, u *models.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, exists := r.m.users[u.ID]; !exists {
		return domain.ErrNotFound
	}
	if r.conflicts(u) {
		return domain.ErrDuplicateKey
	}
	stamp(&u.CreatedAt, &u.UpdatedAt)
	r.m.users[u.ID] = *u
	return nil
}

// --------------------------------------------------
// Salons
// --------------------------------------------------

type memorySalons struct{ m *MemoryStore }

func cloneSalon(s models.Salon) models.Salon {
	s.Images = append([]string{}, s.Images...)
	s.Services = append([]models.Service{}, s.Services...)
	s.WorkingHours = append([]models.WorkingHours{}, s.WorkingHours...)
	return s
}

func (r *memorySalons) List(_ context.Context, q salon.Query) ([]models.Salon, int64, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	keyword := strings.ToLower(q.Keyword)
	var matched []models.Salon
	for _, id := range r.m.salonOrder {
		s := r.m.salons[id]
		if keyword == "" || strings.Contains(strings.ToLower(s.Name), keyword) {
			matched = append(matched, s)
		}
	}

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return []models.Salon{}, total, nil
	}
	end := len(matched)
	if q.Limit > 0 && q.Offset+q.Limit < end {
		end = q.Offset + q.Limit
	}

	out := make([]models.Salon, 0, end-q.Offset)
	for _, s := range matched[q.Offset:end] {
		out = append(out, cloneSalon(s))
	}
	return out, total, nil
}

func (r *memorySalons) GetByID(_ context.Context, id string) (*models.Salon, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	s, ok := r.m.salons[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s = cloneSalon(s)
	return &s, nil
}

func (r *memorySalons) GetByIDs(_ context.Context, ids []string) (map[string]models.Salon, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := make(map[string]models.Salon, len(ids))
	for _, id := range ids {
		if s, ok := r.m.salons[id]; ok {
			out[id] = cloneSalon(s)
		}
	}
	return out, nil
}

func (r *memorySalons) Create(_ context.Context, s *models.Salon) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, exists := r.m.salons[s.ID]; exists {
		return domain.ErrDuplicateKey
	}
	stamp(&s.CreatedAt, &s.UpdatedAt)
	r.m.salons[s.ID] = cloneSalon(*s)
	r.m.salonOrder = append(r.m.salonOrder, s.ID)
	return nil
}

func (r *memorySalons) Update(_ context.Context, s *models.Salon) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, exists := r.m.salons[s.ID]; !exists {
		return domain.ErrNotFound
	}
	stamp(&s.CreatedAt, &s.UpdatedAt)
	r.m.salons[s.ID] = cloneSalon(*s)
	return nil
}

func (r *memorySalons) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, exists := r.m.salons[id]; !exists {
		return domain.ErrNotFound
	}
	delete(r.m.salons, id)
	for i, sid := range r.m.salonOrder {
		if sid == id {
			r.m.salonOrder = append(r.m.salonOrder[:i], r.m.salonOrder[i+1:]...)
			break
		}
	}
	return nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

type memoryAppointments struct{ m *MemoryStore }

func (r *memoryAppointments) Create(_ context.Context, ap *models.Appointment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	if _, exists := r.m.appointments[ap.ID]; exists {
		return domain.ErrDuplicateKey
	}
	if ap.Version == 0 {
		ap.Version = 1
	}
	stamp(&ap.CreatedAt, &ap.UpdatedAt)
	r.m.appointments[ap.ID] = *ap
	return nil
}

func (r *memoryAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	ap, ok := r.m.appointments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &ap, nil
}

func (r *memoryAppointments) filter(match func(models.Appointment) bool) []models.Appointment {
	r.m.mu.RLock()
	defer r.m.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range r.m.appointments {
		if match(ap) {
			out = append(out, ap)
		}
	}
	sortAppointments(out)
	return out
}

func (r *memoryAppointments) ListByUser(_ context.Context, userID string) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool { return ap.UserID == userID }), nil
}

func (r *memoryAppointments) ListBySalon(_ context.Context, salonID string) ([]models.Appointment, error) {
	return r.filter(func(ap models.Appointment) bool { return ap.SalonID == salonID }), nil
}

func (r *memoryAppointments) CountOverlapping(
	_ context.Context,
	salonID string,
	date time.Time,
	start string,
	end string,
) (int64, error) {
	found := r.filter(func(ap models.Appointment) bool {
		return ap.SalonID == salonID &&
			ap.Date.Equal(date) &&
			domainAppointment.Status(ap.Status).IsActive() &&
			domainAppointment.Overlaps(ap.StartTime, ap.EndTime, start, end)
	})
	return int64(len(found)), nil
}

func (r *memoryAppointments) UpdateStatus(_ context.Context, ap *models.Appointment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	stored, ok := r.m.appointments[ap.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != ap.Version {
		return domain.ErrStaleVersion
	}

	stored.Status = ap.Status
	stored.CancelledAt = ap.CancelledAt
	stored.CompletedAt = ap.CompletedAt
	stored.Version++
	stored.UpdatedAt = time.Now().UTC()
	r.m.appointments[ap.ID] = stored

	ap.Version = stored.Version
	ap.UpdatedAt = stored.UpdatedAt
	return nil
}

func sortAppointments(aps []models.Appointment) {
	sort.SliceStable(aps, func(i, j int) bool {
		if !aps[i].Date.Equal(aps[j].Date) {
			return aps[i].Date.Before(aps[j].Date)
		}
		return aps[i].StartTime < aps[j].StartTime
	})
}
