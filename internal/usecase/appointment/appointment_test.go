package appointment

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type fixture struct {
	store   *repository.Store
	salon   *models.Salon
	alice   *models.User
	admin   *models.User
	mallory *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore().Store()

	f := &fixture{
		store:   store,
		alice:   &models.User{ID: domain.NewID(), Name: "Alice", Email: "alice@test.dev", PhoneNumber: "555-1"},
		admin:   &models.User{ID: domain.NewID(), Name: "Admin", Email: "admin@test.dev", IsAdmin: true},
		mallory: &models.User{ID: domain.NewID(), Name: "Mallory", Email: "mallory@test.dev"},
		salon: &models.Salon{
			ID:   domain.NewID(),
			Name: "Shear Joy",
			Services: []models.Service{
				{ID: domain.NewID(), Name: "Haircut", Duration: 30, Price: 30},
				{ID: domain.NewID(), Name: "Color", Duration: 90, Price: 80},
			},
		},
	}

	for _, u := range []*models.User{f.alice, f.admin, f.mallory} {
		if err := store.Users.Create(ctx, u); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Salons.Create(ctx, f.salon); err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) create(opts CreateOptions) *CreateAppointment {
	return NewCreateAppointment(f.store.Appointments, f.store.Salons, nil, nil, opts)
}

func (f *fixture) book(t *testing.T, user *models.User, date, start, end string) *models.Appointment {
	t.Helper()
	ap, err := f.create(CreateOptions{}).Execute(context.Background(), CreateAppointmentInput{
		UserID:    user.ID,
		SalonID:   f.salon.ID,
		ServiceID: f.salon.Services[0].ID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	})
	if err != nil {
		t.Fatal(err)
	}
	return ap
}

func TestCreateSnapshotsPrice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	ap := f.book(t, f.alice, "2026-06-01", "10:00", "10:30")
	if ap.Status != "Pending" || ap.TotalPrice != 30 {
		t.Fatalf("unexpected appointment %+v", ap)
	}

	f.salon.Services[0].Price = 45
	if err := f.store.Salons.Update(ctx, f.salon); err != nil {
		t.Fatal(err)
	}

	stored, _ := f.store.Appointments.GetByID(ctx, ap.ID)
	if stored.TotalPrice != 30 {
		t.Errorf("price must not follow the service, got %v", stored.TotalPrice)
	}
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	uc := f.create(CreateOptions{})
	base := CreateAppointmentInput{
		UserID:    f.alice.ID,
		SalonID:   f.salon.ID,
		ServiceID: f.salon.Services[0].ID,
		Date:      "2026-06-01",
		StartTime: "10:00",
		EndTime:   "10:30",
	}

	cases := []struct {
		name   string
		mutate func(*CreateAppointmentInput)
		want   error
	}{
		{"malformed salon id", func(in *CreateAppointmentInput) { in.SalonID = "xyz" }, ErrInvalidSalonID},
		{"unknown salon", func(in *CreateAppointmentInput) { in.SalonID = domain.NewID() }, ErrSalonNotFound},
		{"unknown service", func(in *CreateAppointmentInput) { in.ServiceID = "nope" }, ErrServiceNotFound},
		{"bad date", func(in *CreateAppointmentInput) { in.Date = "June 1st" }, ErrInvalidInput},
		{"bad clock", func(in *CreateAppointmentInput) { in.StartTime = "25:00" }, ErrInvalidInput},
		{"end before start", func(in *CreateAppointmentInput) { in.EndTime = "09:00" }, ErrInvalidTimeRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			if _, err := uc.Execute(context.Background(), in); !errors.Is(err, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateConflictCheck(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.book(t, f.alice, "2026-06-01", "10:00", "11:00")

	in := CreateAppointmentInput{
		UserID:    f.mallory.ID,
		SalonID:   f.salon.ID,
		ServiceID: f.salon.Services[1].ID,
		Date:      "2026-06-01",
		StartTime: "10:30",
		EndTime:   "12:00",
	}

	if _, err := f.create(CreateOptions{}).Execute(ctx, in); err != nil {
		t.Fatalf("overlaps are accepted when the check is off: %v", err)
	}

	in.StartTime, in.EndTime = "10:45", "11:15"
	_, err := f.create(CreateOptions{ConflictCheck: true}).Execute(ctx, in)
	if httperr.KindOf(err) != httperr.KindConflict {
		t.Errorf("expected conflict, got %v", err)
	}

	in.StartTime, in.EndTime = "12:00", "12:30"
	if _, err := f.create(CreateOptions{ConflictCheck: true}).Execute(ctx, in); err != nil {
		t.Errorf("adjacent slot must be free: %v", err)
	}
}

func TestListMineIsSortedAndScoped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.book(t, f.alice, "2026-06-02", "09:00", "09:30")
	f.book(t, f.alice, "2026-06-01", "16:00", "16:30")
	f.book(t, f.alice, "2026-06-01", "11:00", "11:30")
	f.book(t, f.mallory, "2026-05-01", "08:00", "08:30")

	list, err := NewListMyAppointments(f.store.Appointments, f.store.Salons).Execute(ctx, f.alice.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3, got %d", len(list))
	}

	want := []string{"11:00", "16:00", "09:00"}
	for i, v := range list {
		if v.StartTime != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], v.StartTime)
		}
		if v.User.ID != f.alice.ID {
			t.Errorf("foreign appointment in list: %+v", v)
		}
		if v.Salon.Name != "Shear Joy" || v.Salon.Address == nil {
			t.Errorf("salon not enriched: %+v", v.Salon)
		}
	}
}

func TestListForSalon(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.book(t, f.alice, "2026-06-01", "10:00", "10:30")

	uc := NewListSalonAppointments(f.store.Appointments, f.store.Salons, f.store.Users)

	list, err := uc.Execute(ctx, f.salon.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].User.Email != "alice@test.dev" || list[0].User.PhoneNumber != "555-1" {
		t.Errorf("user not enriched: %+v", list)
	}

	if _, err := uc.Execute(ctx, domain.NewID()); !errors.Is(err, ErrSalonNotFound) {
		t.Errorf("expected salon not found, got %v", err)
	}
}

func TestGetRequiresOwnerOrAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ap := f.book(t, f.alice, "2026-06-01", "10:00", "10:30")

	uc := NewGetAppointment(f.store.Appointments, f.store.Salons, f.store.Users)

	for _, actor := range []*models.User{f.alice, f.admin} {
		view, err := uc.Execute(ctx, actor, ap.ID)
		if err != nil {
			t.Fatalf("%s: %v", actor.Name, err)
		}
		if view.Salon.Name != "Shear Joy" || view.User.Name != "Alice" {
			t.Errorf("view not enriched: %+v", view)
		}
	}

	_, err := uc.Execute(ctx, f.mallory, ap.ID)
	if httperr.KindOf(err) != httperr.KindForbidden {
		t.Errorf("expected forbidden, got %v", err)
	}

	if _, err := uc.Execute(ctx, f.alice, "bad-id"); !errors.Is(err, ErrInvalidAppointmentID) {
		t.Errorf("expected invalid id, got %v", err)
	}
	if _, err := uc.Execute(ctx, f.alice, domain.NewID()); !errors.Is(err, ErrAppointmentNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestGetToleratesDeletedSalon(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ap := f.book(t, f.alice, "2026-06-01", "10:00", "10:30")

	_ = f.store.Salons.Delete(ctx, f.salon.ID)

	view, err := NewGetAppointment(f.store.Appointments, f.store.Salons, f.store.Users).Execute(ctx, f.alice, ap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if view.Salon.ID != f.salon.ID || view.Salon.Name != "" {
		t.Errorf("expected bare salon reference, got %+v", view.Salon)
	}
}

func TestUpdateStatusAcceptsAnyValidValue(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ap := f.book(t, f.alice, "2026-06-01", "10:00", "10:30")

	uc := NewUpdateAppointmentStatus(f.store.Appointments, nil, nil, "UTC")

	for _, status := range []string{"Completed", "Pending", "Cancelled", "Confirmed"} {
		got, err := uc.Execute(ctx, f.admin.ID, ap.ID, status)
		if err != nil {
			t.Fatalf("%s: %v", status, err)
		}
		if got.Status != status {
			t.Errorf("expected %s, got %s", status, got.Status)
		}
	}

	if _, err := uc.Execute(ctx, f.admin.ID, ap.ID, "Done"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected invalid status, got %v", err)
	}
}

func TestCancelRules(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ap := f.book(t, f.alice, "2026-06-01", "10:00", "10:30")

	uc := NewCancelAppointment(f.store.Appointments, nil, nil, "UTC")

	if _, err := uc.Execute(ctx, f.mallory, ap.ID); httperr.KindOf(err) != httperr.KindForbidden {
		t.Errorf("expected forbidden for a stranger, got %v", err)
	}

	got, err := uc.Execute(ctx, f.alice, ap.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != "Cancelled" || got.CancelledAt == nil {
		t.Errorf("unexpected cancel result %+v", got)
	}

	_, err = uc.Execute(ctx, f.admin, ap.ID)
	if httperr.KindOf(err) != httperr.KindInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if err.Error() != "Cannot cancel appointment with status: Cancelled" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestCancelCompletedFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	ap := f.book(t, f.alice, "2026-06-01", "10:00", "10:30")

	_, _ = NewUpdateAppointmentStatus(f.store.Appointments, nil, nil, "UTC").Execute(ctx, f.admin.ID, ap.ID, "Completed")

	_, err := NewCancelAppointment(f.store.Appointments, nil, nil, "UTC").Execute(ctx, f.admin, ap.ID)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("expected invalid_state, got %v", err)
	}
}

func TestExportWritesOneRowPerAppointment(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.book(t, f.alice, "2026-06-02", "09:00", "09:30")
	f.book(t, f.mallory, "2026-06-01", "10:00", "10:30")

	out, err := NewExportSalonAppointments(f.store.Appointments, f.store.Salons, f.store.Users).Execute(ctx, f.salon.ID)
	if err != nil {
		t.Fatal(err)
	}

	book, err := excelize.OpenReader(bytes.NewReader(out.Body.Bytes()))
	if err != nil {
		t.Fatalf("not a workbook: %v", err)
	}
	defer book.Close()

	rows, err := book.GetRows(exportSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "2026-06-01" || rows[1][3] != "Mallory" || rows[1][6] != "Haircut" {
		t.Errorf("unexpected first row %v", rows[1])
	}
}
