package appointment

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	domainAppointment "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	domainUser "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const exportSheet = "Appointments"

var exportHeader = []any{"Date", "Start", "End", "Customer", "Email", "Phone", "Service", "Status", "Price", "Notes"}

type Export struct {
	Filename string
	Body     *bytes.Buffer
}

// ExportSalonAppointments renders a salon's appointments as an XLSX workbook,
// one row per appointment in ledger order.
type ExportSalonAppointments struct {
	list  *ListSalonAppointments
	users domainUser.Repository
}

func NewExportSalonAppointments(
	appointments domainAppointment.Repository,
	salons domainSalon.Repository,
	users domainUser.Repository,
) *ExportSalonAppointments {
	return &ExportSalonAppointments{
		list:  NewListSalonAppointments(appointments, salons, users),
		users: users,
	}
}

func (uc *ExportSalonAppointments) Execute(ctx context.Context, salonID string) (*Export, error) {
	salon, apps, err := uc.list.load(ctx, salonID)
	if err != nil {
		return nil, err
	}

	views, err := withUsers(ctx, uc.users, apps)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, httperr.Internal("export_failed", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return nil, httperr.Internal("export_failed", err)
	}

	if style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	}); err == nil {
		_ = f.SetCellStyle(exportSheet, "A1", "J1", style)
	}

	for i, v := range views {
		row := []any{
			v.Date.Format("2006-01-02"),
			v.StartTime,
			v.EndTime,
			v.User.Name,
			v.User.Email,
			v.User.PhoneNumber,
			serviceName(salon, v.Service),
			v.Status,
			v.TotalPrice,
			v.Notes,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, httperr.Internal("export_failed", err)
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "J", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, httperr.Internal("export_failed", err)
	}

	return &Export{
		Filename: fmt.Sprintf("appointments-%s.xlsx", salon.ID),
		Body:     buf,
	}, nil
}

// serviceName falls back to the id when the service was removed from the salon.
func serviceName(s *models.Salon, serviceID string) string {
	if svc, ok := domainSalon.FindService(s, serviceID); ok {
		return svc.Name
	}
	return serviceID
}
