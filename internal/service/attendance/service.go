package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/attendly/attendance-backend-go/internal/config"
	"github.com/attendly/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly/attendance-backend-go/internal/domain/auth"
	"github.com/attendly/attendance-backend-go/internal/domain/shift"
	"github.com/attendly/attendance-backend-go/internal/pkg/timeutil"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	shift.ShiftRepository
	cfg config.AttendanceConfig
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	shiftRepo shift.ShiftRepository,
	cfg config.AttendanceConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		ShiftRepository:      shiftRepo,
		cfg:                  cfg,
	}
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context) (attendance.RecordResponse, error) {
	employeeID, err := auth.EmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	nowUTC := time.Now().UTC()

	assigned, err := a.ShiftRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RecordResponse{}, shift.ErrNoShiftAssigned
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get assigned shift: %w", err)
	}

	loc := a.shiftLocation(assigned)
	nowLocal := nowUTC.In(loc)
	dateLocal := timeutil.FormatDate(nowLocal)

	// Idempotence: duplicate submissions return the day's record unchanged.
	existing, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, dateLocal)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to look up today's record: %w", err)
	}
	if existing != nil {
		return attendance.ToResponse(*existing), nil
	}

	checkIn := timeutil.FormatClock12(nowLocal)
	record := attendance.Record{
		ID:          uuid.NewString(),
		EmployeeID:  employeeID,
		Date:        dateLocal,
		CheckInTime: &checkIn,
		Status:      attendance.StatusCheckedIn,
		ShiftID:     assigned.ID,
	}

	stored, created, err := a.AttendanceRepository.CreateIfAbsent(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	if !created {
		slog.Info("duplicate check-in collapsed onto existing record",
			"employee_id", employeeID, "record_id", stored.ID)
	}

	return attendance.ToResponse(stored), nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context) (attendance.RecordResponse, error) {
	employeeID, err := auth.EmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := a.AttendanceRepository.GetOpenByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, attendance.ErrNoOpenRecord) {
			return attendance.RecordResponse{}, a.noOpenRecordError(ctx, employeeID)
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get open record: %w", err)
	}

	assigned := a.lookupShift(ctx, record.ShiftID)

	result, err := ComputeCheckout(record, assigned, time.Now().UTC(), a.cfg)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record.CheckOutTime = &result.CheckOutTime
	record.WorkingHours = &result.WorkingHours
	record.Status = result.Status

	if err := a.AttendanceRepository.Update(ctx, record); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return attendance.ToResponse(record), nil
}

// Status implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Status(ctx context.Context) (attendance.StatusResponse, error) {
	employeeID, err := auth.EmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	nowUTC := time.Now().UTC()

	var assigned *shift.Shift
	found, err := a.ShiftRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return attendance.StatusResponse{}, fmt.Errorf("failed to get assigned shift: %w", err)
		}
	} else {
		assigned = &found
	}

	var record *attendance.Record
	loc := a.statusLocation(assigned)
	dateLocal := timeutil.FormatDate(nowUTC.In(loc))
	record, err = a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, dateLocal)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to look up today's record: %w", err)
	}
	if record == nil {
		// An overnight shift past midnight keeps its open record keyed to
		// the previous calendar day.
		open, oerr := a.AttendanceRepository.GetOpenByEmployee(ctx, employeeID)
		switch {
		case oerr == nil:
			record = &open
		case errors.Is(oerr, pgx.ErrNoRows), errors.Is(oerr, attendance.ErrNoOpenRecord):
			// no open record either; state derives from the window alone
		default:
			return attendance.StatusResponse{}, fmt.Errorf("failed to get open record: %w", oerr)
		}
	}

	info := ResolveState(assigned, record, nowUTC, a.cfg)

	response := attendance.StatusResponse{
		State:   string(info.State),
		Message: info.Message,
	}

	if record != nil {
		rec := attendance.ToResponse(*record)
		response.Record = &rec

		if record.IsOpen() {
			day, derr := timeutil.ParseDate(record.Date, loc)
			if derr == nil {
				elapsed := nowUTC.In(loc).Sub(timeutil.CombineDateClock(day, *record.CheckInTime, loc))
				formatted := timeutil.FormatDuration(elapsed)
				response.ElapsedTime = &formatted
				response.CheckOutEnabled = elapsed >= time.Duration(a.cfg.MinWorkDurationMinutes)*time.Minute
			}
		}
	}

	return response, nil
}

// Regularize implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) Regularize(ctx context.Context, recordID string) (attendance.RecordResponse, error) {
	employeeID, err := auth.EmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RecordResponse{}, attendance.ErrRecordNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if record.EmployeeID != employeeID {
		return attendance.RecordResponse{}, attendance.ErrUnauthorized
	}

	assigned, err := a.ShiftRepository.GetByID(ctx, record.ShiftID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.RecordResponse{}, shift.ErrShiftNotFound
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	day, err := timeutil.ParseDate(record.Date, a.shiftLocation(assigned))
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("record %s has unparseable date: %w", record.ID, err)
	}

	// The quota count and the update run in one transaction so two
	// concurrent regularizations cannot both pass the quota gate.
	var updated attendance.Record
	err = a.AttendanceRepository.WithinTransaction(ctx, func(txCtx context.Context) error {
		used, err := a.AttendanceRepository.CountRegularized(txCtx, employeeID, day.Month(), day.Year())
		if err != nil {
			return fmt.Errorf("failed to count regularized records: %w", err)
		}

		updated, err = Regularize(record, assigned, used, a.cfg)
		if err != nil {
			return err
		}

		if err := a.AttendanceRepository.Update(txCtx, updated); err != nil {
			return fmt.Errorf("failed to update attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.ToResponse(updated), nil
}

// GetMyAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyAttendance(ctx context.Context, filter attendance.HistoryFilter) (attendance.ListRecordsResponse, error) {
	employeeID, err := auth.EmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}
	filter.Normalize()

	records, total, err := a.AttendanceRepository.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, attendance.ToResponse(record))
	}

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Records:    responses,
	}, nil
}

// GetMonthlySummary implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMonthlySummary(ctx context.Context, month int, year int) (attendance.MonthlySummaryResponse, error) {
	employeeID, err := auth.EmployeeIDFromContext(ctx)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, err
	}
	if month < 1 || month > 12 {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("month must be between 1 and 12")
	}

	counts, err := a.AttendanceRepository.SummarizeMonth(ctx, employeeID, time.Month(month), year)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to summarize month: %w", err)
	}

	used, err := a.AttendanceRepository.CountRegularized(ctx, employeeID, time.Month(month), year)
	if err != nil {
		return attendance.MonthlySummaryResponse{}, fmt.Errorf("failed to count regularized records: %w", err)
	}

	byStatus := make(map[string]int, len(counts))
	for status, count := range counts {
		byStatus[string(status)] = count
	}

	return attendance.MonthlySummaryResponse{
		Month:               month,
		Year:                year,
		Counts:              byStatus,
		RegularizationsUsed: used,
		RegularizationQuota: a.cfg.RegularizationMonthlyQuota,
	}, nil
}

// noOpenRecordError distinguishes a checkout attempt after the day was
// already closed from one with no check-in at all.
func (a *AttendanceServiceImpl) noOpenRecordError(ctx context.Context, employeeID string) error {
	loc, _ := timeutil.LocationOrUTC(a.cfg.DefaultTimeZone)
	if assigned, err := a.ShiftRepository.GetByEmployeeID(ctx, employeeID); err == nil {
		loc = a.shiftLocation(assigned)
	}

	today, err := a.AttendanceRepository.GetByEmployeeAndDate(ctx, employeeID, timeutil.FormatDate(time.Now().In(loc)))
	if err == nil && today != nil && today.CheckOutTime != nil {
		return attendance.ErrAlreadyCheckedOut
	}
	return attendance.ErrNotCheckedIn
}

// lookupShift resolves the shift in force for a record; checkout proceeds
// with uncapped hours when it cannot be resolved.
func (a *AttendanceServiceImpl) lookupShift(ctx context.Context, shiftID string) *shift.Shift {
	if shiftID == "" {
		return nil
	}
	found, err := a.ShiftRepository.GetByID(ctx, shiftID)
	if err != nil {
		slog.Warn("shift for record could not be resolved, crediting uncapped hours",
			"shift_id", shiftID, "error", err)
		return nil
	}
	return &found
}

func (a *AttendanceServiceImpl) shiftLocation(assigned shift.Shift) *time.Location {
	zone := assigned.TimeZone
	if zone == "" {
		zone = a.cfg.DefaultTimeZone
	}
	loc, fellBack := timeutil.LocationOrUTC(zone)
	if fellBack {
		slog.Warn("unknown shift time zone, falling back to UTC", "time_zone", zone, "shift_id", assigned.ID)
	}
	return loc
}

func (a *AttendanceServiceImpl) statusLocation(assigned *shift.Shift) *time.Location {
	if assigned != nil {
		return a.shiftLocation(*assigned)
	}
	loc, _ := timeutil.LocationOrUTC(a.cfg.DefaultTimeZone)
	return loc
}
