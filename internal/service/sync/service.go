// Package sync reconciles parsed rota shifts against each staff member's
// remote calendar, using the persisted mirror to skip keys whose content
// has not changed since the previous run.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rotasync/rotasync-backend-go/internal/config"
	"github.com/rotasync/rotasync-backend-go/internal/domain/calendar"
	"github.com/rotasync/rotasync-backend-go/internal/domain/rota"
	"github.com/rotasync/rotasync-backend-go/internal/domain/staff"
	"github.com/rotasync/rotasync-backend-go/internal/domain/synchist"
	"github.com/rotasync/rotasync-backend-go/internal/pkg/fingerprint"
)

// ErrSyncInProgress is returned when a run is requested while another run
// is still active. Concurrent runs against the same calendars are not
// safe, so they are serialized here.
var ErrSyncInProgress = errors.New("a sync run is already in progress")

// ErrStaffNotOnRoster is returned by SyncStaff for names missing from the
// configured roster.
var ErrStaffNotOnRoster = errors.New("staff member is not on the configured roster")

// RotaParser produces the desired state: the full ordered shift sequence
// for the current rota.
type RotaParser interface {
	Parse(ctx context.Context) ([]rota.Shift, error)
}

// Report aggregates one run's outcome. A non-empty Errors list makes the
// run partial, not failed; completed operations are never rolled back.
type Report struct {
	StaffProcessed  int
	ShiftsProcessed int
	ShiftsCreated   int
	ShiftsUpdated   int
	EventsCreated   int
	EventsUpdated   int
	EventsDeleted   int
	Errors          []string
	Status          synchist.Status
}

type staffReport struct {
	staffID         *string
	shiftsProcessed int
	shiftsCreated   int
	shiftsUpdated   int
	eventsCreated   int
	eventsUpdated   int
	eventsDeleted   int
	errors          []string
}

type Service struct {
	parser    RotaParser
	cal       calendar.Client
	staffRepo staff.StaffRepository
	shiftRepo rota.ShiftRepository
	runRepo   synchist.SyncRunRepository
	roster    *config.Roster
	timezone  string
	workers   int

	running sync.Mutex
}

func NewSyncService(
	parser RotaParser,
	cal calendar.Client,
	staffRepo staff.StaffRepository,
	shiftRepo rota.ShiftRepository,
	runRepo synchist.SyncRunRepository,
	roster *config.Roster,
	timezone string,
	workers int,
) *Service {
	if workers < 1 {
		workers = 1
	}
	return &Service{
		parser:    parser,
		cal:       cal,
		staffRepo: staffRepo,
		shiftRepo: shiftRepo,
		runRepo:   runRepo,
		roster:    roster,
		timezone:  timezone,
		workers:   workers,
	}
}

// SyncAll parses the rota once and reconciles every roster member's
// calendar. Staff members are independent keys and sync concurrently;
// operations within one member stay strictly ordered.
func (s *Service) SyncAll(ctx context.Context) (Report, error) {
	if !s.running.TryLock() {
		return Report{}, ErrSyncInProgress
	}
	defer s.running.Unlock()

	startedAt := time.Now()
	slog.Info("Starting full rota sync", "staff", len(s.roster.Staff))

	shifts, err := s.parser.Parse(ctx)
	if err != nil {
		s.recordRun(ctx, nil, Report{Status: synchist.StatusError, Errors: []string{err.Error()}}, startedAt)
		return Report{Status: synchist.StatusError}, err
	}
	byName := groupByName(shifts)

	entries := make(chan config.RosterEntry)
	results := make(chan staffReport)

	var wg sync.WaitGroup
	for range s.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range entries {
				results <- s.syncStaff(ctx, entry, byName[entry.Name])
			}
		}()
	}
	go func() {
		for _, entry := range s.roster.Staff {
			entries <- entry
		}
		close(entries)
		wg.Wait()
		close(results)
	}()

	var report Report
	for res := range results {
		report.StaffProcessed++
		report.ShiftsProcessed += res.shiftsProcessed
		report.ShiftsCreated += res.shiftsCreated
		report.ShiftsUpdated += res.shiftsUpdated
		report.EventsCreated += res.eventsCreated
		report.EventsUpdated += res.eventsUpdated
		report.EventsDeleted += res.eventsDeleted
		report.Errors = append(report.Errors, res.errors...)
		s.recordStaffRun(ctx, res, startedAt)
	}

	report.Status = synchist.StatusSuccess
	if len(report.Errors) > 0 {
		report.Status = synchist.StatusPartial
	}
	s.recordRun(ctx, nil, report, startedAt)

	slog.Info("Rota sync finished",
		"status", report.Status,
		"shifts", report.ShiftsProcessed,
		"created", report.EventsCreated,
		"updated", report.EventsUpdated,
		"deleted", report.EventsDeleted,
		"errors", len(report.Errors))
	return report, nil
}

// SyncStaff reconciles a single roster member by name.
func (s *Service) SyncStaff(ctx context.Context, name string) (Report, error) {
	if !s.running.TryLock() {
		return Report{}, ErrSyncInProgress
	}
	defer s.running.Unlock()

	var entry *config.RosterEntry
	for i := range s.roster.Staff {
		if s.roster.Staff[i].Name == name {
			entry = &s.roster.Staff[i]
			break
		}
	}
	if entry == nil {
		return Report{}, fmt.Errorf("%w: %s", ErrStaffNotOnRoster, name)
	}

	startedAt := time.Now()
	shifts, err := s.parser.Parse(ctx)
	if err != nil {
		return Report{Status: synchist.StatusError}, err
	}

	res := s.syncStaff(ctx, *entry, groupByName(shifts)[entry.Name])
	s.recordStaffRun(ctx, res, startedAt)

	report := Report{
		StaffProcessed:  1,
		ShiftsProcessed: res.shiftsProcessed,
		ShiftsCreated:   res.shiftsCreated,
		ShiftsUpdated:   res.shiftsUpdated,
		EventsCreated:   res.eventsCreated,
		EventsUpdated:   res.eventsUpdated,
		EventsDeleted:   res.eventsDeleted,
		Errors:          res.errors,
		Status:          synchist.StatusSuccess,
	}
	if len(report.Errors) > 0 {
		report.Status = synchist.StatusPartial
	}
	return report, nil
}

// syncStaff reconciles every shift of one member. Remote failures on one
// (person, date) key are recorded and never abort the rest of the batch.
func (s *Service) syncStaff(ctx context.Context, entry config.RosterEntry, shifts []rota.Shift) staffReport {
	var res staffReport
	res.shiftsProcessed = len(shifts)

	member, err := s.ensureStaff(ctx, entry)
	if err != nil {
		res.errors = append(res.errors, fmt.Sprintf("staff %s: %v", entry.Name, err))
		return res
	}
	res.staffID = &member.ID

	calendarID, err := s.ensureCalendar(ctx, &member, entry)
	if err != nil {
		res.errors = append(res.errors, fmt.Sprintf("calendar for %s: %v", entry.Name, err))
		return res
	}

	for _, shift := range shifts {
		if err := s.syncShift(ctx, member, calendarID, shift, &res); err != nil {
			res.errors = append(res.errors,
				fmt.Sprintf("%s %s: %v", entry.Name, shift.Date.Format("2006-01-02"), err))
		}
	}
	return res
}

// syncShift handles a single (person, date) key: mirror write, remote
// read, decision, mutations. Strictly ordered within the key.
func (s *Service) syncShift(ctx context.Context, member staff.StaffMember, calendarID string, shift rota.Shift, res *staffReport) error {
	shift.StaffID = member.ID
	shift.Fingerprint = fingerprint.Sum(shift)

	stored, err := s.shiftRepo.Upsert(ctx, shift)
	if err != nil {
		return fmt.Errorf("persist shift: %w", err)
	}
	if stored.Created {
		res.shiftsCreated++
	} else if stored.Changed {
		res.shiftsUpdated++
	}

	// Unchanged content with a known remote event needs no remote work.
	// This is the sole skip optimization in the pipeline; everything else
	// re-derives correctness from remote state.
	if !stored.Created && !stored.Changed && stored.Shift.CalendarEventID != nil {
		return nil
	}

	existing, err := s.cal.ListEvents(ctx, calendarID, shift.Date)
	if err != nil {
		return fmt.Errorf("list events: %w", err)
	}

	desired := BuildDescriptor(shift, s.timezone)
	decision := Decide(desired, existing)

	switch decision.Action {
	case calendar.ActionCreate:
		eventID, err := s.cal.CreateEvent(ctx, calendarID, desired)
		if err != nil {
			return fmt.Errorf("create event: %w", err)
		}
		res.eventsCreated++
		if err := s.shiftRepo.SetCalendarEventID(ctx, stored.Shift.ID, eventID); err != nil {
			return fmt.Errorf("record event id: %w", err)
		}
	case calendar.ActionUpdate:
		if err := s.cal.UpdateEvent(ctx, calendarID, decision.ExistingID, desired); err != nil {
			return fmt.Errorf("update event: %w", err)
		}
		res.eventsUpdated++
		if err := s.shiftRepo.SetCalendarEventID(ctx, stored.Shift.ID, decision.ExistingID); err != nil {
			return fmt.Errorf("record event id: %w", err)
		}
	case calendar.ActionNoop:
		if stored.Shift.CalendarEventID == nil || *stored.Shift.CalendarEventID != decision.ExistingID {
			if err := s.shiftRepo.SetCalendarEventID(ctx, stored.Shift.ID, decision.ExistingID); err != nil {
				return fmt.Errorf("record event id: %w", err)
			}
		}
	}

	for _, extraID := range decision.ExtraIDs {
		if err := s.cal.DeleteEvent(ctx, calendarID, extraID); err != nil {
			return fmt.Errorf("delete duplicate event %s: %w", extraID, err)
		}
		res.eventsDeleted++
	}
	return nil
}

func (s *Service) ensureStaff(ctx context.Context, entry config.RosterEntry) (staff.StaffMember, error) {
	member, err := s.staffRepo.GetByName(ctx, entry.Name)
	if err == nil {
		return member, nil
	}
	if !errors.Is(err, staff.ErrStaffNotFound) {
		return staff.StaffMember{}, err
	}

	slog.Info("Registering new staff member", "name", entry.Name)
	shares := make([]staff.Share, 0, len(entry.ShareWith))
	for _, share := range entry.ShareWith {
		shares = append(shares, staff.Share{Email: share.Email, Role: share.Role})
	}
	return s.staffRepo.Create(ctx, staff.StaffMember{
		Name:         entry.Name,
		CalendarName: entry.CalendarName,
		Shares:       shares,
	})
}

// ensureCalendar resolves the member's calendar, creating it remotely on
// first use, and makes sure every configured share exists.
func (s *Service) ensureCalendar(ctx context.Context, member *staff.StaffMember, entry config.RosterEntry) (string, error) {
	calendarID := ""
	if member.CalendarID != nil {
		calendarID = *member.CalendarID
	} else {
		calendars, err := s.cal.ListCalendars(ctx)
		if err != nil {
			return "", fmt.Errorf("list calendars: %w", err)
		}
		for _, c := range calendars {
			if c.Summary == entry.CalendarName {
				calendarID = c.ID
				break
			}
		}
		if calendarID == "" {
			calendarID, err = s.cal.CreateCalendar(ctx, entry.CalendarName, s.timezone)
			if err != nil {
				return "", fmt.Errorf("create calendar: %w", err)
			}
			slog.Info("Created calendar", "name", entry.CalendarName, "id", calendarID)
		}
		if err := s.staffRepo.UpdateCalendarID(ctx, member.ID, calendarID); err != nil {
			return "", fmt.Errorf("record calendar id: %w", err)
		}
		member.CalendarID = &calendarID
	}

	shared, err := s.cal.ListShares(ctx, calendarID)
	if err != nil {
		return "", fmt.Errorf("list shares: %w", err)
	}
	alreadyShared := make(map[string]bool, len(shared))
	for _, email := range shared {
		alreadyShared[email] = true
	}
	for _, share := range entry.ShareWith {
		if alreadyShared[share.Email] {
			continue
		}
		if err := s.cal.ShareCalendar(ctx, calendarID, share.Email, share.Role); err != nil {
			return "", fmt.Errorf("share calendar with %s: %w", share.Email, err)
		}
		slog.Info("Shared calendar", "calendar", entry.CalendarName, "email", share.Email, "role", share.Role)
	}
	return calendarID, nil
}

func (s *Service) recordStaffRun(ctx context.Context, res staffReport, startedAt time.Time) {
	status := synchist.StatusSuccess
	if len(res.errors) > 0 {
		status = synchist.StatusPartial
	}
	run := synchist.SyncRun{
		ID:              uuid.NewString(),
		StaffID:         res.staffID,
		ShiftsProcessed: res.shiftsProcessed,
		ShiftsCreated:   res.shiftsCreated,
		ShiftsUpdated:   res.shiftsUpdated,
		EventsCreated:   res.eventsCreated,
		EventsUpdated:   res.eventsUpdated,
		EventsDeleted:   res.eventsDeleted,
		Status:          status,
		ErrorMessage:    joinErrors(res.errors),
		StartedAt:       startedAt,
		FinishedAt:      time.Now(),
	}
	if _, err := s.runRepo.Create(ctx, run); err != nil {
		slog.Error("Failed to record staff sync run", "error", err)
	}
}

func (s *Service) recordRun(ctx context.Context, staffID *string, report Report, startedAt time.Time) {
	run := synchist.SyncRun{
		ID:              uuid.NewString(),
		StaffID:         staffID,
		ShiftsProcessed: report.ShiftsProcessed,
		ShiftsCreated:   report.ShiftsCreated,
		ShiftsUpdated:   report.ShiftsUpdated,
		EventsCreated:   report.EventsCreated,
		EventsUpdated:   report.EventsUpdated,
		EventsDeleted:   report.EventsDeleted,
		Status:          report.Status,
		ErrorMessage:    joinErrors(report.Errors),
		StartedAt:       startedAt,
		FinishedAt:      time.Now(),
	}
	if _, err := s.runRepo.Create(ctx, run); err != nil {
		slog.Error("Failed to record sync run", "error", err)
	}
}

func joinErrors(errs []string) *string {
	if len(errs) == 0 {
		return nil
	}
	joined := strings.Join(errs, "; ")
	return &joined
}

func groupByName(shifts []rota.Shift) map[string][]rota.Shift {
	byName := make(map[string][]rota.Shift)
	for _, shift := range shifts {
		byName[shift.Name] = append(byName[shift.Name], shift)
	}
	return byName
}
