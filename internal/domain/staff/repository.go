package staff

import "context"

type StaffRepository interface {
	GetByName(ctx context.Context, name string) (StaffMember, error)
	List(ctx context.Context) ([]StaffMember, error)
	Create(ctx context.Context, member StaffMember) (StaffMember, error)
	UpdateCalendarID(ctx context.Context, id string, calendarID string) error
}
