package staff

import "errors"

var (
	ErrStaffNotFound   = errors.New("staff member not found")
	ErrStaffNameExists = errors.New("staff member with this name already exists")
)
