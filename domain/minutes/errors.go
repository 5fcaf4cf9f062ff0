package minutes

import "errors"

var (
	// ErrNotFound indicates the minutes record does not exist.
	ErrNotFound = errors.New("minutes not found")
	// ErrAdminsOnly indicates a non-administrator called an admin operation.
	ErrAdminsOnly = errors.New("admins only")
	// ErrLocked indicates an update on an approved record. The check is
	// absolute: no field-level logic runs after it.
	ErrLocked = errors.New("approved minutes are locked permanently")
	// ErrAlreadyApproved indicates a second approval attempt.
	ErrAlreadyApproved = errors.New("minutes already approved")
	// ErrSelfApproval indicates the creator tried to approve their own record.
	ErrSelfApproval = errors.New("you cannot approve minutes you created")
	// ErrNotApproved indicates a view of an unapproved record by a
	// non-administrator. Forbidden is returned uniformly, never NotFound, so
	// error codes do not leak record existence.
	ErrNotApproved = errors.New("you can only view approved minutes")
	// ErrExportUnapproved indicates a document export of an unapproved record.
	ErrExportUnapproved = errors.New("only approved minutes can be exported")
	// ErrInvalidAttendance indicates malformed attendance input.
	ErrInvalidAttendance = errors.New("attendance must be a list of name and role entries")
	// ErrMissingFields indicates a create request without required fields.
	ErrMissingFields = errors.New("title, date, and minutes text are required")
	// ErrDeleteRejected indicates a delete attempt. Minutes are never deleted,
	// for audit integrity.
	ErrDeleteRejected = errors.New("minutes cannot be deleted for audit integrity")
)
