package userservice

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// StaffChecker резервный источник прав при недоступности UserService
type StaffChecker interface {
	IsStaff(userID int64) bool
}
