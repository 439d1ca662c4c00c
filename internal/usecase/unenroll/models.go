package unenroll

// Request отмена записи клиента на занятие
type Request struct {
	ClientID int64
	LessonID int64
}

// Response состояние после отмены
type Response struct {
	EnrollmentID        int64
	LessonID            int64
	CurrentParticipants int
}
