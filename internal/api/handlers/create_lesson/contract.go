package create_lesson

import (
	"context"

	createLesson "github.com/m04kA/SMC-DanceStudio/internal/usecase/create_lesson"
)

type CreateLessonUseCase interface {
	Execute(ctx context.Context, req *createLesson.Request) (*createLesson.Response, error)
}

// StaffChecker расписание ведут сотрудники студии
type StaffChecker interface {
	IsStaff(userID int64) bool
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
