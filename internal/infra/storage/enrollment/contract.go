package enrollment

import "github.com/m04kA/SMC-DanceStudio/pkg/dbmetrics"

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
