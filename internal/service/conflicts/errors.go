package conflicts

import "errors"

var (
	// ErrInternal возвращается при ошибке чтения резерваций
	ErrInternal = errors.New("conflicts: internal error")
)
