package bookings

// StaffList фиксированный список сотрудников из конфигурации
type StaffList map[int64]struct{}

func NewStaffList(ids []int64) StaffList {
	list := make(StaffList, len(ids))
	for _, id := range ids {
		list[id] = struct{}{}
	}
	return list
}

func (l StaffList) IsStaff(userID int64) bool {
	_, ok := l[userID]
	return ok
}
