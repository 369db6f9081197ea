package role

// Role — роль пользователя в системе
type Role string

const (
	Admin      Role = "ADMIN"      // Администратор системы
	Manager    Role = "MANAGER"    // Менеджер (принимает заявки)
	Technician Role = "TECHNICIAN" // Техник (выполняет ремонт)
	Dispatcher Role = "DISPATCHER" // Диспетчер (распределяет заявки)
)

// Valid проверяет, что роль из закрытого списка
func Valid(r Role) bool {
	switch r {
	case Admin, Manager, Technician, Dispatcher:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
