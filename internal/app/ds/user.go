package ds

import "time"

// Таблица пользователей системы
type User struct {
	ID          uint       `gorm:"primaryKey"`
	Username    string     `gorm:"type:varchar(50);unique;not null"`
	Password    string     `gorm:"type:varchar(255);not null"` // bcrypt-хеш
	FullName    string     `gorm:"type:varchar(100);not null"`
	Email       string     `gorm:"type:varchar(100);unique;not null"`
	Phone       string     `gorm:"type:varchar(30)"`
	Role        string     `gorm:"type:varchar(20);not null"` // ADMIN, MANAGER, TECHNICIAN, DISPATCHER
	Enabled     bool       `gorm:"not null;default:true"`
	CreatedAt   time.Time  `gorm:"not null"`
	LastLoginAt *time.Time `gorm:"default:null"`
}
