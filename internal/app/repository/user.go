package repository

import (
	"repairportal/internal/app/ds"
)

// Методы для пользователей (ORM)

func (r *Repository) CreateUser(user *ds.User) error {
	return r.db.Create(user).Error
}

func (r *Repository) SaveUser(user *ds.User) error {
	return r.db.Save(user).Error
}

func (r *Repository) GetUserByID(id uint) (*ds.User, error) {
	var user ds.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUserByUsername(username string) (*ds.User, error) {
	var user ds.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UserExistsByUsername проверяет занятость логина
func (r *Repository) UserExistsByUsername(username string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// UserExistsByEmail проверяет занятость email
func (r *Repository) UserExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// GetUsersByRole возвращает пользователей с заданной ролью
func (r *Repository) GetUsersByRole(roleName string) ([]ds.User, error) {
	var users []ds.User
	err := r.db.Where("role = ?", roleName).Order("full_name").Find(&users).Error
	return users, err
}

// GetEnabledUsers возвращает только активных пользователей
func (r *Repository) GetEnabledUsers() ([]ds.User, error) {
	var users []ds.User
	err := r.db.Where("enabled = ?", true).Order("full_name").Find(&users).Error
	return users, err
}

func (r *Repository) GetAllUsers() ([]ds.User, error) {
	var users []ds.User
	err := r.db.Order("id").Find(&users).Error
	return users, err
}

// CountUsers нужен для инициализации тестовых данных
func (r *Repository) CountUsers() (int64, error) {
	var count int64
	err := r.db.Model(&ds.User{}).Count(&count).Error
	return count, err
}
