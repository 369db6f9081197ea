package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"repairportal/internal/app/ds"
	"repairportal/internal/app/repository"
	"repairportal/internal/app/role"
)

// UserService — справочник пользователей системы
type UserService struct {
	repo   *repository.Repository
	hasher PasswordHasher
}

func NewUserService(repo *repository.Repository, hasher PasswordHasher) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
	}
}

// CreateUser регистрирует пользователя. Дубликаты логина и email
// отклоняются до обращения к хешеру паролей.
func (s *UserService) CreateUser(user *ds.User, password string) (*ds.User, error) {
	exists, err := s.repo.UserExistsByUsername(user.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameTaken
	}

	exists, err = s.repo.UserExistsByEmail(user.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user.Password = hashed
	user.Enabled = true
	user.CreatedAt = time.Now()

	if err := s.repo.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate проверяет логин/пароль и отмечает время входа
func (s *UserService) Authenticate(username, password string) (*ds.User, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if !s.hasher.Compare(user.Password, password) {
		return nil, ErrBadCredentials
	}
	if !user.Enabled {
		return nil, ErrUserDisabled
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) FindByID(id uint) (*ds.User, error) {
	user, err := s.repo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) FindByUsername(username string) (*ds.User, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// FindAllTechnicians — кандидаты на назначение (включая отключённых,
// фильтрация по Enabled выполняется на уровне обработчика)
func (s *UserService) FindAllTechnicians() ([]ds.User, error) {
	return s.repo.GetUsersByRole(role.Technician.String())
}

func (s *UserService) FindAllManagers() ([]ds.User, error) {
	return s.repo.GetUsersByRole(role.Manager.String())
}

func (s *UserService) FindAllActiveUsers() ([]ds.User, error) {
	return s.repo.GetEnabledUsers()
}

func (s *UserService) FindAll() ([]ds.User, error) {
	return s.repo.GetAllUsers()
}

// setEnabled выставляет флаг и сохраняет; повторный вызов безвреден.
// Отсутствующий id молча игнорируется.
func (s *UserService) setEnabled(id uint, enabled bool) error {
	user, err := s.repo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	user.Enabled = enabled
	return s.repo.SaveUser(user)
}

// DisableUser деактивирует учётную запись (идемпотентно)
func (s *UserService) DisableUser(id uint) error {
	return s.setEnabled(id, false)
}

// EnableUser активирует учётную запись (идемпотентно)
func (s *UserService) EnableUser(id uint) error {
	return s.setEnabled(id, true)
}

// ChangePassword меняет пароль пользователя через хешер
func (s *UserService) ChangePassword(userID uint, newPassword string) error {
	user, err := s.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	return s.repo.SaveUser(user)
}
