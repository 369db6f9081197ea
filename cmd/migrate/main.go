package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"repairportal/internal/app/ds"
	"repairportal/internal/app/dsn"
	"repairportal/internal/app/repository"
	"repairportal/internal/app/role"
	"repairportal/internal/app/service"
)

func main() {
	// Загрузка переменных окружения из .env файла
	_ = godotenv.Load()

	// Получение DSN строки подключения
	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		log.Fatal("DSN string is empty. Check your .env file")
	}

	// Подключение к базе данных
	db, err := gorm.Open(postgres.Open(dsnStr), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Connected to database successfully")

	// Миграция всех моделей
	err = db.AutoMigrate(
		&ds.User{},
		&ds.RepairOrder{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Database migration completed successfully")

	if err := seedUsers(repository.NewWithDB(db)); err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}
}

// seedUsers создает тестовых пользователей при первом запуске
func seedUsers(repo *repository.Repository) error {
	count, err := repo.CountUsers()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Println("Seeding test users...")

	hasher := service.BcryptHasher{}
	users := []struct {
		username string
		password string
		fullName string
		email    string
		phone    string
		userRole role.Role
	}{
		{"admin", "admin123", "Администратор Системы", "admin@repair.local", "+7 (999) 000-00-00", role.Admin},
		{"manager", "manager123", "Иванов Иван Иванович", "manager@repair.local", "+7 (999) 111-11-11", role.Manager},
		{"tech1", "tech123", "Петров Пётр Петрович", "tech1@repair.local", "+7 (999) 222-22-22", role.Technician},
		{"tech2", "tech123", "Сидоров Сидор Сидорович", "tech2@repair.local", "+7 (999) 333-33-33", role.Technician},
		{"dispatcher", "disp123", "Козлова Мария Сергеевна", "dispatcher@repair.local", "+7 (999) 444-44-44", role.Dispatcher},
	}

	for _, u := range users {
		hashed, err := hasher.Hash(u.password)
		if err != nil {
			return err
		}
		user := ds.User{
			Username:  u.username,
			Password:  hashed,
			FullName:  u.fullName,
			Email:     u.email,
			Phone:     u.phone,
			Role:      u.userRole.String(),
			Enabled:   true,
			CreatedAt: time.Now(),
		}
		if err := repo.CreateUser(&user); err != nil {
			return err
		}
	}

	log.Println("Test users created")
	return nil
}
