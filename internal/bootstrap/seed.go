package bootstrap

import (
	"anoa.com/schoolrecords/internal/auth"
	"anoa.com/schoolrecords/internal/model"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.StudentData{},
	)
}

// SeedDevUsers makes the mock identity usable out of the box: user id 1
// plus one student carrying a StudentData row. Development only.
func SeedDevUsers(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("id = ?", auth.MockUserID).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Info().Msg("mock identity user already exists, skipping seed")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("teacher123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	teacher := model.User{
		Email:          "teacher@school.local",
		HashedPassword: string(hashedPassword),
		IsActive:       true,
		Role:           model.RoleTeacher,
	}
	if err := db.Create(&teacher).Error; err != nil {
		return err
	}

	studentPassword, err := bcrypt.GenerateFromPassword([]byte("student123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	student := model.User{
		Email:          "student@school.local",
		HashedPassword: string(studentPassword),
		IsActive:       true,
		Role:           model.RoleStudent,
	}
	if err := db.Create(&student).Error; err != nil {
		return err
	}

	record := model.StudentData{
		StudentID: student.ID,
		Data:      "sample record",
	}
	if err := db.Create(&record).Error; err != nil {
		return err
	}

	log.Info().
		Str("teacher", teacher.Email).
		Str("student", student.Email).
		Msg("seeded development users")

	return nil
}
