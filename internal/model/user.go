package model

// Role is the closed set of account kinds. Stored as a string column but
// compared as a typed value everywhere past the binding layer.
type Role string

const (
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
	RoleTeacher Role = "teacher"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleParent, RoleTeacher:
		return true
	}
	return false
}

type User struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Email          string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	HashedPassword string `gorm:"size:255;not null" json:"-"`
	IsActive       bool   `gorm:"not null;default:true" json:"is_active"`
	Role           Role   `gorm:"size:20;not null" json:"role"`

	// A student owns at most one StudentData row. The reverse link is a
	// plain FK; nothing at this level checks that StudentID points at a
	// student-role user.
	StudentData *StudentData `gorm:"foreignKey:StudentID" json:"student_data,omitempty"`
}

type StudentData struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	StudentID uint   `gorm:"index" json:"student_id"`
	Data      string `gorm:"type:text" json:"data"`
}
