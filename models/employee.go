package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Employee struct {
	ID         string         `gorm:"column:id;primaryKey;type:varchar(64)" json:"id"`
	StoreID    string         `gorm:"column:storeId;type:varchar(64);index" json:"storeId"`
	Store      *Store         `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	FirstName  string         `gorm:"column:firstName;type:varchar(100);not null" json:"firstName"`
	LastName   string         `gorm:"column:lastName;type:varchar(100)" json:"lastName"`
	Email      string         `gorm:"column:email;type:varchar(255)" json:"email"`
	Phone      *string        `gorm:"column:phone;type:varchar(50)" json:"phone"`
	Address    *string        `gorm:"column:address;type:text" json:"address"`
	AvatarPath *string        `gorm:"column:avatarPath;type:varchar(512)" json:"avatarPath"`
	RoleID     *string        `gorm:"column:roleId;type:varchar(64);index" json:"roleId"`
	Role       *Role          `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	LastLogin  *time.Time     `gorm:"column:lastLogin" json:"lastLogin"`
	CreatedAt  time.Time      `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt  time.Time      `gorm:"column:updatedAt" json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"column:deletedAt;index" json:"deletedAt"`
}

func (Employee) TableName() string {
	return "employees"
}

// FullName joins first and last name, dropping the separator when one is empty.
func (e *Employee) FullName() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}
