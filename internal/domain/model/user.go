package model

import "time"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "PENDING"
	AccountStatusApproved AccountStatus = "APPROVED"
	AccountStatusRejected AccountStatus = "REJECTED"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"type:varchar(50);not null;uniqueIndex" json:"username"`
	Email        string `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	FirstName    string `gorm:"type:varchar(50)" json:"first_name"`
	LastName     string `gorm:"type:varchar(50)" json:"last_name"`
	PhoneNumber  string `gorm:"type:varchar(15)" json:"phone_number"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'CUSTOMER'" json:"role"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`

	// 承認制アカウント。登録直後はPENDING、管理者が承認/却下する。
	AccountStatus   AccountStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"account_status"`
	ApprovedAt      *time.Time    `json:"approved_at,omitempty"`
	ApprovedBy      *int64        `json:"approved_by,omitempty"`
	RejectionReason string        `gorm:"type:varchar(500)" json:"rejection_reason,omitempty"`

	Address string `gorm:"type:varchar(255)" json:"address"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	ZipCode string `gorm:"type:varchar(20)" json:"zip_code"`
	Country string `gorm:"type:varchar(100)" json:"country"`

	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 利用可能なアカウントか（有効かつ承認済み）
func (u User) IsApproved() bool {
	return u.IsActive && u.AccountStatus == AccountStatusApproved
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
