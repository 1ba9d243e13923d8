package dbmysql

import (
	"strconv"
	"time"
)

type Account struct {
	AccountID        uint64    `gorm:"primaryKey;column:account_id;autoIncrement" json:"account_id"`
	Handle           string    `gorm:"column:handle;uniqueIndex;size:64;not null" json:"handle"`
	Email            string    `gorm:"column:email;uniqueIndex;size:120;not null" json:"email"`
	CredentialDigest string    `gorm:"column:credential_digest;size:255;not null" json:"-"`
	AvatarPath       string    `gorm:"column:avatar_path;size:128" json:"avatar_path,omitempty"`
	Bio              string    `gorm:"column:bio;size:255" json:"bio,omitempty"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// SessionSubject returns the stable identifier carried in session tokens.
func (a *Account) SessionSubject() string {
	return strconv.FormatUint(a.AccountID, 10)
}
