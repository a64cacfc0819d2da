package identity

import "time"

// Account is the credential identity held by the identity provider. It is
// deliberately minimal: the application profile lives in clinical.users and
// shares the account id as its primary key.
type Account struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Password       string    `gorm:"-" json:"password"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	AccountID string    `gorm:"not null;unique" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
}

func (Account) TableName() string { return "identity.accounts" }
func (Session) TableName() string { return "identity.sessions" }
