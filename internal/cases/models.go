package cases

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// User is the application profile, keyed by the identity provider's account
// id. Field names follow the JSON contract the frontend consumes.
type User struct {
	ID              string    `gorm:"primaryKey" json:"id"`
	Email           string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Specialty       string    `json:"specialty"`
	Role            string    `gorm:"default:'doctor'" json:"role"`
	Hospital        string    `json:"hospital"`
	Department      string    `json:"department"`
	Bio             string    `json:"bio"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Case is a clinical case post. Author is populated on read paths that join
// the author row (inner join: a case whose author row is missing is excluded,
// never returned with a null author). Comments are populated on the detail
// path only.
type Case struct {
	ID            int            `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `gorm:"not null" json:"description"`
	AuthorID      string         `gorm:"not null;index" json:"authorId"`
	Specialty     string         `gorm:"not null" json:"specialty"`
	Status        string         `gorm:"default:'active'" json:"status"`
	Priority      string         `gorm:"default:'normal'" json:"priority"`
	PatientAge    string         `json:"patientAge"`
	PatientGender string         `json:"patientGender"`
	Diagnosis     string         `json:"diagnosis,omitempty"`
	Treatment     string         `json:"treatment,omitempty"`
	Outcome       string         `json:"outcome,omitempty"`
	Tags          pq.StringArray `gorm:"type:text[]" json:"tags"`
	Attachments   datatypes.JSON `json:"attachments"`
	ViewCount     int            `gorm:"default:0" json:"viewCount"`
	Featured      bool           `gorm:"default:false" json:"featured"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`

	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Comments []Comment `gorm:"foreignKey:CaseID" json:"comments,omitempty"`
}

// Comment is a reply on a case. Immutable after creation.
type Comment struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	CaseID    int       `gorm:"not null;index" json:"caseId"`
	AuthorID  string    `gorm:"not null" json:"authorId"`
	Content   string    `gorm:"not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// Attachment is the shape stored inside Case.Attachments.
type Attachment struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

func (User) TableName() string    { return "clinical.users" }
func (Case) TableName() string    { return "clinical.cases" }
func (Comment) TableName() string { return "clinical.comments" }
