package client

import "time"

// User mirrors the profile JSON served by the backend.
type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Specialty       string    `json:"specialty"`
	Role            string    `json:"role"`
	Hospital        string    `json:"hospital"`
	Department      string    `json:"department"`
	Bio             string    `json:"bio"`
	ProfileImageURL *string   `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Attachment struct {
	URL  string `json:"url"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

type Comment struct {
	ID        int       `json:"id"`
	CaseID    int       `json:"caseId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Author    *User     `json:"author,omitempty"`
}

type Case struct {
	ID            int          `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	AuthorID      string       `json:"authorId"`
	Specialty     string       `json:"specialty"`
	Status        string       `json:"status"`
	Priority      string       `json:"priority"`
	PatientAge    string       `json:"patientAge"`
	PatientGender string       `json:"patientGender"`
	Diagnosis     string       `json:"diagnosis,omitempty"`
	Treatment     string       `json:"treatment,omitempty"`
	Outcome       string       `json:"outcome,omitempty"`
	Tags          []string     `json:"tags"`
	Attachments   []Attachment `json:"attachments"`
	ViewCount     int          `json:"viewCount"`
	Featured      bool         `json:"featured"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	Author        *User        `json:"author,omitempty"`
	Comments      []Comment    `json:"comments,omitempty"`
}

// CaseInput is the creation payload; the server assigns id, author and
// timestamps.
type CaseInput struct {
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Specialty     string       `json:"specialty"`
	Status        string       `json:"status"`
	Priority      string       `json:"priority"`
	PatientAge    string       `json:"patientAge"`
	PatientGender string       `json:"patientGender"`
	Diagnosis     string       `json:"diagnosis,omitempty"`
	Treatment     string       `json:"treatment,omitempty"`
	Outcome       string       `json:"outcome,omitempty"`
	Tags          []string     `json:"tags"`
	Attachments   []Attachment `json:"attachments"`
}

// CaseFilters narrow ListCases. Zero values send no parameter.
type CaseFilters struct {
	Specialty string
	Status    string
	Search    string
	Tags      []string
}

// Credentials authenticate against the identity endpoints.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileInput carries the profile fields sent alongside signup credentials.
type ProfileInput struct {
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Specialty       string  `json:"specialty"`
	Hospital        string  `json:"hospital,omitempty"`
	Department      string  `json:"department,omitempty"`
	Bio             string  `json:"bio,omitempty"`
	ProfileImageURL *string `json:"profileImageUrl,omitempty"`
}

// Session is the identity provider's proof of an authenticated principal.
// Subject is the account id the application profile is keyed by.
type Session struct {
	Subject string
}

// APIError is a non-2xx response decoded into the server's error envelope.
type APIError struct {
	StatusCode int
	Message    string `json:"message"`
	Errors     []struct {
		Field   string `json:"field"`
		Rule    string `json:"rule"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (e *APIError) Error() string {
	return e.Message
}
