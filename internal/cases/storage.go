package cases

import (
	"errors"
	"time"

	"github.com/CaseLink/CL-Backend/internal/db"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter sentinels the frontend sends for "no filter selected".
const (
	AllSpecialties = "All Specialties"
	AllStatus      = "All Status"
)

// CaseFilters narrows GetCases. Zero values and the sentinels above are
// no-ops; active predicates are ANDed.
type CaseFilters struct {
	Specialty string
	Status    string
	Search    string
	Tags      []string
}

// Storage is the query/aggregation layer over the relational store. Handlers
// depend on this interface so they can be exercised without a database.
type Storage interface {
	GetUser(id string) (*User, error)
	UpsertUser(user *User) (*User, error)
	ListUsers() ([]User, error)

	GetCases(filters CaseFilters) ([]Case, error)
	GetCase(id int) (*Case, error)
	CreateCase(c *Case) error
	UpdateCase(id int, fields map[string]interface{}) (*Case, error)
	IncrementViewCount(id int) error

	CreateComment(c *Comment) (*Comment, error)
	GetComments(caseID int) ([]Comment, error)
}

// DatabaseStorage implements Storage against the shared gorm handle.
type DatabaseStorage struct{}

func (DatabaseStorage) GetUser(id string) (*User, error) {
	var user User
	err := db.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertUser inserts the profile or, on id conflict, refreshes its profile
// fields. Used at signup to mirror the identity record into the application
// profile table.
func (DatabaseStorage) UpsertUser(user *User) (*User, error) {
	err := db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "first_name", "last_name", "specialty", "role",
			"hospital", "department", "bio", "profile_image_url", "updated_at",
		}),
	}).Create(user).Error
	if err != nil {
		return nil, err
	}

	var saved User
	if err := db.DB.First(&saved, "id = ?", user.ID).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

func (DatabaseStorage) ListUsers() ([]User, error) {
	var users []User
	err := db.DB.Order("last_name ASC, first_name ASC").Find(&users).Error
	return users, err
}

// applyFilters translates CaseFilters into WHERE clauses. Omitted values and
// the "All ..." sentinels add no predicate.
func applyFilters(q *gorm.DB, filters CaseFilters) *gorm.DB {
	if filters.Specialty != "" && filters.Specialty != AllSpecialties {
		q = q.Where("clinical.cases.specialty = ?", filters.Specialty)
	}
	if filters.Status != "" && filters.Status != AllStatus {
		q = q.Where("clinical.cases.status = ?", filters.Status)
	}
	if filters.Search != "" {
		q = q.Where("clinical.cases.title ILIKE ?", "%"+filters.Search+"%")
	}
	if len(filters.Tags) > 0 {
		q = q.Where("clinical.cases.tags @> ?", pq.Array(filters.Tags))
	}
	return q
}

func (DatabaseStorage) GetCases(filters CaseFilters) ([]Case, error) {
	var results []Case

	q := db.DB.Model(&Case{}).InnerJoins("Author").
		Order("clinical.cases.created_at DESC")
	q = applyFilters(q, filters)

	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s DatabaseStorage) GetCase(id int) (*Case, error) {
	var result Case

	err := db.DB.Model(&Case{}).InnerJoins("Author").
		First(&result, "clinical.cases.id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	comments, err := s.GetComments(id)
	if err != nil {
		return nil, err
	}
	result.Comments = comments

	return &result, nil
}

func (DatabaseStorage) CreateCase(c *Case) error {
	return db.DB.Create(c).Error
}

// UpdateCase applies the given column assignments plus updated_at without any
// authorization check; the API layer owns the author-only rule. An empty
// patch still advances updated_at.
func (DatabaseStorage) UpdateCase(id int, fields map[string]interface{}) (*Case, error) {
	assignments := map[string]interface{}{"updated_at": time.Now()}
	for k, v := range fields {
		assignments[k] = v
	}

	result := db.DB.Model(&Case{}).Where("id = ?", id).Updates(assignments)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var updated Case
	if err := db.DB.First(&updated, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

func (DatabaseStorage) IncrementViewCount(id int) error {
	return db.DB.Model(&Case{}).Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}

// CreateComment inserts the row, then re-reads it joined with its author so
// the caller gets the same projection GetComments returns. If the hydration
// read fails the error propagates even though the insert committed.
func (DatabaseStorage) CreateComment(c *Comment) (*Comment, error) {
	if err := db.DB.Create(c).Error; err != nil {
		return nil, err
	}

	var hydrated Comment
	err := db.DB.Model(&Comment{}).InnerJoins("Author").
		First(&hydrated, "clinical.comments.id = ?", c.ID).Error
	if err != nil {
		return nil, err
	}
	return &hydrated, nil
}

func (DatabaseStorage) GetComments(caseID int) ([]Comment, error) {
	var comments []Comment

	err := db.DB.Model(&Comment{}).InnerJoins("Author").
		Where("clinical.comments.case_id = ?", caseID).
		Order("clinical.comments.created_at DESC, clinical.comments.id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
