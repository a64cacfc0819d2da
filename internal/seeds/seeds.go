package seeds

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/CaseLink/CL-Backend/internal/cases"
	"github.com/CaseLink/CL-Backend/internal/db"
	"github.com/CaseLink/CL-Backend/internal/identity"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type seedUser struct {
	email     string
	password  string
	firstName string
	lastName  string
	specialty string
	hospital  string
}

var demoUsers = []seedUser{
	{"s.johnson@stmarys.example", "DemoPass123!", "Sarah", "Johnson", "Cardiology", "St. Mary's Hospital"},
	{"m.chen@citygeneral.example", "DemoPass123!", "Michael", "Chen", "Neurology", "City General"},
	{"a.patel@citygeneral.example", "DemoPass123!", "Anita", "Patel", "Emergency Medicine", "City General"},
}

// SeedAll populates demo accounts, profiles, cases and comments. Idempotent:
// existing accounts (by email) are reused, and cases are only created when
// the table is empty.
func SeedAll() error {
	userIDs := make([]string, 0, len(demoUsers))

	for _, su := range demoUsers {
		var existing identity.Account
		err := db.DB.First(&existing, "email = ?", su.email).Error
		if err == nil {
			userIDs = append(userIDs, existing.ID)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", su.email, err)
		}

		account := identity.Account{
			ID:             uuid.NewString(),
			Email:          su.email,
			HashedPassword: string(hashed),
		}
		if err := db.DB.Create(&account).Error; err != nil {
			return fmt.Errorf("create account %s: %w", su.email, err)
		}

		profile := cases.User{
			ID:        account.ID,
			Email:     su.email,
			FirstName: su.firstName,
			LastName:  su.lastName,
			Specialty: su.specialty,
			Hospital:  su.hospital,
		}
		if err := db.DB.Create(&profile).Error; err != nil {
			return fmt.Errorf("create profile %s: %w", su.email, err)
		}

		userIDs = append(userIDs, account.ID)
		log.Printf("Seeded user %s %s (%s)", su.firstName, su.lastName, su.specialty)
	}

	var count int64
	if err := db.DB.Model(&cases.Case{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Cases already present (%d), skipping case seed", count)
		return nil
	}

	return seedCases(userIDs)
}

func seedCases(userIDs []string) error {
	attachments, _ := json.Marshal([]cases.Attachment{
		{URL: "https://files.example/ecg-412.png", Name: "ecg-412.png", Type: "image/png", Size: 48213},
	})
	none, _ := json.Marshal([]cases.Attachment{})

	demoCases := []cases.Case{
		{
			Title:         "Complex Cardiac Arrhythmia Case",
			Description:   "62-year-old male with recurrent palpitations and syncope episodes.",
			AuthorID:      userIDs[0],
			Specialty:     "Cardiology",
			Status:        "active",
			Priority:      "high",
			PatientAge:    "62",
			PatientGender: "male",
			Tags:          pq.StringArray{"arrhythmia", "syncope"},
			Attachments:   datatypes.JSON(attachments),
			Featured:      true,
		},
		{
			Title:         "Neurological Presentation Mystery",
			Description:   "34-year-old female with progressive unilateral weakness over two weeks.",
			AuthorID:      userIDs[1%len(userIDs)],
			Specialty:     "Neurology",
			Status:        "review",
			Priority:      "urgent",
			PatientAge:    "34",
			PatientGender: "female",
			Tags:          pq.StringArray{"weakness", "progressive"},
			Attachments:   datatypes.JSON(none),
		},
		{
			Title:         "Post-op Fever of Unknown Origin",
			Description:   "Persistent low-grade fever five days after uncomplicated appendectomy.",
			AuthorID:      userIDs[2%len(userIDs)],
			Specialty:     "Emergency Medicine",
			Status:        "resolved",
			Priority:      "normal",
			PatientAge:    "28",
			PatientGender: "other",
			Tags:          pq.StringArray{"fever", "post-op"},
			Attachments:   datatypes.JSON(none),
			Outcome:       "Resolved after catheter removal; culture-confirmed UTI.",
		},
	}

	for i := range demoCases {
		if err := db.DB.Create(&demoCases[i]).Error; err != nil {
			return fmt.Errorf("create case %q: %w", demoCases[i].Title, err)
		}
	}

	comment := cases.Comment{
		CaseID:    demoCases[0].ID,
		AuthorID:  userIDs[1%len(userIDs)],
		Content:   "Have you considered an electrophysiology study? The syncope pattern is suggestive.",
		CreatedAt: time.Now(),
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}

	log.Printf("Seeded %d cases", len(demoCases))
	return nil
}
