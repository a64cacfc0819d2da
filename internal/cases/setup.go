package cases

import (
	"log"

	"github.com/CaseLink/CL-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "clinical"); err != nil {
		log.Fatal("Failed to ensure schema clinical: ", err)
	}

	if err := db.DB.AutoMigrate(&User{}, &Case{}, &Comment{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
