package identity

import (
	"log"

	"github.com/CaseLink/CL-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "identity"); err != nil {
		log.Fatal("Failed to ensure schema identity: ", err)
	}

	if err := db.DB.AutoMigrate(&Account{}, &Session{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
