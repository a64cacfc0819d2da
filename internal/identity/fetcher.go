package identity

import (
	"github.com/CaseLink/CL-Backend/internal/db"
	"github.com/CaseLink/CL-Backend/internal/utils"
)

// SessionInfo implements middleware.SessionFetcher against the sessions table.
type SessionInfo struct{}

func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	var session Session

	err := db.DB.First(&session, "session_id = ?", id).Error
	if err != nil {
		return utils.SessionData{}, err
	}

	return utils.SessionData{
		UserID:    session.AccountID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
