package auth

import (
	"time"

	"github.com/FlightLedger/FL-Backend/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionManager owns the sessions table. It is constructed once at
// startup and injected into the handler layer and the login gate.
type SessionManager struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewSessionManager(db *gorm.DB, ttl time.Duration) *SessionManager {
	return &SessionManager{db: db, ttl: ttl}
}

// Create establishes a session for the user, replacing any previous one.
// One live session per user, same as a fresh login elsewhere logging you
// out here.
func (m *SessionManager) Create(userID, name string) (Session, error) {
	session := Session{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Name:      name,
		ExpiresAt: time.Now().Add(m.ttl),
	}
	err := m.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"session_id", "name", "expires_at"}),
	}).Create(&session).Error
	return session, err
}

// FindSessionByID implements the middleware SessionFetcher interface.
func (m *SessionManager) FindSessionByID(id string) (utils.SessionData, error) {
	var session Session
	if err := m.db.First(&session, "session_id = ?", id).Error; err != nil {
		return utils.SessionData{}, err
	}
	return utils.SessionData{
		UserID:    session.UserID,
		Name:      session.Name,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (m *SessionManager) Destroy(sessionID string) error {
	return m.db.Where("session_id = ?", sessionID).Delete(&Session{}).Error
}
