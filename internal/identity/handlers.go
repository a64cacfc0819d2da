package identity

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/CaseLink/CL-Backend/internal/cases"
	"github.com/CaseLink/CL-Backend/internal/db"
	"github.com/CaseLink/CL-Backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	profiles   cases.Storage = cases.DatabaseStorage{}
	sessionTTL               = 6 * time.Hour
)

// Configure overrides the profile store and session lifetime. Called once
// from main before the routes are mounted.
func Configure(store cases.Storage, ttl time.Duration) {
	profiles = store
	if ttl > 0 {
		sessionTTL = ttl
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// sessionCookie builds the session cookie. COOKIE_SECURE=true switches to the
// cross-site production mode; the default works over plain HTTP in dev and
// under httptest.
func sessionCookie(value string, expires time.Time) *http.Cookie {
	secure := os.Getenv("COOKIE_SECURE") == "true"

	c := &http.Cookie{
		Name:     "session_id",
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Expires:  expires,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	}
	if secure {
		c.SameSite = http.SameSiteNoneMode
	}
	return c
}

// startSession writes (or replaces) the account's session row and sets the
// cookie. One active session per account.
func startSession(w http.ResponseWriter, accountID string) error {
	sid := uuid.NewString()
	expires := time.Now().Add(sessionTTL)

	var existing Session
	err := db.DB.First(&existing, "account_id = ?", accountID).Error
	if err == nil {
		err = db.DB.Model(&existing).Updates(Session{
			SessionID: sid,
			ExpiresAt: expires,
		}).Error
	} else {
		err = db.DB.Create(&Session{
			SessionID: sid,
			AccountID: accountID,
			ExpiresAt: expires,
		}).Error
	}
	if err != nil {
		return err
	}

	http.SetCookie(w, sessionCookie(sid, expires))
	return nil
}

// SignupInput carries credentials plus the profile fields mirrored into the
// application's users table.
type SignupInput struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	Specialty       string  `json:"specialty"`
	Hospital        string  `json:"hospital"`
	Department      string  `json:"department"`
	Bio             string  `json:"bio"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

func SignupHandler(w http.ResponseWriter, r *http.Request) {
	var input SignupInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if input.Email == "" || input.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Email and password are required")
		return
	}
	if len(input.Password) < 8 {
		writeMessage(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}
	if input.FirstName == "" || input.LastName == "" || input.Specialty == "" {
		writeMessage(w, http.StatusBadRequest, "First name, last name and specialty are required")
		return
	}

	var existing Account
	if err := db.DB.First(&existing, "email = ?", input.Email).Error; err == nil {
		writeMessage(w, http.StatusConflict, "Email already registered")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	account := Account{
		ID:             uuid.NewString(),
		Email:          input.Email,
		HashedPassword: string(hashed),
	}
	if err := db.DB.Create(&account).Error; err != nil {
		log.Printf("Error creating account: %v", err)
		writeMessage(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	profile, err := profiles.UpsertUser(&cases.User{
		ID:              account.ID,
		Email:           account.Email,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Specialty:       input.Specialty,
		Hospital:        input.Hospital,
		Department:      input.Department,
		Bio:             input.Bio,
		ProfileImageURL: input.ProfileImageURL,
	})
	if err != nil {
		log.Printf("Error mirroring profile for %s: %v", account.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	if err := startSession(w, account.ID); err != nil {
		log.Printf("Error starting session for %s: %v", account.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	writeJSON(w, http.StatusCreated, profile)
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var account Account
	err := db.DB.First(&account, "email = ?", strings.TrimSpace(strings.ToLower(input.Email))).Error
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.HashedPassword), []byte(input.Password)); err != nil {
		writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := startSession(w, account.ID); err != nil {
		log.Printf("Error starting session for %s: %v", account.ID, err)
		writeMessage(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	profile, err := profiles.GetUser(account.ID)
	if err != nil || profile == nil {
		// Account exists but the profile mirror is missing; the client treats
		// this the same as unauthenticated, so surface the login anyway.
		writeMessage(w, http.StatusOK, "Login successful")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("session_id")
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var session Session
	if err := db.DB.First(&session, "session_id = ?", cookie.Value).Error; err != nil {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	db.DB.Delete(&session)

	http.SetCookie(w, &http.Cookie{
		Name:   "session_id",
		Value:  "",
		MaxAge: -1,
		Path:   "/",
	})

	writeMessage(w, http.StatusOK, "Logout successful")
}

// UserHandler answers GET /api/auth/user with the caller's profile.
func UserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	profile, err := profiles.GetUser(userID)
	if err != nil {
		log.Printf("Error fetching user %s: %v", userID, err)
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}
	if profile == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
