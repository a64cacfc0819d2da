package cases

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/CaseLink/CL-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// Handler serves the case API. Handlers never forward store errors to the
// client: unexpected failures are logged and answered with a fixed message.
type Handler struct {
	store Storage
}

func NewHandler(store Storage) *Handler {
	return &Handler{store: store}
}

type errorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

func respondValidation(w http.ResponseWriter, message string, err error) {
	respondJSON(w, http.StatusBadRequest, errorResponse{
		Message: message,
		Errors:  FieldErrors(err),
	})
}

// parseFilters reads the recognized query-string filters. Unknown parameters
// are ignored; tags arrive comma-separated.
func parseFilters(r *http.Request) CaseFilters {
	q := r.URL.Query()

	filters := CaseFilters{
		Specialty: q.Get("specialty"),
		Status:    q.Get("status"),
		Search:    q.Get("search"),
	}
	if tags := q.Get("tags"); tags != "" {
		filters.Tags = strings.Split(tags, ",")
	}
	return filters
}

func caseID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ListCasesHandler handles GET /api/cases.
func (h *Handler) ListCasesHandler(w http.ResponseWriter, r *http.Request) {
	results, err := h.store.GetCases(parseFilters(r))
	if err != nil {
		log.Printf("Error fetching cases: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch cases")
		return
	}
	if results == nil {
		results = []Case{}
	}
	respondJSON(w, http.StatusOK, results)
}

// GetCaseHandler handles GET /api/cases/{id}. A successful read bumps the
// view counter; a failed bump is logged but never fails the request.
func (h *Handler) GetCaseHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := caseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid case id")
		return
	}

	result, err := h.store.GetCase(id)
	if err != nil {
		log.Printf("Error fetching case %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch case")
		return
	}
	if result == nil {
		respondError(w, http.StatusNotFound, "Case not found")
		return
	}

	if err := h.store.IncrementViewCount(id); err != nil {
		log.Printf("Error incrementing view count for case %d: %v", id, err)
	}

	respondJSON(w, http.StatusOK, result)
}

// CreateCaseHandler handles POST /api/cases. The author is always the session
// subject, regardless of anything in the body.
func (h *Handler) CreateCaseHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input CaseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		respondValidation(w, "Invalid case data", err)
		return
	}

	newCase, err := input.ToCase(userID)
	if err != nil {
		log.Printf("Error converting case payload: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create case")
		return
	}

	if err := h.store.CreateCase(newCase); err != nil {
		log.Printf("Error creating case: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to create case")
		return
	}

	respondJSON(w, http.StatusCreated, newCase)
}

// UpdateCaseHandler handles PATCH /api/cases/{id}. Only the author may
// update; the existence check runs first so a non-author probing a missing id
// still sees 404.
func (h *Handler) UpdateCaseHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := caseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid case id")
		return
	}

	existing, err := h.store.GetCase(id)
	if err != nil {
		log.Printf("Error fetching case %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to update case")
		return
	}
	if existing == nil {
		respondError(w, http.StatusNotFound, "Case not found")
		return
	}
	if existing.AuthorID != userID {
		respondError(w, http.StatusForbidden, "Not authorized to update this case")
		return
	}

	var input CaseUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		respondValidation(w, "Invalid case data", err)
		return
	}

	fields, err := input.Fields()
	if err != nil {
		log.Printf("Error converting case patch: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to update case")
		return
	}

	updated, err := h.store.UpdateCase(id, fields)
	if err != nil {
		log.Printf("Error updating case %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to update case")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "Case not found")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// CreateCommentHandler handles POST /api/cases/{id}/comments.
func (h *Handler) CreateCommentHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := caseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid case id")
		return
	}

	var input CommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		respondValidation(w, "Invalid comment data", err)
		return
	}

	comment, err := h.store.CreateComment(&Comment{
		CaseID:   id,
		AuthorID: userID,
		Content:  input.Content,
	})
	if err != nil {
		log.Printf("Error creating comment on case %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	respondJSON(w, http.StatusCreated, comment)
}

// ListCommentsHandler handles GET /api/cases/{id}/comments.
func (h *Handler) ListCommentsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := caseID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid case id")
		return
	}

	comments, err := h.store.GetComments(id)
	if err != nil {
		log.Printf("Error fetching comments for case %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch comments")
		return
	}
	if comments == nil {
		comments = []Comment{}
	}
	respondJSON(w, http.StatusOK, comments)
}

// ListUsersHandler handles GET /api/users, the colleague directory.
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers()
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	if users == nil {
		users = []User{}
	}
	respondJSON(w, http.StatusOK, users)
}
