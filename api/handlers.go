/*
handlers.go - HTTP API handlers for the worker portal

PURPOSE:
  Exposes the portal over REST. Handlers own the orchestration: credential
  gate, engagement transitions, persistence of the replacement record, and
  the append-only award log. The domain packages stay pure.

ENDPOINTS:
  Auth:
    POST /api/auth/login             Authenticate, apply monthly bonus, issue token

  Worker (bearer token):
    GET  /api/me                     Profile + dashboard summary
    PUT  /api/me/blood-type          Update blood type
    POST /api/me/medical-records     Append a health history entry
    GET  /api/promotions             Promotion catalog with read flags
    POST /api/promotions/{id}/read   Confirm a read, award reading bonus
    GET  /api/announcements          Notice list
    GET  /api/rewards/catalog        Redeemable items (display only)
    GET  /api/employers              Employer registry
    POST /api/assistant/chat         Assistant reply (fallback on failure)

  Admin (bearer token + admin role):
    GET  /api/admin/workers          Directory with search/employer filter
    GET  /api/admin/summary          Worker and points aggregates

CONCURRENCY:
  A single mutex serializes every directory mutation. The system assumes
  one logical writer per record (one device per worker); last write wins.

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 401: Missing/invalid credentials or token
  - 403: Admin route without admin role
  - 404: Unknown worker or promotion
  - 500: Store failures

SEE ALSO:
  - dto.go: Request/response data structures
  - auth.go: Token issuing and bearer middleware
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/pan-asia/worker-portal/assistant"
	"github.com/pan-asia/worker-portal/content"
	"github.com/pan-asia/worker-portal/engagement"
	"github.com/pan-asia/worker-portal/entitlement"
	"github.com/pan-asia/worker-portal/store"
	"github.com/pan-asia/worker-portal/worker"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store     store.Store
	Assistant *assistant.Service
	Tokens    *TokenAuthority

	validate *validator.Validate

	// Injectable clock so tests pin "today".
	Now func() time.Time

	// Serializes directory mutations: one logical writer at a time.
	mu  sync.Mutex
	dir *worker.Directory
}

// NewHandler loads the worker directory (seeding on first run or corrupt
// data) and wires the dependencies.
func NewHandler(st store.Store, asst *assistant.Service, tokens *TokenAuthority) (*Handler, error) {
	h := &Handler{
		Store:     st,
		Assistant: asst,
		Tokens:    tokens,
		validate:  validator.New(),
		Now:       time.Now,
	}

	workers, err := store.LoadWorkers(context.Background(), st)
	if err != nil {
		return nil, err
	}
	h.dir = worker.NewDirectory(workers)
	return h, nil
}

// =============================================================================
// AUTH
// =============================================================================

// Login authenticates a credential pair, applies the monthly login bonus
// for workers, and issues a session token.
// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	identity, err := h.dir.Authenticate(req.Identifier, req.Secret)
	if err != nil {
		// One generic message for unknown identifier and wrong secret.
		writeError(w, http.StatusUnauthorized, "Invalid credentials.", nil)
		return
	}

	now := h.Now()
	bonusAwarded := false

	if !identity.IsAdmin() {
		yearMonth := now.UTC().Format("2006-01")
		updated, awarded := engagement.EvaluateLogin(identity, yearMonth)
		if awarded {
			if err := h.commitWorker(r, updated); err != nil {
				writeError(w, http.StatusInternalServerError, "Failed to persist login bonus", err)
				return
			}
			h.recordAward(r, engagement.Event{
				ID:             uuid.NewString(),
				PassportNumber: updated.Key(),
				Kind:           engagement.EventLoginBonus,
				Reference:      yearMonth,
				IdempotencyKey: engagement.LoginBonusKey(updated.Key(), yearMonth),
				CreatedAt:      now,
			})
			identity = updated
			bonusAwarded = true
		}
		h.snapshotCurrentUser(r, identity)
	}

	token, err := h.Tokens.Generate(identity, now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue session token", err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponseDTO{
		Token:        token,
		Worker:       toWorkerDTO(identity),
		BonusAwarded: bonusAwarded,
	})
}

// =============================================================================
// WORKER PROFILE
// =============================================================================

// Me returns the caller's record plus the dashboard summary.
// GET /api/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	identity, ok := h.currentIdentity(w, r)
	h.mu.Unlock()
	if !ok {
		return
	}

	today := h.Now()
	dash := DashboardDTO{
		PassportExpiry:   identity.PassportExpiry,
		PassportDays:     entitlement.DaysUntil(today, identity.PassportExpiryTime()),
		UnreadPromotions: content.UnreadCount(identity.ReadPromotions),
		TotalPromotions:  len(content.MonthlyPromotions),
	}
	if next, due := entitlement.NextStatutoryCheckup(today, identity.EntryDateTime(), identity.EntryType); due {
		dash.NextCheckup = next.Format("2006-01-02")
		dash.CheckupDays = entitlement.DaysUntil(today, next)
	}

	writeJSON(w, http.StatusOK, ProfileDTO{Worker: toWorkerDTO(identity), Dashboard: dash})
}

// UpdateBloodType replaces the caller's blood type. No point award.
// PUT /api/me/blood-type
func (h *Handler) UpdateBloodType(w http.ResponseWriter, r *http.Request) {
	var req BloodTypeRequest
	if !h.decode(w, r, &req) {
		return
	}
	if !worker.ValidBloodType(req.BloodType) {
		writeError(w, http.StatusBadRequest, "Unknown blood type", nil)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	identity, ok := h.currentIdentity(w, r)
	if !ok {
		return
	}
	if !h.requireWorkerRecord(w, identity) {
		return
	}

	updated := engagement.SetBloodType(identity, req.BloodType)
	if err := h.commitWorker(r, updated); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to persist blood type", err)
		return
	}
	writeJSON(w, http.StatusOK, toWorkerDTO(updated))
}

// AddMedicalRecord appends an entry to the caller's health history.
// Newest entry first; no point award.
// POST /api/me/medical-records
func (h *Handler) AddMedicalRecord(w http.ResponseWriter, r *http.Request) {
	var req MedicalRecordRequest
	if !h.decode(w, r, &req) {
		return
	}
	if worker.ParseDate(req.Date).IsZero() {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", nil)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	identity, ok := h.currentIdentity(w, r)
	if !ok {
		return
	}
	if !h.requireWorkerRecord(w, identity) {
		return
	}

	rec := worker.MedicalRecord{
		ID:          uuid.NewString(),
		Date:        req.Date,
		Type:        worker.MedicalRecordType(req.Type),
		Description: req.Description,
	}
	updated := engagement.AppendMedicalRecord(identity, rec)
	if err := h.commitWorker(r, updated); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to persist medical record", err)
		return
	}
	writeJSON(w, http.StatusCreated, toWorkerDTO(updated))
}

// =============================================================================
// PROMOTIONS
// =============================================================================

// ListPromotions returns the catalog with the caller's read flags.
// GET /api/promotions
func (h *Handler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	identity, ok := h.currentIdentity(w, r)
	h.mu.Unlock()
	if !ok {
		return
	}

	dtos := make([]PromotionDTO, len(content.MonthlyPromotions))
	for i, p := range content.MonthlyPromotions {
		dtos[i] = PromotionDTO{Promotion: p, Read: identity.HasRead(p.ID)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ConfirmPromotionRead marks a promotion read and awards the reading
// bonus once. Re-confirming is a no-op with bonus_awarded=false.
// POST /api/promotions/{id}/read
func (h *Handler) ConfirmPromotionRead(w http.ResponseWriter, r *http.Request) {
	promotionID := chi.URLParam(r, "id")
	if _, ok := content.FindPromotion(promotionID); !ok {
		writeError(w, http.StatusNotFound, "Promotion not found", nil)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	identity, ok := h.currentIdentity(w, r)
	if !ok {
		return
	}
	if !h.requireWorkerRecord(w, identity) {
		return
	}

	updated := engagement.ConfirmPromotionRead(identity, promotionID)
	awarded := updated.Points > identity.Points
	if awarded {
		if err := h.commitWorker(r, updated); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to persist reading bonus", err)
			return
		}
		h.recordAward(r, engagement.Event{
			ID:             uuid.NewString(),
			PassportNumber: updated.Key(),
			Kind:           engagement.EventPromotionRead,
			Reference:      promotionID,
			IdempotencyKey: engagement.PromotionReadKey(updated.Key(), promotionID),
			CreatedAt:      h.Now(),
		})
	}

	writeJSON(w, http.StatusOK, PromotionReadDTO{
		PromotionID:  promotionID,
		Read:         true,
		BonusAwarded: awarded,
		Points:       updated.Points,
	})
}

// =============================================================================
// STATIC CATALOGS
// =============================================================================

// ListAnnouncements returns the notice list.
// GET /api/announcements
func (h *Handler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.Announcements)
}

// ListRewardsCatalog returns the redeemable items. Display only;
// redemption is not implemented.
// GET /api/rewards/catalog
func (h *Handler) ListRewardsCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, content.RewardsCatalog)
}

// ListEmployers returns the employer registry.
// GET /api/employers
func (h *Handler) ListEmployers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, worker.Employers)
}

// =============================================================================
// ASSISTANT
// =============================================================================

// Chat forwards one prompt to the assistant. Provider failures are
// absorbed into a localized fallback reply, never an error response.
// POST /api/assistant/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if !h.decode(w, r, &req) {
		return
	}
	locale := assistant.Locale(req.Locale)
	if locale == "" {
		locale = assistant.LocaleEN
	}

	reply := h.Assistant.Reply(r.Context(), req.Prompt, toMessages(req.History), locale)
	writeJSON(w, http.StatusOK, ChatResponseDTO{Reply: reply})
}

// =============================================================================
// ADMIN
// =============================================================================

// AdminListWorkers returns the filtered directory.
// GET /api/admin/workers?search=&employer=
func (h *Handler) AdminListWorkers(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")
	employer := r.URL.Query().Get("employer")

	h.mu.Lock()
	workers := h.dir.Search(term, employer)
	h.mu.Unlock()

	dtos := make([]AdminWorkerDTO, len(workers))
	for i, wk := range workers {
		dtos[i] = AdminWorkerDTO{
			PassportNumber: wk.PassportNumber,
			Name:           wk.Name,
			Employer:       toEmployerDTO(wk.Employer),
			Points:         wk.Points,
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// AdminSummary returns the console header aggregates.
// GET /api/admin/summary
func (h *Handler) AdminSummary(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	total := h.dir.Len()
	points := h.dir.TotalPoints()
	h.mu.Unlock()

	awarded, err := h.Store.CountEvents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count awards", err)
		return
	}

	writeJSON(w, http.StatusOK, AdminSummaryDTO{
		TotalWorkers:  total,
		TotalPoints:   points,
		AwardedEvents: awarded,
	})
}

// =============================================================================
// INTERNAL HELPERS
// =============================================================================

// currentIdentity resolves the bearer claims to a live record. Admin
// claims resolve to the synthetic identity, never the directory.
func (h *Handler) currentIdentity(w http.ResponseWriter, r *http.Request) (worker.Worker, bool) {
	claims := contextClaims(r)
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Missing bearer token", nil)
		return worker.Worker{}, false
	}
	if claims.IsAdmin() {
		return worker.AdminIdentity(), true
	}
	identity, err := h.dir.Find(claims.Subject)
	if err != nil {
		writeError(w, http.StatusNotFound, "Worker not found", nil)
		return worker.Worker{}, false
	}
	return identity, true
}

// requireWorkerRecord rejects the synthetic admin identity on endpoints
// that mutate a directory record. The admin record is never stored, so a
// commit for it could only fail.
func (h *Handler) requireWorkerRecord(w http.ResponseWriter, identity worker.Worker) bool {
	if identity.IsAdmin() {
		writeError(w, http.StatusForbidden, "Administrative identity has no worker record", nil)
		return false
	}
	return true
}

// commitWorker swaps the updated record into the directory and persists
// the full collection.
func (h *Handler) commitWorker(r *http.Request, updated worker.Worker) error {
	if err := h.dir.Replace(updated); err != nil {
		return err
	}
	return store.SaveWorkers(r.Context(), h.Store, h.dir.All())
}

// recordAward appends to the award log. Duplicate idempotency keys are
// expected on replays and ignored; other failures are logged but must
// not fail the request, the points are already committed.
func (h *Handler) recordAward(r *http.Request, ev engagement.Event) {
	if err := h.Store.AppendEvent(r.Context(), ev); err != nil && !errors.Is(err, store.ErrDuplicateIdempotencyKey) {
		log.Printf("api: award log append failed: %v", err)
	}
}

// snapshotCurrentUser caches the authenticated record under its own key
// for fast restart. Best effort.
func (h *Handler) snapshotCurrentUser(r *http.Request, wk worker.Worker) {
	data, err := json.Marshal(wk)
	if err != nil {
		return
	}
	if err := h.Store.PutBlob(r.Context(), store.KeyCurrentUser, data); err != nil {
		log.Printf("api: current-user snapshot failed: %v", err)
	}
}

// decode parses and validates a JSON request body.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Validation failed", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
