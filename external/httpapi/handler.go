package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/Priyanshu9798/lecture-zen-38/internal/config"
	"github.com/Priyanshu9798/lecture-zen-38/internal/repository"
	"github.com/Priyanshu9798/lecture-zen-38/internal/review"
	"github.com/Priyanshu9798/lecture-zen-38/internal/study"
)

type Handler struct {
	cfg      *config.Config
	manager  *study.Manager
	repo     repository.Repository
	upgrader websocket.Upgrader
}

func NewHandler(cfg *config.Config, manager *study.Manager, repo repository.Repository) *Handler {
	return &Handler{
		cfg:     cfg,
		manager: manager,
		repo:    repo,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func errorResponse(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, map[string]string{"error": message}, status)
}

// statusForError maps domain sentinels onto HTTP status codes. State
// machine preconditions come back as 409 so the client can re-sync its
// snapshot; malformed input is a plain 400.
func statusForError(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, review.ErrInvalidTransition), errors.Is(err, review.ErrNoSelection):
		return http.StatusConflict
	case errors.Is(err, review.ErrOptionOutOfRange), errors.Is(err, review.ErrRatingOutOfRange):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func domainError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		errorResponse(w, "internal server error", status)
		return
	}
	errorResponse(w, err.Error(), status)
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]any{
		"status":    "ok",
		"timestamp": time.Now(),
	}, http.StatusOK)
}

func (h *Handler) ListLectures(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		lectures []repository.Lecture
		err      error
	)
	if q := r.URL.Query().Get("q"); q != "" {
		lectures, err = h.repo.SearchLectures(ctx, q)
	} else {
		lectures, err = h.repo.ListLectures(ctx)
	}
	if err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, map[string]any{"lectures": toLectureDTOs(lectures)}, http.StatusOK)
}

type createLectureRequest struct {
	Title    string `json:"title"`
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	FileType string `json:"fileType"`
}

func (h *Handler) CreateLecture(w http.ResponseWriter, r *http.Request) {
	var req createLectureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		errorResponse(w, "title is required", http.StatusBadRequest)
		return
	}
	if req.Duration < 0 {
		errorResponse(w, "duration must not be negative", http.StatusBadRequest)
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			errorResponse(w, "date must be formatted as YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		date = parsed
	}

	kind := repository.SourceKind(req.FileType)
	switch kind {
	case "":
		kind = repository.SourceKindAudio
	case repository.SourceKindAudio, repository.SourceKindDocument:
	default:
		errorResponse(w, "fileType must be audio or document", http.StatusBadRequest)
		return
	}

	lecture, err := h.repo.CreateLecture(r.Context(), repository.CreateLectureInput{
		Title:           req.Title,
		Date:            date,
		DurationSeconds: req.Duration,
		SourceKind:      kind,
	})
	if err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, toLectureDTO(*lecture), http.StatusCreated)
}

func (h *Handler) GetLecture(w http.ResponseWriter, r *http.Request) {
	detail, err := h.manager.Detail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, toLectureDetailDTO(detail), http.StatusOK)
}

// === Quiz ===

func (h *Handler) GetQuizState(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.QuizState(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, toQuizStateDTO(snap), http.StatusOK)
}

func (h *Handler) SelectQuizOption(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Option int `json:"option"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snap, err := h.manager.QuizSelect(r.Context(), mux.Vars(r)["id"], req.Option)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, toQuizStateDTO(snap), http.StatusOK)
}

func (h *Handler) SubmitQuizAnswer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	feedback, err := h.manager.QuizSubmit(ctx, id)
	if err != nil {
		domainError(w, err)
		return
	}
	snap, err := h.manager.QuizState(ctx, id)
	if err != nil {
		domainError(w, err)
		return
	}

	jsonResponse(w, map[string]any{
		"correct":      feedback.Correct,
		"correctIndex": feedback.CorrectIndex,
		"explanation":  feedback.Explanation,
		"quiz":         toQuizStateDTO(snap),
	}, http.StatusOK)
}

func (h *Handler) AdvanceQuiz(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.QuizNext(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, toQuizStateDTO(snap), http.StatusOK)
}

func (h *Handler) RestartQuiz(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.QuizRestart(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, toQuizStateDTO(snap), http.StatusOK)
}

// === Flashcards ===

func (h *Handler) GetFlashcardState(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.FlashcardState(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, toCardStateDTO(snap), http.StatusOK)
}

func (h *Handler) RevealFlashcard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.CardReveal(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, toCardStateDTO(snap), http.StatusOK)
}

func (h *Handler) RateFlashcard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Difficulty int `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}

	snap, err := h.manager.CardRate(r.Context(), mux.Vars(r)["id"], req.Difficulty)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, toCardStateDTO(snap), http.StatusOK)
}

func (h *Handler) AdvanceFlashcard(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.CardAdvance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, toCardStateDTO(snap), http.StatusOK)
}

// === Chat ===

func (h *Handler) GetChatState(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.ChatState(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, toChatStateDTO(snap), http.StatusOK)
}

type chatSendRequest struct {
	Message string `json:"message"`
}

// SendChatMessage blocks until the assistant reply is committed, then
// returns the full conversation. Clients that want the character-level
// reveal should use the websocket endpoint instead.
func (h *Handler) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := mux.Vars(r)["id"]

	var req chatSendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}

	msg, err := h.manager.ChatSend(ctx, id, req.Message, nil)
	if err != nil {
		domainError(w, err)
		return
	}

	snap, err := h.manager.ChatState(ctx, id)
	if err != nil {
		domainError(w, err)
		return
	}

	resp := map[string]any{
		"accepted": msg != nil,
		"chat":     toChatStateDTO(snap),
	}
	if msg != nil {
		resp["message"] = toChatMessageDTO(*msg)
	}
	jsonResponse(w, resp, http.StatusOK)
}

// === Playback ===

func (h *Handler) GetPlayback(w http.ResponseWriter, r *http.Request) {
	state, err := h.manager.Playback(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, toPlaybackStateDTO(state), http.StatusOK)
}

func (h *Handler) SeekPlayback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Position int `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, "invalid request body", http.StatusBadRequest)
		return
	}

	state, err := h.manager.Seek(r.Context(), mux.Vars(r)["id"], req.Position)
	if err != nil {
		domainError(w, err)
		return
	}
	jsonResponse(w, toPlaybackStateDTO(state), http.StatusOK)
}
