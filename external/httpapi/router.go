package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", h.HealthCheck).Methods("GET")

	api.HandleFunc("/lectures", h.ListLectures).Methods("GET")
	api.HandleFunc("/lectures", h.CreateLecture).Methods("POST")
	api.HandleFunc("/lectures/{id}", h.GetLecture).Methods("GET")

	api.HandleFunc("/lectures/{id}/quiz", h.GetQuizState).Methods("GET")
	api.HandleFunc("/lectures/{id}/quiz/select", h.SelectQuizOption).Methods("POST")
	api.HandleFunc("/lectures/{id}/quiz/submit", h.SubmitQuizAnswer).Methods("POST")
	api.HandleFunc("/lectures/{id}/quiz/next", h.AdvanceQuiz).Methods("POST")
	api.HandleFunc("/lectures/{id}/quiz/restart", h.RestartQuiz).Methods("POST")

	api.HandleFunc("/lectures/{id}/flashcards", h.GetFlashcardState).Methods("GET")
	api.HandleFunc("/lectures/{id}/flashcards/reveal", h.RevealFlashcard).Methods("POST")
	api.HandleFunc("/lectures/{id}/flashcards/rate", h.RateFlashcard).Methods("POST")
	api.HandleFunc("/lectures/{id}/flashcards/advance", h.AdvanceFlashcard).Methods("POST")

	api.HandleFunc("/lectures/{id}/chat", h.GetChatState).Methods("GET")
	api.HandleFunc("/lectures/{id}/chat", h.SendChatMessage).Methods("POST")
	api.HandleFunc("/lectures/{id}/chat/stream", h.StreamChatMessage).Methods("GET")

	api.HandleFunc("/lectures/{id}/playback", h.GetPlayback).Methods("GET")
	api.HandleFunc("/lectures/{id}/playback", h.SeekPlayback).Methods("PUT")

	c := cors.New(cors.Options{
		AllowedOrigins:   h.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(r)
}
