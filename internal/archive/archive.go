// Package archive exposes the per-user store of completed analyses.
package archive

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"Flexura/internal/auth"
	"Flexura/internal/beam/model"
	"Flexura/internal/repo"
)

type Handler struct {
	Repo repo.Repository
}

type saveRequest struct {
	Name    string                `json:"name"`
	Results model.AnalysisResults `json:"results"`
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		req.Name = req.Results.RequestID
	}
	id, err := h.Repo.SaveAnalysis(r.Context(), userID, req.Name, req.Results)
	if err != nil {
		log.Printf("SaveAnalysis error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]int{"id": id})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	items, err := h.Repo.ListAnalyses(r.Context(), userID)
	if err != nil {
		log.Printf("ListAnalyses error: %v", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []repo.SavedAnalysis{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}
	item, err := h.Repo.GetAnalysis(r.Context(), userID, id)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}
