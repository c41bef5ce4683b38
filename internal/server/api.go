package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Makepad-fr/stock/internal/inventory"
	"github.com/Makepad-fr/stock/internal/model"
	"github.com/gorilla/mux"
)

type itemsResponse struct {
	Items   []string      `json:"items"`
	Summary []model.Entry `json:"summary"`
}

type summaryResponse struct {
	Total   int            `json:"total"`
	Counts  map[string]int `json:"counts"`
	Entries []model.Entry  `json:"entries"`
}

type changeResponse struct {
	Name string `json:"name"`
	itemsResponse
}

type addRequest struct {
	Name string `json:"name"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func snapshot(inv *inventory.Inventory) itemsResponse {
	entries := inv.Entries()
	if entries == nil {
		entries = []model.Entry{}
	}
	return itemsResponse{Items: inv.Items(), Summary: entries}
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	var out itemsResponse
	err := sess.Do(func(inv *inventory.Inventory) error {
		out = snapshot(inv)
		return nil
	})
	if err != nil {
		writeError(w, statusFor(err), message(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)
	var out summaryResponse
	err := sess.Do(func(inv *inventory.Inventory) error {
		out = summaryResponse{Total: inv.Len(), Counts: inv.Summarize(), Entries: snapshot(inv).Summary}
		return nil
	})
	if err != nil {
		writeError(w, statusFor(err), message(err))
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode body: "+err.Error())
		return
	}
	s.change(w, r, http.StatusCreated, func(inv *inventory.Inventory) (string, error) {
		return inv.Add(req.Name)
	})
}

func (s *Server) handleRemoveByName(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if !q.Has("name") {
		writeError(w, http.StatusBadRequest, "missing name parameter")
		return
	}
	name := q.Get("name")
	s.change(w, r, http.StatusOK, func(inv *inventory.Inventory) (string, error) {
		return inv.RemoveOne(name)
	})
}

func (s *Server) handleRemoveAt(w http.ResponseWriter, r *http.Request) {
	raw := mux.Vars(r)["index"]
	idx, err := strconv.Atoi(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "index is not a number: "+raw)
		return
	}
	s.change(w, r, http.StatusOK, func(inv *inventory.Inventory) (string, error) {
		return inv.RemoveAt(idx)
	})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	s.endSession(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// change applies fn and answers with the affected name plus the fresh state.
func (s *Server) change(w http.ResponseWriter, r *http.Request, okStatus int, fn func(inv *inventory.Inventory) (string, error)) {
	sess := s.sessionFor(w, r)
	var out changeResponse
	err := s.apply(sess, func(inv *inventory.Inventory) error {
		name, err := fn(inv)
		if err != nil {
			return err
		}
		out = changeResponse{Name: name, itemsResponse: snapshot(inv)}
		return nil
	})
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.logger.Log("change failed:", err)
		}
		writeError(w, status, message(err))
		return
	}
	writeJSON(w, okStatus, out)
}
