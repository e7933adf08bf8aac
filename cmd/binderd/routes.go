package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"cardbinder-backend/services/catalog"
	"cardbinder-backend/services/collection"
	"cardbinder-backend/services/importer"
)

type Server struct {
	importer   importer.Service
	catalog    catalog.Service
	collection collection.Service
}

func (s Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/import", s.handleImport)
	mux.HandleFunc("GET /api/inbox", s.handleInbox)
	mux.HandleFunc("GET /api/binder", s.handleBinder)
	mux.HandleFunc("GET /api/binders", s.handleBinders)
	mux.HandleFunc("POST /api/binder/add", s.handleBinderAdd)
	mux.HandleFunc("POST /api/binder/remove", s.handleBinderRemove)
	mux.HandleFunc("POST /api/binder/count", s.handleBinderCount)
	mux.HandleFunc("POST /api/binder/reorder", s.handleBinderReorder)
	mux.HandleFunc("POST /api/binder/autosort", s.handleBinderAutoSort)
	mux.HandleFunc("GET /api/profiles", s.handleProfiles)
	mux.HandleFunc("POST /api/profiles", s.handleCreateProfile)
	mux.HandleFunc("GET /api/img", s.handleImage)
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		slog.Warn("failed to write response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJson(w, status, map[string]string{"error": err.Error()})
}

func readJson[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var body T
	err := json.NewDecoder(r.Body).Decode(&body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return body, false
	}
	return body, true
}

func profileOrDefault(id string) string {
	if id == "" {
		return collection.DefaultProfile
	}
	return id
}

func binderOrDefault(id string) string {
	if id == "" {
		return collection.DefaultBinder
	}
	return id
}

func (s Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body, ok := readJson[struct {
		Url     string `json:"url"`
		Cookie  string `json:"cookie"`
		Profile string `json:"profile"`
	}](w, r)
	if !ok {
		return
	}
	if body.Url == "" {
		writeJson(w, http.StatusBadRequest, map[string]string{"error": "url required"})
		return
	}

	count, err := s.importer.Import(r.Context(), body.Url, body.Cookie, profileOrDefault(body.Profile))
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]int{"imported": count})
}

func (s Server) handleInbox(w http.ResponseWriter, r *http.Request) {
	profile := profileOrDefault(r.URL.Query().Get("profile"))
	items, err := s.collection.ListInbox(r.Context(), profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]any{"items": items})
}

func (s Server) handleBinder(w http.ResponseWriter, r *http.Request) {
	profile := profileOrDefault(r.URL.Query().Get("profile"))
	binder := binderOrDefault(r.URL.Query().Get("binder"))
	items, err := s.collection.ListBinder(r.Context(), profile, binder)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]any{"items": items})
}

func (s Server) handleBinders(w http.ResponseWriter, r *http.Request) {
	profile := profileOrDefault(r.URL.Query().Get("profile"))
	ids, err := s.collection.ListBinderIds(r.Context(), profile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJson(w, http.StatusOK, map[string]any{"items": ids})
}

type binderMutation struct {
	Profile string   `json:"profile"`
	Binder  string   `json:"binder"`
	Keys    []string `json:"keys"`
}

func (s Server) handleBinderAdd(w http.ResponseWriter, r *http.Request) {
	body, ok := readJson[binderMutation](w, r)
	if !ok {
		return
	}
	result, err := s.collection.AddToBinder(r.Context(),
		profileOrDefault(body.Profile), binderOrDefault(body.Binder), body.Keys)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJson(w, http.StatusOK, result)
}

func (s Server) handleBinderRemove(w http.ResponseWriter, r *http.Request) {
	body, ok := readJson[binderMutation](w, r)
	if !ok {
		return
	}
	err := s.collection.RemoveFromBinder(r.Context(),
		profileOrDefault(body.Profile), binderOrDefault(body.Binder), body.Keys)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s Server) handleBinderCount(w http.ResponseWriter, r *http.Request) {
	body, ok := readJson[struct {
		Profile string `json:"profile"`
		Binder  string `json:"binder"`
		Key     string `json:"key"`
		Count   int64  `json:"count"`
	}](w, r)
	if !ok {
		return
	}
	err := s.collection.SetCount(r.Context(),
		profileOrDefault(body.Profile), binderOrDefault(body.Binder), body.Key, body.Count)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s Server) handleBinderReorder(w http.ResponseWriter, r *http.Request) {
	body, ok := readJson[binderMutation](w, r)
	if !ok {
		return
	}
	err := s.collection.Reorder(r.Context(),
		profileOrDefault(body.Profile), binderOrDefault(body.Binder), body.Keys)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s Server) handleBinderAutoSort(w http.ResponseWriter, r *http.Request) {
	body, ok := readJson[binderMutation](w, r)
	if !ok {
		return
	}
	err := s.collection.AutoSort(r.Context(),
		profileOrDefault(body.Profile), binderOrDefault(body.Binder))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJson(w, http.StatusOK, map[string]bool{"ok": true})
}

type profileJson struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

func (s Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.collection.ListProfiles(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	items := make([]profileJson, len(profiles))
	for i, p := range profiles {
		items[i] = profileJson{Id: p.ID, Name: p.Name}
	}
	writeJson(w, http.StatusOK, map[string]any{"items": items})
}

func (s Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	body, ok := readJson[struct {
		Name string `json:"name"`
	}](w, r)
	if !ok {
		return
	}
	if body.Name == "" {
		writeJson(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}
	profile, err := s.collection.CreateProfile(r.Context(), body.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJson(w, http.StatusOK, profileJson{Id: profile.ID, Name: profile.Name})
}

func (s Server) handleImage(w http.ResponseWriter, r *http.Request) {
	masterID, err := strconv.ParseInt(r.URL.Query().Get("master_id"), 10, 64)
	if err != nil {
		writeJson(w, http.StatusBadRequest, map[string]string{"error": "master_id required"})
		return
	}
	img, found, err := s.catalog.GetBestImage(r.Context(), masterID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !found {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=604800, immutable")
	http.ServeFile(w, r, img.LocalPath)
}
