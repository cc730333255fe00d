// Package api exposes the websocket namespaces and the read-only room
// endpoints over HTTP.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"room-lab/contract"
	"room-lab/domain"
	"room-lab/domain/corpse"
	"room-lab/errors"
	"room-lab/observability"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/samber/lo"
)

// MasterPasswordHeader carries the master password on administrative routes.
const MasterPasswordHeader = "X-Master-Password"

type RouterConfig struct {
	Log            *slog.Logger
	Lunch          contract.ILunchCoordinator
	Corpse         contract.ICorpseCoordinator
	LunchSocket    http.Handler
	CorpseSocket   http.Handler
	Monitoring     *observability.MonitoringManager
	AllowedOrigins []string
	// Inspector is served on /debug/inspect when set.
	Inspector http.Handler
}

type handler struct {
	log        *slog.Logger
	lunch      contract.ILunchCoordinator
	corpse     contract.ICorpseCoordinator
	monitoring *observability.MonitoringManager
	startedAt  time.Time
}

func NewRouter(config RouterConfig) *chi.Mux {
	h := &handler{
		log:        config.Log,
		lunch:      config.Lunch,
		corpse:     config.Corpse,
		monitoring: config.Monitoring,
		startedAt:  time.Now(),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: lo.Ternary(len(config.AllowedOrigins) == 0, []string{"*"}, config.AllowedOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", MasterPasswordHeader},
		MaxAge:         300,
	}))

	r.Get("/health", h.health)

	r.Route("/ws", func(r chi.Router) {
		r.Handle("/lunch", config.LunchSocket)
		r.Handle("/corpse", config.CorpseSocket)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/lunch/rooms", func(r chi.Router) {
			r.Get("/", h.lunchRooms)
			r.Get("/{roomID}", h.lunchRoom)
		})
		r.Route("/corpse", func(r chi.Router) {
			r.Get("/rooms", h.corpseRooms)
			r.Get("/rooms/{roomID}", h.corpseRoom)
			r.Get("/search", h.search)

			r.Group(func(r chi.Router) {
				r.Use(h.requireMaster)
				r.Get("/backup", h.backup)
				r.Put("/rooms/{roomID}/text", h.setText)
			})
		})
	})

	if config.Inspector != nil {
		r.Handle("/debug/inspect", config.Inspector)
	}
	return r
}

func writeJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errors.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errors.ErrStoreUnavailable):
		h.log.Warn("Room store unavailable", "path", r.URL.Path, "err", err)
		writeError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		h.log.Error("Request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "err", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *handler) requireMaster(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.corpse.VerifyMaster(r.Header.Get(MasterPasswordHeader)) {
			h.log.Warn("Rejected administrative request", "path", r.URL.Path, "remote", r.RemoteAddr)
			writeError(w, http.StatusUnauthorized, errors.ErrUnauthorized.Error())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.startedAt).Round(time.Second).String(),
		"stats":  h.monitoring.GetLatest(),
	})
}

func (h *handler) lunchRooms(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.lunch.ActiveRooms())
}

func (h *handler) lunchRoom(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.lunch.Room(domain.RoomID(chi.URLParam(r, "roomID")))
	if !ok {
		writeError(w, http.StatusNotFound, errors.ErrRoomNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

type publicRoom struct {
	ID domain.RoomID `json:"id"`
}

func (h *handler) corpseRooms(w http.ResponseWriter, r *http.Request) {
	ids, err := h.corpse.ListPublicRooms(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lo.Map(ids, func(id domain.RoomID, _ int) publicRoom {
		return publicRoom{ID: id}
	}))
}

type roomText struct {
	RoomID domain.RoomID `json:"roomId"`
	Text   string        `json:"text"`
}

func (h *handler) corpseRoom(w http.ResponseWriter, r *http.Request) {
	roomID := domain.RoomID(chi.URLParam(r, "roomID"))
	text, err := h.corpse.GetRoomData(r.Context(), roomID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roomText{RoomID: roomID, Text: text})
}

func (h *handler) search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hits, err := h.corpse.Search(r.Context(), query, limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if hits == nil {
		hits = []corpse.SearchHit{}
	}
	writeJSON(w, http.StatusOK, hits)
}

func (h *handler) backup(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.corpse.Backup(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	filename := "corpse-backup-" + time.Now().UTC().Format("20060102-150405") + ".json"
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	h.log.Info("Text rooms exported", "rooms", len(rooms))
	writeJSON(w, http.StatusOK, rooms)
}

type setTextRequest struct {
	Text string `json:"text"`
}

func (h *handler) setText(w http.ResponseWriter, r *http.Request) {
	var body setTextRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	roomID := domain.RoomID(chi.URLParam(r, "roomID"))
	if err := h.corpse.SetText(r.Context(), roomID, body.Text); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
