package httpapi

import (
	"io"
	"net/http"
	"strconv"

	"github.com/BurntNail/sourisdb/cursor"
	"github.com/BurntNail/sourisdb/db"
	"github.com/BurntNail/sourisdb/internal/obs"
	"github.com/BurntNail/sourisdb/souris"
	"github.com/BurntNail/sourisdb/store"
	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// NewRouter wires the §6.2 route table onto a db.Manager.
func NewRouter(m *db.Manager, log *obs.Logger) http.Handler {
	if log == nil {
		log = obs.NewNop()
	}
	h := &handlers{manager: m, log: log.Named("httpapi")}

	r := chi.NewRouter()
	r.Get("/healthcheck", h.healthcheck)
	r.Get("/v1/get_all_db_names", h.getAllDBNames)
	r.Get("/v1/get_db", h.getDB)
	r.Post("/v1/add_db", h.addDB)
	r.Put("/v1/add_db_with_content", h.addDBWithContent)
	r.Post("/v1/rm_db", h.removeDB)
	r.Put("/v1/add_kv", h.addKV)
	r.Post("/v1/rm_kv", h.removeKV)
	r.Get("/v1/get_value", h.getValue)

	return r
}

type handlers struct {
	manager *db.Manager
	log     *obs.Logger
}

func (h *handlers) healthcheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *handlers) getAllDBNames(w http.ResponseWriter, _ *http.Request) {
	names := h.manager.GetAllDBNames()
	b, err := jsonAPI.Marshal(names)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(b)
}

func (h *handlers) getDB(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("db_name")

	b, err := h.manager.GetDB(name)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(b)
}

func (h *handlers) addDB(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("db_name")
	overwrite := parseBool(r.URL.Query().Get("overwrite_existing"))

	created, err := h.manager.NewDB(name, overwrite)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(statusForCreated(bool(created)))
}

func (h *handlers) addDBWithContent(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("db_name")
	overwrite := parseBool(r.URL.Query().Get("overwrite_existing"))

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	contents, err := store.Deser(cursor.New(body))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.manager.NewDBWithContents(name, overwrite, contents)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(statusForCreated(bool(created)))
}

func (h *handlers) removeDB(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("db_name")

	if err := h.manager.RemoveDB(name); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *handlers) addKV(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("db_name")
	key := r.URL.Query().Get("key")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	val, err := souris.Deser(cursor.New(body))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := h.manager.AddKV(name, key, val)
	if err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(statusForCreated(bool(created)))
}

func (h *handlers) removeKV(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("db_name")
	key := r.URL.Query().Get("key")

	if err := h.manager.RemoveKey(name, key); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (h *handlers) getValue(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("db_name")
	key := r.URL.Query().Get("key")

	v, err := h.manager.GetValue(name, key)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(v.Ser(nil))
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func statusForCreated(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}

