package internal

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"ludo-lab/contract"
	"ludo-lab/domain"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/samber/lo"
)

//go:embed inspect.html
var templatesFS embed.FS

type InspectRow struct {
	Seq     uint64
	Kind    string
	At      string
	EntryID string
	Detail  string
}

// JournalReader pages through the persisted events of a room.
type JournalReader interface {
	History(roomID domain.RoomID, cursor *string) ([]contract.JournalEntry, *string, error)
}

type StatsProvider func() any

type PageData struct {
	Room   string
	Cursor string
	Items  []InspectRow
	Stats  string
	Error  string
}

// StartDebugServer serves a read-only page over the journal of a room and the latest stats.
// It listens until the returned server is shut down.
func StartDebugServer(log *slog.Logger, port int, journal JournalReader, stats StatsProvider) *http.Server {
	server := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", port),
		Handler:           NewDebugRouter(log, journal, stats),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("Debug server listening", "url", fmt.Sprintf("http://localhost:%d/inspect/{room}", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Debug server stopped", "error", err)
		}
	}()
	return server
}

func NewDebugRouter(log *slog.Logger, journal JournalReader, stats StatsProvider) http.Handler {
	tmpl := template.Must(template.ParseFS(templatesFS, "inspect.html"))
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	inspect := func(w http.ResponseWriter, r *http.Request) {
		data := PageData{Room: chi.URLParam(r, "room")}
		if data.Room == "" {
			data.Room = r.URL.Query().Get("room")
		}
		if stats != nil {
			raw, _ := json.MarshalIndent(stats(), "", "  ")
			data.Stats = string(raw)
		}
		if data.Room != "" && journal != nil {
			var cursor *string
			if c := r.URL.Query().Get("cursor"); c != "" {
				cursor = &c
			}
			entries, next, err := journal.History(domain.RoomID(data.Room), cursor)
			if err != nil {
				data.Error = err.Error()
			}
			data.Items = lo.Map(entries, func(e contract.JournalEntry, _ int) InspectRow {
				return ToRow(e)
			})
			data.Cursor = lo.FromPtr(next)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := tmpl.Execute(w, data); err != nil {
			log.Warn("Unable to render inspect page", "error", err)
		}
	}
	router.Get("/inspect", inspect)
	router.Get("/inspect/{room}", inspect)

	router.Get("/stats", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var payload any = map[string]any{}
		if stats != nil {
			payload = stats()
		}
		_ = json.NewEncoder(w).Encode(payload)
	})

	return router
}

func ToRow(e contract.JournalEntry) InspectRow {
	entryID := e.ID
	if len(entryID) > 8 {
		entryID = entryID[:8]
	}
	detail, _ := json.Marshal(e.Payload)
	return InspectRow{
		Seq:     e.Seq,
		Kind:    string(e.Kind),
		At:      e.At.Format("15:04:05.000"),
		EntryID: entryID,
		Detail:  string(detail),
	}
}
