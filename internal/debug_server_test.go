package internal

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ludo-lab/contract"
	"ludo-lab/domain"
	"ludo-lab/domain/event"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestToRow(t *testing.T) {
	req := require.New(t)
	at := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

	row := ToRow(contract.JournalEntry{
		ID:      "0123456789abcdef",
		Room:    "123",
		Seq:     7,
		Kind:    event.DieRolledKind,
		Payload: map[string]any{"value": float64(6)},
		At:      at,
	})

	req.Equal(uint64(7), row.Seq)
	req.Equal("DieRolled", row.Kind)
	req.Equal("15:04:05.000", row.At)
	req.Equal("01234567", row.EntryID)
	req.JSONEq(`{"value":6}`, row.Detail)
}

type stubJournal struct {
	entries []contract.JournalEntry
	rooms   []domain.RoomID
}

func (j *stubJournal) History(roomID domain.RoomID, _ *string) ([]contract.JournalEntry, *string, error) {
	j.rooms = append(j.rooms, roomID)
	return j.entries, nil, nil
}

func TestDebugRouter(t *testing.T) {
	journal := &stubJournal{entries: []contract.JournalEntry{
		{ID: "abc", Room: "123", Seq: 1, Kind: event.PlayerJoinedKind, At: time.Now()},
	}}
	router := NewDebugRouter(logs.GetLoggerFromLevel(slog.LevelDebug), journal, func() any {
		return map[string]int{"rooms": 1}
	})

	t.Run("should render the journal of the room in the path", func(t *testing.T) {
		req := require.New(t)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/inspect/123", nil))

		req.Equal(http.StatusOK, rec.Code)
		req.Contains(rec.Body.String(), "PlayerJoined")
		req.Equal([]domain.RoomID{"123"}, journal.rooms)
	})

	t.Run("should expose stats as JSON", func(t *testing.T) {
		req := require.New(t)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

		req.Equal(http.StatusOK, rec.Code)
		req.JSONEq(`{"rooms":1}`, rec.Body.String())
	})
}
