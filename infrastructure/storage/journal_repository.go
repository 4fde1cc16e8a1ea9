package storage

import (
	"fmt"
	"log/slog"
	"time"

	"ludo-lab/contract"
	"ludo-lab/domain"
	"ludo-lab/domain/event"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const JournalPrefix = "journal"

// JournalRepository appends room events to BadgerDB and pages through them newest first.
type JournalRepository struct {
	db          *badger.DB
	log         *slog.Logger
	limitEvents *int
	now         func() time.Time
}

func NewJournalRepository(db *badger.DB, log *slog.Logger, limitEvents *int) *JournalRepository {
	return &JournalRepository{db: db, log: log, limitEvents: limitEvents, now: time.Now}
}

// Append persists one envelope.
// The key is formatted as "journal:{room}:{timestamp_padded}:{uuid}" so a prefix
// scan returns a room's events in time order, the uuid separating same-nanosecond entries.
func (r *JournalRepository) Append(env event.Envelope) error {
	at := r.now().UTC()
	id := uuid.New()
	key := fmt.Sprintf("%s:%s:%019d:%s", JournalPrefix, env.Event.RoomID(), at.UnixNano(), id)

	record, err := structpb.NewStruct(map[string]any{
		"id":      id.String(),
		"room":    string(env.Event.RoomID()),
		"seq":     float64(env.Seq),
		"kind":    string(env.Event.Kind()),
		"at":      at.Format(time.RFC3339Nano),
		"payload": event.Payload(env.Event),
	})
	if err != nil {
		return fmt.Errorf("journal record: %w", err)
	}
	bytes, err := proto.Marshal(record)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

// History returns up to limitEvents entries of a room, newest first, starting after cursor.
// The returned cursor is nil once the oldest entry was reached.
func (r *JournalRepository) History(roomID domain.RoomID, cursor *string) ([]contract.JournalEntry, *string, error) {
	var values [][]byte
	var lastKey string
	full := false
	err := r.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("%s:%s:", JournalPrefix, roomID)
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		if cursor == nil {
			seekKey = append([]byte(prefixStr), []byte("9999999999999999999")...)
		} else {
			seekKey = append([]byte(prefixStr), []byte(*cursor)...)
		}
		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()) == string(seekKey) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if r.limitEvents != nil && len(values) == *r.limitEvents {
				full = true
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefixStr):])
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			values = append(values, value)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	entries := make([]contract.JournalEntry, 0, len(values))
	for _, value := range values {
		entry, err := ToJournalEntry(value)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, entry)
	}
	if !full {
		return entries, nil, nil
	}
	r.log.Debug(fmt.Sprintf("Maximum of %d events reached", *r.limitEvents), "room", roomID)
	return entries, &lastKey, nil
}

// ToJournalEntry decodes a stored record.
func ToJournalEntry(value []byte) (contract.JournalEntry, error) {
	var record structpb.Struct
	if err := proto.Unmarshal(value, &record); err != nil {
		return contract.JournalEntry{}, err
	}
	fields := record.AsMap()
	at, err := time.Parse(time.RFC3339Nano, fmt.Sprint(fields["at"]))
	if err != nil {
		return contract.JournalEntry{}, err
	}
	seq, _ := fields["seq"].(float64)
	payload, _ := fields["payload"].(map[string]any)
	return contract.JournalEntry{
		ID:      fmt.Sprint(fields["id"]),
		Room:    domain.RoomID(fmt.Sprint(fields["room"])),
		Seq:     uint64(seq),
		Kind:    event.Kind(fmt.Sprint(fields["kind"])),
		Payload: payload,
		At:      at,
	}, nil
}
