package sqlstore

import (
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const (
	slotAccess  = "access"
	slotRefresh = "refresh"
)

type tokenSlotRecord struct {
	bun.BaseModel `bun:"table:shelf_credentials,alias:scr"`

	ID        string    `bun:"id,pk"`
	Slot      string    `bun:"slot,notnull,unique"`
	Value     string    `bun:"value,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

func newTokenSlotRecord(slot string, value string, now time.Time) *tokenSlotRecord {
	return &tokenSlotRecord{
		ID:        uuid.NewString(),
		Slot:      slot,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func tokenSlotHandlers() repository.ModelHandlers[*tokenSlotRecord] {
	return repository.ModelHandlers[*tokenSlotRecord]{
		NewRecord: func() *tokenSlotRecord {
			return &tokenSlotRecord{}
		},
		GetID: func(record *tokenSlotRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *tokenSlotRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "slot"
		},
		GetIdentifierValue: func(record *tokenSlotRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.Slot)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
