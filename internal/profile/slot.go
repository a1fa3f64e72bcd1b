package profile

import (
	"context"
	"encoding/json"
	"time"

	"backend-sparnet/internal/kv"
)

const slotPrefix = "profile:"

// SlotStore keeps profiles in the key-value slot. It backs local
// development runs where neither Postgres nor Supabase is configured.
type SlotStore struct {
	slots kv.Store
}

func NewSlotStore(slots kv.Store) *SlotStore {
	return &SlotStore{slots: slots}
}

func (s *SlotStore) Upsert(ctx context.Context, params UpsertParams) (Profile, error) {
	p := Profile{
		UserID:        params.UserID,
		Username:      &params.Username,
		Location:      params.Location,
		PreferredArts: params.PreferredArts,
		SkillLevel:    params.SkillLevel,
		UpdatedAt:     time.Now(),
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return Profile{}, err
	}
	if err := s.slots.Set(ctx, slotPrefix+params.UserID, string(raw)); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *SlotStore) CreateSkeleton(ctx context.Context, userID string) error {
	// An existing profile wins over a skeleton.
	if _, ok, err := s.slots.Get(ctx, slotPrefix+userID); err != nil {
		return err
	} else if ok {
		return nil
	}
	raw, err := json.Marshal(Profile{UserID: userID, UpdatedAt: time.Now()})
	if err != nil {
		return err
	}
	return s.slots.Set(ctx, slotPrefix+userID, string(raw))
}

func (s *SlotStore) Get(ctx context.Context, userID string) (Profile, bool, error) {
	raw, ok, err := s.slots.Get(ctx, slotPrefix+userID)
	if err != nil || !ok {
		return Profile{}, false, err
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}
