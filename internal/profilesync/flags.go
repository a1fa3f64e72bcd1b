package profilesync

import (
	"context"
	"log"

	"backend-sparnet/internal/kv"
)

const (
	flagPrefix     = "onboarded:"
	versionSlot    = "onboarding:version"
	CurrentVersion = "2"
)

// Flags tracks per-user onboarding completion in the durable slot store.
// Reads and writes are best-effort: a failing store reads as "not onboarded"
// and write failures are logged and dropped.
type Flags struct {
	slots kv.Store
}

func NewFlags(slots kv.Store) *Flags {
	return &Flags{slots: slots}
}

func (f *Flags) Completed(ctx context.Context, userID string) bool {
	value, ok, err := f.slots.Get(ctx, flagPrefix+userID)
	if err != nil {
		log.Printf("profilesync: read completion flag: %v", err)
		return false
	}
	return ok && value == "true"
}

func (f *Flags) MarkCompleted(ctx context.Context, userID string) {
	if err := f.slots.Set(ctx, flagPrefix+userID, "true"); err != nil {
		log.Printf("profilesync: write completion flag: %v", err)
	}
}

// EnsureVersion rewrites the schema version marker when it differs from the
// current one. Existing completion flags are kept; the marker only resets
// version bookkeeping, it never forces re-onboarding.
func (f *Flags) EnsureVersion(ctx context.Context) {
	value, ok, err := f.slots.Get(ctx, versionSlot)
	if err != nil {
		log.Printf("profilesync: read version marker: %v", err)
		return
	}
	if ok && value == CurrentVersion {
		return
	}
	if err := f.slots.Set(ctx, versionSlot, CurrentVersion); err != nil {
		log.Printf("profilesync: write version marker: %v", err)
	}
}
