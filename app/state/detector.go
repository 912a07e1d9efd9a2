package state

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
)

// ErrNoIdentities is returned when a non-empty fetch contained no record
// with a usable identity key. A single malformed record is skipped, but
// a fetch where every record is malformed indicates a broken source
// adapter rather than a data glitch.
var ErrNoIdentities = errors.New("no fetched records carry an identity key")

// Tracker binds one entity type E to its persisted record layout R. The
// five entity types share identical detection behavior and differ only
// in these capabilities, so change detection is written once and
// parameterized rather than copied per type.
type Tracker[E any, R any] struct {
	// Name labels the entity type in logs.
	Name string
	// Key extracts the stable identity key. An empty key marks the
	// record as malformed and it is skipped.
	Key func(E) string
	// Fingerprint extracts the current status fingerprint.
	Fingerprint func(E) Fingerprint
	// Record builds a fresh persisted record with first_seen and
	// last_updated both set to now.
	Record func(E, string) R
	// Refresh folds the entity's current status into an existing record,
	// moving last_updated to now and leaving first_seen untouched.
	Refresh func(R, E, string) R
	// StoredFingerprint reads the fingerprint back out of a persisted
	// record for comparison.
	StoredFingerprint func(R) Fingerprint
}

// DetectAndRecord classifies fetched entities against the existing
// mapping and folds the results back in, in input order:
//
//   - key absent from existing: emit a "new" update and insert a record
//     with first_seen = last_updated = now;
//   - stored fingerprint differs from the current one on either half:
//     emit a "status_change" update carrying the previous fingerprint
//     and refresh the stored record;
//   - identical fingerprint: emit nothing and leave the record alone,
//     last_updated included.
//
// Previously tracked keys absent from the fetch are neither removed nor
// reported. Because the mapping is mutated in place, calling this twice
// with the same fetch yields an empty update list the second time.
func (t Tracker[E, R]) DetectAndRecord(existing map[string]R, fetched []E, now string) ([]Update[E], error) {
	return t.run(existing, fetched, now)
}

// Detect classifies without recording: the existing mapping is left
// untouched. Classification still accounts for duplicate keys within
// the fetch the same way DetectAndRecord does.
func (t Tracker[E, R]) Detect(existing map[string]R, fetched []E, now string) ([]Update[E], error) {
	return t.run(maps.Clone(existing), fetched, now)
}

func (t Tracker[E, R]) run(existing map[string]R, fetched []E, now string) ([]Update[E], error) {
	updates := []Update[E]{}
	skipped := 0

	for _, entity := range fetched {
		key := t.Key(entity)
		if key == "" {
			skipped++
			slog.Warn("Skipping record without identity key", "type", t.Name)
			continue
		}

		record, ok := existing[key]
		if !ok {
			updates = append(updates, Update[E]{Entity: entity, Kind: UpdateNew})
			existing[key] = t.Record(entity, now)
			slog.Info("New item detected", "type", t.Name, "key", key)
			continue
		}

		stored := t.StoredFingerprint(record)
		current := t.Fingerprint(entity)
		if stored == current {
			continue
		}

		updates = append(updates, Update[E]{Entity: entity, Kind: UpdateStatusChange, Previous: stored})
		existing[key] = t.Refresh(record, entity, now)
		slog.Info("Status change detected", "type", t.Name, "key", key)
	}

	if skipped > 0 && skipped == len(fetched) {
		return updates, fmt.Errorf("%s: %w", t.Name, ErrNoIdentities)
	}

	return updates, nil
}

// ByKind partitions updates into new and changed, preserving relative
// order within each group. The digest consumes updates pre-grouped by
// kind; any priority ordering is the renderer's concern.
func ByKind[E any](updates []Update[E]) (added, changed []Update[E]) {
	for _, u := range updates {
		switch u.Kind {
		case UpdateNew:
			added = append(added, u)
		case UpdateStatusChange:
			changed = append(changed, u)
		}
	}
	return added, changed
}
