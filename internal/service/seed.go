package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/pageza/recipp/backend/internal/model"
)

// SyncResult counts what a seed run did.
type SyncResult struct {
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`
}

// SeedReconciler aligns the recipes table with a JSON seed file. Entries are
// applied one at a time in file order; a failing entry stops the run and
// leaves earlier entries applied.
type SeedReconciler struct {
	db  *gorm.DB
	mu  sync.Mutex
	now func() time.Time
}

// NewSeedReconciler creates a new SeedReconciler instance
func NewSeedReconciler(db *gorm.DB) *SeedReconciler {
	return &SeedReconciler{db: db, now: time.Now}
}

// SyncFile reconciles the seed file at path.
func (r *SeedReconciler) SyncFile(ctx context.Context, path string) (SyncResult, error) {
	f, err := os.Open(path)
	if err != nil {
		seedRuns.WithLabelValues("error").Inc()
		return SyncResult{}, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	res, err := r.Sync(ctx, f)
	if err != nil {
		return res, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

// Sync reads a JSON array of recipes from src and reconciles each entry.
// Runs are serialized.
func (r *SeedReconciler) Sync(ctx context.Context, src io.Reader) (SyncResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	res, err := r.sync(ctx, src)
	if err != nil {
		seedRuns.WithLabelValues("error").Inc()
		log.Printf("Seed sync failed after %d inserted, %d updated, %d unchanged: %v",
			res.Inserted, res.Updated, res.Unchanged, err)
		return res, err
	}

	seedRuns.WithLabelValues("success").Inc()
	log.Printf("Seed sync complete in %s: %d inserted, %d updated, %d unchanged",
		time.Since(start).Round(time.Millisecond), res.Inserted, res.Updated, res.Unchanged)
	return res, nil
}

func (r *SeedReconciler) sync(ctx context.Context, src io.Reader) (SyncResult, error) {
	var res SyncResult

	dec := json.NewDecoder(src)
	tok, err := dec.Token()
	if err != nil {
		return res, fmt.Errorf("failed to read seed data: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return res, errors.New("seed data must be a JSON array of recipes")
	}

	// Entries without an id are keyed by title, so their titles must be
	// unique within the file.
	keyed := newTitleKeys()
	// Explicit ids do not advance the Postgres serial sequence; it is reset
	// before the next generated id is needed and at the end of the run.
	resetPending := false

	for i := 0; dec.More(); i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		var entry model.Recipe
		if err := dec.Decode(&entry); err != nil {
			return res, fmt.Errorf("seed entry %d: malformed recipe: %w", i, err)
		}

		explicit := entry.ID != 0
		if err := keyed.claim(i, &entry); err != nil {
			return res, fmt.Errorf("seed entry %d (%q): %w", i, entry.Title, err)
		}
		if !explicit && resetPending {
			if err := r.resetSequence(ctx); err != nil {
				return res, err
			}
			resetPending = false
		}

		action, err := r.apply(ctx, &entry)
		if err != nil {
			return res, fmt.Errorf("seed entry %d (%q): %w", i, entry.Title, err)
		}
		seedRecords.WithLabelValues(action).Inc()

		switch action {
		case "inserted":
			res.Inserted++
			resetPending = resetPending || explicit
		case "updated":
			res.Updated++
		default:
			res.Unchanged++
		}
	}

	if _, err := dec.Token(); err != nil {
		return res, fmt.Errorf("failed to read end of seed data: %w", err)
	}

	if resetPending {
		if err := r.resetSequence(ctx); err != nil {
			return res, err
		}
	}
	return res, nil
}

// resetSequence moves the Postgres id sequence past the highest stored id.
func (r *SeedReconciler) resetSequence(ctx context.Context) error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	err := r.db.WithContext(ctx).Exec(
		"SELECT setval(pg_get_serial_sequence('recipes', 'id'), COALESCE(MAX(id), 1)) FROM recipes",
	).Error
	if err != nil {
		return fmt.Errorf("failed to reset recipe id sequence: %w", err)
	}
	return nil
}

// titleKeys tracks the titles seen in one run.
type titleKeys struct {
	untagged map[string]int
	tagged   map[string]int
}

func newTitleKeys() *titleKeys {
	return &titleKeys{untagged: make(map[string]int), tagged: make(map[string]int)}
}

// claim records entry i. An entry without an id may not share its title with
// any other entry of the run; that title is its only identity.
func (k *titleKeys) claim(i int, entry *model.Recipe) error {
	if entry.ID != 0 {
		if j, ok := k.untagged[entry.Title]; ok {
			return fmt.Errorf("title is already used by entry %d, which has no id", j)
		}
		if _, ok := k.tagged[entry.Title]; !ok {
			k.tagged[entry.Title] = i
		}
		return nil
	}
	j, ok := k.untagged[entry.Title]
	if !ok {
		j, ok = k.tagged[entry.Title]
	}
	if ok {
		return fmt.Errorf("entries without an id need unique titles; entry %d has the same title", j)
	}
	k.untagged[entry.Title] = i
	return nil
}

// apply reconciles one entry and reports whether it was inserted, updated or
// unchanged. Entries with an id are matched on it; entries without one are
// matched on their title.
func (r *SeedReconciler) apply(ctx context.Context, entry *model.Recipe) (string, error) {
	entry.Normalize()
	if err := entry.Validate(); err != nil {
		return "", err
	}
	entry.CreatedAt = time.Time{}
	entry.UpdatedAt = time.Time{}

	db := r.db.WithContext(ctx)

	var existing model.Recipe
	var err error
	if entry.ID != 0 {
		err = db.First(&existing, "id = ?", entry.ID).Error
	} else {
		err = db.Where("title = ?", entry.Title).First(&existing).Error
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := db.Create(entry).Error; err != nil {
			return "", fmt.Errorf("failed to insert recipe: %w", err)
		}
		return "inserted", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up recipe: %w", err)
	}

	same, err := sameContent(&existing, entry)
	if err != nil {
		return "", err
	}
	if same {
		return "unchanged", nil
	}

	entry.ID = existing.ID
	entry.UpdatedAt = r.now()
	err = db.Model(&model.Recipe{ID: existing.ID}).
		Select("*").
		Omit("id", "created_at", "star_count").
		Updates(entry).Error
	if err != nil {
		return "", fmt.Errorf("failed to update recipe %d: %w", existing.ID, err)
	}
	return "updated", nil
}

// sameContent compares two recipes ignoring identity, timestamps and stars.
func sameContent(a, b *model.Recipe) (bool, error) {
	ka, err := contentKey(*a)
	if err != nil {
		return false, err
	}
	kb, err := contentKey(*b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(ka, kb), nil
}

// contentKey encodes the comparable part of r. The encoding is decoded and
// encoded again so numbers and object keys take one canonical form whatever
// the driver returned.
func contentKey(r model.Recipe) ([]byte, error) {
	r.ID = 0
	r.StarCount = 0
	r.CreatedAt = time.Time{}
	r.UpdatedAt = time.Time{}
	r.Normalize()
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode recipe for comparison: %w", err)
	}
	var canonical any
	if err := json.Unmarshal(b, &canonical); err != nil {
		return nil, fmt.Errorf("failed to encode recipe for comparison: %w", err)
	}
	return json.Marshal(canonical)
}
