package service

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/typozero/internal/database"
	"github.com/jask/typozero/internal/database/repository"
	"github.com/jask/typozero/internal/shell"
	"github.com/jask/typozero/internal/shortcut"
	"github.com/jask/typozero/internal/theme"
)

const writeTimeout = 5 * time.Second

// Preferences stores the settings the shell saves. Save queues the write
// and returns immediately; queued writes are applied in call order by a
// single worker.
type Preferences struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time

	mu      sync.Mutex
	idle    *sync.Cond // signalled when pending drops to zero
	queue   []saveRequest
	pending int // queued plus the write in progress
	closed  bool
	onSaved func(repository.Change)
	wake    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

type saveRequest struct {
	key, value string
}

var _ shell.Saver = (*Preferences)(nil)

// Restored holds the values found in the store. A zero Has* flag means the
// key was never saved or could not be parsed.
type Restored struct {
	Theme       theme.Mode
	HasTheme    bool
	Shortcut    shortcut.Binding
	HasShortcut bool
}

// NewPreferences starts the write worker. Call Close to drain it.
func NewPreferences(db *sql.DB, logger *zap.Logger) *Preferences {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Preferences{
		db:      db,
		log:     logger,
		now:     database.Now,
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	p.idle = sync.NewCond(&p.mu)
	go p.run()
	return p
}

// OnSaved registers fn to run on the worker goroutine after each write
// that changed a value.
func (p *Preferences) OnSaved(fn func(repository.Change)) {
	p.mu.Lock()
	p.onSaved = fn
	p.mu.Unlock()
}

// Save queues key=value. It never blocks; failures are logged.
func (p *Preferences) Save(key, value string) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.log.Warn("save after close dropped", zap.String("key", key))
		return
	}
	p.queue = append(p.queue, saveRequest{key: key, value: value})
	p.pending++
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Flush waits until every write queued so far, and any queued while it
// waits, has finished.
func (p *Preferences) Flush() {
	p.mu.Lock()
	for p.pending > 0 {
		p.idle.Wait()
	}
	p.mu.Unlock()
}

// Close applies the remaining queue and stops the worker.
func (p *Preferences) Close() {
	p.once.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		select {
		case p.wake <- struct{}{}:
		default:
		}
		<-p.stopped
	})
}

func (p *Preferences) run() {
	defer close(p.stopped)
	for {
		p.mu.Lock()
		if len(p.queue) == 0 {
			closed := p.closed
			p.mu.Unlock()
			if closed {
				return
			}
			<-p.wake
			continue
		}
		req := p.queue[0]
		p.queue = p.queue[1:]
		notify := p.onSaved
		p.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		change, changed, err := p.Put(ctx, req.key, req.value)
		cancel()
		switch {
		case err != nil:
			p.log.Error("failed to save setting", zap.String("key", req.key), zap.Error(err))
		case changed:
			p.log.Debug("setting saved", zap.String("key", req.key), zap.String("id", change.ID))
			if notify != nil {
				notify(change)
			}
		}
		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.idle.Broadcast()
		}
		p.mu.Unlock()
	}
}

// Put writes key=value and journals the change in one transaction. Writing
// the stored value again is a no-op and reports changed=false.
func (p *Preferences) Put(ctx context.Context, key, value string) (repository.Change, bool, error) {
	var change repository.Change
	changed := false
	err := database.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		settings := repository.NewSettingsRepo(tx)
		prev, err := settings.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}
		if prev != nil && prev.Value == value {
			return nil
		}
		now := p.now()
		if err := settings.Put(ctx, key, value, now); err != nil {
			return fmt.Errorf("put %s: %w", key, err)
		}
		change = repository.Change{ID: uuid.NewString(), Key: key, NewValue: value, ChangedAt: now}
		if prev != nil {
			change.OldValue = prev.Value
		}
		if err := repository.NewChangeRepo(tx).Add(ctx, change); err != nil {
			return fmt.Errorf("journal %s: %w", key, err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return repository.Change{}, false, err
	}
	return change, changed, nil
}

// Restore reads the saved theme and shortcut.
func (p *Preferences) Restore(ctx context.Context) (Restored, error) {
	var out Restored
	settings := repository.NewSettingsRepo(p.db)

	s, err := settings.Get(ctx, shell.KeyTheme)
	if err != nil {
		return out, fmt.Errorf("restore theme: %w", err)
	}
	if s != nil {
		if m, err := theme.ParseMode(s.Value); err != nil {
			p.log.Warn("ignoring stored theme", zap.String("value", s.Value), zap.Error(err))
		} else {
			out.Theme, out.HasTheme = m, true
		}
	}

	s, err = settings.Get(ctx, shell.KeyShortcut)
	if err != nil {
		return out, fmt.Errorf("restore shortcut: %w", err)
	}
	if s != nil {
		if b, err := shortcut.Parse(s.Value); err != nil {
			p.log.Warn("ignoring stored shortcut", zap.String("value", s.Value), zap.Error(err))
		} else {
			out.Shortcut, out.HasShortcut = b, true
		}
	}
	return out, nil
}

// Startup picks the theme and shortcut to open with. Values the user saved
// win; anything never saved falls back to the config defaults passed in.
func (p *Preferences) Startup(ctx context.Context, mode theme.Mode, b shortcut.Binding) (theme.Mode, shortcut.Binding, error) {
	restored, err := p.Restore(ctx)
	if restored.HasTheme {
		mode = restored.Theme
	}
	if restored.HasShortcut {
		b = restored.Shortcut
	}
	return mode, b, err
}

// Recent returns the newest n journal rows.
func (p *Preferences) Recent(ctx context.Context, n int) ([]repository.Change, error) {
	return repository.NewChangeRepo(p.db).Recent(ctx, n)
}

// Reset wipes saved settings and the journal. The schema is kept.
func (p *Preferences) Reset(ctx context.Context) error {
	return database.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		for _, t := range []string{"setting_changes", "settings"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+t); err != nil {
				return fmt.Errorf("reset table %s: %w", t, err)
			}
		}
		return nil
	})
}
