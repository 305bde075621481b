package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/betoborelli9/beto-bot/internal/types"
)

// ErrPersist wraps failures to write the position table to disk. The
// in-memory table stays authoritative for the rest of the run; callers
// surface the error as a warning because a crash would lose the change.
var ErrPersist = errors.New("position persist failed")

// Positions is the write-through store of open positions, keyed by
// symbol. The engine is the sole mutator; every Insert/Delete persists
// the whole table so a restart recovers open positions.
type Positions struct {
	mu   sync.Mutex
	path string
	tab  map[string]types.Position
}

// LoadPositions reads the position table from path. A missing file is an
// empty table, not an error.
func LoadPositions(path string) (*Positions, error) {
	p := &Positions{path: path, tab: map[string]types.Position{}}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("read positions file: %w", err)
	}
	if err := json.Unmarshal(b, &p.tab); err != nil {
		return nil, fmt.Errorf("parse positions file %s: %w", path, err)
	}
	return p, nil
}

// Get returns the open position for symbol, or nil when flat.
func (p *Positions) Get(symbol string) *types.Position {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pos, ok := p.tab[symbol]; ok {
		return &pos
	}
	return nil
}

// Len returns the number of open positions.
func (p *Positions) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tab)
}

// Symbols returns the symbols with an open position.
func (p *Positions) Symbols() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.tab))
	for s := range p.tab {
		out = append(out, s)
	}
	return out
}

// Insert records a newly opened position and persists the table.
func (p *Positions) Insert(pos types.Position) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tab[pos.Symbol] = pos
	return p.persistLocked()
}

// Delete removes a closed position and persists the table.
func (p *Positions) Delete(symbol string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.tab, symbol)
	return p.persistLocked()
}

func (p *Positions) persistLocked() error {
	b, err := json.MarshalIndent(p.tab, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	return nil
}
