package promotion

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store is the on-disk persistence layer for a Pipeline's Document: a
// single JSON state file plus an append-only promotions log. The
// write-temp-then-rename update sequence is grounded on
// internal/deploy/update.go's self-update routine (tmpPath :=
// path+".update" -> write -> verify -> os.Rename), adapted here for
// local state instead of a downloaded binary: no checksum step is
// needed since the write and the rename happen in the same process.
type Store struct {
	StatePath string
	LogPath   string
}

// NewStore creates a Store rooted at dir, using "state.json" and
// "promotions.log" as the two file names spec.md §6 requires.
func NewStore(dir string) *Store {
	return &Store{
		StatePath: filepath.Join(dir, "state.json"),
		LogPath:   filepath.Join(dir, "promotions.log"),
	}
}

// NewWithStore creates a Pipeline backed by store, loading any existing
// state from disk. A missing or malformed file yields an empty state,
// per spec.md §4.6's "On startup, the document is loaded; if absent or
// malformed, an empty state is used."
func NewWithStore(store *Store) *Pipeline {
	p := New()
	p.store = store
	if doc, err := store.load(); err == nil {
		p.doc = doc
	}
	return p
}

func (s *Store) load() (*Document, error) {
	data, err := os.ReadFile(s.StatePath)
	if err != nil {
		return nil, err
	}
	doc := newDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}
	if doc.PromotedS1 == nil {
		doc.PromotedS1 = make(map[Signature]string)
	}
	if doc.PromotedS0 == nil {
		doc.PromotedS0 = make(map[Signature]string)
	}
	if doc.Candidates == nil {
		doc.Candidates = make(map[Signature]*Candidate)
	}
	return doc, nil
}

// save atomically rewrites the state file: write to a sibling ".tmp"
// path, then os.Rename over the real path, so readers always observe
// either the previous or the new complete document, never a partial
// write.
func (s *Store) save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("promotion: marshal state: %w", err)
	}

	dir := filepath.Dir(s.StatePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("promotion: ensure state dir: %w", err)
	}

	tmpPath := s.StatePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("promotion: write temp state: %w", err)
	}
	defer os.Remove(tmpPath)

	if err := os.Rename(tmpPath, s.StatePath); err != nil {
		return fmt.Errorf("promotion: rename state: %w", err)
	}
	return nil
}

func (s *Store) appendLog(line string) error {
	dir := filepath.Dir(s.LogPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("promotion: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(s.LogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("promotion: open promotions log: %w", err)
	}
	defer f.Close()
	_, err = f.WriteString(line)
	return err
}

// persistLocked writes the current document to disk, if a Store is
// attached. Must be called with p.mu held. On failure this is a
// state-io error per spec.md §7: log a warning upstream and continue
// in-memory; the next mutation retries the write.
func (p *Pipeline) persistLocked() error {
	if p.store == nil {
		return nil
	}
	if err := p.store.save(p.doc); err != nil {
		return &StateIOError{Op: "save", Err: err}
	}
	return nil
}

// logPromotionLocked appends one line to the promotions log: ISO-8601
// timestamp, PROMOTED keyword, tier transition, category, signature,
// success count. Grounded on promotion_pipeline.py's _log_promotion,
// which swallows write errors rather than failing the promotion itself.
func (p *Pipeline) logPromotionLocked(ev PromotionEvent) {
	if p.store == nil {
		return
	}
	line := fmt.Sprintf("[%s] PROMOTED %s->%s category=%s signature=%s successes=%d\n",
		time.Now().Format(time.RFC3339), ev.From, ev.To, candidateCategory(p.doc, ev.Signature), ev.Signature, ev.SuccessCount)
	_ = p.store.appendLog(line)
}

func candidateCategory(doc *Document, sig Signature) string {
	if c, ok := doc.Candidates[sig]; ok {
		return c.Category
	}
	return ""
}
