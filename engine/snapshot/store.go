package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrNoSave reports that no saved game exists for a story.
var ErrNoSave = errors.New("no save file")

// Store persists one save slot per story under a directory, keyed by story
// ID.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on the
// first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(storyID string) string {
	return filepath.Join(s.dir, storyID+".save")
}

// Save writes the capture as the story's save slot, replacing any previous
// save.
func (s *Store) Save(st State) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating save directory: %w", err)
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding save: %w", err)
	}
	if err := os.WriteFile(s.path(st.StoryID), data, 0o644); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	return nil
}

// Load reads the story's save slot. A missing or unreadable file yields
// ErrNoSave.
func (s *Store) Load(storyID string) (State, error) {
	data, err := os.ReadFile(s.path(storyID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return State{}, ErrNoSave
		}
		return State{}, fmt.Errorf("reading save: %w", err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("decoding save: %w", err)
	}
	if st.StoryID != storyID {
		return State{}, fmt.Errorf("save belongs to story %q", st.StoryID)
	}
	return st, nil
}
