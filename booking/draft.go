package booking

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	draftObject   = "booking"
	draftProperty = "draft"
)

// DraftStore persists an unfinished FormData between runs. A store without
// a gdata manager keeps nothing: Load returns an empty form and Save is a
// no-op.
type DraftStore struct {
	m *gdata.Manager
}

// OpenDraftStore opens the per-user data directory of appName.
func OpenDraftStore(appName string) (*DraftStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open draft storage: %w", err)
	}
	return NewDraftStore(m), nil
}

// NewDraftStore wraps m, which may be nil.
func NewDraftStore(m *gdata.Manager) *DraftStore {
	return &DraftStore{m: m}
}

// Load returns the saved draft, or an empty form when none exists.
func (d *DraftStore) Load() (FormData, error) {
	if d.m == nil || !d.m.ObjectPropExists(draftObject, draftProperty) {
		return FormData{}, nil
	}
	data, err := d.m.LoadObjectProp(draftObject, draftProperty)
	if err != nil {
		return FormData{}, fmt.Errorf("failed to load draft: %w", err)
	}
	var f FormData
	if err := yaml.Unmarshal(data, &f); err != nil {
		return FormData{}, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return f, nil
}

// Save stores f, replacing any previous draft.
func (d *DraftStore) Save(f FormData) error {
	if d.m == nil {
		return nil
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := d.m.SaveObjectProp(draftObject, draftProperty, data); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Clear deletes the saved draft, typically after a confirmed booking.
func (d *DraftStore) Clear() error {
	if d.m == nil || !d.m.ObjectPropExists(draftObject, draftProperty) {
		return nil
	}
	if err := d.m.DeleteObjectProp(draftObject, draftProperty); err != nil {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}
