package ember

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Settings are the user preferences a demo restores between runs.
type Settings struct {
	// Seed for particle placement; zero picks a fresh layout each run.
	Seed uint64 `yaml:"seed"`
	// Paused starts the systems paused.
	Paused bool `yaml:"paused"`
	// AutoRotate is the camera spin in radians per second.
	AutoRotate float64 `yaml:"autoRotate"`
	// ShowStats toggles the stats overlay.
	ShowStats bool `yaml:"showStats"`
	// ConfigPath is the last system config file loaded, if any.
	ConfigPath string `yaml:"configPath"`
}

// DefaultSettings returns the settings used when nothing is stored.
func DefaultSettings() Settings {
	return Settings{AutoRotate: 0.1, ShowStats: true}
}

const (
	settingsObject   = "settings"
	settingsProperty = "ember"
)

// SettingsStore loads and saves Settings through gdata. A nil manager keeps
// settings in memory only.
type SettingsStore struct {
	manager  *gdata.Manager
	settings Settings
}

// OpenSettings opens the platform data directory for appName and loads the
// stored settings. A storage failure degrades to an in-memory store.
func OpenSettings(appName string) *SettingsStore {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("ember: settings storage unavailable: %v (using defaults)", err)
		m = nil
	}
	return NewSettingsStore(m)
}

// NewSettingsStore wraps manager and loads stored settings, falling back to
// defaults when none exist or they cannot be read.
func NewSettingsStore(manager *gdata.Manager) *SettingsStore {
	st := &SettingsStore{manager: manager, settings: DefaultSettings()}
	if err := st.Load(); err != nil {
		log.Printf("ember: failed to load settings: %v (using defaults)", err)
	}
	return st
}

// Load replaces the in-memory settings with the stored ones. Missing data is
// not an error.
func (st *SettingsStore) Load() error {
	if st.manager == nil || !st.manager.ObjectPropExists(settingsObject, settingsProperty) {
		st.settings = DefaultSettings()
		return nil
	}
	data, err := st.manager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		st.settings = DefaultSettings()
		return fmt.Errorf("read settings: %w", err)
	}
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		st.settings = DefaultSettings()
		return fmt.Errorf("decode settings: %w", err)
	}
	st.settings = loaded
	return nil
}

// Save persists the current settings. Without a manager it does nothing.
func (st *SettingsStore) Save() error {
	if st.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(st.settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := st.manager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Settings returns a pointer to the in-memory settings for editing. Call
// Save to persist changes.
func (st *SettingsStore) Settings() *Settings {
	return &st.settings
}

// Persistent reports whether settings are backed by storage.
func (st *SettingsStore) Persistent() bool {
	return st.manager != nil
}
