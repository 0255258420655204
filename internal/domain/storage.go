package domain

// PreferenceStore persists decorative flags across runs (boot seen, mute).
// The sequencer never touches it.
type PreferenceStore interface {
	GetBool(key string) (bool, bool)
	SetBool(key string, value bool) error
	Close() error
}

// Preference keys
const (
	PrefBootSeen = "boot_seen"
	PrefMuted    = "muted"
)
