package lang

import (
	"cmp"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// ErrUnknownLanguage is returned when no profile matches a name or file.
var ErrUnknownLanguage = errors.New("unknown language")

// Registry holds the registered language profiles.
type Registry struct {
	mu          sync.RWMutex
	byName      map[string]Profile
	byExtension map[string]Profile
	aliases     map[string]string // alias -> canonical name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:      make(map[string]Profile),
		byExtension: make(map[string]Profile),
		aliases:     make(map[string]string),
	}
}

// Register adds a profile. A profile with the same name is replaced, and
// its extensions and aliases are claimed by the new one.
func (r *Registry) Register(profile Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(profile.Name())
	r.byName[name] = profile
	for _, ext := range profile.Extensions() {
		r.byExtension[strings.ToLower(ext)] = profile
	}
	for _, alias := range profile.Aliases() {
		r.aliases[strings.ToLower(alias)] = name
	}
}

// Get returns the profile for a name or alias, ignoring case.
func (r *Registry) Get(name string) (Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(name)
	if profile, ok := r.byName[key]; ok {
		return profile, true
	}
	if canonical, ok := r.aliases[key]; ok {
		profile, ok := r.byName[canonical]
		return profile, ok
	}
	return nil, false
}

// Resolve is Get with an error for unknown names.
func (r *Registry) Resolve(name string) (Profile, error) {
	if profile, ok := r.Get(name); ok {
		return profile, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, name)
}

// ForExtension returns the profile registered for a path's extension.
func (r *Registry) ForExtension(path string) (Profile, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.byExtension[ext]
	return profile, ok
}

// Profiles returns all profiles sorted by name.
func (r *Registry) Profiles() []Profile {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Profile, 0, len(r.byName))
	for _, profile := range r.byName {
		result = append(result, profile)
	}
	slices.SortFunc(result, func(a, b Profile) int {
		return cmp.Compare(a.Name(), b.Name())
	})
	return result
}

// Extensions returns every registered extension in sorted order.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byExtension))
	for ext := range r.byExtension {
		result = append(result, ext)
	}
	slices.Sort(result)
	return result
}

// DefaultRegistry is the global registry for built-in languages.
// Languages register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for language registration
var DefaultRegistry = NewRegistry()
