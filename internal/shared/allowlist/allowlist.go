package allowlist

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Profile is the identity attached to an authorized email: the display name
// and avatar shown on the dashboard, and the role used for route
// authorization. Role defaults to "member".
type Profile struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	Role   string `json:"role"`
}

// AllowList maps authorized emails to their profiles. It is injected at
// startup rather than compiled in, so deployments and tests can swap the
// roster without a rebuild.
type AllowList struct {
	profiles map[string]Profile
}

func New(profiles map[string]Profile) *AllowList {
	normalized := make(map[string]Profile, len(profiles))
	for email, p := range profiles {
		if p.Role == "" {
			p.Role = "member"
		}
		normalized[strings.ToLower(strings.TrimSpace(email))] = p
	}
	return &AllowList{profiles: normalized}
}

// Load reads the roster from the ALLOWLIST_JSON env var, or from the file
// named by ALLOWLIST_PATH when the env var is empty.
func Load() (*AllowList, error) {
	raw := os.Getenv("ALLOWLIST_JSON")
	if raw == "" {
		path := os.Getenv("ALLOWLIST_PATH")
		if path == "" {
			return nil, fmt.Errorf("allowlist: ALLOWLIST_JSON or ALLOWLIST_PATH is required")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("allowlist: read %s: %w", path, err)
		}
		raw = string(data)
	}

	var profiles map[string]Profile
	if err := json.Unmarshal([]byte(raw), &profiles); err != nil {
		return nil, fmt.Errorf("allowlist: decode: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("allowlist: roster is empty")
	}

	return New(profiles), nil
}

// Lookup returns the profile for an email and whether the email is
// authorized. Unauthorized emails must be rejected before any domain code
// runs.
func (a *AllowList) Lookup(email string) (Profile, bool) {
	p, ok := a.profiles[strings.ToLower(strings.TrimSpace(email))]
	return p, ok
}

func (a *AllowList) Size() int {
	return len(a.profiles)
}
