package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RosterEntry configures one staff member appearing on the rota.
type RosterEntry struct {
	// Name as it appears on the rota, after stripping non-alphabetic
	// characters ("Dr. Rachel Kerry" -> "DrRachelKerry").
	Name string `yaml:"name"`
	// CalendarName is the calendar that mirrors this member's shifts.
	CalendarName string `yaml:"calendar_name"`
	// ShareWith grants access to the calendar.
	ShareWith []RosterShare `yaml:"share_with"`
}

type RosterShare struct {
	Email string `yaml:"email"`
	Role  string `yaml:"role"`
}

// Roster is the full staff list.
type Roster struct {
	Staff []RosterEntry `yaml:"staff"`
}

// Normalize fills in missing values so partially filled rosters still
// behave: share role defaults to "writer", calendar name to "<Name> Rota".
func (r *Roster) Normalize() {
	for i := range r.Staff {
		entry := &r.Staff[i]
		if entry.CalendarName == "" {
			entry.CalendarName = entry.Name + " Rota"
		}
		for j := range entry.ShareWith {
			if entry.ShareWith[j].Role == "" {
				entry.ShareWith[j].Role = "writer"
			}
		}
	}
}

// Validate reports the first problem with the roster.
func (r *Roster) Validate() error {
	if len(r.Staff) == 0 {
		return fmt.Errorf("roster must list at least one staff member")
	}
	seen := make(map[string]bool, len(r.Staff))
	for _, entry := range r.Staff {
		if entry.Name == "" {
			return fmt.Errorf("roster entry is missing a name")
		}
		if seen[entry.Name] {
			return fmt.Errorf("duplicate roster entry: %s", entry.Name)
		}
		seen[entry.Name] = true
		for _, share := range entry.ShareWith {
			if share.Email == "" {
				return fmt.Errorf("roster entry %s has a share without an email", entry.Name)
			}
		}
	}
	return nil
}

// LoadRoster reads the staff roster from a YAML file.
func LoadRoster(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster file: %w", err)
	}

	var roster Roster
	if err := yaml.Unmarshal(data, &roster); err != nil {
		return nil, fmt.Errorf("parse roster file: %w", err)
	}
	roster.Normalize()

	if err := roster.Validate(); err != nil {
		return nil, err
	}
	return &roster, nil
}
