package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultRoster is used when neither roster.members nor roster.file is set.
var DefaultRoster = []string{
	"Kilian Zedelius",
	"Jan Krueger",
	"Dr. Patrick Gassmann",
	"Anna Hosp",
	"Johannes Müller",
	"Johannes Brenninkmeyer",
	"Ludwig Jakob",
	"Hendrik Wendefeuer",
	"Ilda Karaj",
	"Julian Döttinger",
	"Artem Vorobyev",
	"Florian Kroiss",
	"Tobias Junker",
	"Torben Schmidt",
	"Michael Schreiber",
	"Dominique Vainikka",
}

type rosterFile struct {
	Members []string `yaml:"members"`
}

// LoadRosterFile reads a YAML document of the form `members: [...]`.
func LoadRosterFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc rosterFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse roster %s: %w", path, err)
	}
	members := cleanMembers(doc.Members)
	if len(members) == 0 {
		return nil, fmt.Errorf("roster %s has no members", path)
	}
	return members, nil
}

// ResolveRoster returns the configured submitter names in display order.
// A roster file takes precedence over inline members.
func (c *Config) ResolveRoster() ([]string, error) {
	if path := strings.TrimSpace(c.Roster.File); path != "" {
		return LoadRosterFile(path)
	}
	if members := cleanMembers(c.Roster.Members); len(members) > 0 {
		return members, nil
	}
	out := make([]string, len(DefaultRoster))
	copy(out, DefaultRoster)
	return out, nil
}

func cleanMembers(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
