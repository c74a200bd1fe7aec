package config

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// StringList is a list of lower-cased names. In YAML it can be written as a
// sequence or as a single comma-separated string.
type StringList []string

// ParseStringList splits a comma-separated list, trimming and lower-casing
// each entry and dropping empty ones.
func ParseStringList(s string) StringList {
	var out StringList
	for _, part := range strings.Split(s, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// UnmarshalYAML accepts either "a, b" or [a, b].
func (l *StringList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*l = ParseStringList(node.Value)
		return nil
	}

	var items []string
	if err := node.Decode(&items); err != nil {
		return err
	}
	*l = ParseStringList(strings.Join(items, ","))
	return nil
}

// Contains reports whether name is in the list, ignoring case.
func (l StringList) Contains(name string) bool {
	name = strings.TrimSpace(name)
	for _, v := range l {
		if strings.EqualFold(v, name) {
			return true
		}
	}
	return false
}

func (l StringList) String() string {
	return strings.Join(l, ", ")
}
