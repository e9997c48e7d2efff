// Package catalog holds the static onboarding data: wizard steps, the skill
// categories offered for selection, the alias table used to detect a skill in
// free-text goals, and the daily time budgets.
package catalog

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type Step struct {
	ID       string `yaml:"id" json:"id"`
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
}

type Category struct {
	Name   string   `yaml:"name" json:"name"`
	Emoji  string   `yaml:"emoji" json:"emoji"`
	Skills []string `yaml:"skills" json:"skills"`
}

type Alias struct {
	Alias string `yaml:"alias" json:"alias"`
	Skill string `yaml:"skill" json:"skill"`
}

type TimeOption struct {
	Value       int    `yaml:"value" json:"value"`
	Label       string `yaml:"label" json:"label"`
	Description string `yaml:"description" json:"description"`
}

type Catalog struct {
	Steps       []Step       `yaml:"steps" json:"steps"`
	Categories  []Category   `yaml:"categories" json:"categories"`
	Aliases     []Alias      `yaml:"aliases" json:"-"`
	TimeOptions []TimeOption `yaml:"time_options" json:"timeOptions"`

	aliasPatterns []*regexp.Regexp
	skillPatterns []*regexp.Regexp
	skillNames    []string
}

// Default returns the embedded catalog. It panics if the embedded YAML is
// malformed, which can only happen at build time.
func Default() *Catalog {
	c, err := Parse(catalogYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog.yaml: %v", err))
	}
	return c
}

// Parse decodes a catalog and precompiles its matchers.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	err := yaml.Unmarshal(data, &c)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	for _, a := range c.Aliases {
		c.aliasPatterns = append(c.aliasPatterns, wordPattern(a.Alias))
	}
	for _, cat := range c.Categories {
		for _, s := range cat.Skills {
			c.skillNames = append(c.skillNames, s)
			c.skillPatterns = append(c.skillPatterns, wordPattern(s))
		}
	}

	return &c, nil
}

// wordPattern matches term case-insensitively when it is not glued to other
// letters or digits, so "ai" does not match "again".
func wordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}])` + regexp.QuoteMeta(strings.TrimSpace(term)) + `($|[^\p{L}\p{N}])`)
}

// DetectSkill scans free text for a known skill. Aliases are checked first in
// table order; a direct skill-name mention found afterwards overrides the alias.
func (c *Catalog) DetectSkill(text string) (string, bool) {
	detected := ""

	for i, p := range c.aliasPatterns {
		if p.MatchString(text) {
			detected = c.Aliases[i].Skill
			break
		}
	}

	for i, p := range c.skillPatterns {
		if p.MatchString(text) {
			detected = c.skillNames[i]
			break
		}
	}

	return detected, detected != ""
}
