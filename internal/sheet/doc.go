package sheet

import (
	"encoding/json"
	"fmt"
)

// ruleDoc is one entry of a property sheet document: a selector (or
// comma-separated list of selectors) and the properties to apply to any
// node it matches.
type ruleDoc struct {
	Selector   string         `json:"selector" yaml:"selector"`
	Properties propertiesDoc  `json:"properties" yaml:"properties"`
}

type sheetDoc []ruleDoc

// propertiesDoc mirrors the field names of the original property sheet
// JSON format (see original_source/highlight/src/lib.rs's PropertiesJSON),
// adapted to Go's encoding/json and yaml.v3 tag conventions. Both
// injection-language and injection-content accept either a single value
// or a list, broadcasting a single injection-includes-children value
// across every entry the same way the original implementation does.
type propertiesDoc struct {
	Highlight         string       `json:"highlight,omitempty" yaml:"highlight,omitempty"`
	HighlightNonlocal string       `json:"highlight-nonlocal,omitempty" yaml:"highlight-nonlocal,omitempty"`
	InjectionLanguage stringOrList `json:"injection-language,omitempty" yaml:"injection-language,omitempty"`
	InjectionContent  stringOrList `json:"injection-content,omitempty" yaml:"injection-content,omitempty"`
	InjectionIncludesChildren boolOrList `json:"injection-includes-children,omitempty" yaml:"injection-includes-children,omitempty"`
	LocalScope        bool         `json:"local-scope,omitempty" yaml:"local-scope,omitempty"`
	LocalScopeInherit bool         `json:"local-scope-inherit,omitempty" yaml:"local-scope-inherit,omitempty"`
	LocalDefinition   bool         `json:"local-definition,omitempty" yaml:"local-definition,omitempty"`
	LocalReference    bool         `json:"local-reference,omitempty" yaml:"local-reference,omitempty"`
}

// stringOrList decodes either a bare string or a list of strings into a
// normalised []string, so property sheet authors can write
// `injection-language: html` instead of `injection-language: [html]` for
// the common single-language case.
type stringOrList []string

func (s *stringOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = []string{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected a string or list of strings: %w", err)
	}
	*s = list
	return nil
}

func (s *stringOrList) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*s = []string{single}
		return nil
	}
	var list []string
	if err := unmarshal(&list); err != nil {
		return fmt.Errorf("expected a string or list of strings: %w", err)
	}
	*s = list
	return nil
}

// boolOrList mirrors stringOrList for injection-includes-children, which
// may be a single bool broadcast across every injection-language entry,
// or one bool per entry.
type boolOrList []bool

func (b *boolOrList) UnmarshalJSON(data []byte) error {
	var single bool
	if err := json.Unmarshal(data, &single); err == nil {
		*b = []bool{single}
		return nil
	}
	var list []bool
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected a bool or list of bools: %w", err)
	}
	*b = list
	return nil
}

func (b *boolOrList) UnmarshalYAML(unmarshal func(any) error) error {
	var single bool
	if err := unmarshal(&single); err == nil {
		*b = []bool{single}
		return nil
	}
	var list []bool
	if err := unmarshal(&list); err != nil {
		return fmt.Errorf("expected a bool or list of bools: %w", err)
	}
	*b = list
	return nil
}
