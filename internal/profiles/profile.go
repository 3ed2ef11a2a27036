// Package profiles loads document-family profiles: the per-vendor
// configuration of section markers, table patterns, summary keywords and
// header synonym overrides. Keeping these as data keeps the locators free of
// document-specific knowledge.
package profiles

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/comexdesk/invoice-extract/constants"
)

// Section configures one named document section expected to hold one table.
type Section struct {
	Name          string `json:"name"`
	Covered       bool   `json:"covered"`
	StartPattern  string `json:"start_pattern"`
	EndPattern    string `json:"end_pattern,omitempty"`
	HeaderPattern string `json:"header_pattern"`
	FooterPattern string `json:"footer_pattern,omitempty"`
}

// Summary configures the secondary summary region carrying declared totals.
// The amount/weight/count patterns must each have one capture group holding
// the raw numeric text.
type Summary struct {
	StartPattern  string `json:"start_pattern"`
	EndPattern    string `json:"end_pattern,omitempty"`
	AmountPattern string `json:"amount_pattern,omitempty"`
	WeightPattern string `json:"weight_pattern,omitempty"`
	CountPattern  string `json:"count_pattern,omitempty"`
}

// Profile is the raw JSON form of a document-family profile.
type Profile struct {
	Name            string              `json:"name"`
	NumberStyle     string              `json:"number_style,omitempty"`
	Sections        []Section           `json:"sections"`
	Summary         *Summary            `json:"summary,omitempty"`
	SummaryKeywords []string            `json:"summary_keywords,omitempty"`
	Synonyms        map[string][]string `json:"synonyms,omitempty"`
}

// CompiledSection is a section profile with its patterns compiled.
type CompiledSection struct {
	Name    string
	Covered bool
	Start   *regexp.Regexp
	End     *regexp.Regexp
	Header  *regexp.Regexp
	Footer  *regexp.Regexp
}

// CompiledSummary is a summary profile with its patterns compiled.
type CompiledSummary struct {
	Start  *regexp.Regexp
	End    *regexp.Regexp
	Amount *regexp.Regexp
	Weight *regexp.Regexp
	Count  *regexp.Regexp
}

// Compiled is a validated, regex-compiled profile ready for the pipeline.
type Compiled struct {
	Name            string
	NumberStyle     constants.NumberStyle
	Sections        []CompiledSection
	Summary         *CompiledSummary
	SummaryKeywords []string
	Synonyms        map[constants.Field][]string
}

// Load reads, schema-validates and compiles a profile file.
func Load(path string, defaultStyle constants.NumberStyle) (*Compiled, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	return Parse(raw, defaultStyle)
}

// Parse validates raw profile JSON against the schema and compiles it.
func Parse(raw []byte, defaultStyle constants.NumberStyle) (*Compiled, error) {
	if err := ValidateJSONAgainstSchema(BuildProfileSchema(), raw); err != nil {
		return nil, err
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse profile: %w", err)
	}
	return Compile(&p, defaultStyle)
}

// Compile turns a raw profile into its compiled form, merging synonym
// overrides over the built-in table and defaulting the summary keyword set.
func Compile(p *Profile, defaultStyle constants.NumberStyle) (*Compiled, error) {
	style := defaultStyle
	if p.NumberStyle != "" {
		parsed, ok := constants.ParseNumberStyle(p.NumberStyle)
		if !ok {
			return nil, fmt.Errorf("profile %s: unknown number style %q", p.Name, p.NumberStyle)
		}
		style = parsed
	}
	if style == "" {
		style = constants.CommaDecimal
	}

	out := &Compiled{
		Name:        p.Name,
		NumberStyle: style,
		Synonyms:    constants.DefaultSynonyms(),
	}

	for _, s := range p.Sections {
		cs := CompiledSection{Name: s.Name, Covered: s.Covered}
		var err error
		if cs.Start, err = compilePattern(s.StartPattern); err != nil {
			return nil, fmt.Errorf("section %s start: %w", s.Name, err)
		}
		if cs.End, err = compileOptional(s.EndPattern); err != nil {
			return nil, fmt.Errorf("section %s end: %w", s.Name, err)
		}
		if cs.Header, err = compilePattern(s.HeaderPattern); err != nil {
			return nil, fmt.Errorf("section %s header: %w", s.Name, err)
		}
		if cs.Footer, err = compileOptional(s.FooterPattern); err != nil {
			return nil, fmt.Errorf("section %s footer: %w", s.Name, err)
		}
		out.Sections = append(out.Sections, cs)
	}

	if p.Summary != nil {
		sm := &CompiledSummary{}
		var err error
		if sm.Start, err = compilePattern(p.Summary.StartPattern); err != nil {
			return nil, fmt.Errorf("summary start: %w", err)
		}
		if sm.End, err = compileOptional(p.Summary.EndPattern); err != nil {
			return nil, fmt.Errorf("summary end: %w", err)
		}
		if sm.Amount, err = compileOptional(p.Summary.AmountPattern); err != nil {
			return nil, fmt.Errorf("summary amount: %w", err)
		}
		if sm.Weight, err = compileOptional(p.Summary.WeightPattern); err != nil {
			return nil, fmt.Errorf("summary weight: %w", err)
		}
		if sm.Count, err = compileOptional(p.Summary.CountPattern); err != nil {
			return nil, fmt.Errorf("summary count: %w", err)
		}
		out.Summary = sm
	}

	out.SummaryKeywords = p.SummaryKeywords
	if len(out.SummaryKeywords) == 0 {
		out.SummaryKeywords = constants.DefaultSummaryKeywords()
	}

	for key, spellings := range p.Synonyms {
		field, ok := constants.ParseField(key)
		if !ok {
			return nil, fmt.Errorf("profile %s: unknown field %q in synonyms", p.Name, key)
		}
		out.Synonyms[field] = append(out.Synonyms[field], spellings...)
	}

	return out, nil
}

// compilePattern compiles a marker pattern case-insensitively. All textual
// matching against reconstructed lines is case-insensitive by contract.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, fmt.Errorf("pattern is required")
	}
	if !strings.HasPrefix(pattern, "(?i)") {
		pattern = "(?i)" + pattern
	}
	return regexp.Compile(pattern)
}

func compileOptional(pattern string) (*regexp.Regexp, error) {
	if strings.TrimSpace(pattern) == "" {
		return nil, nil
	}
	return compilePattern(pattern)
}
