package labels

import (
	"fmt"
	"regexp"
	"strings"
)

// RuleSet is the compiled form of a labels Document. It is immutable once
// compiled; configuration changes produce a fresh RuleSet via Compile.
type RuleSet struct {
	curated  map[string]map[string]bool // list name -> lower-cased card names
	positive map[string][]*regexp.Regexp
	negative map[string][]*regexp.Regexp
}

// Compile turns a labels document into ready-to-evaluate matchers. Every
// pattern is compiled case-insensitively. A syntactically invalid pattern is
// a configuration error and fails compilation outright.
func Compile(doc *Document) (*RuleSet, error) {
	rs := &RuleSet{
		curated:  make(map[string]map[string]bool, len(doc.CuratedLists)),
		positive: make(map[string][]*regexp.Regexp, len(doc.RegexRules)),
		negative: make(map[string][]*regexp.Regexp, len(doc.RegexNegative)),
	}

	for listName, names := range doc.CuratedLists {
		set := make(map[string]bool, len(names))
		for _, n := range names {
			set[strings.ToLower(strings.TrimSpace(n))] = true
		}
		rs.curated[listName] = set
	}

	var err error
	if rs.positive, err = compilePatterns(doc.RegexRules); err != nil {
		return nil, err
	}
	if rs.negative, err = compilePatterns(doc.RegexNegative); err != nil {
		return nil, err
	}
	return rs, nil
}

func compilePatterns(rules map[string][]string) (map[string][]*regexp.Regexp, error) {
	compiled := make(map[string][]*regexp.Regexp, len(rules))
	for label, patterns := range rules {
		matchers := make([]*regexp.Regexp, 0, len(patterns))
		for _, p := range patterns {
			re, err := regexp.Compile("(?i)" + p)
			if err != nil {
				return nil, fmt.Errorf("compile pattern %q for label %q: %w", p, label, err)
			}
			matchers = append(matchers, re)
		}
		compiled[label] = matchers
	}
	return compiled, nil
}

// CuratedListsFor returns the names of the curated lists containing the card,
// matched case-insensitively.
func (rs *RuleSet) CuratedListsFor(cardName string) []string {
	key := strings.ToLower(strings.TrimSpace(cardName))
	var lists []string
	for listName, names := range rs.curated {
		if names[key] {
			lists = append(lists, listName)
		}
	}
	return lists
}

// matchesPositive reports whether any positive pattern for the label matches.
func (rs *RuleSet) matchesPositive(label, oracle string) bool {
	for _, re := range rs.positive[label] {
		if re.MatchString(oracle) {
			return true
		}
	}
	return false
}

// matchesNegative reports whether any negative pattern for the label matches.
func (rs *RuleSet) matchesNegative(label, oracle string) bool {
	for _, re := range rs.negative[label] {
		if re.MatchString(oracle) {
			return true
		}
	}
	return false
}
