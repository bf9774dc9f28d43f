package parser

import "regexp"

// EditionMatch is a successful lookup against the edition alias table. The
// matched pattern is retained so the title pipeline can excise the raw
// edition text instead of duplicating it inside the title.
type EditionMatch struct {
	Pattern   *regexp.Regexp
	Canonical string
}

// ResolveEdition iterates the configured edition rules in declared order and
// returns the first one whose word-boundary search matches the folder/file
// text, together with the canonical replacement produced by substituting the
// match into the rule's template.
func (p *Parser) ResolveEdition(path string) (EditionMatch, bool) {
	text := searchText(path)
	for _, rule := range p.editions {
		loc := rule.re.FindStringIndex(text)
		if loc == nil {
			continue
		}
		matched := text[loc[0]:loc[1]]
		return EditionMatch{
			Pattern:   rule.re,
			Canonical: rule.re.ReplaceAllString(matched, rule.replace),
		}, true
	}
	return EditionMatch{}, false
}

// Edition returns the canonical edition string, or the empty string when the
// name carries no known edition.
func (p *Parser) Edition(path string) string {
	if match, ok := p.ResolveEdition(path); ok {
		return match.Canonical
	}
	return ""
}
