// Package pattern holds the compiled injection signature tables shared by
// the sanitizer detectors and the threat scanner. Tables are built once at
// package initialization and are read-only afterwards.
package pattern

import "regexp"

// Rule is a named, compiled signature.
type Rule struct {
	Name string
	re   *regexp.Regexp
}

// Match reports whether s contains the signature.
func (r Rule) Match(s string) bool {
	return r.re.MatchString(s)
}

func rule(name, expr string) Rule {
	return Rule{Name: name, re: regexp.MustCompile(expr)}
}

var sqlInjection = []Rule{
	rule("sql.union-select", `(?i)\bunion\b(\s+all)?\s+select\b`),
	rule("sql.select", `(?i)\bselect\b\s+[\w*@(]`),
	rule("sql.insert-into", `(?i)\binsert\s+into\b`),
	rule("sql.drop", `(?i)\bdrop\s+(table|database|schema)\b`),
	rule("sql.delete-from", `(?i)\bdelete\s+from\b`),
	rule("sql.truncate", `(?i)\btruncate\s+table\b`),
	rule("sql.stored-procedure", `(?i)\bexec(ute)?\s*\(?\s*(xp_|sp_)`),
	rule("sql.quoted-tautology", `(?i)['"]\s*(or|and)\s+['"]?\w+['"]?\s*(=|like)\s*['"]?\w+`),
	rule("sql.numeric-tautology", `(?i)\b(or|and)\s+(\d+)\s*=\s*(\d+)\b`),
	rule("sql.quote-comment", `['"]\s*(--|#|/\*)`),
	rule("sql.trailing-comment", `\w\s*--\s*$`),
	rule("sql.block-comment", `/\*[\s\S]*?\*/`),
	rule("sql.stacked-query", `(?i);\s*(select|insert|update|delete|drop|alter|create|truncate|exec|union|shutdown)\b`),
}

var xss = []Rule{
	rule("xss.script-tag", `(?i)<\s*script\b`),
	rule("xss.javascript-url", `(?i)javascript\s*:`),
	rule("xss.vbscript-url", `(?i)vbscript\s*:`),
	rule("xss.event-handler", `(?i)\bon(abort|blur|change|click|dblclick|error|focus|focusin|focusout|input|invalid|keydown|keypress|keyup|load|mousedown|mouseenter|mouseleave|mousemove|mouseout|mouseover|mouseup|submit|reset|resize|scroll|select|unload|toggle|animationstart|animationend|pointerdown|pointerup|pointerover|touchstart|touchend|dragstart|drop|paste|copy|cut|wheel|contextmenu|begin|end|beforeunload|hashchange|message|pageshow)\s*=`),
	rule("xss.embedding-tag", `(?i)<\s*(iframe|object|embed)\b`),
}

// SQLInjection returns the first SQL injection rule matching s.
func SQLInjection(s string) (Rule, bool) {
	return first(sqlInjection, s)
}

// XSS returns the first script injection rule matching s.
func XSS(s string) (Rule, bool) {
	return first(xss, s)
}

func first(rules []Rule, s string) (Rule, bool) {
	if s == "" {
		return Rule{}, false
	}
	for _, r := range rules {
		if r.Match(s) {
			return r, true
		}
	}
	return Rule{}, false
}
