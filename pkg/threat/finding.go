package threat

// Kind classifies a finding.
type Kind string

const (
	KindSQLInjection Kind = "sql_injection"
	KindXSS          Kind = "xss"
)

// RootPath locates a finding on a scalar that was scanned on its own.
const RootPath = "root"

// Finding is a single located signature match.
type Finding struct {
	// Path is a dotted/bracketed locator such as "user.profile.bio" or "tags[2]".
	Path string `json:"path"`
	Kind Kind   `json:"kind"`
	// Value is the inspected string, truncated to the scanner's MaxLength.
	Value string `json:"value"`
	// Signature names the heuristic that matched.
	Signature string `json:"signature"`
}

// Filter returns the findings of the given kind.
func Filter(findings []Finding, kind Kind) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}
