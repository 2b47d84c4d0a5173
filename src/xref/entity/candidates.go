package entity

// CandidateSet is an ordered, deduplicated set of repositories that may reference a symbol.
type CandidateSet struct {
	repos []string
}

// NewCandidateSet deduplicates repos in order of first appearance, drops the defining repository, and keeps at most limit entries.
// A limit of zero or less keeps nothing.
func NewCandidateSet(repos []string, definingRepo string, limit int) CandidateSet {
	seen := make(map[string]struct{}, len(repos))
	result := make([]string, 0, min(len(repos), max(limit, 0)))
	for _, repo := range repos {
		if len(result) >= limit {
			break
		}
		if repo == "" || repo == definingRepo {
			continue
		}
		if _, ok := seen[repo]; ok {
			continue
		}
		seen[repo] = struct{}{}
		result = append(result, repo)
	}
	return CandidateSet{repos: result}
}

// Repositories returns the members in insertion order.
func (c CandidateSet) Repositories() []string {
	out := make([]string, len(c.repos))
	copy(out, c.repos)
	return out
}

// Len returns the number of members.
func (c CandidateSet) Len() int {
	return len(c.repos)
}

// Contains reports whether repo is a member.
func (c CandidateSet) Contains(repo string) bool {
	for _, r := range c.repos {
		if r == repo {
			return true
		}
	}
	return false
}
