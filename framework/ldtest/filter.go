package ldtest

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter decides whether a test should run.
type Filter interface {
	Match(id TestID) bool
}

// FilterFunc adapts a plain function to Filter.
type FilterFunc func(TestID) bool

func (f FilterFunc) Match(id TestID) bool { return f(id) }

// RegexFilters implements the --run and --skip command-line options. A --run pattern also
// matches the parents of the tests it names, so that those parents get a chance to run them.
type RegexFilters struct {
	MustMatch    TestIDPatternList
	MustNotMatch TestIDPatternList
}

func (r RegexFilters) Match(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(id, true)) &&
		!r.MustNotMatch.AnyMatch(id, false)
}

// IsDefined is true if either list has patterns.
func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

// TestIDPattern is one regex per path segment, written on the command line separated by slashes.
type TestIDPattern []*regexp.Regexp

func (p TestIDPattern) Match(id TestID, includeParents bool) bool {
	n := len(p)
	if n > len(id) {
		if !includeParents {
			return false
		}
		n = len(id)
	}
	for i := 0; i < n; i++ {
		if !p[i].MatchString(id[i]) {
			return false
		}
	}
	return true
}

func (p TestIDPattern) String() string {
	ss := make([]string, 0, len(p))
	for _, c := range p {
		ss = append(ss, c.String())
	}
	return strings.Join(ss, "/")
}

func ParseTestIDPattern(s string) (TestIDPattern, error) {
	parts := strings.Split(s, "/")
	ret := make(TestIDPattern, 0, len(parts))
	for _, part := range parts {
		rx, err := regexp.Compile(part)
		if err != nil {
			return nil, fmt.Errorf("invalid regex %q: %w", part, err)
		}
		ret = append(ret, rx)
	}
	return ret, nil
}

type TestIDPatternList []TestIDPattern

func (l TestIDPatternList) String() string {
	ss := make([]string, 0, len(l))
	for _, p := range l {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set implements flag.Value.
func (l *TestIDPatternList) Set(value string) error {
	p, err := ParseTestIDPattern(value)
	if err != nil {
		return err
	}
	*l = append(*l, p)
	return nil
}

func (l TestIDPatternList) IsDefined() bool {
	return len(l) != 0
}

func (l TestIDPatternList) AnyMatch(id TestID, includeParents bool) bool {
	for _, p := range l {
		if p.Match(id, includeParents) {
			return true
		}
	}
	return false
}

// PrintFilterDescription explains up front which tests will be skipped and why.
func PrintFilterDescription(
	out io.Writer,
	filters RegexFilters,
	allCapabilities []string,
	supportedCapabilities []string,
) {
	if filters.IsDefined() {
		_, _ = fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			_, _ = fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			_, _ = fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		_, _ = fmt.Fprintln(out)
	}

	supported := make(map[string]bool, len(supportedCapabilities))
	for _, c := range supportedCapabilities {
		supported[c] = true
	}
	var missing []string
	for _, c := range allCapabilities {
		if !supported[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		_, _ = fmt.Fprintln(out,
			"Some tests may be skipped because the component service does not support the following capabilities:")
		_, _ = fmt.Fprintf(out, "  %s\n\n", strings.Join(missing, ", "))
	}
}
