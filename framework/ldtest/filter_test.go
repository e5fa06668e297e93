package ldtest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type filterCase struct {
	run         []string
	skip        []string
	testID      TestID
	shouldMatch bool
}

func TestRegexFilters(t *testing.T) {
	allParams := []filterCase{
		// matches everything by default
		{nil, nil, TestID(nil), true},
		{nil, nil, TestID{"a"}, true},
		{nil, nil, TestID{"a", "b"}, true},

		// --run with single component
		{[]string{"a"}, nil, TestID(nil), true},
		{[]string{"a"}, nil, TestID{"a"}, true},
		{[]string{"a"}, nil, TestID{"b"}, false},
		{[]string{"a"}, nil, TestID{"xax"}, true},
		{[]string{"a"}, nil, TestID{"a", "b"}, true},

		// --run with multiple components
		{[]string{"a/b"}, nil, TestID(nil), true},
		{[]string{"a/b"}, nil, TestID{"a"}, true},
		{[]string{"a/b"}, nil, TestID{"b"}, false},
		{[]string{"a/b"}, nil, TestID{"a", "b"}, true},
		{[]string{"a/b"}, nil, TestID{"xax", "xbx"}, true},

		// --run with multiple patterns
		{[]string{"a", "b"}, nil, TestID(nil), true},
		{[]string{"a", "b"}, nil, TestID{"a"}, true},
		{[]string{"a", "b"}, nil, TestID{"b"}, true},
		{[]string{"a", "b"}, nil, TestID{"c"}, false},
		{[]string{"a", "b"}, nil, TestID{"a", "c"}, true},
		{[]string{"a", "b"}, nil, TestID{"b", "c"}, true},
		{[]string{"a", "b"}, nil, TestID{"xax", "xbx"}, true},

		// --skip with single component
		{nil, []string{"a"}, TestID(nil), true},
		{nil, []string{"a"}, TestID{"a"}, false},
		{nil, []string{"a"}, TestID{"b"}, true},
		{nil, []string{"a"}, TestID{"xax"}, false},
		{nil, []string{"a"}, TestID{"a", "b"}, false},

		// --skip with multiple components
		{nil, []string{"a/b"}, TestID(nil), true},
		{nil, []string{"a/b"}, TestID{"a"}, true},
		{nil, []string{"a/b"}, TestID{"b"}, true},
		{nil, []string{"a/b"}, TestID{"a", "b"}, false},
		{nil, []string{"a/b"}, TestID{"a", "b", "c"}, false},
		{nil, []string{"a/b"}, TestID{"a", "c"}, true},
		{nil, []string{"a/b"}, TestID{"xax", "xbx"}, false},

		// --skip with multiple patterns
		{nil, []string{"a", "b"}, TestID(nil), true},
		{nil, []string{"a", "b"}, TestID{"a"}, false},
		{nil, []string{"a", "b"}, TestID{"b"}, false},
		{nil, []string{"a", "b"}, TestID{"c"}, true},
		{nil, []string{"a", "b"}, TestID{"a", "c"}, false},
		{nil, []string{"a", "b"}, TestID{"b", "c"}, false},
		{nil, []string{"a", "b"}, TestID{"xax", "c"}, false},
		{nil, []string{"a", "b"}, TestID{"c", "a"}, true},

		// --skip overrides --run
		{[]string{"y"}, []string{"n"}, TestID{"y"}, true},
		{[]string{"y"}, []string{"n"}, TestID{"yn"}, false},
	}
	for _, params := range allParams {
		var r RegexFilters
		for _, s := range params.run {
			require.NoError(t, r.MustMatch.Set(s))
		}
		for _, s := range params.skip {
			require.NoError(t, r.MustNotMatch.Set(s))
		}
		t.Run(fmt.Sprintf("run=%s, skip=%s, id=%s", r.MustMatch, r.MustNotMatch, params.testID), func(t *testing.T) {
			assert.Equal(t, params.shouldMatch, r.Match(params.testID))
		})
	}
}

func TestParseTestIDPatternRejectsBadRegex(t *testing.T) {
	_, err := ParseTestIDPattern("single/[")
	assert.Error(t, err)
}

func TestPrintFilterDescription(t *testing.T) {
	var r RegexFilters
	require.NoError(t, r.MustMatch.Set("single select"))
	require.NoError(t, r.MustNotMatch.Set("multi/remote"))

	var buf bytes.Buffer
	PrintFilterDescription(&buf, r, []string{"single-select", "multi-select", "event-stream"},
		[]string{"single-select"})
	out := buf.String()
	assert.Contains(t, out, `skip any not matching "single select"`)
	assert.Contains(t, out, `skip any matching "multi/remote"`)
	assert.Contains(t, out, "multi-select, event-stream")
}

func TestPrintFilterDescriptionWithNothingToSay(t *testing.T) {
	var buf bytes.Buffer
	PrintFilterDescription(&buf, RegexFilters{}, []string{"single-select"}, []string{"single-select"})
	assert.Empty(t, buf.String())
}
