package search_test

import (
	"math/rand/v2"
	"strings"
	"testing"
	"unsafe"

	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/UnendingLoop/minigrep/internal/search"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		corpus  string
		wantRes []string
	}{
		{
			name:    "Positive - case sensitive skips capitalized line",
			query:   "duct",
			corpus:  "Rust:\nSafe, fast, productive.\nPick three.\nDuct one.",
			wantRes: []string{"Safe, fast, productive."},
		},
		{
			name:    "Positive - empty query matches every line",
			query:   "",
			corpus:  "a\nb\nc",
			wantRes: []string{"a", "b", "c"},
		},
		{
			name:    "Positive - nothing found",
			query:   "zzz",
			corpus:  "Rust:\nSafe, fast, productive.\nPick three.",
			wantRes: []string{},
		},
		{
			name:    "Positive - empty corpus",
			query:   "a",
			corpus:  "",
			wantRes: []string{},
		},
		{
			name:    "Positive - empty corpus and empty query",
			query:   "",
			corpus:  "",
			wantRes: []string{},
		},
		{
			name:    "Positive - trailing newline gives no extra line",
			query:   "",
			corpus:  "a\nb\n",
			wantRes: []string{"a", "b"},
		},
		{
			name:    "Positive - CRLF terminators are stripped",
			query:   "b",
			corpus:  "ab\r\nbc\r\nd\r\n",
			wantRes: []string{"ab", "bc"},
		},
		{
			name:    "Positive - mixed LF and CRLF",
			query:   "",
			corpus:  "one\r\ntwo\nthree\r\nfour",
			wantRes: []string{"one", "two", "three", "four"},
		},
		{
			name:    "Positive - bare CR stays in the line",
			query:   "\r",
			corpus:  "a\rb\nc\r",
			wantRes: []string{"a\rb", "c\r"},
		},
		{
			name:    "Positive - CR before LF is not matchable",
			query:   "\r",
			corpus:  "a\r\nb",
			wantRes: []string{},
		},
		{
			name:    "Positive - blank lines kept",
			query:   "",
			corpus:  "\n\nx\n",
			wantRes: []string{"", "", "x"},
		},
		{
			name:    "Positive - duplicates kept once per occurrence",
			query:   "go",
			corpus:  "go\nrust\ngo\ngopher",
			wantRes: []string{"go", "go", "gopher"},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			res := search.Search(tt.query, tt.corpus)
			require.Equal(t, tt.wantRes, res)
		})
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	cases := []struct {
		name    string
		query   string
		corpus  string
		wantRes []string
	}{
		{
			name:    "Positive - mixed case query",
			query:   "rUsT",
			corpus:  "Rust:\nSafe, fast, productive.\nPick three.\nRust all the way.",
			wantRes: []string{"Rust:", "Rust all the way."},
		},
		{
			name:    "Positive - original casing returned",
			query:   "DUCT",
			corpus:  "Rust:\nSafe, fast, productive.\nPick three.\nDuct one.",
			wantRes: []string{"Safe, fast, productive.", "Duct one."},
		},
		{
			name:    "Positive - non-ASCII lowercase folding",
			query:   "ПРИВЕТ",
			corpus:  "привет мир\nhello\nПривет",
			wantRes: []string{"привет мир", "Привет"},
		},
		{
			name:    "Positive - empty corpus",
			query:   "x",
			corpus:  "",
			wantRes: []string{},
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			res := search.SearchCaseInsensitive(tt.query, tt.corpus)
			require.Equal(t, tt.wantRes, res)
		})
	}
}

func TestFind(t *testing.T) {
	corpus := "Rust:\nSafe, fast, productive.\nPick three.\nTrust me."

	require.Equal(t, search.Search("rust", corpus), search.Find(model.CaseSensitive, "rust", corpus))
	require.Equal(t, search.SearchCaseInsensitive("rust", corpus), search.Find(model.CaseInsensitive, "rust", corpus))
	require.Equal(t, []string{"Trust me."}, search.Find(model.CaseSensitive, "rust", corpus))
	require.Equal(t, []string{"Rust:", "Trust me."}, search.Find(model.CaseInsensitive, "rust", corpus))
}

func TestLines(t *testing.T) {
	cases := []struct {
		name    string
		corpus  string
		wantRes []string
	}{
		{name: "empty", corpus: "", wantRes: []string{}},
		{name: "single line without terminator", corpus: "abc", wantRes: []string{"abc"}},
		{name: "only terminator", corpus: "\n", wantRes: []string{""}},
		{name: "only CRLF", corpus: "\r\n", wantRes: []string{""}},
		{name: "trailing terminator", corpus: "a\nb\n", wantRes: []string{"a", "b"}},
		{name: "two trailing terminators", corpus: "a\n\n", wantRes: []string{"a", ""}},
		{name: "CRLF", corpus: "a\r\nb\r\n", wantRes: []string{"a", "b"}},
		{name: "final line keeps bare CR", corpus: "a\nb\r", wantRes: []string{"a", "b\r"}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.wantRes, search.Lines(tt.corpus))
		})
	}
}

func TestLocate(t *testing.T) {
	corpus := "Rust:\r\nSafe, fast, productive.\nPick three.\nRust all the way.\n"

	spans := search.Locate(model.CaseInsensitive, "rust", corpus)
	require.Equal(t, []search.Span{
		{Line: 1, Start: 0, End: 5},
		{Line: 4, Start: 43, End: 60},
	}, spans)
	require.Equal(t, "Rust:", spans[0].Text(corpus))
	require.Equal(t, "Rust all the way.", spans[1].Text(corpus))

	require.Empty(t, search.Locate(model.CaseSensitive, "rust", corpus))
}

func TestMatches(t *testing.T) {
	corpus := "Rust:\nSafe, fast, productive.\nPick three.\nRust all the way."

	require.Equal(t, []model.Match{
		{Line: 1, Text: "Rust:"},
		{Line: 4, Text: "Rust all the way."},
	}, search.Matches(model.CaseInsensitive, "rUsT", corpus))
	require.Equal(t, []model.Match{}, search.Matches(model.CaseSensitive, "zzz", corpus))
}

func TestSearchReturnsViewsIntoCorpus(t *testing.T) {
	corpus := "alpha\nbeta\ngamma\n"
	start := uintptr(unsafe.Pointer(unsafe.StringData(corpus)))
	end := start + uintptr(len(corpus))

	for _, line := range search.Search("a", corpus) {
		p := uintptr(unsafe.Pointer(unsafe.StringData(line)))
		require.True(t, p >= start && p < end, "line %q is not a view into the corpus", line)
	}
}

// randomized checks against a straightforward reference implementation
func TestSearchProperties(t *testing.T) {
	rnd := rand.New(rand.NewPCG(42, 2024))

	for i := 0; i < 500; i++ {
		corpus := randomCorpus(rnd)
		query := randomText(rnd, rnd.IntN(3))
		lines := search.Lines(corpus)

		want := make([]string, 0)
		wantFold := make([]string, 0)
		for _, line := range lines {
			if strings.Contains(line, query) {
				want = append(want, line)
			}
			if strings.Contains(strings.ToLower(line), strings.ToLower(query)) {
				wantFold = append(wantFold, line)
			}
		}

		require.Equal(t, want, search.Search(query, corpus), "corpus %q query %q", corpus, query)
		require.Equal(t, wantFold, search.SearchCaseInsensitive(query, corpus), "corpus %q query %q", corpus, query)

		// на полностью строчных входах оба режима совпадают
		lower, lowerQuery := strings.ToLower(corpus), strings.ToLower(query)
		require.Equal(t, search.Search(lowerQuery, lower), search.SearchCaseInsensitive(lowerQuery, lower))

		// пустой запрос возвращает все строки
		require.Equal(t, lines, search.Search("", corpus))

		// Locate и Find согласованы
		spans := search.Locate(model.CaseSensitive, query, corpus)
		require.Len(t, spans, len(want))
		for j, sp := range spans {
			require.Equal(t, want[j], sp.Text(corpus))
		}
	}
}

func randomCorpus(rnd *rand.Rand) string {
	var sb strings.Builder
	n := rnd.IntN(6)
	for i := 0; i < n; i++ {
		sb.WriteString(randomText(rnd, rnd.IntN(6)))
		switch rnd.IntN(3) {
		case 0:
			sb.WriteString("\n")
		case 1:
			sb.WriteString("\r\n")
		default:
			if i < n-1 {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

func randomText(rnd *rand.Rand, n int) string {
	const alphabet = "abAB \r"
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[rnd.IntN(len(alphabet))]
	}
	return string(b)
}
