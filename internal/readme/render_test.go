package readme

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/o1x3/profile-stats/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testProfile() *domain.Profile {
	merged := time.Date(2024, 5, 14, 8, 0, 0, 0, time.UTC)
	return &domain.Profile{
		User: "octo",
		Languages: []domain.Language{
			{Name: "Go", Share: 0.5},
			{Name: "Python", Share: 0.25},
			{Name: "Shell", Share: 0.24},
			{Name: "Makefile", Share: 0.005},
		},
		Contributions: []domain.Contribution{
			{Repo: "up/a", Number: 12, Title: "Fix a | b", URL: "https://github.com/up/a/pull/12", MergedAt: &merged, Stars: 1500},
			{Repo: "up/b", Number: 3, Title: "Docs", URL: "https://github.com/up/b/pull/3"},
		},
	}
}

func TestRender(t *testing.T) {
	testCases := []struct {
		name    string
		profile *domain.Profile
		style   Style
		want    string
	}{
		{
			name:    "list style",
			profile: testProfile(),
			style:   StyleList,
			want: "**Go 50%** · **Python 25%** · **Shell 24%**\n" +
				"\n" +
				"- [up/a#12](https://github.com/up/a/pull/12) — Fix a | b · May 2024\n" +
				"- [up/b#3](https://github.com/up/b/pull/3) — Docs · —",
		},
		{
			name:    "table style",
			profile: testProfile(),
			style:   StyleTable,
			want: "```text\n" +
				"Go     ██████████░░░░░░░░░░    50%\n" +
				"Python █████░░░░░░░░░░░░░░░    25%\n" +
				"Shell  █████░░░░░░░░░░░░░░░    24%\n" +
				"```\n" +
				"\n" +
				"| Repository | Pull request | Merged | ★ |\n" +
				"|---|---|---|---:|\n" +
				"| [up/a](https://github.com/up/a) | [#12 Fix a \\| b](https://github.com/up/a/pull/12) | May 2024 | 1500 |\n" +
				"| [up/b](https://github.com/up/b) | [#3 Docs](https://github.com/up/b/pull/3) | — | 0 |",
		},
		{
			name:    "no data",
			profile: &domain.Profile{User: "octo"},
			style:   StyleList,
			want:    "*No external contributions yet.*",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Render(tc.profile, tc.style)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender_CapsLanguageTags(t *testing.T) {
	p := &domain.Profile{}
	for _, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		p.Languages = append(p.Languages, domain.Language{Name: name, Share: 0.1})
	}
	got := Render(p, StyleList)
	assert.Contains(t, got, "**F 10%**")
	assert.NotContains(t, got, "**G")
}

func TestRender_EscapesCommentsInTitles(t *testing.T) {
	merged := time.Date(2024, 5, 14, 8, 0, 0, 0, time.UTC)
	p := &domain.Profile{Contributions: []domain.Contribution{
		{Repo: "up/a", Number: 7, Title: "Document <!-- OPEN_SOURCE_END --> marker", URL: "https://github.com/up/a/pull/7", MergedAt: &merged},
	}}

	for _, style := range []Style{StyleList, StyleTable} {
		t.Run(string(style), func(t *testing.T) {
			got := Render(p, style)
			assert.NotContains(t, got, "<!--")
			assert.Contains(t, got, "Document &lt;!-- OPEN_SOURCE_END --> marker")

			start, end := Marker(DefaultSection)
			assert.NoError(t, Validate(start+"\n"+got+"\n"+end))
		})
	}
}

func TestParseStyle(t *testing.T) {
	style, err := ParseStyle("")
	assert.NoError(t, err)
	assert.Equal(t, StyleList, style)

	style, err = ParseStyle("table")
	assert.NoError(t, err)
	assert.Equal(t, StyleTable, style)

	_, err = ParseStyle("grid")
	assert.ErrorContains(t, err, "unknown style")
}
