package readme

import (
	"fmt"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/o1x3/profile-stats/internal/domain"
)

// Style selects how the generated section is laid out.
type Style string

const (
	StyleList  Style = "list"
	StyleTable Style = "table"
)

const (
	maxLanguageTags  = 6
	minLanguageShare = 0.01
	barWidth         = 20
	mergedLayout     = "Jan 2006"
	noDate           = "—"
	emptyMessage     = "*No external contributions yet.*"
)

// ParseStyle maps a flag value onto a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleList, StyleTable:
		return Style(s), nil
	case "":
		return StyleList, nil
	}
	return "", fmt.Errorf("unknown style %q (want %q or %q)", s, StyleList, StyleTable)
}

// Render builds the markdown placed between the section markers.
func Render(p *domain.Profile, style Style) string {
	var lines []string

	if len(p.Languages) > 0 {
		if style == StyleTable {
			lines = append(lines, languageBars(p.Languages)...)
		} else {
			lines = append(lines, languageTags(p.Languages))
		}
		lines = append(lines, "")
	}

	switch {
	case len(p.Contributions) == 0:
		lines = append(lines, emptyMessage)
	case style == StyleTable:
		lines = append(lines, contributionTable(p.Contributions)...)
	default:
		for _, c := range p.Contributions {
			lines = append(lines, fmt.Sprintf("- [%s#%d](%s) — %s · %s", c.Repo, c.Number, c.URL, escapeTitle(c.Title), mergedDate(c)))
		}
	}

	return strings.Join(lines, "\n")
}

// shownLanguages returns the leading languages with at least a 1% share.
// Languages are expected in descending share order.
func shownLanguages(langs []domain.Language) []domain.Language {
	shown := make([]domain.Language, 0, maxLanguageTags)
	for _, l := range langs {
		if l.Share < minLanguageShare {
			break
		}
		shown = append(shown, l)
		if len(shown) >= maxLanguageTags {
			break
		}
	}
	return shown
}

func languageTags(langs []domain.Language) string {
	var tags []string
	for _, l := range shownLanguages(langs) {
		tags = append(tags, fmt.Sprintf("**%s %s%%**", l.Name, percent(l)))
	}
	return strings.Join(tags, " · ")
}

func languageBars(langs []domain.Language) []string {
	shown := shownLanguages(langs)
	width := 0
	for _, l := range shown {
		width = max(width, len(l.Name))
	}

	lines := []string{"```text"}
	for _, l := range shown {
		filled, err := stats.Round(l.Share*barWidth, 0)
		if err != nil {
			filled = 0
		}
		n := min(max(int(filled), 0), barWidth)
		bar := strings.Repeat("█", n) + strings.Repeat("░", barWidth-n)
		lines = append(lines, fmt.Sprintf("%-*s %s %5s%%", width, l.Name, bar, percent(l)))
	}
	return append(lines, "```")
}

func contributionTable(contributions []domain.Contribution) []string {
	lines := []string{
		"| Repository | Pull request | Merged | ★ |",
		"|---|---|---|---:|",
	}
	for _, c := range contributions {
		lines = append(lines, fmt.Sprintf("| [%s](https://github.com/%s) | [#%d %s](%s) | %s | %d |",
			c.Repo, c.Repo, c.Number, escapeCell(escapeTitle(c.Title)), c.URL, mergedDate(c), c.Stars))
	}
	return lines
}

func percent(l domain.Language) string {
	rounded, err := stats.Round(l.Percent(), 0)
	if err != nil {
		rounded = l.Percent()
	}
	return fmt.Sprintf("%.0f", rounded)
}

func mergedDate(c domain.Contribution) string {
	if c.MergedAt == nil {
		return noDate
	}
	return c.MergedAt.UTC().Format(mergedLayout)
}

// escapeTitle keeps user-supplied titles from opening or closing HTML comments,
// which would break the section markers around them.
func escapeTitle(s string) string {
	return strings.ReplaceAll(s, "<", "&lt;")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
