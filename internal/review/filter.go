package review

import (
	"html"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Acceptance windows, in runes. The source vocabulary is Korean, so byte
// lengths would triple the effective thresholds.
const (
	minStructuredRunes = 10   // tier 1: anything longer than a UI label
	minReviewRunes     = 20   // tiers 2-3 lower bound
	maxListRunes       = 1000 // tier 2 upper bound
	maxHeuristicRunes  = 500  // tier 3 upper bound; the full-page scan is noisier
)

// expandedKeywords gate the review-list tier. A candidate must contain
// at least one to count as review prose rather than chrome text.
var expandedKeywords = []string{
	"맛있", "좋았", "추천", "별로", "다시", "친절", "분위기", "최고", "재밌", "흥미",
}

// heuristicKeywords gate the full-page tier. Tighter than the list tier
// because every text node on the page is a candidate.
var heuristicKeywords = []string{
	"좋다", "추천", "별로", "맛있", "친절", "다시",
}

// brReplacer rewrites markup line breaks and non-breaking spaces before
// entity decoding.
var brReplacer = strings.NewReplacer(
	"<br>", "\n",
	"<br/>", "\n",
	"<br />", "\n",
	"&nbsp;", " ",
)

// cleanMarkup converts an element's inner markup to plain text: break
// tags to newlines, trim, then entity decode. Order matters: decoding
// first would turn escaped break tags into real ones.
func cleanMarkup(markup string) string {
	return html.UnescapeString(strings.TrimSpace(brReplacer.Replace(markup)))
}

// acceptExpanded reports whether a cleaned candidate passes the
// review-list tier's length window and keyword gate.
func acceptExpanded(text string) bool {
	n := utf8.RuneCountInString(text)
	return n > minReviewRunes && n < maxListRunes && containsAnyKeyword(text, expandedKeywords)
}

// acceptHeuristic reports whether a candidate passes the full-page
// tier's length window and keyword gate.
func acceptHeuristic(text string) bool {
	n := utf8.RuneCountInString(text)
	return n > minReviewRunes && n < maxHeuristicRunes && containsAnyKeyword(text, heuristicKeywords)
}

// containsAnyKeyword matches on NFC-normalized text so decomposed Hangul
// still matches the composed keyword constants.
func containsAnyKeyword(text string, keywords []string) bool {
	text = norm.NFC.String(text)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
