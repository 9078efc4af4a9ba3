// Package report renders a finished region run for the terminal. The
// output language is Korean to match the harvested content and the
// audience of the tool.
package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/daytrip-labs/travel-cli/internal/model"
)

const (
	sectionRule = 50
	entryRule   = 30

	// sampleCount and sampleRunes bound the raw-review excerpt shown
	// under each destination. Truncation counts runes, not bytes.
	sampleCount = 3
	sampleRunes = 100
)

// Render writes the full region report to w: the planned destination
// list, one block per destination with collected review samples and
// the generated write-up, and a usage footer.
func Render(w io.Writer, rep *model.RegionReport) {
	_, _ = fmt.Fprintf(w, "\n %s 지역 추천 여행지:\n", rep.Region)
	for i, name := range rep.Destinations {
		_, _ = fmt.Fprintf(w, "   %d. %s\n", i+1, name)
	}
	_, _ = fmt.Fprintln(w, strings.Repeat("=", sectionRule))

	for i, rec := range rep.Recommendations {
		renderRecommendation(w, i+1, rec)
	}

	_, _ = fmt.Fprintf(w, "\n✅ %s 지역 여행지 추천이 완료되었습니다!\n", rep.Region)
	_, _ = fmt.Fprintln(w, "다른 지역도 검색해보세요! 🌟")

	if rep.TotalUsage.Total() > 0 {
		_, _ = fmt.Fprintf(w, "\n🤖 토큰 사용량: 입력 %d / 출력 %d (예상 비용 $%.4f)\n",
			rep.TotalUsage.InputTokens, rep.TotalUsage.OutputTokens, rep.TotalCost)
	}
}

func renderRecommendation(w io.Writer, ordinal int, rec model.Recommendation) {
	_, _ = fmt.Fprintf(w, "\n🏛️  %d. %s\n", ordinal, rec.Destination)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", entryRule))

	if rec.PlaceURL == "" {
		_, _ = fmt.Fprintln(w, "❌ 네이버 플레이스를 찾을 수 없습니다.")
	} else {
		_, _ = fmt.Fprintf(w, "🔗 플레이스 URL: %s\n", rec.PlaceURL)
	}

	if len(rec.Reviews) > 0 {
		_, _ = fmt.Fprintf(w, "✅ %d개의 리뷰를 수집했습니다.\n", len(rec.Reviews))
		_, _ = fmt.Fprintln(w, "\n📄 수집된 리뷰 샘플:")
		for j, review := range rec.Reviews {
			if j >= sampleCount {
				break
			}
			_, _ = fmt.Fprintf(w, "   %d. %s\n", j+1, truncateRunes(review, sampleRunes))
		}
	} else if rec.PlaceURL != "" {
		_, _ = fmt.Fprintln(w, "❌ 리뷰를 수집할 수 없습니다.")
		_, _ = fmt.Fprintln(w, "네이버 플레이스 페이지 구조가 변경되었거나 리뷰가 없을 수 있습니다.")
	}

	if rec.Summary != "" {
		_, _ = fmt.Fprintln(w, "\n🎯 AI 추천 분석 결과:")
		_, _ = fmt.Fprintln(w, rec.Summary)
	}

	_, _ = fmt.Fprintln(w, "\n"+strings.Repeat("=", sectionRule))
}

// truncateRunes shortens s to at most n runes, marking the cut with an
// ellipsis. Korean text makes a byte slice here split characters.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
