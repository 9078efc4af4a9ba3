package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/daytrip-labs/travel-cli/internal/model"
)

func TestRender_FullReport(t *testing.T) {
	rep := &model.RegionReport{
		Region:       "서울",
		Destinations: []string{"경복궁", "없는곳"},
		Recommendations: []model.Recommendation{
			{
				Destination: "경복궁",
				PlaceURL:    "https://place.naver.com/place/1?placePath=/review",
				Reviews: model.ReviewSet{
					"한복 입고 가면 무료 입장이라 좋았어요",
					"야간 개장이 특히 아름다워서 추천합니다",
					"주말엔 사람이 많으니 평일 방문 추천",
					"네 번째 리뷰는 샘플에 나오면 안 됩니다",
				},
				Summary: "경복궁은 전통과 야경을 함께 즐길 수 있는 곳입니다. 추천도 5/5.",
			},
			{
				Destination: "없는곳",
				Summary:     "'없는곳'에 대한 리뷰를 찾을 수 없어 상세한 분석을 제공할 수 없습니다. 하지만 이 곳은 없는곳 지역의 인기 여행지 중 하나입니다.",
			},
		},
		TotalUsage: model.TokenUsage{InputTokens: 1200, OutputTokens: 640},
		TotalCost:  0.0123,
	}

	var buf bytes.Buffer
	Render(&buf, rep)
	out := buf.String()

	assert.Contains(t, out, " 서울 지역 추천 여행지:")
	assert.Contains(t, out, "   1. 경복궁")
	assert.Contains(t, out, "   2. 없는곳")

	assert.Contains(t, out, "🏛️  1. 경복궁")
	assert.Contains(t, out, strings.Repeat("-", 30))
	assert.Contains(t, out, "🔗 플레이스 URL: https://place.naver.com/place/1?placePath=/review")
	assert.Contains(t, out, "✅ 4개의 리뷰를 수집했습니다.")
	assert.Contains(t, out, "📄 수집된 리뷰 샘플:")
	assert.Contains(t, out, "   1. 한복 입고 가면 무료 입장이라 좋았어요")
	assert.Contains(t, out, "   3. 주말엔 사람이 많으니 평일 방문 추천")
	assert.NotContains(t, out, "네 번째 리뷰", "only the first three reviews are sampled")
	assert.Contains(t, out, "🎯 AI 추천 분석 결과:")
	assert.Contains(t, out, "추천도 5/5.")

	assert.Contains(t, out, "🏛️  2. 없는곳")
	assert.Contains(t, out, "❌ 네이버 플레이스를 찾을 수 없습니다.")

	assert.Contains(t, out, strings.Repeat("=", 50))
	assert.Contains(t, out, "✅ 서울 지역 여행지 추천이 완료되었습니다!")
	assert.Contains(t, out, "다른 지역도 검색해보세요! 🌟")
	assert.Contains(t, out, "🤖 토큰 사용량: 입력 1200 / 출력 640 (예상 비용 $0.0123)")
}

func TestRender_PlaceFoundButNoReviews(t *testing.T) {
	rep := &model.RegionReport{
		Region:       "부산",
		Destinations: []string{"해운대"},
		Recommendations: []model.Recommendation{
			{
				Destination: "해운대",
				PlaceURL:    "https://place.naver.com/place/2",
				Summary:     "'해운대'에 대한 리뷰를 찾을 수 없어 상세한 분석을 제공할 수 없습니다. 하지만 이 곳은 해운대 지역의 인기 여행지 중 하나입니다.",
			},
		},
	}

	var buf bytes.Buffer
	Render(&buf, rep)
	out := buf.String()

	assert.Contains(t, out, "❌ 리뷰를 수집할 수 없습니다.")
	assert.Contains(t, out, "네이버 플레이스 페이지 구조가 변경되었거나 리뷰가 없을 수 있습니다.")
	assert.NotContains(t, out, "📄 수집된 리뷰 샘플:")
	assert.Contains(t, out, "🎯 AI 추천 분석 결과:")
	assert.NotContains(t, out, "토큰 사용량", "zero usage leaves the footer off")
}

func TestRender_SampleTruncatedAtHundredRunes(t *testing.T) {
	long := "시작" + strings.Repeat("가", 120)
	rep := &model.RegionReport{
		Region:       "경주",
		Destinations: []string{"불국사"},
		Recommendations: []model.Recommendation{
			{
				Destination: "불국사",
				PlaceURL:    "https://place.naver.com/place/3",
				Reviews:     model.ReviewSet{long},
			},
		},
	}

	var buf bytes.Buffer
	Render(&buf, rep)
	out := buf.String()

	want := "시작" + strings.Repeat("가", 98) + "..."
	assert.Contains(t, out, want)
	assert.NotContains(t, out, long)
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"shorter than limit", "짧은 리뷰", 100, "짧은 리뷰"},
		{"exactly at limit", strings.Repeat("가", 100), 100, strings.Repeat("가", 100)},
		{"one over limit", strings.Repeat("나", 101), 100, strings.Repeat("나", 100) + "..."},
		{"ascii", "abcdef", 3, "abc..."},
		{"empty", "", 100, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateRunes(tt.in, tt.n))
		})
	}
}
