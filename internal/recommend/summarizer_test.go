package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrip-labs/travel-cli/internal/model"
)

func TestSummarizer_Summarize_BuildsPromptFromReviews(t *testing.T) {
	client := &stubClient{
		resp: textResponse("경복궁은 한복 나들이 명소로 강력 추천합니다. 추천도 5점 만점에 5점!", 300, 150),
	}
	s := NewSummarizer(client, testRecommendConfig())

	reviews := model.ReviewSet{
		"한복을 입고 입장하면 무료라서 너무 좋았습니다",
		"야간 개장 때 다시 방문하고 싶어요",
	}
	text, usage, fromFallback := s.Summarize(context.Background(), "경복궁", reviews)

	assert.Equal(t, "경복궁은 한복 나들이 명소로 강력 추천합니다. 추천도 5점 만점에 5점!", text)
	assert.Equal(t, model.TokenUsage{InputTokens: 300, OutputTokens: 150}, usage)
	assert.False(t, fromFallback)

	require.Len(t, client.requests, 1)
	prompt := client.requests[0].Messages[0].Content
	assert.Contains(t, prompt, "다음은 '경복궁' 여행지에 대한 실제 방문객 리뷰들입니다:")
	assert.Contains(t, prompt, "- 한복을 입고 입장하면 무료라서 너무 좋았습니다\n- 야간 개장 때 다시 방문하고 싶어요")
	assert.Contains(t, prompt, "4. 전체적인 추천도 (5점 만점)")
	assert.Contains(t, prompt, "친근하고 도움이 되는 톤으로 작성해주세요.")
}

func TestSummarizer_Summarize_EmptyReviews_DisclaimerWithoutModelCall(t *testing.T) {
	client := &stubClient{}
	s := NewSummarizer(client, testRecommendConfig())

	text, usage, fromFallback := s.Summarize(context.Background(), "명동", model.ReviewSet{})

	assert.Equal(t, "'명동'에 대한 리뷰를 찾을 수 없어 상세한 분석을 제공할 수 없습니다. 하지만 이 곳은 명동 지역의 인기 여행지 중 하나입니다.", text)
	assert.Zero(t, usage.Total())
	assert.True(t, fromFallback)
	assert.Empty(t, client.requests, "no reviews should not spend a model call")
}

func TestSummarizer_Summarize_NilReviews_SameAsEmpty(t *testing.T) {
	client := &stubClient{}
	s := NewSummarizer(client, testRecommendConfig())

	text, _, fromFallback := s.Summarize(context.Background(), "홍대", nil)

	assert.Contains(t, text, "'홍대'에 대한 리뷰를 찾을 수 없어")
	assert.True(t, fromFallback)
	assert.Empty(t, client.requests)
}

func TestSummarizer_Summarize_CallFailure_FallbackText(t *testing.T) {
	client := &stubClient{err: errors.New("authentication_error: invalid x-api-key")}
	s := NewSummarizer(client, testRecommendConfig())

	reviews := model.ReviewSet{"감천문화마을 골목이 정말 예뻐서 다시 가고 싶어요"}
	text, usage, fromFallback := s.Summarize(context.Background(), "감천문화마을", reviews)

	assert.Equal(t, "'감천문화마을'는 수집된 리뷰를 바탕으로 볼 때 방문할 만한 가치가 있는 여행지입니다.", text)
	assert.Zero(t, usage.Total())
	assert.True(t, fromFallback)
	assert.Len(t, client.requests, 1)
}
