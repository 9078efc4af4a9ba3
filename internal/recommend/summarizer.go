package recommend

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/daytrip-labs/travel-cli/internal/model"
	"github.com/daytrip-labs/travel-cli/internal/resilience"
	"github.com/daytrip-labs/travel-cli/pkg/claude"
)

const (
	summaryPromptFmt = `다음은 '%s' 여행지에 대한 실제 방문객 리뷰들입니다:

%s

이 리뷰들을 바탕으로 다음 내용을 포함한 여행지 추천글을 작성해주세요:
1. 이 여행지의 주요 매력 포인트
2. 어떤 사람들에게 추천하는지 (가족, 연인, 친구, 혼자 등)
3. 방문 시 주의사항이나 팁
4. 전체적인 추천도 (5점 만점)

친근하고 도움이 되는 톤으로 작성해주세요.`

	// noReviewsFmt takes the destination name twice.
	noReviewsFmt = "'%s'에 대한 리뷰를 찾을 수 없어 상세한 분석을 제공할 수 없습니다. 하지만 이 곳은 %s 지역의 인기 여행지 중 하나입니다."

	fallbackSummaryFmt = "'%s'는 수집된 리뷰를 바탕으로 볼 때 방문할 만한 가치가 있는 여행지입니다."
)

// Summarizer turns a destination's harvested reviews into a
// recommendation write-up.
type Summarizer struct {
	client claude.Client
	cfg    Config
}

func NewSummarizer(client claude.Client, cfg Config) *Summarizer {
	return &Summarizer{client: client, cfg: cfg}
}

// Summarize writes a recommendation for the destination from its
// reviews. An empty review set short-circuits to a fixed disclaimer
// without spending a model call; a call that still fails after retries
// degrades to a fixed one-liner. The bool reports whether the text came
// from either fallback rather than the model.
func (s *Summarizer) Summarize(ctx context.Context, destination string, reviews model.ReviewSet) (string, model.TokenUsage, bool) {
	if len(reviews) == 0 {
		return fmt.Sprintf(noReviewsFmt, destination, destination), model.TokenUsage{}, true
	}

	lines := make([]string, len(reviews))
	for i, review := range reviews {
		lines[i] = "- " + review
	}
	prompt := fmt.Sprintf(summaryPromptFmt, destination, strings.Join(lines, "\n"))

	resp, err := resilience.DoVal(ctx, resilience.RetryConfig{
		MaxAttempts: s.cfg.MaxAttempts,
		ShouldRetry: retryable,
		OnRetry:     resilience.RetryLogger("claude", "summarize_reviews"),
	}, func(ctx context.Context) (*claude.MessageResponse, error) {
		return s.client.CreateMessage(ctx, claude.MessageRequest{
			Model:     s.cfg.Model,
			MaxTokens: s.cfg.MaxTokens,
			Messages:  []claude.Message{{Role: "user", Content: prompt}},
		})
	})
	if err != nil {
		zap.L().Error("review summarization failed, using fallback text",
			zap.String("destination", destination),
			zap.Error(err),
		)
		return fmt.Sprintf(fallbackSummaryFmt, destination), model.TokenUsage{}, true
	}

	usage := model.TokenUsage{
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}

	zap.L().Info("reviews summarized",
		zap.String("destination", destination),
		zap.Int("reviews", len(reviews)),
		zap.Int64("output_tokens", usage.OutputTokens),
	)
	return resp.Text(), usage, false
}
