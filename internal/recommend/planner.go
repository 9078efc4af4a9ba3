// Package recommend hosts the generative collaborators of a run: the
// planner that proposes destinations for a region and the summarizer
// that turns harvested reviews into a recommendation write-up. Both
// degrade to deterministic fallbacks so a dead model never kills a run.
package recommend

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/daytrip-labs/travel-cli/internal/model"
	"github.com/daytrip-labs/travel-cli/internal/resilience"
	"github.com/daytrip-labs/travel-cli/pkg/claude"
)

// plannerPromptFmt pins the response to a bare numbered list so parsing
// stays trivial. Loosening the format instructions makes the model chat.
const plannerPromptFmt = `대한민국 %s 지역의 유명한 여행지 5개를 추천해주세요.
다음 형식으로만 답변해주세요:
1. 여행지명1
2. 여행지명2
3. 여행지명3
4. 여행지명4
5. 여행지명5

각 여행지명은 한 줄에 하나씩, 숫자와 점만 붙이고 추가 설명은 하지 마세요.`

// ordinalRe strips the "1. " numbering the prompt asks for.
var ordinalRe = regexp.MustCompile(`^\d+\.\s*`)

// fallbackDestinations keep a run useful when the model is unreachable.
var fallbackDestinations = map[string][]string{
	"서울": {"경복궁", "명동", "홍대", "강남", "한강공원"},
	"부산": {"해운대", "광안리", "태종대", "감천문화마을", "자갈치시장"},
	"경주": {"불국사", "석굴암", "첨성대", "안압지", "대릉원"},
}

// genericDestinations cover regions without a curated list. They are
// generic enough to resolve in most Korean municipalities.
var genericDestinations = []string{"시청", "역사", "공원", "시장", "문화센터"}

// Config holds the model settings shared by the collaborators.
type Config struct {
	Model           string
	MaxTokens       int64
	MaxAttempts     int
	MaxDestinations int
}

// Planner proposes destination names for a region.
type Planner struct {
	client claude.Client
	cfg    Config
}

func NewPlanner(client claude.Client, cfg Config) *Planner {
	return &Planner{client: client, cfg: cfg}
}

// Plan asks the model for up to MaxDestinations destination names in
// the region. When the call fails after retries, or the response parses
// to nothing, it falls back to the curated per-region list; the bool
// reports which path produced the names.
func (p *Planner) Plan(ctx context.Context, region string) ([]string, model.TokenUsage, bool) {
	prompt := fmt.Sprintf(plannerPromptFmt, region)

	resp, err := resilience.DoVal(ctx, resilience.RetryConfig{
		MaxAttempts: p.cfg.MaxAttempts,
		ShouldRetry: retryable,
		OnRetry:     resilience.RetryLogger("claude", "plan_destinations"),
	}, func(ctx context.Context) (*claude.MessageResponse, error) {
		return p.client.CreateMessage(ctx, claude.MessageRequest{
			Model:     p.cfg.Model,
			MaxTokens: p.cfg.MaxTokens,
			Messages:  []claude.Message{{Role: "user", Content: prompt}},
		})
	})
	if err != nil {
		zap.L().Error("destination planning failed, using fallback list",
			zap.String("region", region),
			zap.Error(err),
		)
		return Fallback(region), model.TokenUsage{}, true
	}

	usage := model.TokenUsage{
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}

	names := ParseDestinations(resp.Text(), p.cfg.MaxDestinations)
	if len(names) == 0 {
		zap.L().Warn("model returned no usable destinations, using fallback list",
			zap.String("region", region),
			zap.String("response", resp.Text()),
		)
		return Fallback(region), usage, true
	}

	zap.L().Info("destinations planned",
		zap.String("region", region),
		zap.Strings("destinations", names),
	)
	return names, usage, false
}

// ParseDestinations pulls destination names out of a numbered-list
// response: one name per line, ordinal prefix stripped, blanks dropped,
// at most max names. max <= 0 means no limit.
func ParseDestinations(text string, max int) []string {
	var names []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name := ordinalRe.ReplaceAllString(line, "")
		if name == "" {
			continue
		}
		names = append(names, name)
		if max > 0 && len(names) >= max {
			break
		}
	}
	return names
}

// Fallback returns a copy of the curated destination list for the
// region, or the generic list when no curated one exists.
func Fallback(region string) []string {
	if names, ok := fallbackDestinations[region]; ok {
		return append([]string(nil), names...)
	}
	return append([]string(nil), genericDestinations...)
}

// retryable treats Anthropic API throttling and generic transient
// failures the same way for retry purposes.
func retryable(err error) bool {
	return claude.IsRetryable(err) || resilience.IsTransient(err)
}
