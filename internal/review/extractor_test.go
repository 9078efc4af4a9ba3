package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daytrip-labs/travel-cli/internal/browser"
)

const testPlaceURL = "https://place.naver.com/p/1?placePath=/review"

func testExtractor(strategies ...Strategy) *Extractor {
	return NewExtractor(Config{FrameID: "entryIframe", FrameWait: time.Second}, strategies...)
}

func TestExtractor_Extract_TierShortCircuit(t *testing.T) {
	sess := &fakeSession{
		texts: map[string][]string{
			".zPfVt": {"한복을 입고 입장하면 무료라서 좋았습니다"},
		},
		markup:    map[string][]string{reviewListSelector: {"이 마크업은 읽히면 안 됩니다"}},
		textNodes: []string{"이 노드도 읽히면 안 됩니다"},
	}

	got, err := testExtractor().Extract(context.Background(), sess, testPlaceURL, 10)
	require.NoError(t, err)
	assert.Equal(t, StrategyStructured, got.Strategy)
	assert.Len(t, got.Reviews, 1)

	// Lower tiers never touched the session.
	assert.Empty(t, sess.markupCalls)
	assert.Zero(t, sess.textNodesCalls)
	assert.Equal(t, 1, sess.enterFrameCalls)
	assert.GreaterOrEqual(t, sess.resetScopeCalls, 1)
}

func TestExtractor_Extract_FrameMissing(t *testing.T) {
	sess := &fakeSession{frameErr: errors.New("iframe#entryIframe not found")}

	got, err := testExtractor().Extract(context.Background(), sess, testPlaceURL, 10)
	require.NoError(t, err)
	assert.Empty(t, got.Reviews)
	assert.Empty(t, got.Strategy)

	// No tier runs without the frame, and scope is still restored.
	assert.Empty(t, sess.textsCalls)
	assert.GreaterOrEqual(t, sess.resetScopeCalls, 1)
}

func TestExtractor_Extract_NavigateError(t *testing.T) {
	sess := &fakeSession{navErr: errors.New("net::ERR_CONNECTION_RESET")}

	_, err := testExtractor().Extract(context.Background(), sess, testPlaceURL, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "review: navigate place page")

	// Scope discipline holds even when navigation fails.
	assert.GreaterOrEqual(t, sess.resetScopeCalls, 1)
}

func TestExtractor_Extract_FallsThroughToHeuristic(t *testing.T) {
	// Tiers 1 and 2 find nothing; fifty text nodes hide three reviews.
	valid := []string{
		"불국사는 단풍철에 가면 정말 좋다 느껴지는 곳입니다",
		"석굴암까지 올라가는 길이 힘들지만 추천할 만합니다",
		"근처 식당 밥이 맛있어서 배부르게 먹고 왔습니다",
	}
	nodes := make([]string, 0, 50)
	for i := 0; i < 50; i++ {
		switch i {
		case 5:
			nodes = append(nodes, valid[0])
		case 25:
			nodes = append(nodes, valid[1])
		case 49:
			nodes = append(nodes, valid[2])
		default:
			nodes = append(nodes, fmt.Sprintf("안내 문구 %d", i))
		}
	}

	sess := &fakeSession{textNodes: nodes}

	got, err := testExtractor().Extract(context.Background(), sess, testPlaceURL, 10)
	require.NoError(t, err)
	assert.Equal(t, StrategyHeuristic, got.Strategy)
	assert.Equal(t, valid, []string(got.Reviews))

	// Both earlier tiers were consulted first.
	assert.Equal(t, structuredSelectors, sess.textsCalls)
	assert.Equal(t, []string{reviewListSelector}, sess.markupCalls)
}

func TestExtractor_Extract_BoundsAndDedups(t *testing.T) {
	texts := make([]string, 12)
	for i := range texts {
		texts[i] = strings.Repeat("가", 11) + strings.Repeat("나", i+1)
	}
	// A duplicate inside the collection window must not survive.
	texts[3] = texts[0]

	sess := &fakeSession{
		texts: map[string][]string{".zPfVt": texts},
	}

	got, err := testExtractor().Extract(context.Background(), sess, testPlaceURL, 10)
	require.NoError(t, err)
	assert.Equal(t, StrategyStructured, got.Strategy)
	assert.Len(t, got.Reviews, 9)

	seen := map[string]int{}
	for _, r := range got.Reviews {
		seen[r]++
	}
	for r, n := range seen {
		assert.Equal(t, 1, n, "duplicate survived: %s", r)
	}
}

func TestExtractor_Extract_AllTiersEmpty(t *testing.T) {
	sess := &fakeSession{}

	got, err := testExtractor().Extract(context.Background(), sess, testPlaceURL, 10)
	require.NoError(t, err)
	assert.Empty(t, got.Reviews)
	assert.Empty(t, got.Strategy)
	assert.GreaterOrEqual(t, sess.resetScopeCalls, 1)
}

// erringStrategy always fails, for cascade fault-tolerance tests.
type erringStrategy struct{ calls int }

func (s *erringStrategy) Name() string { return "erring" }

func (s *erringStrategy) Extract(context.Context, browser.Session, int) ([]string, error) {
	s.calls++
	return nil, errors.New("selector evaluation failed")
}

// cannedStrategy returns a fixed set of snippets.
type cannedStrategy struct {
	snippets []string
	calls    int
}

func (s *cannedStrategy) Name() string { return "canned" }

func (s *cannedStrategy) Extract(context.Context, browser.Session, int) ([]string, error) {
	s.calls++
	return s.snippets, nil
}

func TestExtractor_Extract_StrategyErrorContinuesCascade(t *testing.T) {
	failing := &erringStrategy{}
	winning := &cannedStrategy{snippets: []string{"대릉원 고분 사이 산책로가 인상적이었습니다"}}

	sess := &fakeSession{}

	got, err := testExtractor(failing, winning).Extract(context.Background(), sess, testPlaceURL, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, winning.calls)
	assert.Equal(t, "canned", got.Strategy)
	assert.Len(t, got.Reviews, 1)
}

func TestExtractor_Extract_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	failing := &erringStrategy{}
	sess := &fakeSession{}

	_, err := testExtractor(failing).Extract(ctx, sess, testPlaceURL, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
