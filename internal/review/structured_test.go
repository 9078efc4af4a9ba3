package review

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructuredStrategy_FirstSelectorWins(t *testing.T) {
	sess := &fakeSession{
		texts: map[string][]string{
			".zPfVt":     {"경복궁은 정말 아름다운 곳이었습니다", "야경이 특히 멋있었어요 추천합니다"},
			".YEtwtZFlx": {"이건 보이면 안 되는 텍스트"},
		},
	}

	got, err := (&structuredStrategy{}).Extract(context.Background(), sess, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"경복궁은 정말 아름다운 곳이었습니다",
		"야경이 특히 멋있었어요 추천합니다",
	}, got)
	assert.Equal(t, []string{".zPfVt"}, sess.textsCalls)
}

func TestStructuredStrategy_ShortTextsFallThrough(t *testing.T) {
	// First selector matches only UI labels; the next selector should
	// still be consulted.
	sess := &fakeSession{
		texts: map[string][]string{
			".zPfVt":     {"더보기", "접기", "사진"},
			".YEtwtZFlx": {"분위기가 좋아서 다시 오고 싶은 곳입니다"},
		},
	}

	got, err := (&structuredStrategy{}).Extract(context.Background(), sess, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"분위기가 좋아서 다시 오고 싶은 곳입니다"}, got)
	assert.Equal(t, []string{".zPfVt", ".YEtwtZFlx"}, sess.textsCalls)
}

func TestStructuredStrategy_LengthBoundary(t *testing.T) {
	exactly10 := strings.Repeat("가", 10)
	exactly11 := strings.Repeat("가", 11)

	sess := &fakeSession{
		texts: map[string][]string{
			".zPfVt": {exactly10, exactly11},
		},
	}

	got, err := (&structuredStrategy{}).Extract(context.Background(), sess, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{exactly11}, got)
}

func TestStructuredStrategy_TrimsWhitespace(t *testing.T) {
	sess := &fakeSession{
		texts: map[string][]string{
			".zPfVt": {"  한옥이 잘 보존되어 있어 산책하기 좋았어요  "},
		},
	}

	got, err := (&structuredStrategy{}).Extract(context.Background(), sess, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"한옥이 잘 보존되어 있어 산책하기 좋았어요"}, got)
}

func TestStructuredStrategy_StopsAtMax(t *testing.T) {
	texts := make([]string, 12)
	for i := range texts {
		texts[i] = strings.Repeat("가", 11) + strings.Repeat("나", i+1)
	}

	sess := &fakeSession{
		texts: map[string][]string{".zPfVt": texts},
	}

	got, err := (&structuredStrategy{}).Extract(context.Background(), sess, 10)
	require.NoError(t, err)
	assert.Len(t, got, 10)
	assert.Equal(t, texts[:10], got)
}

func TestStructuredStrategy_NothingFound(t *testing.T) {
	sess := &fakeSession{}

	got, err := (&structuredStrategy{}).Extract(context.Background(), sess, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, structuredSelectors, sess.textsCalls)
}
