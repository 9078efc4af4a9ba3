package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/daytrip-labs/travel-cli/internal/model"
	"github.com/daytrip-labs/travel-cli/internal/report"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive recommendation agent",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		out := cmd.OutOrStdout()
		reader := bufio.NewReader(cmd.InOrStdin())

		if cfg.Anthropic.Key == "" {
			_, _ = fmt.Fprintln(out, "🔑 Anthropic API 키를 입력해주세요:")
			_, _ = fmt.Fprint(out, "API Key: ")
			key := readSecret(reader)
			if key == "" {
				_, _ = fmt.Fprintln(out, "❌ API 키가 필요합니다.")
				return eris.New("run: api key required")
			}
			cfg.Anthropic.Key = key
		}

		_, _ = fmt.Fprintln(out, "\n🖥️  브라우저 모드를 선택하세요:")
		_, _ = fmt.Fprintln(out, "1. Headless 모드 (백그라운드 실행, 빠름)")
		_, _ = fmt.Fprintln(out, "2. 브라우저 표시 모드 (크롤링 과정 확인 가능)")
		_, _ = fmt.Fprint(out, "선택 (1 또는 2): ")
		cfg.Browser.Headless = readLine(reader) != "2"

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		return runAgent(ctx, reader, out, env.Pipeline.Run)
	},
}

// runAgent drives the interactive loop: read a region, run the full
// pipeline, render the report, repeat until the user quits. Pipeline
// failures are reported and the loop continues; only cancellation or
// a quit command ends it.
func runAgent(ctx context.Context, reader *bufio.Reader, out io.Writer, runRegion func(context.Context, string) (*model.RegionReport, error)) error {
	_, _ = fmt.Fprintln(out, "AI 여행지 추천 에이전트가 시작되었습니다!")
	_, _ = fmt.Fprintln(out, "네이버 플레이스에서 리뷰를 크롤링하여 분석합니다.")
	_, _ = fmt.Fprintln(out, strings.Repeat("=", 50))

	for {
		_, _ = fmt.Fprintln(out, "\n📍 대한민국 내 지역을 입력해주세요 (예: 서울, 부산, 경주)")
		_, _ = fmt.Fprintln(out, "종료하려면 'quit' 또는 'exit'를 입력하세요.")
		_, _ = fmt.Fprint(out, "지역명: ")

		line, readErr := reader.ReadString('\n')
		region := strings.TrimSpace(line)

		if ctx.Err() != nil {
			_, _ = fmt.Fprintln(out, "\n\n👋 사용자가 종료를 요청했습니다.")
			return nil
		}
		if isQuitCommand(region) || (readErr != nil && region == "") {
			_, _ = fmt.Fprintln(out, "AI 에이전트를 종료합니다. 좋은 여행 되세요!")
			return nil
		}
		if region == "" {
			_, _ = fmt.Fprintln(out, "❌ 지역명을 입력해주세요.")
			continue
		}

		_, _ = fmt.Fprintf(out, "\n🔍 %s 지역의 여행지를 찾고 있습니다...\n", region)

		rep, err := runRegion(ctx, region)
		if err != nil {
			if ctx.Err() != nil {
				_, _ = fmt.Fprintln(out, "\n\n👋 사용자가 종료를 요청했습니다.")
				return nil
			}
			_, _ = fmt.Fprintf(out, "❌ 오류가 발생했습니다: %v\n", err)
			continue
		}
		report.Render(out, rep)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
}
