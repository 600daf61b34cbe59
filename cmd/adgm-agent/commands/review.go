package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jinford/adgm-agent/internal/core/compliance"
	"github.com/jinford/adgm-agent/internal/core/generation"
	"github.com/jinford/adgm-agent/internal/core/review"
	"github.com/jinford/adgm-agent/internal/infra/docx"
)

// ReviewAction は文書レビューを実行するコマンドのアクション
func ReviewAction(ctx context.Context, cmd *cli.Command) error {
	files := cmd.StringSlice("file")
	processType := cmd.String("process")
	outputPath := cmd.String("output")
	withSuggestions := cmd.Bool("suggestions")

	if len(files) == 0 {
		return fmt.Errorf("レビュー対象のファイルを --file で指定してください")
	}
	if !slices.Contains(compliance.ProcessTypes(), processType) {
		return fmt.Errorf("未対応のプロセス種別です: %q（対応: %s）",
			processType, strings.Join(compliance.ProcessTypes(), ", "))
	}

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	opts := []review.ServiceOption{
		review.WithReviewLogger(appCtx.Logger),
	}
	if withSuggestions {
		analyzer := generation.NewAnalyzer(appCtx.LLM, generation.WithAnalyzerLogger(appCtx.Logger))
		opts = append(opts, review.WithSuggester(analyzer))
	}

	svc := review.NewService(docx.NewReader(), compliance.NewChecker(), appCtx.AnalysisService(), opts...)

	var inputs []review.InputDocument
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("ファイルを開けません: %w", err)
		}
		defer f.Close()

		inputs = append(inputs, review.InputDocument{
			Filename: filepath.Base(path),
			Content:  f,
		})
	}

	report, err := svc.Review(ctx, inputs, review.Options{
		ProcessType:     processType,
		CheckCompliance: true,
		RunAnalysis:     true,
		WithSuggestions: withSuggestions,
	})
	if err != nil {
		return fmt.Errorf("レビューの実行に失敗: %w", err)
	}

	if outputPath == "" {
		return review.WriteReport(os.Stdout, report)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("レポートファイルを作成できません: %w", err)
	}
	defer out.Close()

	if err := review.WriteReport(out, report); err != nil {
		return err
	}

	fmt.Printf("レポートを書き出しました: %s (文書 %d 件, 指摘 %d 件)\n",
		outputPath, len(report.Documents), report.TotalIssues)
	return nil
}
