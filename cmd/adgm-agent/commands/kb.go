package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// KbPopulateAction はナレッジベースを構築するコマンドのアクション
// インデックスが既にレコードを持つ場合は何もしない（冪等）
func KbPopulateAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	result, err := appCtx.CorpusService().Populate(ctx)
	if err != nil {
		return fmt.Errorf("ナレッジベースの構築に失敗: %w", err)
	}

	if result.AlreadyPopulated {
		fmt.Println("ナレッジベースは構築済みです（再構築する場合は kb refresh を使用してください）")
		return nil
	}

	fmt.Printf("ナレッジベースを構築しました: 文書 %d 件, チャンク %d 件, スキップ %d 件\n",
		result.DocumentsProcessed, result.ChunksIndexed, result.DocumentsSkipped)
	return nil
}

// KbRefreshAction はナレッジベースを全削除して再構築するコマンドのアクション
func KbRefreshAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	result, err := appCtx.CorpusService().Refresh(ctx)
	if err != nil {
		return fmt.Errorf("ナレッジベースの再構築に失敗: %w", err)
	}

	fmt.Printf("ナレッジベースを再構築しました: 文書 %d 件, チャンク %d 件, スキップ %d 件\n",
		result.DocumentsProcessed, result.ChunksIndexed, result.DocumentsSkipped)
	return nil
}

// KbSearchAction はナレッジベースを検索するコマンドのアクション
func KbSearchAction(ctx context.Context, cmd *cli.Command) error {
	query := cmd.String("query")
	topK := cmd.Int("top-k")

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	results, err := appCtx.AnalysisService().SearchKnowledgeBase(ctx, query, topK)
	if err != nil {
		return fmt.Errorf("ナレッジベースの検索に失敗: %w", err)
	}

	if len(results) == 0 {
		fmt.Println("該当する結果はありませんでした")
		return nil
	}

	for i, result := range results {
		fmt.Printf("--- [%d] %s (%s) score=%.3f ---\n", i+1, result.DocumentType, result.Source, result.Score)
		fmt.Printf("file: %s  category: %s\n", result.Filename, result.Category)
		fmt.Println(result.Content)
		fmt.Println()
	}

	return nil
}

// KbStatsAction はナレッジベースの統計情報を表示するコマンドのアクション
func KbStatsAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	stats, err := appCtx.Index.Stats(ctx)
	if err != nil {
		return fmt.Errorf("統計情報の取得に失敗: %w", err)
	}

	fmt.Printf("格納ベクトル数: %d\n", stats.TotalVectorCount)
	return nil
}
