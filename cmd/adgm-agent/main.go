package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/jinford/adgm-agent/cmd/adgm-agent/commands"
)

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "環境変数ファイルパス",
		Value: ".env",
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  "adgm-agent",
		Usage: "ADGM法務文書のコンプライアンスレビューエージェント",
		Commands: []*cli.Command{
			{
				Name:  "kb",
				Usage: "ナレッジベース管理コマンド",
				Commands: []*cli.Command{
					{
						Name:   "populate",
						Usage:  "公式文書をダウンロードしてナレッジベースを構築（構築済みならスキップ）",
						Flags:  []cli.Flag{envFlag()},
						Action: commands.KbPopulateAction,
					},
					{
						Name:   "refresh",
						Usage:  "ナレッジベースを全削除して再構築",
						Flags:  []cli.Flag{envFlag()},
						Action: commands.KbRefreshAction,
					},
					{
						Name:  "search",
						Usage: "ナレッジベースを類似度検索",
						Flags: []cli.Flag{
							envFlag(),
							&cli.StringFlag{
								Name:     "query",
								Usage:    "検索クエリ",
								Required: true,
							},
							&cli.IntFlag{
								Name:  "top-k",
								Usage: "取得件数",
								Value: 5,
							},
						},
						Action: commands.KbSearchAction,
					},
					{
						Name:   "stats",
						Usage:  "ナレッジベースの統計情報を表示",
						Flags:  []cli.Flag{envFlag()},
						Action: commands.KbStatsAction,
					},
				},
			},
			{
				Name:  "review",
				Usage: "docx文書のコンプライアンスレビューを実行",
				Flags: []cli.Flag{
					envFlag(),
					&cli.StringSliceFlag{
						Name:     "file",
						Usage:    "レビュー対象のdocxファイル（複数指定可）",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "process",
						Usage:    "プロセス種別（例: Company Incorporation）",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "レポートJSONの出力先（省略時は標準出力）",
					},
					&cli.BoolFlag{
						Name:  "suggestions",
						Usage: "指摘事項に対する改善提案を生成する",
					},
				},
				Action: commands.ReviewAction,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
