package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// CLI level messages (info)
		"Transcoding %s...":          "%s を変換中...",
		"Output saved to %s":         "出力を %s に保存しました",
		"Transcode completed":        "変換が完了しました",
		"Progress: %d%%":             "進捗: %d%%",
		"Interrupted, cancelling...": "中断されました。キャンセル中...",

		// Pipeline controller
		"Source %dx%d %dms, target %dx%d at %d fps (%s)": "入力 %dx%d %dms、出力 %dx%d %d fps (%s)",
		"Encoded %d frames, %d bytes":                    "%d フレームを %d バイトにエンコードしました",
		"Failed to release decoder: %s":                  "デコーダの解放に失敗しました: %s",
		"Failed to stop encoder: %s":                     "エンコーダの停止に失敗しました: %s",

		// Frame sampler
		"Sampling %dms at %d fps into %dx%d": "%dms を %d fps で %dx%d にサンプリング中",

		// Errors
		"Failed to read input: %s":   "入力の読み込みに失敗しました: %s",
		"Failed to write output: %s": "出力の書き込みに失敗しました: %s",
		"Transcode failed: %s":       "変換に失敗しました: %s",
	})
}
