package review

import (
	"encoding/json"
	"fmt"
	"io"
)

// WriteReport はレポートをインデント付きJSONとして書き出す
func WriteReport(w io.Writer, report *Report) error {
	encoded, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if _, err := w.Write(append(encoded, '\n')); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
