package transcode

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"castprep/internal/services/ffmpeg"
)

var stageTitle = cases.Title(language.English)

func progressStage(update ffmpeg.ProgressUpdate) string {
	if update.Done {
		return "finished"
	}
	return "encoding"
}

// FormatProgress renders a human-readable one-line progress summary for
// interactive callers.
func FormatProgress(update ffmpeg.ProgressUpdate) string {
	label := stageTitle.String(progressStage(update))
	parts := make([]string, 0, 4)
	if update.Percent >= 0 {
		parts = append(parts, fmt.Sprintf("%.1f%%", update.Percent))
	}
	if update.OutTime > 0 {
		parts = append(parts, update.OutTime.Round(time.Second).String())
	}
	if update.Speed > 0 {
		parts = append(parts, fmt.Sprintf("@ %.1fx", update.Speed))
	}
	if update.Bitrate != "" {
		parts = append(parts, update.Bitrate)
	}
	if len(parts) == 0 {
		return label
	}
	return fmt.Sprintf("%s %s", label, strings.Join(parts, " "))
}
