package ffmpeg

import (
	"strconv"
	"strings"
	"time"
)

// ProgressUpdate captures one block of FFmpeg -progress output. Values are
// whatever the encoder reported; the supervisor forwards them without
// interpolation.
type ProgressUpdate struct {
	Frame   int64
	FPS     float64
	Bitrate string
	OutTime time.Duration
	Speed   float64
	// Percent is derived from OutTime against the known input duration, or
	// -1 when the duration is unknown.
	Percent float64
	// Done marks the encoder's final progress block.
	Done bool
}

// progressParser accumulates key=value lines until FFmpeg terminates a block
// with a progress= line.
type progressParser struct {
	duration time.Duration
	fields   map[string]string
}

func newProgressParser(duration time.Duration) *progressParser {
	return &progressParser{duration: duration, fields: make(map[string]string)}
}

// feed consumes one output line and reports a completed update when the line
// closes a progress block.
func (p *progressParser) feed(line string) (ProgressUpdate, bool) {
	line = strings.TrimSpace(line)
	key, value, found := strings.Cut(line, "=")
	if !found {
		return ProgressUpdate{}, false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key != "progress" {
		p.fields[key] = value
		return ProgressUpdate{}, false
	}

	update := p.build()
	update.Done = value == "end"
	p.fields = make(map[string]string)
	return update, true
}

func (p *progressParser) build() ProgressUpdate {
	update := ProgressUpdate{Percent: -1}
	if raw, ok := p.fields["frame"]; ok {
		if frame, err := strconv.ParseInt(raw, 10, 64); err == nil {
			update.Frame = frame
		}
	}
	if raw, ok := p.fields["fps"]; ok {
		if fps, err := strconv.ParseFloat(raw, 64); err == nil {
			update.FPS = fps
		}
	}
	if raw, ok := p.fields["bitrate"]; ok && raw != "N/A" {
		update.Bitrate = raw
	}
	if raw, ok := p.fields["speed"]; ok {
		if speed, err := strconv.ParseFloat(strings.TrimSuffix(raw, "x"), 64); err == nil {
			update.Speed = speed
		}
	}
	update.OutTime = p.outTime()
	if p.duration > 0 && update.OutTime > 0 {
		percent := float64(update.OutTime) / float64(p.duration) * 100
		if percent > 100 {
			percent = 100
		}
		update.Percent = percent
	}
	return update
}

func (p *progressParser) outTime() time.Duration {
	// out_time_us and out_time_ms both carry microseconds; out_time is the
	// HH:MM:SS.micro clock form.
	for _, key := range []string{"out_time_us", "out_time_ms"} {
		if raw, ok := p.fields[key]; ok {
			if micros, err := strconv.ParseInt(raw, 10, 64); err == nil && micros >= 0 {
				return time.Duration(micros) * time.Microsecond
			}
		}
	}
	if raw, ok := p.fields["out_time"]; ok {
		if parsed, ok := parseClock(raw); ok {
			return parsed
		}
	}
	return 0
}

func parseClock(value string) (time.Duration, bool) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil || seconds < 0 {
		return 0, false
	}
	total := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds*float64(time.Second))
	return total, true
}
