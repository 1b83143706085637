package video

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// StreamInfo describes the primary video stream of a file.
type StreamInfo struct {
	Width       int
	Height      int
	FrameRate   int // Rounded to whole frames per second.
	TotalFrames int // 0 when the container does not carry a count.
}

// Probe runs a single ffprobe JSON call against path and returns the
// parsed stream info for the primary video stream.
func Probe(ctx context.Context, path string) (*StreamInfo, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseProbeJSON(out)
}

// ParseProbeJSON converts raw ffprobe JSON output into a StreamInfo.
// Exported for testing without a real ffprobe binary.
func ParseProbeJSON(data []byte) (*StreamInfo, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildInfo(&raw)
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
}

type ffprobeStream struct {
	CodecType    string         `json:"codec_type"`
	Width        int            `json:"width"`
	Height       int            `json:"height"`
	AvgFrameRate string         `json:"avg_frame_rate"`
	NbFrames     string         `json:"nb_frames"`
	Disposition  map[string]int `json:"disposition"`
}

// buildInfo picks the primary video stream (skipping attached pictures such
// as embedded cover art) and derives rate and frame count.
func buildInfo(raw *ffprobeOutput) (*StreamInfo, error) {
	var vs *ffprobeStream
	for i := range raw.Streams {
		s := &raw.Streams[i]
		if s.CodecType != "video" {
			continue
		}
		if s.Disposition["attached_pic"] == 1 {
			continue
		}
		vs = s
		break
	}
	if vs == nil {
		return nil, fmt.Errorf("no video stream found")
	}
	if vs.Width <= 0 || vs.Height <= 0 {
		return nil, fmt.Errorf("video stream has invalid dimensions %dx%d", vs.Width, vs.Height)
	}

	rate := parseFrameRate(vs.AvgFrameRate)
	if rate <= 0 {
		return nil, fmt.Errorf("video stream has invalid frame rate %q", vs.AvgFrameRate)
	}

	total, _ := strconv.Atoi(vs.NbFrames)
	if total <= 0 {
		// Some containers (e.g. MKV) omit nb_frames; estimate from duration.
		if d := parseFloat(raw.Format.Duration); d > 0 {
			total = int(math.Round(d * float64(rate)))
		}
	}
	if total < 0 {
		total = 0
	}

	return &StreamInfo{
		Width:       vs.Width,
		Height:      vs.Height,
		FrameRate:   rate,
		TotalFrames: total,
	}, nil
}

// parseFrameRate parses ffprobe's "num/den" rational (e.g. "30000/1001")
// into whole frames per second. Returns 0 on malformed input.
func parseFrameRate(s string) int {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		n := parseFloat(s)
		return int(math.Round(n))
	}
	n := parseFloat(num)
	d := parseFloat(den)
	if d == 0 {
		return 0
	}
	return int(math.Round(n / d))
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
