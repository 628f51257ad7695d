package render

import (
	"fmt"
	"strconv"
	"strings"

	"hamremix/internal/timeline"
)

// CaptionStyle controls the drawtext overlay for speaking intervals.
type CaptionStyle struct {
	Enabled  bool
	FontSize int
	Color    string
	FontFile string
	Box      bool
}

// BuildFilterGraph returns a filter_complex script that cuts every playable
// interval of tl out of input 0 and concatenates them into [outv] and [outa],
// along with the number of segments used.
func BuildFilterGraph(tl timeline.Timeline, style CaptionStyle) (string, int) {
	playable := tl.Playable()
	var b strings.Builder
	for i, iv := range playable {
		start, end := seconds(iv.Start), seconds(iv.End)
		fmt.Fprintf(&b, "[0:v]trim=start=%s:end=%s,setpts=PTS-STARTPTS", start, end)
		if caption := iv.Caption(); style.Enabled && caption != "" {
			b.WriteString(",")
			b.WriteString(drawtext(caption, style))
		}
		fmt.Fprintf(&b, "[v%d];\n", i)
		fmt.Fprintf(&b, "[0:a]atrim=start=%s:end=%s,asetpts=PTS-STARTPTS[a%d];\n", start, end, i)
	}
	for i := range playable {
		fmt.Fprintf(&b, "[v%d][a%d]", i, i)
	}
	fmt.Fprintf(&b, "concat=n=%d:v=1:a=1[outv][outa]\n", len(playable))
	return b.String(), len(playable)
}

func drawtext(caption string, style CaptionStyle) string {
	size := style.FontSize
	if size <= 0 {
		size = 28
	}
	color := style.Color
	if color == "" {
		color = "white"
	}
	opts := []string{"expansion=none"}
	if style.FontFile != "" {
		opts = append(opts, "fontfile="+EscapeFilterValue(style.FontFile))
	}
	opts = append(opts,
		"text="+EscapeFilterValue(caption),
		"fontsize="+strconv.Itoa(size),
		"fontcolor="+EscapeFilterValue(color),
		"x=(w-text_w)/2",
		"y=h-text_h-40",
	)
	if style.Box {
		opts = append(opts, "box=1", "boxcolor=black@0.5", "boxborderw=8")
	}
	return "drawtext=" + strings.Join(opts, ":")
}

// EscapeFilterValue escapes a filter option value for use inside a
// filtergraph: once for the option parser and once for the graph parser.
// Line breaks are flattened to spaces.
func EscapeFilterValue(value string) string {
	value = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(value)
	return escapeChars(escapeChars(value, `\':`), `\'[],;`)
}

func escapeChars(value, special string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if strings.ContainsRune(special, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
