package classify

// Kind identifies what a classified line represents.
type Kind int

const (
	KindRaw Kind = iota
	KindStage
	KindCommandStarted
	KindCommandFinished
	KindDebug
	KindInfo
)

// String makes Kind satisfy the fmt.Stringer interface.
func (k Kind) String() string {
	switch k {
	case KindStage:
		return "Stage"
	case KindCommandStarted:
		return "CommandStarted"
	case KindCommandFinished:
		return "CommandFinished"
	case KindDebug:
		return "Debug"
	case KindInfo:
		return "Info"
	default:
		return "Raw"
	}
}

// Color is one of the basic terminal colors a segment can be drawn in.
type Color int

const (
	ColorNone Color = iota
	ColorBlue
	ColorGreen
	ColorYellow
	ColorRed
	ColorWhite
)

// String makes Color satisfy the fmt.Stringer interface.
func (c Color) String() string {
	switch c {
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorRed:
		return "red"
	case ColorWhite:
		return "white"
	default:
		return "none"
	}
}

// Style is applied to exactly one segment.
type Style struct {
	Color Color
	Bold  bool
}

// Segment is a styled run of text within one classified line.
type Segment struct {
	Text  string
	Style Style
}

// Event is the parsed form of one input line.
type Event struct {
	Kind Kind
	// Color is the line color; segments carry their own resolved style.
	Color    Color
	Segments []Segment
}

// Text concatenates the segment texts.
func (e Event) Text() string {
	n := 0
	for _, s := range e.Segments {
		n += len(s.Text)
	}
	buf := make([]byte, 0, n)
	for _, s := range e.Segments {
		buf = append(buf, s.Text...)
	}
	return string(buf)
}

// Bold returns a bold segment in the given color.
func Bold(text string, color Color) Segment {
	return Segment{Text: text, Style: Style{Color: color, Bold: true}}
}

// Plain returns a regular-weight segment in the given color.
func Plain(text string, color Color) Segment {
	return Segment{Text: text, Style: Style{Color: color}}
}
