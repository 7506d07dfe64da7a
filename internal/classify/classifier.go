// Package classify turns raw lines of kamal output into styled semantic events.
package classify

import (
	"regexp"
	"strings"
)

var (
	stagePattern           = regexp.MustCompile(`^(\w+.+)\.{3}$`)
	commandStartedPattern  = regexp.MustCompile(`INFO \[(\w+)\] Running (.+) on (.+)`)
	commandFinishedPattern = regexp.MustCompile(`INFO \[(\w+)\] Finished in ([\d.]+) seconds with exit status (\d+)`)
	debugPattern           = regexp.MustCompile(`DEBUG \[(\w+)\] (.+)`)
	infoPattern            = regexp.MustCompile(`INFO (.+)`)
)

// rule pairs a pattern with the constructor for the event it produces.
// Rules are evaluated in order and the first match wins.
type rule struct {
	pattern *regexp.Regexp
	// trimmed rules match against the whitespace-trimmed line.
	trimmed bool
	build   func(c *Classifier, m []string) Event
}

// Classifier converts lines into events. It is not safe for concurrent use;
// one classifier serves one monitored run.
type Classifier struct {
	hosts *HostnameRegistry
	rules []rule
}

// New creates a classifier with an empty hostname registry.
func New() *Classifier {
	return &Classifier{
		hosts: NewHostnameRegistry(),
		rules: []rule{
			{pattern: stagePattern, trimmed: true, build: buildStage},
			{pattern: commandStartedPattern, build: buildCommandStarted},
			{pattern: commandFinishedPattern, build: buildCommandFinished},
			{pattern: debugPattern, build: buildDebug},
			{pattern: infoPattern, build: buildInfo},
		},
	}
}

// Classify returns the event for line. It never fails: lines matching no
// rule become KindRaw events carrying the line verbatim.
func (c *Classifier) Classify(line string) Event {
	for _, r := range c.rules {
		subject := line
		if r.trimmed {
			subject = strings.TrimSpace(line)
		}
		if m := r.pattern.FindStringSubmatch(subject); m != nil {
			return r.build(c, m)
		}
	}
	return Event{
		Kind:     KindRaw,
		Color:    ColorWhite,
		Segments: []Segment{Plain(line, ColorWhite)},
	}
}

// Hostname resolves the host for a command id the same way finished
// commands are attributed.
func (c *Classifier) Hostname(id string) string {
	return c.hosts.Resolve(id)
}

func buildStage(_ *Classifier, m []string) Event {
	return Event{
		Kind:  KindStage,
		Color: ColorWhite,
		Segments: []Segment{
			Bold("Stage:", ColorWhite),
			Plain(" "+m[1], ColorWhite),
		},
	}
}

func buildCommandStarted(c *Classifier, m []string) Event {
	id, command, host := m[1], m[2], m[3]
	c.hosts.Register(id, host)
	return Event{
		Kind:  KindCommandStarted,
		Color: ColorGreen,
		Segments: []Segment{
			Bold(commandLabel(id, host), ColorGreen),
			Plain(" "+command, ColorGreen),
		},
	}
}

func buildCommandFinished(c *Classifier, m []string) Event {
	id, code := m[1], m[3]
	status := ColorRed
	if isZero(code) {
		status = ColorGreen
	}
	return Event{
		Kind:  KindCommandFinished,
		Color: ColorYellow,
		Segments: []Segment{
			Bold(commandLabel(id, c.hosts.Resolve(id)), ColorYellow),
			Plain(" Returned Status: ", ColorYellow),
			Plain(code, status),
		},
	}
}

func buildDebug(_ *Classifier, m []string) Event {
	return Event{
		Kind:  KindDebug,
		Color: ColorYellow,
		Segments: []Segment{
			Bold(commandLabel(m[1], DefaultHostname), ColorYellow),
			Plain(" "+m[2], ColorYellow),
		},
	}
}

func buildInfo(_ *Classifier, m []string) Event {
	return Event{
		Kind:  KindInfo,
		Color: ColorBlue,
		Segments: []Segment{
			Bold("Info:", ColorBlue),
			Plain(" "+m[1], ColorBlue),
		},
	}
}

func commandLabel(id, host string) string {
	return "Command[" + id + "@" + host + "]"
}

// isZero reports whether a run of decimal digits denotes zero ("0", "000").
func isZero(digits string) bool {
	return strings.Trim(digits, "0") == ""
}
