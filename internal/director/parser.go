package director

import (
	"regexp"
	"strings"
)

// Frame is one complete set of scene tags emitted by the vision process.
// Empty fields were not present in the frame.
type Frame struct {
	Color  string
	Mood   string
	Person string
	Object string
	Energy string
}

// Parser assembles frames from the line-oriented director stream.
// A frame is emitted once at least four of the five keys have been seen;
// the partial frame then resets.
type Parser struct {
	current map[string]string
}

var lineRegex = regexp.MustCompile(`(\w+):\s*(\w+)`)

// bannerPrefixes is status chatter from the vision process, not tag data.
var bannerPrefixes = []string{
	"=", "-", "Pete", "Model", "Loading", "Press", "Resolution",
	"Max", "Target", "Prompt", "Camera", "Starting", "Fetching",
}

var frameKeys = map[string]bool{
	"color": true, "mood": true, "person": true, "object": true, "energy": true,
}

func NewParser() *Parser {
	return &Parser{current: make(map[string]string)}
}

// ParseLine consumes one input line. It returns a complete frame and true
// when the line finishes a frame; malformed lines and banner chatter are
// ignored silently.
func (p *Parser) ParseLine(line string) (Frame, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Frame{}, false
	}
	for _, prefix := range bannerPrefixes {
		if strings.HasPrefix(line, prefix) {
			return Frame{}, false
		}
	}

	m := lineRegex.FindStringSubmatch(line)
	if m == nil {
		return Frame{}, false
	}
	key := strings.ToLower(m[1])
	value := strings.ToLower(m[2])
	if !frameKeys[key] {
		return Frame{}, false
	}
	p.current[key] = value

	// Four of five is enough; the director often omits energy.
	if len(p.current) < 4 {
		return Frame{}, false
	}
	f := Frame{
		Color:  p.current["color"],
		Mood:   p.current["mood"],
		Person: p.current["person"],
		Object: p.current["object"],
		Energy: p.current["energy"],
	}
	p.current = make(map[string]string)
	return f, true
}
