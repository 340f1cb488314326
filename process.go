package snazy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"pkt.systems/snazy/internal/ansi"
)

// StreamState is the per-stream state of a Processor. The zero value is a
// fresh stream. It must not be shared between streams.
type StreamState struct {
	table bool
	cols  EventColumns
}

// TableMode reports whether a kubectl events header has been seen.
func (s *StreamState) TableMode() bool { return s.table }

// Columns returns the recorded events table offsets.
func (s *StreamState) Columns() (EventColumns, bool) { return s.cols, s.table }

// Info is one rendered record. Level, Timestamp, Others and Msg already carry
// styling; Stacktrace is the raw trace.
type Info struct {
	Level      string
	Timestamp  string
	Others     string
	Msg        string
	Stacktrace string
}

// Option customises a Processor.
type Option func(*Processor)

// WithLogger sends diagnostics to log.
func WithLogger(log logr.Logger) Option {
	return func(p *Processor) { p.log = log }
}

// WithSpawner replaces ShellSpawner for action commands.
func WithSpawner(s Spawner) Option {
	return func(p *Processor) {
		if s != nil {
			p.spawner = s
		}
	}
}

// Processor turns log lines into rendered output. It is read-only after New
// and may serve several streams, each with its own StreamState.
type Processor struct {
	cfg     Config
	out     io.Writer
	log     logr.Logger
	spawner Spawner
	color   bool

	tf         timeFormatter
	candidates []extractor
	highlight  *Highlighter
	skips      []*regexp.Regexp
	levels     map[Level]struct{}
	action     *regexp.Regexp

	events eventStyles
	stack  stackStyles
}

// New builds a Processor writing to w. Invalid highlight, skip and action
// patterns are reported and ignored; an unknown timezone falls back to UTC.
// Only an unusable JSON-keys mapping is an error.
func New(cfg Config, w io.Writer, opts ...Option) (*Processor, error) {
	if w == nil {
		return nil, errors.New("snazy: nil writer")
	}
	p := &Processor{
		cfg:     cfg,
		out:     w,
		log:     logr.Discard(),
		spawner: ShellSpawner,
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p.color = colorEnabled(cfg.Color, w)

	if p.cfg.KailPrefixFormat == "" {
		p.cfg.KailPrefixFormat = DefaultKailPrefixFormat
	}
	if p.cfg.TimeFormat == "" {
		p.cfg.TimeFormat = DefaultTimeFormat
	}
	if _, ok := loadLocation(cfg.Timezone); !ok {
		p.log.Info("unknown timezone, using UTC", "timezone", cfg.Timezone)
	}
	tf, err := newTimeFormatter(p.cfg.TimeFormat, cfg.Timezone)
	if err != nil {
		p.log.Info("invalid time format, using default", "format", p.cfg.TimeFormat, "error", err.Error())
		tf, _ = newTimeFormatter(DefaultTimeFormat, cfg.Timezone)
	}
	p.tf = tf

	if len(cfg.JSONKeys) > 0 {
		pe, err := newPointerExtractor(cfg.JSONKeys, tf)
		if err != nil {
			return nil, err
		}
		p.candidates = append(p.candidates, pe)
	}
	p.candidates = append(p.candidates,
		severityExtractor(tf),
		levelMsgExtractor(tf),
		stacktraceExtractor,
	)

	p.highlight = NewHighlighter(cfg.Highlights, p.log)
	for _, pattern := range cfg.SkipPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			p.log.Info("ignoring skip pattern", "pattern", pattern, "error", err.Error())
			continue
		}
		p.skips = append(p.skips, re)
	}
	if len(cfg.FilterLevels) > 0 {
		p.levels = make(map[Level]struct{}, len(cfg.FilterLevels))
		for _, lvl := range cfg.FilterLevels {
			p.levels[lvl] = struct{}{}
		}
	}
	if cfg.ActionRegexp != "" {
		re, err := regexp.Compile(cfg.ActionRegexp)
		if err != nil {
			p.log.Info("ignoring action pattern", "pattern", cfg.ActionRegexp, "error", err.Error())
		} else {
			p.action = re
		}
	}

	renderer := lipgloss.NewRenderer(w)
	if p.color {
		renderer.SetColorProfile(termenv.TrueColor)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}
	p.events = newEventStyles(renderer)
	p.stack = newStackStyles(renderer)
	return p, nil
}

func colorEnabled(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// Color reports whether output is styled.
func (p *Processor) Color() bool { return p.color }

// Detect extracts the known fields of line. An empty result means the line
// is not structured.
func (p *Processor) Detect(line string) Fields {
	return detect(line, p.candidates)
}

func (p *Processor) paint(st ansi.Style, s string) string {
	if !p.color || s == "" {
		return s
	}
	return st.Paint(s)
}

func (p *Processor) writeLine(s string) error {
	return p.write(s + "\n")
}

// Process interprets one line of st's stream. It returns an Info when the line
// is a structured record that passed every filter. Events table lines and
// unstructured lines are written directly. The error is always a write error.
func (p *Processor) Process(st *StreamState, line string) (Info, bool, error) {
	if strings.TrimSpace(line) == "" {
		return Info{}, false, nil
	}

	if st.table {
		row, ok := ParseEventsRow(line, st.cols)
		if !ok {
			return Info{}, false, nil
		}
		return Info{}, false, p.writeLine(p.events.renderRow(row, p.highlight.Apply(row.Message, p.color)))
	}
	if cols, ok := DetectEventsHeader(line); ok {
		st.table, st.cols = true, cols
		return Info{}, false, p.writeLine(p.events.renderHeader())
	}

	p.runAction(line)

	rest, prefix, enveloped := ExtractKail(line, p.cfg.KailPrefixFormat)
	fields := p.Detect(rest)
	if fields.Empty() {
		return Info{}, false, p.writeLine(p.highlight.Apply(line, p.color))
	}

	for _, re := range p.skips {
		if re.MatchString(fields.Msg) {
			return Info{}, false, nil
		}
	}
	if p.levels != nil {
		if _, ok := p.levels[NormalizeLevel(fields.Level)]; !ok {
			return Info{}, false, nil
		}
	}

	pal := ansi.PaletteDefault
	info := Info{
		Level:      RenderLevel(fields.Level, p.cfg.LevelMode, p.color),
		Timestamp:  p.paint(pal.Timestamp, fields.Timestamp),
		Others:     p.paint(pal.Others, fields.Others),
		Msg:        p.highlight.Apply(fields.Msg, p.color),
		Stacktrace: fields.Stacktrace,
	}
	if enveloped && !p.cfg.KailNoPrefix && fields.Has(FieldMsg) {
		info.Msg = p.paint(pal.KailPrefix, prefix) + " " + info.Msg
	}
	return info, true, nil
}

// Render lays out info as `level timestamp others+msg`, followed by the
// stacktrace block when there is one.
func (p *Processor) Render(info Info) string {
	var b strings.Builder
	b.Grow(len(info.Level) + len(info.Timestamp) + len(info.Others) + len(info.Msg) + 3)
	b.WriteString(info.Level)
	b.WriteByte(' ')
	b.WriteString(info.Timestamp)
	b.WriteByte(' ')
	b.WriteString(info.Others)
	b.WriteString(info.Msg)
	b.WriteByte('\n')
	b.WriteString(p.FormatStacktrace(info.Stacktrace))
	return b.String()
}

// Run processes r line by line until EOF. Trailing CRLF or LF is stripped
// before each line is processed.
func (p *Processor) Run(r io.Reader, st *StreamState) error {
	if st == nil {
		st = &StreamState{}
	}
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			info, ok, werr := p.Process(st, line)
			if werr != nil {
				return werr
			}
			if ok {
				if werr := p.write(p.Render(info)); werr != nil {
					return werr
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
	}
}

func (p *Processor) write(s string) error {
	if _, err := io.WriteString(p.out, s); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
