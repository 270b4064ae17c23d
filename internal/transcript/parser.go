package transcript

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode"

	"dirsize/internal/logging"
)

var (
	parseLogger = logging.GetLogger().WithPrefix("transcript")
)

const (
	promptPrefix = "$ "
	cdPrefix     = "cd "
	dirPrefix    = "dir "
)

// maxLineSize bounds a single transcript line.
const maxLineSize = 1024 * 1024

// ParseLine converts one transcript line into an Instruction. Surrounding
// whitespace is ignored. Lines that match no known shape yield a *ParseError.
func ParseLine(line string) (Instruction, error) {
	text := strings.TrimSpace(line)

	if rest, ok := strings.CutPrefix(text, promptPrefix); ok {
		return parseCommand(text, rest)
	}
	if rest, ok := strings.CutPrefix(text, dirPrefix); ok {
		if err := validateName(rest); err != nil {
			return Instruction{}, syntaxError(text, "dir: "+err.Error())
		}
		return Instruction{Kind: DirEntry, Name: rest}, nil
	}
	return parseFile(text)
}

func parseCommand(text, cmd string) (Instruction, error) {
	if cmd == "ls" {
		return Instruction{Kind: ListRequest}, nil
	}
	target, ok := strings.CutPrefix(cmd, cdPrefix)
	if !ok {
		return Instruction{}, syntaxError(text, "unknown command")
	}
	switch target {
	case "/":
		return Instruction{Kind: NavigateRoot}, nil
	case "..":
		return Instruction{Kind: NavigateUp}, nil
	}
	if err := validateName(target); err != nil {
		return Instruction{}, syntaxError(text, "cd: "+err.Error())
	}
	return Instruction{Kind: NavigateInto, Name: target}, nil
}

// parseFile handles "<size> <name>" listing lines.
func parseFile(text string) (Instruction, error) {
	sep := strings.IndexFunc(text, unicode.IsSpace)
	if sep <= 0 {
		return Instruction{}, syntaxError(text, "expected command, dir or file entry")
	}
	size, err := strconv.ParseUint(text[:sep], 10, 64)
	if err != nil {
		return Instruction{}, syntaxError(text, "invalid file size")
	}
	// File names never become tree nodes, so any non-empty remainder is kept.
	name := strings.TrimLeftFunc(text[sep:], unicode.IsSpace)
	if name == "" {
		return Instruction{}, syntaxError(text, "file: empty name")
	}
	return Instruction{Kind: FileEntry, Name: name, Size: size}, nil
}

// Parse reads a whole transcript, one instruction per non-blank line.
// The first malformed line aborts parsing; no partial result is returned.
func Parse(r io.Reader) ([]Instruction, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1024), maxLineSize)

	var out []Instruction
	lineNum := 0
	for sc.Scan() {
		lineNum++
		raw := sc.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}

		in, err := ParseLine(raw)
		if err != nil {
			if pe, ok := err.(*ParseError); ok {
				pe.Line = lineNum
			}
			parseLogger.Debug("Rejecting transcript at line %d: %v", lineNum, err)
			return nil, err
		}
		in.Line = lineNum
		parseLogger.Trace("line %d: %s", lineNum, in)
		out = append(out, in)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	parseLogger.Debug("Parsed %d instructions from %d lines", len(out), lineNum)
	return out, nil
}

func syntaxError(text, reason string) *ParseError {
	return &ParseError{Text: text, Reason: reason}
}

// nameError is the reason a name is not a single path segment.
type nameError string

func (e nameError) Error() string { return string(e) }

// validateName checks that a directory name is one path segment: non-empty,
// not "." or "..", and without separators.
func validateName(name string) error {
	switch {
	case name == "":
		return nameError("empty name")
	case name == "." || name == "..":
		return nameError("reserved name " + strconv.Quote(name))
	case strings.Contains(name, "/"):
		return nameError("name contains a path separator")
	}
	return nil
}
