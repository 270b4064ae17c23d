// Package transcript turns the text of a shell session (cd/ls commands and
// their listing output) into typed instructions.
package transcript

import "fmt"

// Kind identifies the shape of an Instruction.
type Kind int

const (
	NavigateRoot Kind = iota + 1
	NavigateUp
	NavigateInto
	ListRequest
	DirEntry
	FileEntry
)

var kindNames = map[Kind]string{
	NavigateRoot: "cd /",
	NavigateUp:   "cd ..",
	NavigateInto: "cd",
	ListRequest:  "ls",
	DirEntry:     "dir",
	FileEntry:    "file",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Instruction is one parsed transcript line. Name is set for NavigateInto,
// DirEntry and FileEntry; Size only for FileEntry.
type Instruction struct {
	Kind Kind
	Name string
	Size uint64
	Line int // 1-based source line, 0 when parsed standalone
}

func (in Instruction) String() string {
	switch in.Kind {
	case NavigateRoot, NavigateUp, ListRequest:
		return "$ " + in.Kind.String()
	case NavigateInto:
		return "$ cd " + in.Name
	case DirEntry:
		return "dir " + in.Name
	case FileEntry:
		return fmt.Sprintf("%d %s", in.Size, in.Name)
	default:
		return in.Kind.String()
	}
}
