package fs

import (
	"fmt"

	"dirsize/internal/logging"
	"dirsize/internal/transcript"
)

var (
	buildLogger = logging.GetLogger().WithPrefix("build")
)

// Builder replays transcript instructions into a Tree. It owns the tree
// and the navigation cursor until Tree is called.
type Builder struct {
	tree   *Tree
	cursor Cursor
	dirs   int
	files  int
}

// NewBuilder returns a builder holding an empty root directory.
func NewBuilder() *Builder {
	return &Builder{tree: newTree()}
}

// Cursor returns the current navigation position.
func (b *Builder) Cursor() Cursor {
	return b.cursor
}

// Apply executes a single instruction. Any error leaves the builder in an
// undefined state; callers must discard it.
func (b *Builder) Apply(in transcript.Instruction) error {
	switch in.Kind {
	case transcript.NavigateRoot:
		b.cursor = nil

	case transcript.NavigateUp:
		parent, ok := b.cursor.Pop()
		if !ok {
			return b.fail(in, OpNavigateUp, fmt.Errorf("%w: cannot ascend above root", ErrNavigation))
		}
		b.cursor = parent

	case transcript.NavigateInto:
		cur, err := b.current(in, OpNavigateInto)
		if err != nil {
			return err
		}
		b.ensure(cur, in.Name)
		b.cursor = b.cursor.Push(in.Name)

	case transcript.ListRequest:
		// Listings are advisory; the entries that follow carry the data.

	case transcript.DirEntry:
		cur, err := b.current(in, OpDirEntry)
		if err != nil {
			return err
		}
		b.ensure(cur, in.Name)

	case transcript.FileEntry:
		cur, err := b.current(in, OpFileEntry)
		if err != nil {
			return err
		}
		// Same-named files both count; listings are taken literally.
		if !cur.addFile(in.Size) {
			return b.fail(in, OpFileEntry, ErrSizeOverflow)
		}
		b.files++

	default:
		return b.fail(in, in.Kind.String(), fmt.Errorf("%w: unknown instruction kind %d", ErrNavigation, int(in.Kind)))
	}
	return nil
}

// Tree hands over the built tree. Later instructions that touch the tree
// fail with ErrNavigation.
func (b *Builder) Tree() *Tree {
	t := b.tree
	b.tree = nil
	b.cursor = nil
	return t
}

func (b *Builder) current(in transcript.Instruction, op string) (*Node, error) {
	if b.tree == nil {
		return nil, b.fail(in, op, fmt.Errorf("%w: tree already handed over", ErrNavigation))
	}
	n, ok := b.tree.resolve(b.cursor)
	if !ok {
		return nil, b.fail(in, op, fmt.Errorf("%w: cursor does not resolve", ErrNavigation))
	}
	return n, nil
}

func (b *Builder) ensure(parent *Node, name string) {
	if _, created := parent.ensureChild(name); created {
		b.dirs++
		buildLogger.Trace("Created directory %q", ChildPath(b.cursor.String(), name))
	}
}

func (b *Builder) fail(in transcript.Instruction, op string, err error) error {
	fsErr := NewError(op, b.cursor.String(), err)
	fsErr.Line = in.Line
	return fsErr
}

// Build replays instrs in order and returns the resulting tree. The first
// failing instruction aborts the build.
func Build(instrs []transcript.Instruction) (*Tree, error) {
	b := NewBuilder()
	for _, in := range instrs {
		if err := b.Apply(in); err != nil {
			buildLogger.Debug("Build aborted: %v", err)
			return nil, err
		}
	}
	buildLogger.Debug("Built tree: %d directories, %d file entries", b.dirs+1, b.files)
	return b.Tree(), nil
}
