// Package workspace keeps the parse results of a tree of command files
// up to date and serves them to editors over the Language Server
// Protocol.
package workspace

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dhamidi/cmdtree/format"
	"github.com/dhamidi/cmdtree/parser"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("cmdtree.workspace")

type Workspace struct {
	mu            sync.RWMutex
	rootDir       string
	parser        *parser.Parser
	include       []string
	exclude       []string
	commentPrefix string
	files         map[string]*FileInfo
}

// Line is one command line of a file. Number is 1-based.
type Line struct {
	Number int
	Text   string
	Result *parser.Result
}

type FileInfo struct {
	Path    string
	Content []byte
	Lines   []Line
}

// Failures returns the lines whose command did not parse.
func (f *FileInfo) Failures() []Line {
	var out []Line
	for _, l := range f.Lines {
		if !l.Result.OK() {
			out = append(out, l)
		}
	}
	return out
}

// Line returns the command on line number n, or nil if that line is blank,
// a comment or out of range.
func (f *FileInfo) Line(n int) *Line {
	i, found := slices.BinarySearchFunc(f.Lines, n, func(l Line, n int) int {
		return l.Number - n
	})
	if !found {
		return nil
	}
	return &f.Lines[i]
}

type Option func(*Workspace)

// WithInclude sets the doublestar patterns, relative to the root, that
// select command files.
func WithInclude(patterns ...string) Option {
	return func(w *Workspace) {
		w.include = patterns
	}
}

func WithExclude(patterns ...string) Option {
	return func(w *Workspace) {
		w.exclude = patterns
	}
}

func WithCommentPrefix(prefix string) Option {
	return func(w *Workspace) {
		w.commentPrefix = prefix
	}
}

func New(rootDir string, p *parser.Parser, opts ...Option) *Workspace {
	w := &Workspace{
		rootDir:       rootDir,
		parser:        p,
		include:       []string{"**/*.mcfunction"},
		commentPrefix: "#",
		files:         make(map[string]*FileInfo),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

func (w *Workspace) Parser() *parser.Parser {
	return w.parser
}

// Match reports whether path is selected by the include patterns and not
// by any exclude pattern. Paths outside the root never match.
func (w *Workspace) Match(path string) bool {
	rel, err := filepath.Rel(w.rootDir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	rel = filepath.ToSlash(rel)
	return matchAny(w.include, rel) && !matchAny(w.exclude, rel)
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// ScanAll parses every matching file below the root. Hidden directories
// are skipped. Files that cannot be read are logged and left out.
func (w *Workspace) ScanAll() error {
	return filepath.WalkDir(w.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == w.rootDir {
				return err
			}
			log.Warningf("scan %s: %s", path, err)
			return nil
		}
		if d.IsDir() {
			if path != w.rootDir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if w.Match(path) {
			if err := w.ScanFile(path); err != nil {
				log.Warningf("scan %s: %s", path, err)
			}
		}
		return nil
	})
}

func (w *Workspace) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	w.UpdateFile(path, content)
	return nil
}

// UpdateFile replaces the content of path and reparses it. The file does
// not need to exist on disk.
func (w *Workspace) UpdateFile(path string, content []byte) *FileInfo {
	info := &FileInfo{
		Path:    path,
		Content: content,
		Lines:   w.parseLines(string(content)),
	}
	log.Debugf("parsed %s: %d commands, %d failures", path, len(info.Lines), len(info.Failures()))

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = info
	return info
}

func (w *Workspace) parseLines(content string) []Line {
	var lines []Line
	for i, text := range strings.Split(content, "\n") {
		text = strings.TrimSuffix(text, "\r")
		if !format.IsCommand(text, w.commentPrefix) {
			continue
		}
		lines = append(lines, Line{
			Number: i + 1,
			Text:   text,
			Result: w.parser.Parse(text),
		})
	}
	return lines
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns every known file ordered by path.
func (w *Workspace) Files() []*FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*FileInfo, 0, len(w.files))
	for _, f := range w.files {
		out = append(out, f)
	}
	slices.SortFunc(out, func(a, b *FileInfo) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out
}

// ErrNoCommand is returned by CompleteAt when the requested line holds no
// command and is not empty.
var ErrNoCommand = errors.New("no command at position")

// CompleteAt completes the command on 1-based line number n of path at
// byte column col. An empty line completes from the root.
func (w *Workspace) CompleteAt(path string, n, col int) (parser.Completion, error) {
	file := w.GetFile(path)
	if file == nil {
		return parser.Completion{}, fs.ErrNotExist
	}
	text, ok := lineText(file.Content, n)
	if !ok {
		return parser.Completion{}, ErrNoCommand
	}
	if strings.TrimSpace(text) != "" && !format.IsCommand(text, w.commentPrefix) {
		return parser.Completion{}, ErrNoCommand
	}
	return w.parser.Complete(text, col), nil
}

func lineText(content []byte, n int) (string, bool) {
	lines := strings.Split(string(content), "\n")
	if n <= 0 || n > len(lines) {
		return "", false
	}
	return strings.TrimSuffix(lines[n-1], "\r"), true
}
