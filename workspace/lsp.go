package workspace

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"

	"github.com/dhamidi/cmdtree/grammar"
	"github.com/dhamidi/cmdtree/parser"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "cmdtree"

type LSPServer struct {
	parser    *parser.Parser
	opts      []Option
	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
}

// NewLSPServer returns a server checking documents with p. opts are
// passed to the Workspace created on initialize.
func NewLSPServer(version string, p *parser.Parser, opts ...Option) *LSPServer {
	ls := &LSPServer{
		parser:  p,
		opts:    opts,
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	ls.workspace = New(rootDir, ls.parser, ls.opts...)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{string(ls.parser.Separator()), "@", "[", ",", "=", "{"},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.workspace.ScanAll(); err != nil {
		log.Warningf("scan workspace: %s", err)
	}
	log.Infof("workspace %s: %d files", ls.workspace.RootDir(), len(ls.workspace.Files()))
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.update(ctx, params.TextDocument.URI, path, params.TextDocument.Text)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, path, textChange.Text)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if err := ls.workspace.ScanFile(path); err != nil {
		ls.workspace.RemoveFile(path)
		publish(ctx, params.TextDocument.URI, nil)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, path, *params.Text)
	} else if err := ls.workspace.ScanFile(path); err == nil {
		publish(ctx, params.TextDocument.URI, ls.workspace.GetFile(path))
	}
	return nil
}

func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, path, text string) {
	file := ls.workspace.UpdateFile(path, []byte(text))
	publish(ctx, uri, file)
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, file *FileInfo) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: Diagnostics(file),
	})
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	file := ls.workspace.GetFile(path)
	if file == nil {
		return nil, nil
	}

	n := int(params.Position.Line) + 1
	text, ok := lineText(file.Content, n)
	if !ok {
		return nil, nil
	}
	col := byteOffset(text, int(params.Position.Character))

	c, err := ls.workspace.CompleteAt(path, n, col)
	if err != nil {
		return nil, nil
	}
	return CompletionItems(text, int(params.Position.Line), c), nil
}

// Diagnostics converts the failed lines of file into one error diagnostic
// each. It never returns nil, so that publishing it clears old
// diagnostics.
func Diagnostics(file *FileInfo) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}
	if file == nil {
		return diagnostics
	}
	source := lsName
	severity := protocol.DiagnosticSeverityError
	for _, l := range file.Failures() {
		e := l.Result.Err
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    lineRange(l.Text, l.Number-1, e.Start, e.End),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: e.Kind.String()},
			Source:   &source,
			Message:  diagnosticMessage(l.Result),
		})
	}
	return diagnostics
}

func diagnosticMessage(r *parser.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %q", r.Err.Message, r.Err.Text)
	if hint := r.DidYouMean(); hint != "" {
		fmt.Fprintf(&sb, ", did you mean %q?", hint)
	}
	return sb.String()
}

// CompletionItems turns c into items that replace c's span on line.
// SortText keeps the parser's ranking.
func CompletionItems(text string, line int, c parser.Completion) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0, len(c.Suggestions))
	r := lineRange(text, line, c.Start, c.End)
	for i, s := range c.Suggestions {
		kind := completionKind(s)
		sortText := fmt.Sprintf("%04d", i)
		item := protocol.CompletionItem{
			Label:    s.Text,
			Kind:     &kind,
			SortText: &sortText,
			TextEdit: protocol.TextEdit{Range: r, NewText: s.Text},
		}
		if s.Hint != "" {
			detail := s.Hint
			item.Detail = &detail
		}
		items = append(items, item)
	}
	return items
}

func completionKind(s grammar.Suggestion) protocol.CompletionItemKind {
	if s.Text == "" {
		return protocol.CompletionItemKindText
	}
	for i := 0; i < len(s.Text); i++ {
		if grammar.IsTerminator(s.Text[i]) {
			return protocol.CompletionItemKindOperator
		}
	}
	if s.Text[0] >= '0' && s.Text[0] <= '9' {
		return protocol.CompletionItemKindValue
	}
	return protocol.CompletionItemKindKeyword
}

func lineRange(text string, line, start, end int) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(utf16Column(text, start))},
		End:   protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(utf16Column(text, end))},
	}
}

// utf16Column converts a byte offset in text to a UTF-16 code unit column.
func utf16Column(text string, offset int) int {
	offset = min(offset, len(text))
	col := 0
	for _, r := range text[:offset] {
		col += utf16.RuneLen(r)
	}
	return col
}

// byteOffset converts a UTF-16 code unit column in text to a byte offset.
func byteOffset(text string, col int) int {
	units := 0
	for i, r := range text {
		if units >= col {
			return i
		}
		units += utf16.RuneLen(r)
	}
	return len(text)
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
