package codebase

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/cnote/lexer"
	"github.com/dhamidi/cnote/project"
)

const lsName = "cnote"

var log = commonlog.GetLogger("cnote.lsp")

type LSPServer struct {
	codebase    *Codebase
	watcher     *FileWatcher
	handler     protocol.Handler
	server      *server.Server
	version     string
	licenseFile string
	notify      glsp.NotifyFunc
}

// NewLSPServer creates a server. licenseFile overrides the license file named
// in the project configuration.
func NewLSPServer(version, licenseFile string) *LSPServer {
	ls := &LSPServer{
		version:     version,
		licenseFile: licenseFile,
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
		TextDocumentHover:      ls.textDocumentHover,
		TextDocumentFormatting: ls.textDocumentFormatting,
		WorkspaceSymbol:        ls.workspaceSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := getRootDir()
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	cfg, cfgPath, err := project.LoadFrom(rootDir)
	if err != nil {
		log.Warningf("%s, using defaults", err)
		cfg = project.DefaultConfig()
		cfgPath = ""
	}

	ls.codebase = New(rootDir, project.NewMatcher(cfg.Exclude))

	licensePath := ls.licenseFile
	if licensePath == "" && cfg.License.File != "" {
		licensePath = cfg.License.File
		if cfgPath != "" {
			licensePath = project.ResolvePath(cfgPath, licensePath)
		} else if !filepath.IsAbs(licensePath) {
			licensePath = filepath.Join(rootDir, licensePath)
		}
	}
	ls.watcher = NewFileWatcher(ls.codebase, licensePath)
	ls.watcher.OnLicenseChange = ls.publishOpen

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
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
	ls.notify = ctx.Notify
	ls.watcher.Start()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
	}
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
	ls.codebase.SetOpen(path, true)
	ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text))
	ls.publish(ctx.Notify, path)
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
			ls.codebase.UpdateFile(path, []byte(textChange.Text))
			ls.publish(ctx.Notify, path)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.SetOpen(path, false)
	if err := ls.codebase.ScanFile(path); err != nil {
		ls.codebase.RemoveFile(path)
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, []byte(*params.Text))
	} else {
		ls.codebase.ScanFile(path)
	}
	ls.publish(ctx.Notify, path)
	return nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	text, ok := ls.codebase.HoverText(path, int(params.Position.Line), int(params.Position.Character))
	if !ok {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: text,
		},
	}, nil
}

func (ls *LSPServer) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	info := ls.codebase.GetFile(path)
	if info == nil {
		return nil, nil
	}
	cleaned, changed := ls.codebase.Cleaned(path)
	if !changed {
		return nil, nil
	}
	return []protocol.TextEdit{{
		Range:   toRange(info.Content, lexer.Span{Start: 0, End: len(info.Content)}),
		NewText: string(cleaned),
	}}, nil
}

func (ls *LSPServer) workspaceSymbol(ctx *glsp.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	if len(ls.codebase.Paths()) == 0 {
		ls.codebase.ScanAll()
	}
	var symbols []protocol.SymbolInformation
	for _, sym := range ls.codebase.Symbols(params.Query) {
		info := ls.codebase.GetFile(sym.Path)
		if info == nil {
			continue
		}
		symbols = append(symbols, protocol.SymbolInformation{
			Name: sym.Name,
			Kind: toProtocolKind(sym.Kind),
			Location: protocol.Location{
				URI:   pathToURI(sym.Path),
				Range: toRange(info.Content, sym.Entry.Signature),
			},
		})
	}
	return symbols, nil
}

func (ls *LSPServer) publishOpen() {
	if ls.notify == nil {
		return
	}
	for _, path := range ls.codebase.OpenPaths() {
		ls.publish(ls.notify, path)
	}
}

func (ls *LSPServer) publish(notify glsp.NotifyFunc, path string) {
	info := ls.codebase.GetFile(path)
	if info == nil {
		return
	}
	diags := []protocol.Diagnostic{}
	source := lsName
	for _, d := range ls.codebase.Diagnostics(path) {
		severity := protocol.DiagnosticSeverity(d.Severity)
		diags = append(diags, protocol.Diagnostic{
			Range:    toRange(info.Content, d.Span),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: d.Code},
			Source:   &source,
			Message:  d.Message,
		})
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: diags,
	})
}

func toRange(content []byte, span lexer.Span) protocol.Range {
	startLine, startCol := lexer.LineCol(content, span.Start)
	endLine, endCol := lexer.LineCol(content, span.End)
	return protocol.Range{
		Start: protocol.Position{Line: protocol.UInteger(startLine), Character: protocol.UInteger(startCol)},
		End:   protocol.Position{Line: protocol.UInteger(endLine), Character: protocol.UInteger(endCol)},
	}
}

func toProtocolKind(kind SymbolKind) protocol.SymbolKind {
	switch kind {
	case SymbolFunction:
		return protocol.SymbolKindFunction
	case SymbolStruct:
		return protocol.SymbolKindStruct
	case SymbolEnum:
		return protocol.SymbolKindEnum
	case SymbolType:
		return protocol.SymbolKindClass
	default:
		return protocol.SymbolKindVariable
	}
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

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}

func getRootDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}
