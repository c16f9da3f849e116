// Package includegraph tracks the include/pragma graph a source-level
// include resolver builds while walking a project's files: FileStack
// drives the worklist of files still to be parsed, and IncludesGraph
// records which files pull in which others (and under which custom-gates
// pragma) so get_problematic_paths-equivalent enumeration can flag every
// path that leads from a file using a custom gate, through the files that
// include it, to a file that doesn't declare the pragma.
package includegraph

import (
	"fmt"
	"path/filepath"
	"strings"

	"arcc/internal/diag"
	"arcc/internal/source"
)

// FileOsError wraps a failure to resolve an included file to a canonical
// path (missing file, broken symlink, permission error). It is the one
// recoverable error surface in this package: the caller reports it and
// moves on, it never terminates the include walk.
type FileOsError struct {
	Path string
	Err  error
}

func (e *FileOsError) Error() string {
	return fmt.Sprintf("cannot resolve included file %q: %v", e.Path, e.Err)
}

func (e *FileOsError) Unwrap() error { return e.Err }

// Diagnostic renders the error as a diag.Diagnostic carrying IncludeOsError.
// It carries no source span: an unresolvable include is reported against
// the file being parsed, not a position within it, and the caller is
// expected to attach that context (e.g. via WithNote) if it has one.
func (e *FileOsError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.IncludeOsError, source.Span{}, e.Error())
}

// FileStack is the worklist of files still to be parsed. Paths already
// taken out of the stack are remembered in blackPaths so re-including an
// already-visited file is silently dropped rather than re-queued.
type FileStack struct {
	currentLocation string
	blackPaths      map[string]bool
	stack           []string
}

// NewFileStack seeds the worklist with src, the entry file.
func NewFileStack(src string) *FileStack {
	return &FileStack{
		currentLocation: filepath.Dir(src),
		blackPaths:      make(map[string]bool),
		stack:           []string{src},
	}
}

// AddInclude resolves path relative to the current file's directory and
// pushes it onto the worklist, unless it has already been taken (in
// which case it is silently dropped: re-including a file already parsed
// is not an error, just a no-op). Returns a *FileOsError if path cannot
// be resolved to a real file.
func (fs *FileStack) AddInclude(path string) error {
	resolved, err := resolve(fs.currentLocation, path)
	if err != nil {
		return &FileOsError{Path: path, Err: err}
	}
	if !fs.blackPaths[resolved] {
		fs.stack = append(fs.stack, resolved)
	}
	return nil
}

// TakeNext pops the next not-yet-visited file off the worklist, marks it
// visited, and updates the current directory to its own. Returns
// ("", false) once the worklist is exhausted.
func (fs *FileStack) TakeNext() (string, bool) {
	for len(fs.stack) > 0 {
		file := fs.stack[len(fs.stack)-1]
		fs.stack = fs.stack[:len(fs.stack)-1]
		if fs.blackPaths[file] {
			continue
		}
		fs.currentLocation = filepath.Dir(file)
		fs.blackPaths[file] = true
		return file, true
	}
	return "", false
}

// includesNode is one file in the includes graph.
type includesNode struct {
	path              string
	customGatesPragma bool
}

// IncludesGraph records, for every parsed file, whether it declares the
// custom-gates pragma and which files include it.
type IncludesGraph struct {
	nodes            []includesNode
	adjacency        map[string][]int
	customGatesNodes []int
}

// NewIncludesGraph returns an empty graph.
func NewIncludesGraph() *IncludesGraph {
	return &IncludesGraph{adjacency: make(map[string][]int)}
}

// AddNode records a newly parsed file. customGatesUsage marks a file that
// actually uses a custom gate, which makes it a traversal root for
// GetProblematicPaths.
func (g *IncludesGraph) AddNode(path string, customGatesPragma, customGatesUsage bool) {
	g.nodes = append(g.nodes, includesNode{path: path, customGatesPragma: customGatesPragma})
	if customGatesUsage {
		g.customGatesNodes = append(g.customGatesNodes, len(g.nodes)-1)
	}
}

// AddEdge records that the most recently added node includes path.
func (g *IncludesGraph) AddEdge(path string) error {
	if len(g.nodes) == 0 {
		return fmt.Errorf("includegraph: AddEdge called before any AddNode")
	}
	last := g.nodes[len(g.nodes)-1]
	resolved, err := resolve(filepath.Dir(last.path), path)
	if err != nil {
		return &FileOsError{Path: path, Err: err}
	}
	g.adjacency[resolved] = append(g.adjacency[resolved], len(g.nodes)-1)
	return nil
}

// edge is a (from, to) node-index pair.
type edge struct{ from, to int }

// GetProblematicPaths enumerates every path, starting from a node that
// actually uses a custom gate, that reaches a file not declaring the
// custom-gates pragma. Each path being extended carries its own copy of
// the traversedEdges set rather than sharing one globally: the same file can legitimately
// appear in more than one reported path if it's reached via distinct
// edges, so a global visited set would under-report. This is deliberate
// and can blow up exponentially on a densely connected graph; that
// tradeoff is accepted because include graphs in practice are shallow
// trees, not dense meshes.
func (g *IncludesGraph) GetProblematicPaths() [][]string {
	var problematic [][]string
	for _, from := range g.customGatesNodes {
		problematic = append(problematic, g.traverse(from, nil, nil)...)
	}
	return problematic
}

func (g *IncludesGraph) traverse(from int, path []string, traversedEdges map[edge]bool) [][]string {
	var problematic [][]string
	node := g.nodes[from]

	newPath := make([]string, len(path), len(path)+1)
	copy(newPath, path)
	newPath = append(newPath, node.path)

	if !node.customGatesPragma {
		problematic = append(problematic, newPath)
	}

	for _, to := range g.adjacency[node.path] {
		e := edge{from, to}
		if traversedEdges[e] {
			continue
		}
		next := make(map[edge]bool, len(traversedEdges)+1)
		for k := range traversedEdges {
			next[k] = true
		}
		next[e] = true
		problematic = append(problematic, g.traverse(to, newPath, next)...)
	}
	return problematic
}

// DisplayPath renders a reported path as "a.circom -> b.circom -> c.circom".
func DisplayPath(path []string) string {
	names := make([]string, len(path))
	for i, p := range path {
		names[i] = filepath.Base(p)
	}
	return strings.Join(names, " -> ")
}

func resolve(dir, path string) (string, error) {
	candidate := filepath.Join(dir, path)
	return filepath.EvalSymlinks(candidate)
}
