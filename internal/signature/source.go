package signature

import (
	"go/ast"
	"go/build"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// Source resolves parameter names by parsing the Go file that declares a
// function. Parsed files are cached for the lifetime of the Source.
//
// Source is safe for concurrent use.
type Source struct {
	mu    sync.Mutex
	fset  *token.FileSet
	files map[string]*ast.File
	dirs  map[string]string // package path -> directory
}

// NewSource returns a Source with an empty file cache.
func NewSource() *Source {
	return &Source{
		fset:  token.NewFileSet(),
		files: make(map[string]*ast.File),
		dirs:  make(map[string]string),
	}
}

// methodValueSuffix marks the compiler-generated wrapper behind a method
// value such as obj.Method.
const methodValueSuffix = "-fm"

// funcLitName matches runtime names of function literals: outer.func1,
// outer.func1.2, glob..func3.
var funcLitName = regexp.MustCompile(`\.func\d+(\.\d+)*$`)

// Signature implements Provider.
func (s *Source) Signature(fn any) (View, error) {
	v, err := funcValue(fn)
	if err != nil {
		return View{}, err
	}

	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return View{}, &ResolveError{Code: ErrCodeNoSource, Message: "no runtime information for function"}
	}
	name := rf.Name()

	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.HasSuffix(name, methodValueSuffix) {
		return s.methodValue(name, v.Type())
	}

	file, line := rf.FileLine(rf.Entry())
	f, err := s.parse(file)
	if err != nil {
		return View{}, &ResolveError{Code: ErrCodeNoSource, Func: name, Message: "cannot parse " + file, Err: err}
	}
	if pkg, _, ok := splitFuncName(name); ok {
		s.dirs[pkg] = filepath.Dir(file)
	}

	recv, ft, err := s.enclosing(f, line, v.Type(), isFuncLit(name))
	if err != nil {
		if re, ok := err.(*ResolveError); ok {
			re.Func = name
		}
		return View{}, err
	}
	if ft == nil {
		return View{}, &ResolveError{
			Code:    ErrCodeNotFound,
			Func:    name,
			Message: "no function declaration at " + file + ":" + strconv.Itoa(line),
		}
	}

	view := fromFuncType(name, ft)

	// Method expressions take the receiver as their first argument.
	if recv != nil && v.Type().NumIn() == countFields(ft.Params)+1 {
		if names := fieldNames(recv); len(names) == 1 {
			view.Params = append([]string{names[0]}, view.Params...)
		}
	}
	return view, nil
}

// methodValue resolves a bound method by finding its declaration among the
// files of the declaring package. The receiver is not a parameter of the
// bound function.
func (s *Source) methodValue(name string, typ reflect.Type) (View, error) {
	trimmed := strings.TrimSuffix(name, methodValueSuffix)
	pkg, rest, ok := splitFuncName(trimmed)
	dot := strings.LastIndex(rest, ".")
	if !ok || dot < 0 {
		return View{}, &ResolveError{Code: ErrCodeNotFound, Func: name, Message: "unrecognized method value name"}
	}
	recvType := receiverTypeName(rest[:dot])
	method := rest[dot+1:]

	dir, err := s.packageDir(pkg)
	if err != nil {
		return View{}, &ResolveError{Code: ErrCodeNoSource, Func: name, Message: "cannot locate package " + pkg, Err: err}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return View{}, &ResolveError{Code: ErrCodeNoSource, Func: name, Message: "cannot read " + dir, Err: err}
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") {
			continue
		}
		f, err := s.parse(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		for _, decl := range f.Decls {
			fd, ok := decl.(*ast.FuncDecl)
			if !ok || fd.Recv == nil || fd.Name.Name != method {
				continue
			}
			if len(fd.Recv.List) != 1 || receiverTypeName(exprTypeName(fd.Recv.List[0].Type)) != recvType {
				continue
			}
			if countFields(fd.Type.Params) != typ.NumIn() {
				continue
			}
			return fromFuncType(trimmed, fd.Type), nil
		}
	}
	return View{}, &ResolveError{
		Code:    ErrCodeNotFound,
		Func:    name,
		Message: "no declaration of method " + recvType + "." + method + " in " + dir,
	}
}

// packageDir returns the source directory of an import path, preferring
// directories already seen for it.
func (s *Source) packageDir(pkg string) (string, error) {
	if dir, ok := s.dirs[pkg]; ok {
		return dir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	p, err := build.Default.Import(pkg, wd, build.FindOnly)
	if err != nil {
		return "", err
	}
	s.dirs[pkg] = p.Dir
	return p.Dir, nil
}

// isFuncLit reports whether a runtime name belongs to a function literal.
func isFuncLit(name string) bool {
	_, rest, ok := splitFuncName(name)
	return ok && funcLitName.MatchString(rest)
}

// splitFuncName splits a runtime function name into its import path and the
// remainder. Dots in the last path element are escaped as %2e by the runtime.
func splitFuncName(name string) (pkg, rest string, ok bool) {
	slash := strings.LastIndex(name, "/")
	dot := strings.Index(name[slash+1:], ".")
	if dot < 0 {
		return "", "", false
	}
	dot += slash + 1
	return strings.ReplaceAll(name[:dot], "%2e", "."), name[dot+1:], true
}

// receiverTypeName reduces "(*T)", "T[...]" and "*T" to "T".
func receiverTypeName(s string) string {
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	s = strings.TrimPrefix(s, "*")
	if i := strings.Index(s, "["); i >= 0 {
		s = s[:i]
	}
	return s
}

func exprTypeName(e ast.Expr) string {
	switch t := e.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return exprTypeName(t.X)
	case *ast.IndexExpr:
		return exprTypeName(t.X)
	case *ast.IndexListExpr:
		return exprTypeName(t.X)
	case *ast.ParenExpr:
		return exprTypeName(t.X)
	}
	return ""
}

func (s *Source) parse(path string) (*ast.File, error) {
	if f, ok := s.files[path]; ok {
		return f, nil
	}
	f, err := parser.ParseFile(s.fset, path, nil, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}
	s.files[path] = f
	return f, nil
}

type candidate struct {
	recv *ast.FieldList
	ft   *ast.FuncType
	lit  bool
	span int
}

// enclosing finds the function declaration or literal for the entry line.
//
// Nodes starting on line are preferred. Among those, only nodes whose arity
// fits typ and whose kind (literal or declaration) matches lit are kept; more
// than one survivor is an AMBIGUOUS error. Without a node starting on line,
// the innermost node spanning it is used.
func (s *Source) enclosing(f *ast.File, line int, typ reflect.Type, lit bool) (*ast.FieldList, *ast.FuncType, error) {
	var (
		exact    []candidate
		inner    candidate
		hasInner bool
	)

	consider := func(c candidate, start, end token.Pos) {
		startLine := s.fset.Position(start).Line
		endLine := s.fset.Position(end).Line
		if line < startLine || line > endLine {
			return
		}
		c.span = endLine - startLine
		if startLine == line {
			exact = append(exact, c)
			return
		}
		if !hasInner || c.span < inner.span {
			inner, hasInner = c, true
		}
	}

	ast.Inspect(f, func(n ast.Node) bool {
		switch fn := n.(type) {
		case *ast.FuncDecl:
			consider(candidate{recv: fn.Recv, ft: fn.Type}, fn.Pos(), fn.End())
		case *ast.FuncLit:
			consider(candidate{ft: fn.Type, lit: true}, fn.Pos(), fn.End())
		}
		return true
	})

	if len(exact) == 0 {
		if !hasInner {
			return nil, nil, nil
		}
		return inner.recv, inner.ft, nil
	}

	var fits []candidate
	for _, c := range exact {
		n := countFields(c.ft.Params)
		if c.lit != lit {
			continue
		}
		if n == typ.NumIn() || (c.recv != nil && n+1 == typ.NumIn()) {
			fits = append(fits, c)
		}
	}
	switch len(fits) {
	case 0:
		return nil, nil, nil
	case 1:
		return fits[0].recv, fits[0].ft, nil
	default:
		return nil, nil, &ResolveError{
			Code:    ErrCodeAmbiguous,
			Message: strconv.Itoa(len(fits)) + " functions of the same shape start on line " + strconv.Itoa(line),
		}
	}
}

func fromFuncType(name string, ft *ast.FuncType) View {
	view := View{Name: name, Params: fieldNames(ft.Params)}
	if ft.Params != nil && len(ft.Params.List) > 0 {
		_, view.Variadic = ft.Params.List[len(ft.Params.List)-1].Type.(*ast.Ellipsis)
	}
	view.Results = countFields(ft.Results)
	return view
}

// fieldNames returns the named, non-blank identifiers in fl.
func fieldNames(fl *ast.FieldList) []string {
	var names []string
	if fl == nil {
		return names
	}
	for _, field := range fl.List {
		for _, id := range field.Names {
			if id.Name != "_" {
				names = append(names, id.Name)
			}
		}
	}
	return names
}

// countFields counts declared entries, named or not.
func countFields(fl *ast.FieldList) int {
	if fl == nil {
		return 0
	}
	n := 0
	for _, field := range fl.List {
		if len(field.Names) == 0 {
			n++
			continue
		}
		n += len(field.Names)
	}
	return n
}
