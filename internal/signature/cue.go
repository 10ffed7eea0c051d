package signature

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// LoadCUE reads signature declarations from a CUE file.
//
// The file declares callables under a top-level "signature" struct:
//
//	signature: {
//		render: {
//			params: ["a", "b", "c"]
//			results: 1
//		}
//		format: {
//			params: ["spec", "args"]
//			variadic: true
//		}
//	}
//
// params defaults to an empty list and results to 0. Views are returned in
// declaration order.
func LoadCUE(path string) ([]View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ResolveError{Code: ErrCodeNoSource, Message: "reading " + path, Err: err}
	}
	return ParseCUE(path, data)
}

// ParseCUE is LoadCUE for in-memory source. filename is used in positions.
func ParseCUE(filename string, src []byte) ([]View, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, cueError(err)
	}

	sigs := v.LookupPath(cue.ParsePath("signature"))
	if !sigs.Exists() {
		return nil, &ResolveError{
			Code:    ErrCodeDeclaration,
			Message: filename + ": no signature struct",
		}
	}

	iter, err := sigs.Fields()
	if err != nil {
		return nil, cueError(err)
	}

	var views []View
	for iter.Next() {
		view, err := parseDeclaration(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// LoadCUEInto loads declarations from path and declares each one in r.
func LoadCUEInto(r *Registry, path string) ([]View, error) {
	views, err := LoadCUE(path)
	if err != nil {
		return nil, err
	}
	for _, view := range views {
		if err := r.Declare(view); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return views, nil
}

func parseDeclaration(name string, v cue.Value) (View, error) {
	view := View{Name: name, Params: []string{}}

	if pv := v.LookupPath(cue.ParsePath("params")); pv.Exists() {
		list, err := pv.List()
		if err != nil {
			return View{}, declError(name, "params must be a list of strings", err)
		}
		for list.Next() {
			p, err := list.Value().String()
			if err != nil {
				return View{}, declError(name, "params must be a list of strings", err)
			}
			view.Params = append(view.Params, p)
		}
	}

	if rv := v.LookupPath(cue.ParsePath("results")); rv.Exists() {
		n, err := rv.Int64()
		if err != nil {
			return View{}, declError(name, "results must be an integer", err)
		}
		view.Results = int(n)
	}

	if vv := v.LookupPath(cue.ParsePath("variadic")); vv.Exists() {
		b, err := vv.Bool()
		if err != nil {
			return View{}, declError(name, "variadic must be a boolean", err)
		}
		view.Variadic = b
	}

	if err := view.Validate(); err != nil {
		return View{}, err
	}
	return view, nil
}

func declError(name, msg string, err error) error {
	return &ResolveError{Code: ErrCodeDeclaration, Func: name, Message: msg, Err: cueError(err)}
}

// cueError flattens a CUE error list to its first error, keeping position info.
func cueError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	msg := first.Error()
	if positions := cueerrors.Positions(first); len(positions) > 0 && positions[0].IsValid() {
		pos := positions[0]
		msg = fmt.Sprintf("%s:%d:%d: %s", pos.Filename(), pos.Line(), pos.Column(), msg)
	}
	return &ResolveError{Code: ErrCodeDeclaration, Message: msg}
}
