package signature

import "errors"

// Chain tries each provider in order and returns the first success.
//
// If every provider fails, the returned error joins all failures. A
// NOT_A_FUNC failure stops the chain early since no provider can recover
// from it.
type Chain []Provider

// Signature implements Provider.
func (c Chain) Signature(fn any) (View, error) {
	if len(c) == 0 {
		return View{}, &ResolveError{Code: ErrCodeNotFound, Message: "no signature providers configured"}
	}

	var errs []error
	for _, p := range c {
		view, err := p.Signature(fn)
		if err == nil {
			return view, nil
		}
		if CodeOf(err) == ErrCodeNotAFunc {
			return View{}, err
		}
		errs = append(errs, err)
	}
	return View{}, errors.Join(errs...)
}
