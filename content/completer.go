package content

import "context"

// Completer sends one prompt to the generator and returns its text. Errors
// should wrap ErrNetworkFailure or ErrMalformedPayload.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type CompleterFunc func(ctx context.Context, prompt string) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
