package render

import "context"

// StaticRenderer returns a fixed result and records the sources it was
// asked to render.
type StaticRenderer struct {
	Result  *Result
	Err     error
	Sources []string
}

// Render implements Renderer.
func (r *StaticRenderer) Render(ctx context.Context, sources []string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.Sources = append([]string(nil), sources...)
	if r.Err != nil {
		return nil, r.Err
	}
	return r.Result, nil
}
