package logging

import (
	"context"
	"errors"
)

// contextError несёт поля лога с того места, где ошибка возникла, до того места,
// где она будет залогирована (обычно обработчик HTTP).
type contextError struct {
	err    error
	fields logCtx
}

func (e *contextError) Error() string { return e.err.Error() }

func (e *contextError) Unwrap() error { return e.err }

// WrapError прикрепляет к err поля лога из ctx. nil остаётся nil.
// Если err уже несёт поля, они сохраняются: ближайшее к источнику место знает больше.
func WrapError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var existing *contextError
	if errors.As(err, &existing) {
		return err
	}
	fields, _ := ctx.Value(key).(logCtx)
	return &contextError{err: err, fields: fields}
}

// ErrorCtx возвращает ctx, дополненный полями из err.
// Поля, уже заданные в ctx (например request_id), не затираются.
func ErrorCtx(ctx context.Context, err error) context.Context {
	var ce *contextError
	if !errors.As(err, &ce) {
		return ctx
	}
	current, _ := ctx.Value(key).(logCtx)
	return context.WithValue(ctx, key, mergeFields(current, ce.fields))
}

func mergeFields(dst, src logCtx) logCtx {
	if dst.RequestID == "" {
		dst.RequestID = src.RequestID
	}
	if dst.Method == "" {
		dst.Method = src.Method
	}
	if dst.Path == "" {
		dst.Path = src.Path
	}
	if dst.RunID == "" {
		dst.RunID = src.RunID
	}
	if dst.RoundNumber == 0 {
		dst.RoundNumber = src.RoundNumber
	}
	if dst.RosterSize == 0 {
		dst.RosterSize = src.RosterSize
	}
	if dst.RoundsRequested == 0 {
		dst.RoundsRequested = src.RoundsRequested
	}
	if dst.Command == "" {
		dst.Command = src.Command
	}
	return dst
}
