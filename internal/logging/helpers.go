package logging

import "context"

// with изменяет копию logCtx из контекста (или пустую) и кладёт её обратно.
func with(ctx context.Context, mutate func(*logCtx)) context.Context {
	c, _ := ctx.Value(key).(logCtx)
	mutate(&c)
	return context.WithValue(ctx, key, c)
}

// WithLogRequestID добавляет request ID в контекст.
func WithLogRequestID(ctx context.Context, requestID string) context.Context {
	return with(ctx, func(c *logCtx) { c.RequestID = requestID })
}

// WithLogRequestPath добавляет путь запроса в контекст.
func WithLogRequestPath(ctx context.Context, path string) context.Context {
	return with(ctx, func(c *logCtx) { c.Path = path })
}

// WithLogRequestMethod добавляет метод запроса в контекст.
func WithLogRequestMethod(ctx context.Context, method string) context.Context {
	return with(ctx, func(c *logCtx) { c.Method = method })
}

// WithLogRequestStatus добавляет статус ответа в контекст.
func WithLogRequestStatus(ctx context.Context, status int) context.Context {
	return with(ctx, func(c *logCtx) { c.Status = status })
}

// WithLogRequestDuration добавляет длительность запроса в контекст.
func WithLogRequestDuration(ctx context.Context, duration string) context.Context {
	return with(ctx, func(c *logCtx) { c.RequestDuration = duration })
}

// WithLogRunID добавляет ID запуска генерации в контекст.
func WithLogRunID(ctx context.Context, runID string) context.Context {
	return with(ctx, func(c *logCtx) { c.RunID = runID })
}

// WithLogRoundNumber добавляет номер тура в контекст.
func WithLogRoundNumber(ctx context.Context, round int) context.Context {
	return with(ctx, func(c *logCtx) { c.RoundNumber = round })
}

// WithLogRosterSize добавляет размер состава (с учётом заглушки) в контекст.
func WithLogRosterSize(ctx context.Context, size int) context.Context {
	return with(ctx, func(c *logCtx) { c.RosterSize = size })
}

// WithLogRoundsRequested добавляет запрошенное число туров в контекст.
func WithLogRoundsRequested(ctx context.Context, rounds int) context.Context {
	return with(ctx, func(c *logCtx) { c.RoundsRequested = rounds })
}

// WithLogCommand добавляет имя CLI-команды в контекст.
func WithLogCommand(ctx context.Context, command string) context.Context {
	return with(ctx, func(c *logCtx) { c.Command = command })
}
