package services

// Custom errors

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }

// GenerationError means the model returned no usable reply or image.
type GenerationError struct{ Message string }

func (e *GenerationError) Error() string { return e.Message }

// StorageError wraps a persistence failure; the store's message is passed
// through to the caller unchanged.
type StorageError struct{ Message string }

func (e *StorageError) Error() string { return e.Message }
