package errors

import stderrors "errors"

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *ClassifiedError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigExists(path string) *ClassifiedError {
	return New(CategoryConfig, SeverityFatal, "configuration file already exists (use --force to overwrite)").
		WithContext("path", path)
}

func ConfigInvalid(cause error) *ClassifiedError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid")
}

func ValidationFailed(field, reason string) *ClassifiedError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Page errors

// ErrContainerNotFound is the cause of every ContainerNotFound error.
var ErrContainerNotFound = stderrors.New("breadcrumb container not found")

func ContainerNotFound(id string) *ClassifiedError {
	return Wrap(ErrContainerNotFound, CategoryRender, SeverityWarning, "missing element").
		WithContext("container", id)
}

func PageParseError(page string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryRender, SeverityError, "failed to parse page").
		WithContext("page", page)
}

func PageReadError(page string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "failed to read page").
		WithContext("page", page)
}

func PageWriteError(page string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryFileSystem, SeverityError, "failed to write page").
		WithContext("page", page)
}

// Build errors

func BuildFailed(stage string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryBuild, SeverityFatal, "build failed").
		WithContext("stage", stage)
}

func DirectoryNotFound(path string) *ClassifiedError {
	return New(CategoryFileSystem, SeverityFatal, "directory not found").
		WithContext("path", path)
}

// Runtime errors

func ServerError(addr string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryNetwork, SeverityFatal, "preview server failed").
		WithContext("addr", addr)
}

func InternalError(message string, cause error) *ClassifiedError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
