package tip

import (
	"context"
	"sync"

	"github.com/cristianoliveira/tip/internal/surface/term"
)

var (
	defaultMu sync.Mutex
	std       *Toolkit
)

// Default returns the process wide Toolkit, creating one bound to a new
// terminal surface on first use.
func Default() *Toolkit {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if std == nil {
		std = New(term.New(nil))
	}
	return std
}

// SetDefault replaces the process wide Toolkit.
func SetDefault(t *Toolkit) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	std = t
}

// Toast calls Default().Toast.
func Toast(message string, typ Type, opts Options) (string, error) {
	return Default().Toast(message, typ, opts)
}

// ShowSuccess calls Default().Success.
func ShowSuccess(message string, opts Options) (string, error) {
	return Default().Success(message, opts)
}

// ShowError calls Default().Error.
func ShowError(message string, opts Options) (string, error) {
	return Default().Error(message, opts)
}

// ShowInfo calls Default().Info.
func ShowInfo(message string, opts Options) (string, error) {
	return Default().Info(message, opts)
}

// ShowWarning calls Default().Warning.
func ShowWarning(message string, opts Options) (string, error) {
	return Default().Warning(message, opts)
}

// CloseToast calls Default().CloseToast.
func CloseToast(id string) { Default().CloseToast(id) }

// ClearToasts calls Default().ClearToasts.
func ClearToasts() { Default().ClearToasts() }

// Confirm calls Default().Confirm.
func Confirm(message string, fn func(confirmed bool), opts Options) (string, error) {
	return Default().Confirm(message, fn, opts)
}

// Prompt calls Default().Prompt.
func Prompt(message string, fn func(value string, ok bool), opts Options) (string, error) {
	return Default().Prompt(message, fn, opts)
}

// ConfirmAwait calls Default().ConfirmAwait.
func ConfirmAwait(ctx context.Context, message string, opts Options) (bool, error) {
	return Default().ConfirmAwait(ctx, message, opts)
}

// PromptAwait calls Default().PromptAwait.
func PromptAwait(ctx context.Context, message string, opts Options) (string, bool, error) {
	return Default().PromptAwait(ctx, message, opts)
}

// CloseModal calls Default().CloseModal.
func CloseModal(id string, confirmed bool) { Default().CloseModal(id, confirmed) }

// CloseAllModals calls Default().CloseAllModals.
func CloseAllModals() { Default().CloseAllModals() }

// Loading returns Default().Loading().
func Loading() LoadingHandle { return Default().Loading() }

// ShowLoading calls Default().ShowLoading.
func ShowLoading(message string) error { return Default().ShowLoading(message) }

// CloseLoading calls Default().CloseLoading.
func CloseLoading() { Default().CloseLoading() }

// CloseAllLoading calls Default().CloseAllLoading.
func CloseAllLoading() { Default().CloseAllLoading() }

// ClearAll calls Default().ClearAll.
func ClearAll() { Default().ClearAll() }

// Destroy calls Default().Destroy.
func Destroy() { Default().Destroy() }

// Configure calls Default().Configure.
func Configure(c Config) { Default().Configure(c) }

// GetConfig returns Default().Config().
func GetConfig() Config { return Default().Config() }

// Init calls Default().Init.
func Init() error { return Default().Init() }
