// Package surface defines the rendering collaborator the feedback core
// drives. The core owns lifecycle and bookkeeping; a Surface owns the
// containers, the visuals and the input events.
package surface

import (
	"errors"
	"time"
)

// ErrNoContainer is returned by mount operations when the target container
// does not exist (before Setup or after Teardown).
var ErrNoContainer = errors.New("container does not exist")

// Container names the three layers a surface provides.
type Container string

const (
	ToastContainer   Container = "toast-container"
	ModalContainer   Container = "modal-container"
	LoadingContainer Container = "loading-container"
)

// Transition describes how a visual change is animated.
type Transition struct {
	Duration time.Duration
	Easing   string
}

// ToastView is the data needed to render one toast.
type ToastView struct {
	ID         string
	Type       string
	Message    string
	Transition Transition
}

// ModalKind distinguishes confirm dialogs from prompts.
type ModalKind int

const (
	ModalConfirm ModalKind = iota
	ModalPrompt
)

func (k ModalKind) String() string {
	if k == ModalPrompt {
		return "prompt"
	}
	return "confirm"
}

// ModalView is the data needed to render a modal.
type ModalView struct {
	ID           string
	Kind         ModalKind
	Title        string
	Message      string
	ConfirmText  string
	CancelText   string
	Placeholder  string
	DefaultValue string
	Transition   Transition
}

// LoadingView is the data needed to render the loading overlay.
type LoadingView struct {
	Message    string
	Transition Transition
}

// Action is a pointer interaction on a mounted modal.
type Action int

const (
	ActionConfirm Action = iota
	ActionCancel
	ActionBackdrop
)

func (a Action) String() string {
	switch a {
	case ActionConfirm:
		return "confirm"
	case ActionCancel:
		return "cancel"
	case ActionBackdrop:
		return "backdrop"
	default:
		return "unknown"
	}
}

// Key is a keyboard key relevant to feedback components.
type Key int

const (
	KeyOther Key = iota
	KeyEnter
	KeyEscape
)

// KeyHandler receives key presses. It returns true when it consumed the key.
type KeyHandler func(Key) bool

// Binding identifies an attached key handler.
type Binding uint64

// Surface is the rendering collaborator.
type Surface interface {
	// Setup creates the containers. It is idempotent.
	Setup() error
	// Teardown removes the containers and everything mounted in them.
	Teardown()
	// HasContainer reports whether c currently exists.
	HasContainer(c Container) bool

	// MountToast appends a toast in its hidden, pre-enter state.
	MountToast(v ToastView) error
	// ShowToast plays the enter transition.
	ShowToast(id string)
	// HideToast plays the leave transition.
	HideToast(id string)
	// RemoveToast detaches the toast immediately.
	RemoveToast(id string)
	// ClearToasts empties the toast container.
	ClearToasts()

	// MountModal replaces the modal container content with v and makes the
	// container visible. onAction receives pointer interactions.
	MountModal(v ModalView, onAction func(Action)) error
	// ShowModal plays the modal enter transition.
	ShowModal(id string)
	// HideModal plays the modal leave transition.
	HideModal(id string)
	// InputValue returns the current prompt text for modal id.
	InputValue(id string) (string, bool)
	// UnmountModal hides and clears the modal container.
	UnmountModal()

	// BindKeys attaches a document level key handler.
	BindKeys(h KeyHandler) Binding
	// UnbindKeys detaches a handler. Unknown bindings are ignored.
	UnbindKeys(b Binding)

	// MountLoading replaces the loading container content and makes it visible.
	MountLoading(v LoadingView) error
	// ShowLoading plays the overlay enter transition.
	ShowLoading()
	// SetLoadingMessage changes the overlay text in place.
	SetLoadingMessage(msg string)
	// HideLoading plays the overlay leave transition.
	HideLoading()
	// UnmountLoading hides and clears the loading container.
	UnmountLoading()
}

// ReadyNotifier is implemented by surfaces that become usable later than
// construction. fn runs once the surface is ready, immediately if it
// already is.
type ReadyNotifier interface {
	OnReady(fn func())
}
