package collection

// Confirmer approves destructive operations.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to a Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

var (
	Confirmed Confirmer = ConfirmFunc(func(string) bool { return true })
	Declined  Confirmer = ConfirmFunc(func(string) bool { return false })
)
