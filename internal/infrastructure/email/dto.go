package email

// ConfirmationEmailData carries everything needed to build one
// confirmation email.
type ConfirmationEmailData struct {
	Email       string
	Name        string
	ConfirmLink string
}
