package sentinel

// Compile-time check that Error implements the error interface.
var _ error = Error("")

// Error is an immutable error type backed by a string constant. It exists so
// that packages can declare their sentinel errors as const instead of var,
// making accidental reassignment a compile error.
//
// Error is a comparable type, so the default == comparison used by errors.Is
// matches these sentinels correctly through wrapped error chains.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}
