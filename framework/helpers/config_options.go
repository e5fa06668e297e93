package helpers

// ConfigOption is an interface for use with the vararg options pattern and ApplyOptions.
type ConfigOption[T any] interface {
	// Configure makes whatever configuration change the option represents.
	Configure(*T) error
}

// ApplyOptions calls each option against the target, stopping at the first error.
//
// The U type parameter lets callers declare their own named option type instead of using
// ConfigOption[T] directly.
func ApplyOptions[T any, U ConfigOption[T]](target *T, options ...U) error {
	for _, o := range options {
		if err := o.Configure(target); err != nil {
			return err
		}
	}
	return nil
}
