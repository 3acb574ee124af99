package utils

import (
	"fmt"
	"log"
)

// GoSafe runs the given function in a new goroutine and recovers from any
// panic.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[Panic Recovered] %v", r)
			}
		}()
		fn()
	}()
}

// ToPointer returns a pointer to the given value.
func ToPointer[T any](value T) *T {
	return &value
}

// FormatPercentage renders a fraction as a signed percentage with two
// decimals.
func FormatPercentage(value float64) string {
	return fmt.Sprintf("%+.2f%%", value*100)
}
