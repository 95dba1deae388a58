package util

import (
	"fmt"
)

// SafeAlgorithmCall runs one pass of an algorithm such that panics are recovered and nice error messages are constructed
func SafeAlgorithmCall(name string, pass string, call func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = fmt.Errorf("%s Panic in %s: %w\n%s", pass, name, anErr, GetTrace())
			} else {
				err = fmt.Errorf("%s Panic in %s: %v\n%s", pass, name, r, GetTrace())
			}
		}
	}()
	err = call()
	return
}
