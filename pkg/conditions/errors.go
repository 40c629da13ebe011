//
//  Copyright © Zscaler Inc. All rights reserved.
//

package conditions

import "fmt"

// InvalidFormatError indicates that a textual conditions value failed to
// parse as JSON. The underlying parser error is retained.
type InvalidFormatError struct {
	Err error
}

// Error implements the error interface.
func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid conditions format: %v", e.Err)
}

// Unwrap returns the underlying JSON parse error.
func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError indicates that a (parsed) conditions value matched
// neither the native nested form nor the legacy operand form. The runtime
// type of the offending value is reported.
type UnsupportedFormatError struct {
	Value interface{}
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported conditions format: %T", e.Value)
}
