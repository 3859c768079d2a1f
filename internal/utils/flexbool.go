package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexBool normalizes the boolean-ish values admin form clients send:
// true/false, "true"/"false", 1/0 and "1"/"0" all bind, and the value
// always serializes back out as a real JSON boolean.  It is the single
// coercion point; handlers and repositories only ever see a plain bool.
type FlexBool bool

// Bool returns the underlying value.
func (f FlexBool) Bool() bool { return bool(f) }

// MarshalJSON always emits true or false.
func (f FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

// UnmarshalJSON accepts bool, numeric 0/1 and the strings "true", "false",
// "1", "0" (case-sensitive, matching what the form layer produces).
// Anything else is rejected so typos fail loudly at the boundary.
func (f *FlexBool) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch string(b) {
	case "true", `"true"`, "1", `"1"`:
		*f = true
		return nil
	case "false", `"false"`, "0", `"0"`, "null":
		*f = false
		return nil
	}
	return fmt.Errorf("cannot parse %s as boolean", string(b))
}
