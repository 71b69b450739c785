package entity

// OtpLength is the number of digit positions in a one-time passcode.
const OtpLength = 4

// OtpCode is an ordered sequence of OtpLength positions, each holding one
// decimal digit or the empty string. Positions are independently editable.
type OtpCode [OtpLength]string

// SetDigit writes a single decimal digit (or the empty string, clearing the
// position) at pos. Anything else is rejected and the position is left
// unchanged. It reports whether the write was accepted.
func (c *OtpCode) SetDigit(pos int, value string) bool {
	if pos < 0 || pos >= OtpLength {
		return false
	}
	if value != "" && (len(value) != 1 || value[0] < '0' || value[0] > '9') {
		return false
	}

	c[pos] = value
	return true
}

// Digit returns the value at pos, or the empty string for an out-of-range pos.
func (c OtpCode) Digit(pos int) string {
	if pos < 0 || pos >= OtpLength {
		return ""
	}
	return c[pos]
}

// Complete reports whether every position holds a digit.
func (c OtpCode) Complete() bool {
	for _, d := range c {
		if d == "" {
			return false
		}
	}
	return true
}

// String joins the populated positions into the code sent to the service.
func (c OtpCode) String() string {
	out := ""
	for _, d := range c {
		out += d
	}
	return out
}
