package bind

// IntValue wraps MutableValue[int] with counter-style helpers.
type IntValue struct {
	*MutableValue[int]
}

// NewIntValue creates an IntValue seeded with initial.
func NewIntValue(initial int) *IntValue {
	return &IntValue{NewMutableValue(initial)}
}

// Inc increments the value by one.
func (v *IntValue) Inc() {
	v.Update(func(n int) int { return n + 1 })
}

// Dec decrements the value by one.
func (v *IntValue) Dec() {
	v.Update(func(n int) int { return n - 1 })
}

// Add adds delta to the value.
func (v *IntValue) Add(delta int) {
	v.Update(func(n int) int { return n + delta })
}

// BoolValue wraps MutableValue[bool] with toggle helpers.
type BoolValue struct {
	*MutableValue[bool]
}

// NewBoolValue creates a BoolValue seeded with initial.
func NewBoolValue(initial bool) *BoolValue {
	return &BoolValue{NewMutableValue(initial)}
}

// Toggle inverts the value.
func (v *BoolValue) Toggle() {
	v.Update(func(b bool) bool { return !b })
}

// SetTrue sets the value to true.
func (v *BoolValue) SetTrue() {
	v.Write(true)
}

// SetFalse sets the value to false.
func (v *BoolValue) SetFalse() {
	v.Write(false)
}

// StringValue wraps MutableValue[string].
type StringValue struct {
	*MutableValue[string]
}

// NewStringValue creates a StringValue seeded with initial.
func NewStringValue(initial string) *StringValue {
	return &StringValue{NewMutableValue(initial)}
}

// Clear resets the value to the empty string.
func (v *StringValue) Clear() {
	v.Write("")
}

// IsEmpty reports whether the current value is empty.
func (v *StringValue) IsEmpty() bool {
	return v.Read() == ""
}
