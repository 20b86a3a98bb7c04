package ring

import "strconv"

// CursorMode distinguishes a ring that has never tracked a write position
// from one that has.
type CursorMode int

const (
	// CursorUninitialized selects shift-mode writes.
	CursorUninitialized CursorMode = iota
	// CursorActive selects circular writes at the cursor position.
	CursorActive
)

// String returns the mode name.
func (m CursorMode) String() string {
	switch m {
	case CursorUninitialized:
		return "uninitialized"
	case CursorActive:
		return "active"
	default:
		return "CursorMode(" + strconv.Itoa(int(m)) + ")"
	}
}

// Cursor tracks the write position of a ring.
//
// The zero value is uninitialized. Enable moves it to active at position 0;
// the transition never reverses. An active cursor at position 0 is distinct
// from an uninitialized one.
type Cursor struct {
	mode CursorMode
	pos  int
}

// Mode returns the cursor mode.
func (c Cursor) Mode() CursorMode { return c.mode }

// Active reports whether the cursor tracks a write position.
func (c Cursor) Active() bool { return c.mode == CursorActive }

// Position returns the write position and whether the cursor is active.
// The position is meaningless when ok is false.
func (c Cursor) Position() (pos int, ok bool) {
	if c.mode != CursorActive {
		return 0, false
	}
	return c.pos, true
}

// Enable activates the cursor at position 0. It is a no-op once active.
func (c *Cursor) Enable() {
	if c.mode == CursorActive {
		return
	}
	c.mode = CursorActive
	c.pos = 0
}

// Advance moves an active cursor n positions forward modulo capacity.
// Uninitialized cursors are left untouched.
func (c *Cursor) Advance(n, capacity int) {
	if c.mode != CursorActive || capacity <= 0 {
		return
	}
	c.pos = (c.pos + n%capacity) % capacity
}

// Rewind returns an active cursor to position 0 without changing the mode.
func (c *Cursor) Rewind() {
	c.pos = 0
}

// String formats the cursor as "uninitialized" or "active(pos)".
func (c Cursor) String() string {
	if c.mode != CursorActive {
		return c.mode.String()
	}
	return "active(" + strconv.Itoa(c.pos) + ")"
}
