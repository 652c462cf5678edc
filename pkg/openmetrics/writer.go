package openmetrics

// reserve flushes the buffer unless at least size bytes are free.
func (e *Encoder) reserve(size int) {
	if len(e.buf)-e.n < size {
		e.flush()
	}
}

func (e *Encoder) flush() {
	if e.n == 0 || e.err != nil {
		e.n = 0
		return
	}
	_, e.err = e.w.Write(e.buf[:e.n])
	e.n = 0
}

func (e *Encoder) writeByte(b byte) {
	if e.n == len(e.buf) {
		e.flush()
	}
	e.buf[e.n] = b
	e.n++
}

func (e *Encoder) writeString(s string) {
	for len(s) > 0 {
		if e.n == len(e.buf) {
			e.flush()
		}
		c := copy(e.buf[e.n:], s)
		e.n += c
		s = s[c:]
	}
}

// writeEscaped writes s escaping backslash and newline, and double quotes
// when quoted is set.
func (e *Encoder) writeEscaped(s string, quoted bool) {
	start := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case '\\':
			esc = `\\`
		case '\n':
			esc = `\n`
		case '"':
			if !quoted {
				continue
			}
			esc = `\"`
		default:
			continue
		}
		e.writeString(s[start:i])
		e.writeString(esc)
		start = i + 1
	}
	e.writeString(s[start:])
}
