package listener

import (
	"bytes"
	"io"
)

// lineConn translates line endings for ssh channels. Input lines may end in
// \r, \r\n or \n and all arrive as \n; output \n goes out as \r\n.
type lineConn struct {
	rw io.ReadWriter

	// afterCR is set when the last byte read was \r, so a \n opening the
	// next read finishes that line ending instead of starting a new one.
	afterCR bool
}

func newLineConn(rw io.ReadWriter) *lineConn {
	return &lineConn{rw: rw}
}

func (c *lineConn) Read(p []byte) (int, error) {
	for {
		n, err := c.rw.Read(p)
		out := 0
		for _, b := range p[:n] {
			switch {
			case b == '\n' && c.afterCR:
				c.afterCR = false
				continue
			case b == '\r':
				c.afterCR = true
				b = '\n'
			default:
				c.afterCR = false
			}
			p[out] = b
			out++
		}
		if out > 0 || n == 0 || err != nil {
			return out, err
		}
	}
}

// Write reports len(p) on success so callers never see the added bytes.
func (c *lineConn) Write(p []byte) (int, error) {
	if _, err := c.rw.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
