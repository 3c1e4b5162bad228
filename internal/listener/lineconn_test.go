package listener

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/pixil98/go-testutil"
)

type bufConn struct {
	in  io.Reader
	out bytes.Buffer
}

func (c *bufConn) Read(b []byte) (int, error)  { return c.in.Read(b) }
func (c *bufConn) Write(b []byte) (int, error) { return c.out.Write(b) }

func TestLineConn(t *testing.T) {
	tests := map[string]struct {
		input   string
		oneByte bool
		expIn   string
	}{
		"crlf":           {input: "walk\r\nrun\r\n", expIn: "walk\nrun\n"},
		"bare cr":        {input: "walk\rrun\r", expIn: "walk\nrun\n"},
		"unix":           {input: "walk\n", expIn: "walk\n"},
		"crlf split":     {input: "walk\r\nrun\r\n", oneByte: true, expIn: "walk\nrun\n"},
		"blank lines":    {input: "\n\r\n\r\r", expIn: "\n\n\n\n"},
		"mixed one byte": {input: "a\rb\nc\r\n", oneByte: true, expIn: "a\nb\nc\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var in io.Reader = strings.NewReader(tt.input)
			if tt.oneByte {
				in = iotest.OneByteReader(in)
			}
			conn := &bufConn{in: in}
			rw := newLineConn(conn)

			got, err := io.ReadAll(rw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "read", string(got), tt.expIn)

			n, err := rw.Write([]byte("a\nb\n"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "written", n, 4)
			testutil.AssertEqual(t, "output", conn.out.String(), "a\r\nb\r\n")
		})
	}
}
