package replicad

import "io"

// Stdio joins a reader and a writer into the io.ReadWriteCloser a Server
// serves. Closing it does nothing.
type Stdio struct {
	In  io.Reader
	Out io.Writer
}

func (s *Stdio) Read(p []byte) (n int, err error) {
	return s.In.Read(p)
}

func (s *Stdio) Write(p []byte) (n int, err error) {
	return s.Out.Write(p)
}

func (s *Stdio) Close() error {
	return nil
}
