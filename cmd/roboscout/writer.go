package main

import (
	"io"
	"os"
)

// lazyFile opens its file on the first write, so a command that fails before
// producing output leaves no empty file behind.
type lazyFile struct {
	open func() (io.WriteCloser, error)
	file io.WriteCloser
}

func newLazyFile(path string) *lazyFile {
	return &lazyFile{open: func() (io.WriteCloser, error) {
		return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	}}
}

func (f *lazyFile) Write(p []byte) (int, error) {
	if f.file == nil {
		var err error
		f.file, err = f.open()
		if err != nil {
			return 0, err
		}
	}
	return f.file.Write(p)
}

func (f *lazyFile) Close() error {
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func outputWriter(location string, stdout io.Writer) io.WriteCloser {
	if location == "" || location == stdoutName {
		return nopCloser{stdout}
	}
	return newLazyFile(location)
}
