package sharedtest

import "os"

// WithTempFileContaining creates a temporary file with the given contents, passes its
// name to the given function, then ensures that the file is deleted.
func WithTempFileContaining(data []byte, f func(filename string)) {
	file, err := os.CreateTemp("", "test")
	if err != nil {
		panic(err)
	}
	name := file.Name()
	if _, err := file.Write(data); err != nil {
		panic(err)
	}
	if err := file.Close(); err != nil {
		panic(err)
	}
	defer os.Remove(name)
	f(name)
}
