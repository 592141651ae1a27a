package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

func Exists(pathname string) bool {
	_, err := os.Stat(pathname)
	return err == nil
}

// Remove removes a file via os.Remove and returns every error it can return
// except fs.ErrNotExist, which it silences.
func Remove(pathname string) error {
	err := os.Remove(pathname)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Tidy removes newline-like characters from either end of a []byte and
// returns the middle as a string.
func Tidy(b []byte) string {
	return strings.Trim(strings.Replace(string(b), "\r", "\n", -1), "\n")
}

func ToLines(b []byte) []string {
	return strings.Split(Tidy(b), "\n")
}

func WriteFileIfNotExists(pathname string, b []byte) error {
	f, err := os.OpenFile(pathname, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0666)
	if errors.Is(err, fs.ErrExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		return err
	}
	return f.Close()
}
