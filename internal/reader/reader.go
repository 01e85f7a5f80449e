// Package reader loads the whole search source - a file or stdin - into memory
package reader

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/UnendingLoop/minigrep/internal/model"
)

const StdinName = "-"

// ReadInput returns the full contents of fileName, or of stdin when fileName
// is empty or "-". Every failure wraps model.ErrFileRead.
func ReadInput(stdin io.Reader, fileName string) (string, error) {
	switch fileName {
	case "", StdinName:
		return readStdIn(stdin)
	default:
		return readFile(fileName)
	}
}

func readStdIn(stdin io.Reader) (string, error) {
	if stdin == nil {
		stdin = os.Stdin
	}
	raw, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("%w: stdin: %v", model.ErrFileRead, err)
	}
	return toText("stdin", raw)
}

func readFile(fileName string) (string, error) {
	// проверяем открывается ли файл
	info, err := os.Stat(fileName)
	if err != nil {
		return "", fmt.Errorf("%w: error opening file %q: %v", model.ErrFileRead, fileName, err)
	}
	// проверяем не папка ли это
	if info.IsDir() {
		return "", fmt.Errorf("%w: specified source %q is a directory", model.ErrFileRead, fileName)
	}

	raw, err := os.ReadFile(fileName)
	if err != nil {
		return "", fmt.Errorf("%w: couldn't read file %q: %v", model.ErrFileRead, fileName, err)
	}
	return toText(fileName, raw)
}

// вход должен быть текстом в UTF-8, бинарные файлы не ищем
func toText(name string, raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %q is not valid UTF-8 text", model.ErrFileRead, name)
	}
	return string(raw), nil
}
