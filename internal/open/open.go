// Package open shows a message of an export in the user's editor.
package open

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Zuo-Peng/wa-chat-analyzer/internal/index"
	"github.com/Zuo-Peng/wa-chat-analyzer/internal/source"
)

// Message opens the export at path in $EDITOR at the line where message seq
// starts. A negative seq opens the file at its first line.
func Message(db *index.DB, path string, seq int) error {
	lineNum := 1
	if seq >= 0 {
		m, err := db.GetMessage(seq)
		if err != nil {
			return fmt.Errorf("get message: %w", err)
		}
		lineNum = m.Line
	}
	return At(path, lineNum)
}

// At opens the export at path in $EDITOR at lineNum. Zip exports are
// extracted to a temporary text file first, which is removed once the editor
// exits.
func At(path string, lineNum int) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %s", path)
	}

	target := path
	if !strings.EqualFold(filepath.Ext(path), ".txt") {
		tmp, err := extract(path)
		if err != nil {
			return err
		}
		defer os.Remove(tmp)
		target = tmp
	}

	return run(editorCommand(Editor(), target, lineNum))
}

// Editor returns $EDITOR, falling back to less.
func Editor() string {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "less"
	}
	return editor
}

func extract(path string) (string, error) {
	text, err := source.ReadFile(path)
	if err != nil {
		return "", err
	}
	f, err := os.CreateTemp("", "wca-*.txt")
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

// editorCommand builds the argument list that opens filePath at lineNum.
func editorCommand(editor, filePath string, lineNum int) []string {
	if lineNum < 1 {
		lineNum = 1
	}
	base := filepath.Base(editor)
	switch {
	case strings.Contains(base, "vim") || strings.Contains(base, "vi") ||
		strings.Contains(base, "nano") || strings.Contains(base, "emacs"):
		return []string{editor, "+" + strconv.Itoa(lineNum), filePath}
	case strings.Contains(base, "code"):
		return []string{editor, "--goto", filePath + ":" + strconv.Itoa(lineNum)}
	case strings.Contains(base, "less"):
		return []string{editor, "+" + strconv.Itoa(lineNum), filePath}
	default:
		return []string{editor, filePath}
	}
}

func run(args []string) error {
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
