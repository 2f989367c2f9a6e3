package tools

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const DefaultMaxLines = 100

// FileReaderTool reads text files beneath the process working
// directory. Paths that escape the working directory are refused, so
// the model cannot wander the filesystem.
type FileReaderTool struct {
	// Root is the directory reads are confined to. Empty means the
	// process working directory at call time.
	Root string
}

func (t *FileReaderTool) GetName() string { return "file_reader" }

func (t *FileReaderTool) GetTool() ai.Tool {
	return ai.Tool{
		Type: ai.ToolTypeFunction,
		Function: &ai.FunctionDefinition{
			Name:        t.GetName(),
			Description: "Read a text file from the current working directory. Returns the file content, truncated to max_lines lines.",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"path": {
						Type:        jsonschema.String,
						Description: "Path to the file, relative to the working directory.",
					},
					"max_lines": {
						Type:        jsonschema.Integer,
						Description: "Maximum number of lines to return. Default: 100.",
					},
				},
				Required: []string{"path"},
			},
		},
	}
}

func (t *FileReaderTool) Execute(ctx context.Context, args map[string]any) (string, error) {
	path, _ := args["path"].(string)
	if path == "" {
		return "", fmt.Errorf("path is required")
	}

	maxLines := DefaultMaxLines
	if ml, ok := args["max_lines"].(float64); ok && ml > 0 {
		maxLines = int(ml)
	}

	root := t.Root
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("working directory unavailable: %w", err)
		}
		root = wd
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, path)
	}
	abs = filepath.Clean(abs)
	if abs != root && !strings.HasPrefix(abs, root+string(filepath.Separator)) {
		return "", fmt.Errorf("access denied: %s is outside the working directory", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", path)
		}
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("not a regular file: %s", path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	if bytes.ContainsRune(data, 0) {
		return "", fmt.Errorf("binary file: %s", path)
	}

	lines := strings.Split(string(data), "\n")
	// A trailing newline yields one empty phantom line; drop it.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	total := len(lines)

	truncated := false
	if total > maxLines {
		lines = lines[:maxLines]
		truncated = true
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "File: %s (%d lines)\n", path, total)
	sb.WriteString(strings.Join(lines, "\n"))
	if truncated {
		fmt.Fprintf(&sb, "\n... [truncated: showing first %d of %d lines]", maxLines, total)
	}
	return sb.String(), nil
}
