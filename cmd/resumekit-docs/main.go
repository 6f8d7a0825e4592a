package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"resumekit/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	root := cli.NewRootCommand(io.Discard, io.Discard)
	return generateDocs(root, filepath.Join("docs", "cli"), filepath.Join("docs", "man", "man1"))
}

// generateDocs replaces markdownDir and manDir with freshly rendered command docs.
func generateDocs(root *cobra.Command, markdownDir string, manDir string) error {
	if root == nil {
		return errors.New("root command is required")
	}

	disableAutoGenTag(root)

	for _, dir := range []string{markdownDir, manDir} {
		if err := resetDirectory(dir); err != nil {
			return err
		}
	}

	if err := doc.GenMarkdownTree(root, markdownDir); err != nil {
		return fmt.Errorf("generate markdown docs: %w", err)
	}

	head := &doc.GenManHeader{Title: "RESUMEKIT", Section: "1", Source: "resumekit"}
	if err := doc.GenManTree(root, head, manDir); err != nil {
		return fmt.Errorf("generate man pages: %w", err)
	}
	return nil
}

func disableAutoGenTag(cmd *cobra.Command) {
	cmd.DisableAutoGenTag = true
	for _, child := range cmd.Commands() {
		disableAutoGenTag(child)
	}
}

func resetDirectory(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", path, err)
	}
	return nil
}
