package main

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// expandPaths resolves the path arguments into a flat file list.
// Directories require recursive; binary files are skipped while
// recursing; ignore patterns apply relative to each directory argument.
func expandPaths(paths []string, recursive, useGitignore bool, ignore []string, logger *zap.Logger) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		if info.IsDir() {
			if !recursive {
				return nil, fmt.Errorf("%s: is a directory (use -r to recurse)", p)
			}
			expanded, err := expandDir(p, useGitignore, logger)
			if err != nil {
				return nil, err
			}
			for _, f := range expanded {
				if matchesIgnore(f, p, ignore) {
					logger.Debug("skipping ignored file", zap.String("path", f))
					continue
				}
				files = append(files, f)
			}
			continue
		}
		files = append(files, p)
	}
	return files, nil
}

func expandDir(dir string, useGitignore bool, logger *zap.Logger) ([]string, error) {
	if useGitignore && isInGitRepo(dir) {
		files := gitListFiles(dir)
		kept := files[:0]
		for _, f := range files {
			if info, err := os.Stat(f); err != nil || !info.Mode().IsRegular() {
				continue
			}
			if isBinaryFile(f) {
				logger.Debug("skipping binary file", zap.String("path", f))
				continue
			}
			kept = append(kept, f)
		}
		return kept, nil
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if isBinaryFile(path) {
			logger.Debug("skipping binary file", zap.String("path", path))
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func isInGitRepo(dir string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = dir
	return cmd.Run() == nil
}

func gitListFiles(dir string) []string {
	cmd := exec.Command("git", "ls-files", "-z")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return nil
	}
	var files []string
	for _, f := range strings.Split(string(out), "\x00") {
		if f != "" {
			files = append(files, filepath.Join(dir, f))
		}
	}
	return files
}

// isBinaryFile reports whether the first 8 KiB contain a NUL byte.
func isBinaryFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	buf := make([]byte, 8192)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false
	}
	return bytes.IndexByte(buf[:n], 0) >= 0
}

// matchesIgnore checks a file against the ignore patterns. Patterns with
// a slash match the path relative to baseDir; others match the basename.
// A non-glob pattern also matches a whole directory prefix.
func matchesIgnore(path, baseDir string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)

	for _, pat := range patterns {
		target := base
		if strings.Contains(pat, "/") {
			target = rel
		}
		if globMatch(pat, target) {
			return true
		}
		if !strings.Contains(pat, "*") && (rel == pat || strings.HasPrefix(rel, pat+"/")) {
			return true
		}
	}
	return false
}

// globMatch supports "*" (within one path component) and "**" (across
// components) by compiling the pattern to an anchored regexp.
func globMatch(pattern, text string) bool {
	var re strings.Builder
	re.WriteString("^")
	for i := 0; i < len(pattern); {
		switch {
		case strings.HasPrefix(pattern[i:], "**"):
			re.WriteString(".*")
			i += 2
		case pattern[i] == '*':
			re.WriteString("[^/]*")
			i++
		default:
			re.WriteString(regexp.QuoteMeta(string(pattern[i])))
			i++
		}
	}
	re.WriteString("$")
	matched, err := regexp.MatchString(re.String(), text)
	return err == nil && matched
}
