package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/chronicle/pkg/era"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <era-file-or-dir>...\n", os.Args[0])
		os.Exit(1)
	}

	validator := &EraValidator{out: os.Stdout}
	if err := validator.validatePaths(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Era files are valid!")
}

var fileNamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// EraValidator checks era data files before they are deployed to DATA_DIR/eras.
type EraValidator struct {
	out    io.Writer
	errors []string
}

// validatePaths validates every era file named directly or found in a named
// directory, then checks the whole set together with the built-in eras.
func (v *EraValidator) validatePaths(paths []string) error {
	v.errors = nil

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := era.DataFiles(p)
		if err != nil {
			return err
		}
		if len(found) == 0 {
			return fmt.Errorf("no era files in %s", p)
		}
		files = append(files, found...)
	}

	var eras []era.Era
	for _, f := range files {
		e, err := v.validateFile(f)
		if err != nil {
			v.errors = append(v.errors, err.Error())
			continue
		}
		eras = append(eras, e)
	}

	// File eras may replace built-ins, but not each other.
	for _, problem := range era.Validate(eras) {
		if strings.HasSuffix(problem, ": duplicate id") {
			v.errors = append(v.errors, problem+" across files")
		}
	}
	if problems := era.Validate(era.Overlay(era.Default(), eras)); len(problems) > 0 {
		v.errors = append(v.errors, problems...)
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors:\n%s", strings.Join(dedupe(v.errors), "\n"))
	}
	return nil
}

func (v *EraValidator) validateFile(filename string) (era.Era, error) {
	fmt.Fprintf(v.out, "Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !era.IsDataFile(baseName) {
		return era.Era{}, fmt.Errorf("era file must have a .json, .yaml, .yml or .toml extension: %s", baseName)
	}

	stem := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	if !fileNamePattern.MatchString(stem) {
		return era.Era{}, fmt.Errorf("era filename '%s' must be lowercase kebab-case (e.g., bronze-age.yaml, not bronze_age.yaml or BronzeAge.yaml)", baseName)
	}

	e, err := era.ReadFile(filename, true)
	if err != nil {
		return era.Era{}, fmt.Errorf("file %s failed strict decoding: %w", filename, err)
	}

	var problems []string
	problems = append(problems, era.Validate([]era.Era{e})...)
	if e.ID != "" && e.ID != stem {
		problems = append(problems, fmt.Sprintf("era id %q does not match the file name %s", e.ID, baseName))
	}
	if strings.TrimSpace(e.Description) == "" {
		problems = append(problems, "description is required")
	}
	for i, fact := range e.Facts {
		if strings.TrimSpace(fact) == "" {
			problems = append(problems, fmt.Sprintf("fact[%d] is blank", i))
		}
	}

	if len(problems) > 0 {
		return era.Era{}, fmt.Errorf("validation errors in %s:\n  %s", filename, strings.Join(problems, "\n  "))
	}
	return e, nil
}

func dedupe(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	out := lines[:0]
	for _, l := range lines {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}
