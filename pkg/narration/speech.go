package narration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strings"
	"time"
)

// PauseMarker replaces every ellipsis so speech engines hold a longer pause.
const PauseMarker = ". . . . . ."

var (
	boldMarkup   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	clauseMarks  = regexp.MustCompile(`[ \t]*([:;])[ \t]*`)
	ellipsis     = regexp.MustCompile(`\.{3}|…`)
	repeatSpaces = regexp.MustCompile(`[ \t]{2,}`)
)

// PrepareForSpeech rewrites narration text for a speech engine: bold
// markers are removed, colons and semicolons get exactly one following
// space, and ellipses become PauseMarker.
func PrepareForSpeech(text string) string {
	out := boldMarkup.ReplaceAllString(text, "$1")
	out = clauseMarks.ReplaceAllString(out, "$1 ")
	out = ellipsis.ReplaceAllString(out, " "+PauseMarker+" ")
	out = repeatSpaces.ReplaceAllString(out, " ")

	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// Speaker voices text. Speak returns when the text has been spoken or
// ctx is cancelled.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// WriterSpeaker "speaks" by writing one word at a time to W at a fixed
// pace. A zero WordsPerMinute writes without pausing.
type WriterSpeaker struct {
	W              io.Writer
	WordsPerMinute int
}

func (s *WriterSpeaker) Speak(ctx context.Context, text string) error {
	var delay time.Duration
	if s.WordsPerMinute > 0 {
		delay = time.Minute / time.Duration(s.WordsPerMinute)
	}

	for i, word := range strings.Fields(text) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if i > 0 {
			if _, err := io.WriteString(s.W, " "); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(s.W, word); err != nil {
			return fmt.Errorf("failed to write word: %w", err)
		}
		if delay == 0 {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
	_, err := io.WriteString(s.W, "\n")
	return err
}

// CommandSpeaker pipes text into an external text-to-speech program such
// as espeak or say. Cancelling ctx kills the program.
type CommandSpeaker struct {
	Name string
	Args []string
}

// ParseCommandSpeaker builds a CommandSpeaker from a command line such as
// "espeak -s 150". It returns nil for a blank command line.
func ParseCommandSpeaker(cmdline string) *CommandSpeaker {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil
	}
	return &CommandSpeaker{Name: fields[0], Args: fields[1:]}
}

func (s *CommandSpeaker) Speak(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, s.Name, s.Args...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("speech command %s failed: %w (%s)", s.Name, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
