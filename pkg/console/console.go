package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// ProgressLog rewrites a single terminal line to report the progress of a long task.
// Permanent messages can be interleaved using Println.
type ProgressLog struct {
	output        io.Writer
	showBar       bool
	showPercent   bool
	maxSteps      int
	maxCharacters int
}

func NewProgressLog(maxSteps int, options ...func(*ProgressLog)) *ProgressLog {
	result := &ProgressLog{
		output:        os.Stdout,
		showPercent:   false,
		showBar:       true,
		maxSteps:      maxSteps,
		maxCharacters: 80,
	}
	for _, option := range options {
		option(result)
	}
	return result
}

func ToWriter(w io.Writer) func(*ProgressLog) {
	return func(s *ProgressLog) {
		s.output = w
	}
}

func HideBar() func(*ProgressLog) {
	return func(s *ProgressLog) {
		s.showBar = false
	}
}

func ShowPercent() func(*ProgressLog) {
	return func(s *ProgressLog) {
		s.showPercent = true
	}
}

func LineLength(characters int) func(*ProgressLog) {
	return func(s *ProgressLog) {
		s.maxCharacters = characters
	}
}

// Log replaces the current line by the progress of the given step.
func (l *ProgressLog) Log(currentStep int, message string) {
	// An empty task is already complete
	i100 := 100
	if l.maxSteps > 0 {
		i100 = min(currentStep*100/l.maxSteps, 100)
	}

	// We show between 0 and 10 '#' depending on the percent
	i10 := i100 / 10

	// Build the line step by step
	var sb strings.Builder

	if l.showBar {
		sb.WriteString(strings.Repeat("#", i10))
		sb.WriteString(strings.Repeat(" ", 10-i10))
		sb.WriteRune(' ') // Add a space after the progress bar
	}

	if l.showPercent {
		sb.WriteString(fmt.Sprintf("(%3d%%) ", i100))
	} else {
		sb.WriteString(fmt.Sprintf("(%d/%d) ", currentStep, l.maxSteps))
	}

	sb.WriteString(message)

	fmt.Fprint(l.output, l.pad(sb.String()), "\r")
}

// Println erases the progress line and prints a message that stays on screen.
func (l *ProgressLog) Println(message string) {
	fmt.Fprint(l.output, l.pad(""), "\r")
	fmt.Fprintln(l.output, message)
}

// Clear rewrites the last line with the message, or erases it when the message is empty.
func (l *ProgressLog) Clear(newMessage string) {
	fmt.Fprint(l.output, l.pad(newMessage))

	if newMessage == "" {
		fmt.Fprint(l.output, "\r")
	} else {
		// Move to next line
		fmt.Fprint(l.output, "\n")
	}
}

// pad truncates or completes the line to overwrite the previous one entirely.
func (l *ProgressLog) pad(line string) string {
	count := utf8.RuneCountInString(line)
	if count > l.maxCharacters {
		return string([]rune(line)[0:l.maxCharacters])
	}
	return line + strings.Repeat(" ", l.maxCharacters-count)
}
