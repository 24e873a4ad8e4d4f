// Package console implements the interactive prompt loop: filter selection,
// the four statistics sections, the five-row raw data pager and the restart
// prompt. Input and output are plain io.Reader and io.Writer so sessions can
// be scripted in tests.
package console
