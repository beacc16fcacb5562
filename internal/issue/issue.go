// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	EmptyInputId Id = iota + 1
	UnsupportedLanguageId
	ToolchainMissingId
	CompileFailedId
	RuntimeFailedId
	TimedOutId
	LaunchFailedId
	ConfigLoadFailedId
	SaveFailedId
	ClipboardUnavailableId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Markdown returns the remedy text with a "See also" list of links appended.
func (i *Issue) Markdown() string {
	if len(i.extLinks) == 0 {
		return string(i.mdMsg)
	}
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	sb.WriteString("\n\n## See also\n")
	for _, link := range i.extLinks {
		sb.WriteString("- <" + string(link) + ">\n")
	}
	return sb.String()
}

// Render renders the remedy with a glamour style ("dark", "light", "notty"...).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	emptyInputIssue = &Issue{
		id: EmptyInputId,
		mdMsg: `
# Nothing to run

The code was empty or contained only whitespace, so no process was started.

## Things you can try
- Pass the code as an argument, a file or on stdin:
~~~
$ polyrun run -l python 'print("hi")'
$ polyrun run script.py
$ echo 'puts 1' | polyrun run -l ruby
~~~
- If the code is wrapped in prose, check what extraction produced:
~~~
$ polyrun extract answer.md
~~~`,
	}

	unsupportedLanguageIssue = &Issue{
		id: UnsupportedLanguageId,
		mdMsg: `
# Unsupported language

The language name did not match any known language or alias.
Names are case-insensitive and surrounding spaces are ignored.

## Things you can try
- List the supported languages and their aliases:
~~~
$ polyrun languages
~~~
- Use the file extension instead and let polyrun infer the language:
~~~
$ polyrun run main.rb
~~~`,
	}

	toolchainMissingIssue = &Issue{
		id: ToolchainMissingId,
		mdMsg: `
# Toolchain not found

The probe command for this language failed or could not be started,
so the code was never executed.

## Things you can try
- See which toolchains are installed:
~~~
$ polyrun check
~~~
- Install the interpreter or compiler and make sure it is on your PATH.
- Point polyrun at a differently named binary in config.cue:
~~~cue
toolchains: python: {
	probe: "python3 --version"
	run:   "python3 -c {code}"
}
~~~`,
	}

	compileFailedIssue = &Issue{
		id: CompileFailedId,
		mdMsg: `
# Compilation failed

The compiler rejected the code. Its diagnostics are shown above;
the program was not run.

## Things you can try
- Fix the reported errors and run again.
- Make sure the code is a complete program (e.g. it has a main function).
- Java code must declare ` + "`public class Main`" + `, C# code needs a ` + "`Main`" + ` method.`,
	}

	runtimeFailedIssue = &Issue{
		id: RuntimeFailedId,
		mdMsg: `
# Program exited with an error

The code started but exited with a non-zero status.
Its stderr is shown above and polyrun exits with the same status.`,
	}

	timedOutIssue = &Issue{
		id: TimedOutId,
		mdMsg: `
# Execution timed out

The process ran longer than the configured timeout and was killed
together with any child processes it started.

## Things you can try
- Raise the limit for a single run:
~~~
$ polyrun run --timeout 2m script.py
~~~
- Or set it permanently in config.cue (` + "`timeout: \"2m\"`" + `)
  or with ` + "`POLYRUN_TIMEOUT=2m`" + `.`,
		extLinks: []HttpLink{"https://pkg.go.dev/time#ParseDuration"},
	}

	launchFailedIssue = &Issue{
		id: LaunchFailedId,
		mdMsg: `
# Process could not be started

The toolchain passed its probe, but starting the compile or run step failed.

## Things you can try
- Check that the temporary directory is writable (` + "`TMPDIR`" + `).
- Check the argv templates configured under ` + "`toolchains`" + ` in config.cue.
- Run with ` + "`--log-file -`" + ` to see each step as it happens.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

polyrun found a config.cue that does not match its schema.

## Things you can try
- Show where polyrun looks for its configuration:
~~~
$ polyrun config path
~~~
- Write a fresh default file to compare against:
~~~
$ polyrun config init --force
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	saveFailedIssue = &Issue{
		id: SaveFailedId,
		mdMsg: `
# Output could not be saved

Writing the code or result to disk failed.

## Things you can try
- Check that the target directory exists or can be created.
- Check file permissions and free disk space.`,
	}

	clipboardUnavailableIssue = &Issue{
		id: ClipboardUnavailableId,
		mdMsg: `
# Clipboard not available

No clipboard utility could be used.

## Things you can try
- On Linux install ` + "`xclip`" + `, ` + "`xsel`" + ` or ` + "`wl-clipboard`" + `.
- Pipe the code through stdin instead.`,
	}

	issues = map[Id]*Issue{
		emptyInputIssue.Id():           emptyInputIssue,
		unsupportedLanguageIssue.Id():  unsupportedLanguageIssue,
		toolchainMissingIssue.Id():     toolchainMissingIssue,
		compileFailedIssue.Id():        compileFailedIssue,
		runtimeFailedIssue.Id():        runtimeFailedIssue,
		timedOutIssue.Id():             timedOutIssue,
		launchFailedIssue.Id():         launchFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		saveFailedIssue.Id():           saveFailedIssue,
		clipboardUnavailableIssue.Id(): clipboardUnavailableIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	ids := make([]Id, 0, len(issues))
	for id := range issues {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
