// SPDX-License-Identifier: MPL-2.0

package toolchain

import goruntime "runtime"

// Canonical languages of the built-in registry.
const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	Ruby       Language = "ruby"
	Scala      Language = "scala"
	C          Language = "c"
	CPP        Language = "c++"
	Java       Language = "java"
	CSharp     Language = "csharp"
	Kotlin     Language = "kotlin"
	Go         Language = "go"
	Swift      Language = "swift"
)

// exeSuffix is appended to native compiler artifacts.
var exeSuffix = func() string {
	if goruntime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}()

// builtinSpecs returns the fixed toolchain table. Probe argv values are part of
// the compatibility surface and must not change casually.
func builtinSpecs() []Spec {
	return []Spec{
		{
			Language:   Python,
			Aliases:    []string{"py", "python3"},
			Extensions: []string{".py"},
			Probe:      []string{"python", "--version"},
			Protocol:   ProtocolInterpreted,
			Delivery:   DeliveryArg,
			Run:        []string{"python", "-c", PlaceholderCode},
		},
		{
			Language:   JavaScript,
			Aliases:    []string{"js", "node", "nodejs"},
			Extensions: []string{".js", ".mjs", ".cjs"},
			Probe:      []string{"node", "--version"},
			Protocol:   ProtocolInterpreted,
			Delivery:   DeliveryArg,
			Run:        []string{"node", "-e", PlaceholderCode},
		},
		{
			Language:   Ruby,
			Aliases:    []string{"rb"},
			Extensions: []string{".rb"},
			Probe:      []string{"ruby", "--version"},
			Protocol:   ProtocolInterpreted,
			Delivery:   DeliveryArg,
			Run:        []string{"ruby", "-e", PlaceholderCode},
		},
		{
			Language:   Scala,
			Extensions: []string{".scala", ".sc"},
			Probe:      []string{"scala", "--version"},
			Protocol:   ProtocolInterpreted,
			Delivery:   DeliveryArg,
			Run:        []string{"scala", "-e", PlaceholderCode},
		},
		{
			Language:   C,
			Extensions: []string{".c"},
			Probe:      []string{"gcc", "--version"},
			Protocol:   ProtocolCompiledThenRun,
			Delivery:   DeliveryStdin,
			Artifact:   "main" + exeSuffix,
			Compile:    []string{"gcc", "-x", "c", "-", "-o", PlaceholderArtifact},
			Run:        []string{PlaceholderArtifact},
		},
		{
			Language:   CPP,
			Aliases:    []string{"cpp", "cxx"},
			Extensions: []string{".cpp", ".cc", ".cxx"},
			Probe:      []string{"g++", "--version"},
			Protocol:   ProtocolCompiledThenRun,
			Delivery:   DeliveryStdin,
			Artifact:   "main" + exeSuffix,
			Compile:    []string{"g++", "-x", "c++", "-", "-o", PlaceholderArtifact},
			Run:        []string{PlaceholderArtifact},
		},
		{
			// javac cannot read stdin; the public class must be named Main.
			Language:   Java,
			Extensions: []string{".java"},
			Probe:      []string{"java", "--version"},
			Protocol:   ProtocolCompiledThenRun,
			Delivery:   DeliveryFile,
			SourceFile: "Main.java",
			Artifact:   "Main.class",
			Compile:    []string{"javac", "-d", PlaceholderWorkdir, PlaceholderSource},
			Run:        []string{"java", "-cp", PlaceholderWorkdir, "Main"},
		},
		{
			Language:   CSharp,
			Aliases:    []string{"c#", "cs"},
			Extensions: []string{".cs"},
			Probe:      []string{"csc", "--version"},
			Protocol:   ProtocolCompiledThenRun,
			Delivery:   DeliveryFile,
			SourceFile: "Program.cs",
			Artifact:   "Program.exe",
			Compile:    []string{"csc", "-nologo", "-out:" + PlaceholderArtifact, PlaceholderSource},
			Run:        []string{PlaceholderArtifact},
		},
		{
			Language:   Kotlin,
			Aliases:    []string{"kt"},
			Extensions: []string{".kt", ".kts"},
			Probe:      []string{"kotlinc", "--version"},
			Protocol:   ProtocolCompiledThenRun,
			Delivery:   DeliveryFile,
			SourceFile: "main.kt",
			Artifact:   "main.jar",
			Compile:    []string{"kotlinc", PlaceholderSource, "-include-runtime", "-d", PlaceholderArtifact},
			Run:        []string{"java", "-jar", PlaceholderArtifact},
		},
		{
			// go run compiles and runs in one invocation.
			Language:   Go,
			Aliases:    []string{"golang"},
			Extensions: []string{".go"},
			Probe:      []string{"go", "version"},
			Protocol:   ProtocolInterpreted,
			Delivery:   DeliveryFile,
			SourceFile: "main.go",
			Run:        []string{"go", "run", PlaceholderSource},
		},
		{
			Language:   Swift,
			Extensions: []string{".swift"},
			Probe:      []string{"swift", "--version"},
			Protocol:   ProtocolInterpreted,
			Delivery:   DeliveryStdin,
			Run:        []string{"swift", "-"},
		},
	}
}
