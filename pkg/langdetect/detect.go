// Package langdetect names the language of fenced code: it canonicalises the
// language written on a fence line and guesses one for unlabelled fences.
// Both use go-enry's linguist data.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language can be determined.
const Text = "text"

// Normalize maps a fence language alias to its canonical fence tag, so
// "ts" becomes "typescript" and "sh" becomes "bash". Unknown names are
// returned lowercased.
func Normalize(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return ""
	}

	if name, ok := enry.GetLanguageByAlias(lang); ok {
		return fenceTag(name)
	}

	return strings.ToLower(lang)
}

// classifierCandidates limits the classifier to languages that commonly
// appear in documentation.
//
//nolint:gochecknoglobals // read-only table
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "TOML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect guesses the language of a code body. It tries the shebang, then a
// few unambiguous markers, then the enry classifier, and falls back to Text.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fenceTag(lang)
	}

	trimmed := bytes.TrimSpace(content)
	for _, marker := range markers {
		if marker.match(content, trimmed) {
			return marker.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return fenceTag(lang)
	}

	return Text
}

type marker struct {
	lang  string
	match func(content, trimmed []byte) bool
}

// markers are checked in order; earlier entries are more specific.
//
//nolint:gochecknoglobals // read-only table
var markers = []marker{
	{"go", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", func(content, _ []byte) bool {
		return bytes.Contains(content, []byte("def ")) && bytes.Contains(content, []byte("):")) ||
			bytes.Contains(content, []byte("__name__"))
	}},
	{"html", func(_, trimmed []byte) bool {
		lower := bytes.ToLower(trimmed)
		return bytes.HasPrefix(lower, []byte("<!doctype html")) || bytes.HasPrefix(lower, []byte("<html"))
	}},
	{"json", func(_, trimmed []byte) bool {
		return (trimmed[0] == '{' || trimmed[0] == '[') && bytes.Contains(trimmed, []byte(`":`))
	}},
	{"dockerfile", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) && bytes.Contains(trimmed, []byte("\nRUN "))
	}},
	{"sql", func(_, trimmed []byte) bool {
		upper := bytes.ToUpper(trimmed)
		for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE TABLE "} {
			if bytes.HasPrefix(upper, []byte(verb)) {
				return true
			}
		}

		return false
	}},
	{"rust", func(content, _ []byte) bool {
		return bytes.Contains(content, []byte("fn main()")) || bytes.Contains(content, []byte("println!("))
	}},
	{"javascript", func(content, _ []byte) bool {
		return bytes.Contains(content, []byte("console.log(")) || bytes.Contains(content, []byte("=> {"))
	}},
	{"yaml", looksLikeYAML},
}

// looksLikeYAML counts "key: value" and "- item" lines.
func looksLikeYAML(content, _ []byte) bool {
	count := 0

	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		if bytes.HasPrefix(line, []byte("- ")) ||
			bytes.Contains(line, []byte(": ")) && !bytes.ContainsAny(line, "({\"") {
			count++
		}
	}

	return count >= 2
}

// fenceTag turns a linguist language name into a fence tag.
func fenceTag(name string) string {
	if name == "Shell" {
		return "bash"
	}

	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}
