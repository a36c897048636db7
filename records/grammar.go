/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package records builds automata that find spam in streams of
// tag-delimited records like
//
//	<DOC>
//	<DOCID>msg00042</DOCID>
//	Subject: hello
//
//	free software for you</DOC>
//
// A Grammar describes the tags, the record ID syntax, and the
// keywords.  Build compiles a Grammar to a core.Graph, and Scan runs
// a Graph over a reader.
package records

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Comcast/spamscan/core"
	"github.com/Comcast/spamscan/keywords"

	"github.com/jsccast/yaml"
)

// Grammar is the declarative description of a record format and the
// keywords that make a record spam.
type Grammar struct {
	// Name becomes the Graph's name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Doc is Markdown documentation about the grammar.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// OpenTag starts a record.  Example: "<DOC>".
	OpenTag string `json:"openTag" yaml:"openTag"`

	// IDOpenTag starts the record ID field.  Example: "<DOCID>".
	IDOpenTag string `json:"idOpenTag" yaml:"idOpenTag"`

	// IDPrefix precedes the digits of a record ID.  Example:
	// "msg".  Can be empty.
	IDPrefix string `json:"idPrefix,omitempty" yaml:"idPrefix,omitempty"`

	// IDCloseTag ends the record ID field.  Example: "</DOCID>".
	IDCloseTag string `json:"idCloseTag" yaml:"idCloseTag"`

	// CloseTag ends a record.  Example: "</DOC>".
	CloseTag string `json:"closeTag" yaml:"closeTag"`

	// Keywords are the words and phrases that flag a record.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// KeywordFiles optionally name files with more keywords in
	// the format read by keywords.Read.  Relative names are
	// resolved against the grammar file's directory by
	// LoadGrammar.
	KeywordFiles []string `json:"keywordFiles,omitempty" yaml:"keywordFiles,omitempty"`
}

// DefaultKeywords are the spam keywords used by DefaultGrammar.
var DefaultKeywords = []string{
	"win",
	"winner",
	"winners",
	"winnings",
	"free stuff",
	"free access",
	"free software",
	"free trials",
	"free vacation",
}

// DefaultGrammar returns the grammar for <DOC> records with
// <DOCID>msgNNNN</DOCID> IDs.
func DefaultGrammar() *Grammar {
	return &Grammar{
		Name:       "spam",
		Doc:        "Flags `<DOC>` records whose body contains a spam keyword.",
		OpenTag:    "<DOC>",
		IDOpenTag:  "<DOCID>",
		IDPrefix:   "msg",
		IDCloseTag: "</DOCID>",
		CloseTag:   "</DOC>",
		Keywords:   append([]string(nil), DefaultKeywords...),
	}
}

// BadGrammar occurs when a Grammar can't be compiled.
type BadGrammar struct {
	Field  string
	Reason string
}

func (e *BadGrammar) Error() string {
	return "bad grammar " + e.Field + ": " + e.Reason
}

// Validate checks that the Grammar can be compiled unambiguously.
//
// Tags can't be empty.  Tags and the ID prefix can't start with
// whitespace because whitespace is allowed between tags.  The ID
// close tag can't start with a digit, and the close tag can't start
// with a delimiter.  No keyword can contain the first byte of the
// close tag, since that byte has to end a record wherever it appears
// in a body.
func (gr *Grammar) Validate() error {
	tags := []struct {
		field, value string
	}{
		{"openTag", gr.OpenTag},
		{"idOpenTag", gr.IDOpenTag},
		{"idCloseTag", gr.IDCloseTag},
		{"closeTag", gr.CloseTag},
	}
	for _, t := range tags {
		if t.value == "" {
			return &BadGrammar{t.field, "empty"}
		}
		if core.IsWhitespace(t.value[0]) {
			return &BadGrammar{t.field, "starts with whitespace"}
		}
	}
	if gr.IDPrefix != "" {
		if c := gr.IDPrefix[0]; core.IsWhitespace(c) || core.IsDigit(c) {
			return &BadGrammar{"idPrefix", "starts with whitespace or a digit"}
		}
	}
	if core.IsDigit(gr.IDCloseTag[0]) {
		return &BadGrammar{"idCloseTag", "starts with a digit"}
	}
	if core.IsDelimiter(gr.CloseTag[0]) {
		return &BadGrammar{"closeTag", "starts with a delimiter"}
	}
	if len(gr.Keywords) == 0 {
		return &BadGrammar{"keywords", "none given"}
	}
	for _, w := range gr.Keywords {
		if err := keywords.Check(w); err != nil {
			return err
		}
		if strings.IndexByte(w, gr.CloseTag[0]) >= 0 {
			return &BadGrammar{"keywords", fmt.Sprintf("%q has %s, which starts the close tag", w, core.Quote(gr.CloseTag[0]))}
		}
	}
	return nil
}

// ParseGrammar reads a Grammar in YAML (or JSON).
func ParseGrammar(src []byte) (*Grammar, error) {
	var gr Grammar
	if err := yaml.Unmarshal(src, &gr); err != nil {
		return nil, err
	}
	return &gr, nil
}

// LoadGrammar reads a Grammar file along with its KeywordFiles.
func LoadGrammar(filename string) (*Grammar, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	gr, err := ParseGrammar(src)
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w", filename, err)
	}
	dir := filepath.Dir(filename)
	for _, name := range gr.KeywordFiles {
		if !filepath.IsAbs(name) {
			name = filepath.Join(dir, name)
		}
		bs, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		words, err := keywords.Read(bytes.NewReader(bs))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		gr.Keywords = append(gr.Keywords, words...)
	}
	return gr, nil
}
