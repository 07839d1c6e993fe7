package nl

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/OFFIS-RIT/statnl/pkg/logger"
	"github.com/OFFIS-RIT/statnl/pkg/store"
	"github.com/OFFIS-RIT/statnl/pkg/triple"
)

// Sentence is one row of the sentence table.
type Sentence struct {
	DCID     string
	Sentence string
}

const (
	defaultStatType       = "measuredValue"
	defaultPopulationType = "Thing"
)

// BuildSentences derives the sentence rows for every StatisticalVariable and
// Topic in triples. Malformed entities are returned alongside the rows
// instead of failing the whole batch.
func BuildSentences(triples []triple.Triple) ([]Sentence, []*MalformedEntityError) {
	var rows []Sentence
	var skipped []*MalformedEntityError

	for _, e := range groupEntities(triples) {
		if !e.is(triple.EntityTypeStatisticalVariable, triple.EntityTypeTopic) {
			continue
		}
		if strings.TrimSpace(e.dcid) == "" {
			skipped = append(skipped, &MalformedEntityError{Reason: ReasonMissingDCID})
			continue
		}

		sentences := entitySentences(e)
		if len(sentences) == 0 {
			skipped = append(skipped, &MalformedEntityError{DCID: e.dcid, Reason: ReasonNoSentenceContent})
			continue
		}
		for _, s := range sentences {
			rows = append(rows, Sentence{DCID: e.dcid, Sentence: s})
		}
	}

	return rows, skipped
}

// entitySentences picks the first template whose attributes are present.
func entitySentences(e *entity) []string {
	switch {
	case len(e.searchDescriptions) > 0:
		return e.searchDescriptions
	case len(e.names) > 0:
		name := e.names[0]
		if len(e.descriptions) > 0 && e.descriptions[0] != name {
			return []string{joinSentences(name, e.descriptions[0])}
		}
		return []string{name}
	case e.measuredProperty != "":
		return []string{conceptSentence(e)}
	case len(e.descriptions) > 0:
		return []string{e.descriptions[0]}
	}
	return nil
}

func joinSentences(first, second string) string {
	if strings.HasSuffix(first, ".") || strings.HasSuffix(first, "!") || strings.HasSuffix(first, "?") {
		return first + " " + second
	}
	return first + ". " + second
}

// conceptSentence renders the statistical definition of a variable, e.g.
// "Median age of person with female".
func conceptSentence(e *entity) string {
	var parts []string
	if statType := triple.StripNamespace(e.statType); statType != "" && statType != defaultStatType {
		if words := humanize(strings.TrimSuffix(statType, "Value")); words != "" {
			parts = append(parts, words)
		}
	}
	parts = append(parts, humanize(e.measuredProperty))

	sentence := strings.Join(parts, " ")
	if e.populationType != "" && triple.StripNamespace(e.populationType) != defaultPopulationType {
		sentence += " of " + humanize(e.populationType)
	}

	var constraints []string
	for _, p := range e.constraintPredicate {
		if v := e.values[p]; v != "" {
			constraints = append(constraints, humanize(v))
		}
	}
	if len(constraints) > 0 {
		sentence += " with " + strings.Join(constraints, ", ")
	}

	return capitalize(sentence)
}

// humanize turns an id such as "dcs:medianAge" or "Count_Person" into
// lower case words. Acronyms keep their case.
func humanize(id string) string {
	runes := []rune(triple.StripNamespace(id))
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(current) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	for i, w := range words {
		if strings.ToUpper(w) != w {
			words[i] = strings.ToLower(w)
		}
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// EncodeSentences renders rows as CSV with a "dcid,sentence" header.
func EncodeSentences(rows []Sentence) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"dcid", "sentence"}); err != nil {
		return nil, err
	}
	for _, row := range rows {
		if err := w.Write([]string{row.DCID, row.Sentence}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateNLSentences writes the sentence table for triples to dir and then
// registers it in embeddings/custom_catalog.yaml. Peer group triples are
// expected to be filtered out by the caller.
func (g *Generator) GenerateNLSentences(ctx context.Context, triples []triple.Triple, dir store.Dir) error {
	rows, skipped := BuildSentences(triples)
	for _, s := range skipped {
		logger.Warn("[NL] Skipping malformed entity", "dcid", s.DCID, "reason", s.Reason)
		g.recorder.EntitySkipped(s.Reason)
	}

	content, err := EncodeSentences(rows)
	if err != nil {
		return fmt.Errorf("failed to encode sentences: %w", err)
	}

	sentencesFile, err := dir.File(SentencesFileName)
	if err != nil {
		return err
	}
	if err := sentencesFile.Write(ctx, content); err != nil {
		return fmt.Errorf("failed to write sentences: %w", err)
	}
	g.recorder.SentencesWritten(len(rows))
	logger.Info("[NL] Wrote sentences", "rows", len(rows), "skipped", len(skipped), "path", sentencesFile.Path())

	return g.writeCatalog(ctx, dir, sentencesFile)
}
