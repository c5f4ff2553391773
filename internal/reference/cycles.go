package reference

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Cycle is an exhibition-cycle subject. AltLabel holds the short codes
// ("IAIR 22.1") used to recognize the cycle in folder paths.
type Cycle struct {
	PrefLabel []string
	AltLabel  []string
}

type skosDocument struct {
	Concepts []skosConcept `xml:"http://www.w3.org/2004/02/skos/core# Concept"`
}

type skosConcept struct {
	PrefLabels []string `xml:"http://www.w3.org/2004/02/skos/core# prefLabel"`
	AltLabels  []string `xml:"http://www.w3.org/2004/02/skos/core# altLabel"`
}

// LoadCycles reads a SKOS RDF/XML export from path.
func LoadCycles(path string) ([]Cycle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open cycles: %w", err)
	}
	defer file.Close()
	return ReadCycles(file)
}

// ReadCycles parses SKOS concepts and keeps those with at least one altLabel
// containing a dot (cycle codes look like "WW 19.2"). Other altLabels are
// discarded. A document without concepts is an error.
func ReadCycles(r io.Reader) ([]Cycle, error) {
	var doc skosDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse cycles: %w", err)
	}
	if len(doc.Concepts) == 0 {
		return nil, errors.New("no subjects data found")
	}

	var cycles []Cycle
	for _, concept := range doc.Concepts {
		var codes []string
		for _, label := range concept.AltLabels {
			label = strings.TrimSpace(label)
			if strings.Contains(label, ".") {
				codes = append(codes, label)
			}
		}
		if len(codes) == 0 {
			continue
		}
		prefs := make([]string, 0, len(concept.PrefLabels))
		for _, label := range concept.PrefLabels {
			if label = strings.TrimSpace(label); label != "" {
				prefs = append(prefs, label)
			}
		}
		cycles = append(cycles, Cycle{PrefLabel: prefs, AltLabel: codes})
	}
	return cycles, nil
}
