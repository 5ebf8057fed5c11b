package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ExtractPPTX concatenates the visible text of every slide in slide
// order, one line break between slides.
func ExtractPPTX(data []byte) (string, error) {
	reader := bytes.NewReader(data)

	zipReader, err := zip.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read PPTX as ZIP: %w", err)
	}

	slideNames := make([]string, 0)
	for _, f := range zipReader.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slideNames = append(slideNames, f.Name)
		}
	}

	if len(slideNames) == 0 {
		return "", fmt.Errorf("no slides found in PPTX")
	}

	// Numeric sort so slide10 follows slide9, not slide1.
	sort.Slice(slideNames, func(i, j int) bool {
		return slideNumber(slideNames[i]) < slideNumber(slideNames[j])
	})

	var textBuilder strings.Builder
	for _, name := range slideNames {
		b, err := readZipFile(zipReader, name)
		if err != nil {
			return "", err
		}
		slideText, err := slideTextRuns(b)
		if err != nil {
			return "", fmt.Errorf("failed to parse %s: %w", name, err)
		}
		textBuilder.WriteString(slideText)
		textBuilder.WriteString("\n")
	}

	return strings.TrimSpace(textBuilder.String()), nil
}

func slideNumber(name string) int {
	n := strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/slide"), ".xml")
	v, err := strconv.Atoi(n)
	if err != nil {
		return 0
	}
	return v
}

// slideTextRuns walks the DrawingML slide XML joining <a:t> text runs.
// Runs within one paragraph are concatenated; paragraphs are separated
// by a space so title and body text do not glue together.
func slideTextRuns(b []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(b))

	var parts []string
	var current []string
	inText := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "p":
				if len(current) > 0 {
					parts = append(parts, strings.Join(current, ""))
					current = nil
				}
			}
		case xml.CharData:
			if inText {
				current = append(current, string(t))
			}
		case xml.EndElement:
			if t.Name.Local == "t" {
				inText = false
			}
		}
	}

	if len(current) > 0 {
		parts = append(parts, strings.Join(current, ""))
	}

	return strings.TrimSpace(strings.Join(parts, " ")), nil
}
