// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pubmed decodes PubMed efetch XML and extracts flat, structured
// records from it.
package pubmed

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Article mirrors one <PubmedArticle> element of a PubMed efetch response.
// Almost every sub-element is optional; extraction supplies the defaults.
type Article struct {
	MedlineCitation MedlineCitation `xml:"MedlineCitation"`
	PubmedData      PubmedData      `xml:"PubmedData"`
}

type MedlineCitation struct {
	PMID            string          `xml:"PMID"`
	Article         ArticleDetail   `xml:"Article"`
	ChemicalList    []Chemical      `xml:"ChemicalList>Chemical"`
	MeshHeadingList []MeshHeading   `xml:"MeshHeadingList>MeshHeading"`
	KeywordLists    []KeywordList   `xml:"KeywordList"`
	GeneSymbolList  []string        `xml:"GeneSymbolList>GeneSymbol"`
}

type ArticleDetail struct {
	Journal          Journal        `xml:"Journal"`
	ArticleTitle     string         `xml:"ArticleTitle"`
	Abstract         Abstract       `xml:"Abstract"`
	AuthorList       []Author       `xml:"AuthorList>Author"`
	GrantList        []Grant        `xml:"GrantList>Grant"`
	PublicationTypes []string       `xml:"PublicationTypeList>PublicationType"`
}

type Journal struct {
	Title        string  `xml:"Title"`
	JournalIssue Issue   `xml:"JournalIssue"`
}

type Issue struct {
	PubDate PubDate `xml:"PubDate"`
}

// PubDate carries either a structured year/month/day or a free-form
// MedlineDate fallback ("1998 Dec-1999 Jan").
type PubDate struct {
	Year        string `xml:"Year"`
	Month       string `xml:"Month"`
	Day         string `xml:"Day"`
	MedlineDate string `xml:"MedlineDate"`
}

type Abstract struct {
	Texts []AbstractText `xml:"AbstractText"`
}

// AbstractText is one fragment of a possibly structured abstract. Label is
// set for structured abstracts ("BACKGROUND", "METHODS", ...).
type AbstractText struct {
	Label string `xml:"Label,attr"`
	Text  string `xml:",chardata"`
}

type Author struct {
	LastName       string            `xml:"LastName"`
	ForeName       string            `xml:"ForeName"`
	Initials       string            `xml:"Initials"`
	CollectiveName string            `xml:"CollectiveName"`
	Affiliations   []AffiliationInfo `xml:"AffiliationInfo"`
}

type AffiliationInfo struct {
	Affiliation string `xml:"Affiliation"`
}

type Grant struct {
	GrantID string `xml:"GrantID"`
	Agency  string `xml:"Agency"`
}

type Chemical struct {
	NameOfSubstance string `xml:"NameOfSubstance"`
}

type MeshHeading struct {
	DescriptorName string `xml:"DescriptorName"`
}

type KeywordList struct {
	Keywords []string `xml:"Keyword"`
}

type PubmedData struct {
	History []PubMedPubDate `xml:"History>PubMedPubDate"`
}

// PubMedPubDate is one dated event in the citation's history. The entry
// with PubStatus "entrez" records when the citation entered the database.
type PubMedPubDate struct {
	PubStatus string `xml:"PubStatus,attr"`
	Year      string `xml:"Year"`
	Month     string `xml:"Month"`
	Day       string `xml:"Day"`
}

// BatchEntry is one <PubmedArticle> element from a batch. Entries that
// failed to decode carry the error instead of an article so the caller can
// count them without aborting the batch.
type BatchEntry struct {
	Article *Article
	Err     error
}

// ParseBatch reads a <PubmedArticleSet> document and returns one entry per
// <PubmedArticle> element. A document that is not well-formed XML, or whose
// root is not a PubmedArticleSet, is a batch-level error.
func ParseBatch(r io.Reader) ([]BatchEntry, error) {
	dec := xml.NewDecoder(r)

	var (
		entries  []BatchEntry
		sawRoot  bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing batch: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if !sawRoot {
			if start.Name.Local != "PubmedArticleSet" {
				return nil, fmt.Errorf("parsing batch: unexpected root element <%s>", start.Name.Local)
			}
			sawRoot = true
			continue
		}

		if start.Name.Local != "PubmedArticle" {
			if err := dec.Skip(); err != nil {
				return nil, fmt.Errorf("parsing batch: %w", err)
			}
			continue
		}

		var a Article
		if err := dec.DecodeElement(&a, &start); err != nil {
			entries = append(entries, BatchEntry{Err: fmt.Errorf("decoding record: %w", err)})
			continue
		}
		entries = append(entries, BatchEntry{Article: &a})
	}

	if !sawRoot {
		return nil, fmt.Errorf("parsing batch: no PubmedArticleSet element found")
	}
	return entries, nil
}
