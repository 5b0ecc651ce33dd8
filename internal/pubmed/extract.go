// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/relevance-finder/internal/normalize"
	"github.com/pdiddy/relevance-finder/pkg/types"
)

// missing is the placeholder for absent scalar fields.
const missing = "N/A"

// Extract flattens one decoded article into a Record. Every field falls
// back to its default independently; the only hard requirement is a PMID,
// without which the record cannot be identified or linked.
func Extract(a *Article) (*types.Record, error) {
	pmid := strings.TrimSpace(a.MedlineCitation.PMID)
	if pmid == "" {
		return nil, fmt.Errorf("record has no PMID")
	}

	detail := a.MedlineCitation.Article
	pubDate := detail.Journal.JournalIssue.PubDate

	rec := &types.Record{
		PMID:             pmid,
		Title:            textOrMissing(detail.ArticleTitle),
		Journal:          textOrMissing(detail.Journal.Title),
		Date:             displayDate(pubDate),
		PublicationTypes: trimmed(detail.PublicationTypes),
		AuthorCount:      len(detail.AuthorList),
		Abstract:         joinAbstract(detail.Abstract.Texts),
		EntryDate:        entryDate(a.PubmedData.History),
		MeSHTerms:        meshTerms(a.MedlineCitation.MeshHeadingList),
		Chemicals:        chemicalNames(a.MedlineCitation.ChemicalList),
		Keywords:         keywords(a.MedlineCitation.KeywordLists),
		GeneSymbols:      trimmed(a.MedlineCitation.GeneSymbolList),
		HasGrant:         len(detail.GrantList) > 0,
	}

	rec.Affiliations = affiliations(detail.AuthorList)
	rec.AffiliationTokens = affiliationTokens(rec.Affiliations)
	rec.Citation = buildCitation(detail.AuthorList, pubDate,
		strings.TrimSpace(detail.ArticleTitle), strings.TrimSpace(detail.Journal.Title))

	return rec, nil
}

func textOrMissing(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return missing
	}
	return s
}

// displayDate resolves the publication date: explicit year first, the
// free-form MedlineDate second, "N/A" last.
func displayDate(d PubDate) string {
	if y := strings.TrimSpace(d.Year); y != "" {
		return y
	}
	if m := strings.TrimSpace(d.MedlineDate); m != "" {
		return m
	}
	return missing
}

// joinAbstract joins abstract fragments with a newline, trimming each and
// keeping structured-abstract labels as a "LABEL: " prefix.
func joinAbstract(texts []AbstractText) string {
	var parts []string
	for _, t := range texts {
		body := strings.TrimSpace(t.Text)
		if body == "" {
			continue
		}
		if label := strings.TrimSpace(t.Label); label != "" {
			body = label + ": " + body
		}
		parts = append(parts, body)
	}
	if len(parts) == 0 {
		return missing
	}
	return strings.Join(parts, "\n")
}

// affiliations collects the raw affiliation strings across all authors in
// document order, dropping blanks.
func affiliations(authors []Author) []string {
	var out []string
	for _, a := range authors {
		for _, info := range a.Affiliations {
			if s := strings.TrimSpace(info.Affiliation); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// affiliationTokens splits and normalizes every raw affiliation string,
// deduplicating across the whole record in first-seen order.
func affiliationTokens(raw []string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, aff := range raw {
		for _, tok := range normalize.SplitAffiliation(aff) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// buildCitation assembles "Author (Year). Title. Journal." and never fails:
// a missing author list yields "Unknown Author", a missing year "n.d.", and
// missing title or journal are simply omitted.
func buildCitation(authors []Author, d PubDate, title, journal string) string {
	author := "Unknown Author"
	if len(authors) > 0 {
		author = authorName(authors[0])
	}

	year := strings.TrimSpace(d.Year)
	if year == "" {
		year = "n.d."
	}

	c := author + " (" + year + ")."
	if title != "" {
		c += " " + strings.TrimSuffix(title, ".") + "."
	}
	if journal != "" {
		c += " " + journal + "."
	}
	return c
}

func authorName(a Author) string {
	if name := strings.TrimSpace(a.CollectiveName); name != "" {
		return name
	}
	name := strings.TrimSpace(a.LastName)
	if name == "" {
		return "Unknown Author"
	}
	if initials := strings.TrimSpace(a.Initials); initials != "" {
		name += " " + initials
	}
	return name
}

// entryDate formats the "entrez" history date as YYYY-MM-DD. An
// unparseable month degrades to YYYY, a missing day to YYYY-MM, and a
// missing year to an empty string.
func entryDate(history []PubMedPubDate) string {
	for _, h := range history {
		if !strings.EqualFold(h.PubStatus, "entrez") {
			continue
		}
		year := strings.TrimSpace(h.Year)
		if year == "" {
			return ""
		}
		month, ok := MonthNumber(h.Month)
		if !ok {
			return year
		}
		date := year + "-" + month
		if day, err := strconv.Atoi(strings.TrimSpace(h.Day)); err == nil && day >= 1 && day <= 31 {
			date += fmt.Sprintf("-%02d", day)
		}
		return date
	}
	return ""
}

func trimmed(list []string) []string {
	var out []string
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func meshTerms(headings []MeshHeading) []string {
	var out []string
	for _, h := range headings {
		if s := strings.TrimSpace(h.DescriptorName); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func chemicalNames(chemicals []Chemical) []string {
	var out []string
	for _, c := range chemicals {
		if s := strings.TrimSpace(c.NameOfSubstance); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func keywords(lists []KeywordList) []string {
	var out []string
	for _, l := range lists {
		out = append(out, trimmed(l.Keywords)...)
	}
	return out
}
