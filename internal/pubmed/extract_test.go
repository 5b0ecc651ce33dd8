// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"strings"
	"testing"
)

const sampleArticle = `<?xml version="1.0"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>38012345</PMID>
      <Article>
        <Journal>
          <Title>Lancet Diabetes Endocrinol</Title>
          <JournalIssue>
            <PubDate><Year>2024</Year><Month>Mar</Month></PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Semaglutide outcomes in type 2 diabetes</ArticleTitle>
        <Abstract>
          <AbstractText Label="BACKGROUND">GLP-1 agonists reduce events.</AbstractText>
          <AbstractText Label="METHODS">Randomized, double-blind.</AbstractText>
        </Abstract>
        <AuthorList>
          <Author>
            <LastName>Marso</LastName>
            <ForeName>Steven P</ForeName>
            <Initials>SP</Initials>
            <AffiliationInfo>
              <Affiliation>Dept of Medicine, Harvard University, Boston, MA 02115, USA.</Affiliation>
            </AffiliationInfo>
          </Author>
          <Author>
            <LastName>Holst</LastName>
            <Initials>JJ</Initials>
          </Author>
        </AuthorList>
        <GrantList>
          <Grant><GrantID>R01-123</GrantID><Agency>NIDDK</Agency></Grant>
        </GrantList>
        <PublicationTypeList>
          <PublicationType>Journal Article</PublicationType>
          <PublicationType>Randomized Controlled Trial</PublicationType>
        </PublicationTypeList>
      </Article>
      <ChemicalList>
        <Chemical><NameOfSubstance>Semaglutide</NameOfSubstance></Chemical>
      </ChemicalList>
      <MeshHeadingList>
        <MeshHeading><DescriptorName>Diabetes Mellitus, Type 2</DescriptorName></MeshHeading>
      </MeshHeadingList>
      <KeywordList>
        <Keyword>GLP-1</Keyword>
        <Keyword>cardiovascular outcomes</Keyword>
      </KeywordList>
      <GeneSymbolList>
        <GeneSymbol>GLP1R</GeneSymbol>
      </GeneSymbolList>
    </MedlineCitation>
    <PubmedData>
      <History>
        <PubMedPubDate PubStatus="pubmed"><Year>2024</Year><Month>2</Month><Day>15</Day></PubMedPubDate>
        <PubMedPubDate PubStatus="entrez"><Year>2024</Year><Month>February</Month><Day>14</Day></PubMedPubDate>
      </History>
    </PubmedData>
  </PubmedArticle>
</PubmedArticleSet>`

func parseOne(t *testing.T, doc string) *Article {
	t.Helper()
	entries, err := ParseBatch(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Err != nil {
		t.Fatalf("entry error: %v", entries[0].Err)
	}
	return entries[0].Article
}

func TestExtractFullRecord(t *testing.T) {
	rec, err := Extract(parseOne(t, sampleArticle))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if rec.PMID != "38012345" {
		t.Errorf("PMID = %q", rec.PMID)
	}
	if rec.Title != "Semaglutide outcomes in type 2 diabetes" {
		t.Errorf("Title = %q", rec.Title)
	}
	if rec.Journal != "Lancet Diabetes Endocrinol" {
		t.Errorf("Journal = %q", rec.Journal)
	}
	if rec.Date != "2024" {
		t.Errorf("Date = %q, want 2024", rec.Date)
	}
	if rec.AuthorCount != 2 {
		t.Errorf("AuthorCount = %d, want 2", rec.AuthorCount)
	}
	if !rec.HasGrant {
		t.Error("HasGrant = false, want true")
	}

	wantAbstract := "BACKGROUND: GLP-1 agonists reduce events.\nMETHODS: Randomized, double-blind."
	if rec.Abstract != wantAbstract {
		t.Errorf("Abstract = %q, want %q", rec.Abstract, wantAbstract)
	}

	wantCitation := "Marso SP (2024). Semaglutide outcomes in type 2 diabetes. Lancet Diabetes Endocrinol."
	if rec.Citation != wantCitation {
		t.Errorf("Citation = %q, want %q", rec.Citation, wantCitation)
	}

	if rec.EntryDate != "2024-02-14" {
		t.Errorf("EntryDate = %q, want 2024-02-14", rec.EntryDate)
	}

	if len(rec.Affiliations) != 1 {
		t.Fatalf("Affiliations = %v", rec.Affiliations)
	}
	found := false
	for _, tok := range rec.AffiliationTokens {
		if tok == "harvard university" {
			found = true
		}
		if tok == "02115" {
			t.Error("numeric token survived filtering")
		}
	}
	if !found {
		t.Errorf("AffiliationTokens = %v, want a \"harvard university\" token", rec.AffiliationTokens)
	}

	if len(rec.PublicationTypes) != 2 {
		t.Errorf("PublicationTypes = %v", rec.PublicationTypes)
	}
	if len(rec.MeSHTerms) != 1 || rec.MeSHTerms[0] != "Diabetes Mellitus, Type 2" {
		t.Errorf("MeSHTerms = %v", rec.MeSHTerms)
	}
	if len(rec.Chemicals) != 1 || rec.Chemicals[0] != "Semaglutide" {
		t.Errorf("Chemicals = %v", rec.Chemicals)
	}
	if len(rec.Keywords) != 2 {
		t.Errorf("Keywords = %v", rec.Keywords)
	}
	if len(rec.GeneSymbols) != 1 || rec.GeneSymbols[0] != "GLP1R" {
		t.Errorf("GeneSymbols = %v", rec.GeneSymbols)
	}
	if rec.Permalink() != "https://pubmed.ncbi.nlm.nih.gov/38012345/" {
		t.Errorf("Permalink = %q", rec.Permalink())
	}
}

const bareArticle = `<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>100</PMID>
      <Article></Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestExtractDefaults(t *testing.T) {
	rec, err := Extract(parseOne(t, bareArticle))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if rec.Title != "N/A" {
		t.Errorf("Title = %q, want N/A", rec.Title)
	}
	if rec.Journal != "N/A" {
		t.Errorf("Journal = %q, want N/A", rec.Journal)
	}
	if rec.Date != "N/A" {
		t.Errorf("Date = %q, want N/A", rec.Date)
	}
	if rec.Abstract != "N/A" {
		t.Errorf("Abstract = %q, want N/A", rec.Abstract)
	}
	if rec.Citation != "Unknown Author (n.d.)." {
		t.Errorf("Citation = %q, want \"Unknown Author (n.d.).\"", rec.Citation)
	}
	if rec.EntryDate != "" {
		t.Errorf("EntryDate = %q, want empty", rec.EntryDate)
	}
	if rec.HasGrant {
		t.Error("HasGrant = true, want false")
	}
	if len(rec.AffiliationTokens) != 0 {
		t.Errorf("AffiliationTokens = %v, want empty", rec.AffiliationTokens)
	}
}

const medlineDateArticle = `<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>200</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><MedlineDate>1998 Dec-1999 Jan</MedlineDate></PubDate>
          </JournalIssue>
        </Journal>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestExtractMedlineDateFallback(t *testing.T) {
	rec, err := Extract(parseOne(t, medlineDateArticle))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if rec.Date != "1998 Dec-1999 Jan" {
		t.Errorf("Date = %q, want the MedlineDate fallback", rec.Date)
	}
}

func TestExtractMissingPMID(t *testing.T) {
	const doc = `<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation><PMID>  </PMID></MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

	_, err := Extract(parseOne(t, doc))
	if err == nil {
		t.Fatal("Extract should fail without a PMID")
	}
}

func TestExtractCollectiveAuthor(t *testing.T) {
	const doc = `<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID>300</PMID>
      <Article>
        <AuthorList>
          <Author><CollectiveName>UK Prospective Diabetes Study Group</CollectiveName></Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

	rec, err := Extract(parseOne(t, doc))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.HasPrefix(rec.Citation, "UK Prospective Diabetes Study Group (n.d.).") {
		t.Errorf("Citation = %q", rec.Citation)
	}
}

func TestParseBatchNotXML(t *testing.T) {
	if _, err := ParseBatch(strings.NewReader("this is not xml")); err == nil {
		t.Fatal("ParseBatch should fail on a malformed document")
	}
}

func TestParseBatchWrongRoot(t *testing.T) {
	if _, err := ParseBatch(strings.NewReader("<SomethingElse></SomethingElse>")); err == nil {
		t.Fatal("ParseBatch should reject an unexpected root element")
	}
}

func TestParseBatchEmptySet(t *testing.T) {
	entries, err := ParseBatch(strings.NewReader("<PubmedArticleSet></PubmedArticleSet>"))
	if err != nil {
		t.Fatalf("ParseBatch: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestMonthNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1", "01", true},
		{"03", "03", true},
		{"12", "12", true},
		{"Mar", "03", true},
		{"march", "03", true},
		{"SEPT", "09", true},
		{"December", "12", true},
		{"0", "", false},
		{"13", "", false},
		{"notamonth", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := MonthNumber(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MonthNumber(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
