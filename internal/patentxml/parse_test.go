// Copyright ktanaka, 2026. All rights reserved.

package patentxml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ktanaka/patentprep/pkg/types"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<jppat:PatentPublication
	xmlns:jppat="http://www.jpo.go.jp/standards/XMLSchema/ST96/JPPatent"
	xmlns:jpcom="http://www.jpo.go.jp/standards/XMLSchema/ST96/JPCommon"
	xmlns:com="http://www.wipo.int/standards/XMLSchema/ST96/Common"
	xmlns:pat="http://www.wipo.int/standards/XMLSchema/ST96/Patent">
	<jpcom:BibliographicData>
		<pat:PublicationNumber>JP2023-123456</pat:PublicationNumber>
		<com:PublicationDate>2023-05-15</com:PublicationDate>
		<pat:InventionTitle>モータ制御装置</pat:InventionTitle>
		<jppat:Inventor>
			<com:EntityName>山田太郎</com:EntityName>
		</jppat:Inventor>
		<jppat:Applicant>
			<com:EntityName>株式会社サンプル</com:EntityName>
		</jppat:Applicant>
		<pat:MainClassification>H02P 21/00</pat:MainClassification>
	</jpcom:BibliographicData>
	<pat:Abstract>
		<pat:P pNumber="">モータを高精度に制御する装置を提供する。</pat:P>
	</pat:Abstract>
	<pat:Description>
		<pat:TechnicalField>
			<pat:P pNumber="0001">本発明はモータ制御に関する。</pat:P>
		</pat:TechnicalField>
		<pat:BackgroundArt>
			<pat:P pNumber="0002">従来のモータ制御装置には課題があった。</pat:P>
		</pat:BackgroundArt>
		<pat:EmbodimentDescription>
			<pat:P pNumber="0003">以下、図面を参照して実施形態を説明する。</pat:P>
			<pat:P pNumber="0004">制御部はインバータを駆動する。</pat:P>
		</pat:EmbodimentDescription>
	</pat:Description>
	<pat:Claims>
		<pat:Claim>
			<pat:ClaimNumber>1</pat:ClaimNumber>
			<pat:ClaimText>モータを制御する制御部を備える装置。</pat:ClaimText>
		</pat:Claim>
		<pat:Claim>
			<pat:ClaimNumber>2</pat:ClaimNumber>
			<pat:ClaimText>前記制御部がインバータを含む請求項1に記載の装置。</pat:ClaimText>
		</pat:Claim>
	</pat:Claims>
</jppat:PatentPublication>`

func writeXML(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := writeXML(t, dir, "JP2023-123456.xml", sampleXML)

	p, err := ParseFile(path, types.DefaultParseConfig())
	if err != nil {
		t.Fatal(err)
	}

	if p.PublicationNumber != "JP2023-123456" {
		t.Errorf("PublicationNumber = %q", p.PublicationNumber)
	}
	if p.PublicationDate != "2023-05-15" {
		t.Errorf("PublicationDate = %q", p.PublicationDate)
	}
	if p.Title != "モータ制御装置" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Abstract != "モータを高精度に制御する装置を提供する。" {
		t.Errorf("Abstract = %q", p.Abstract)
	}
	if len(p.Claims) != 2 {
		t.Fatalf("got %d claims, want 2", len(p.Claims))
	}
	if p.Claims[0].Number != "1" || p.Claims[1].Number != "2" {
		t.Errorf("claim numbers = %q, %q", p.Claims[0].Number, p.Claims[1].Number)
	}
	if !strings.Contains(p.Claims[0].Text, "制御部を備える装置") {
		t.Errorf("claim 1 text = %q", p.Claims[0].Text)
	}
	if len(p.Inventors) != 1 || p.Inventors[0] != "山田太郎" {
		t.Errorf("Inventors = %v", p.Inventors)
	}
	if len(p.Applicants) != 1 || p.Applicants[0] != "株式会社サンプル" {
		t.Errorf("Applicants = %v", p.Applicants)
	}
	if len(p.IPCClassifications) != 1 || p.IPCClassifications[0] != "H02P 21/00" {
		t.Errorf("IPCClassifications = %v", p.IPCClassifications)
	}
	if p.SourceFile != path {
		t.Errorf("SourceFile = %q", p.SourceFile)
	}
}

func TestParseFileDescriptionParagraphMarkers(t *testing.T) {
	dir := t.TempDir()
	path := writeXML(t, dir, "doc.xml", sampleXML)

	p, err := ParseFile(path, types.DefaultParseConfig())
	if err != nil {
		t.Fatal(err)
	}

	if p.DescriptionSource != "EmbodimentDescription" {
		t.Errorf("DescriptionSource = %q", p.DescriptionSource)
	}
	for _, want := range []string{"【0003】", "【0004】", "インバータを駆動する"} {
		if !strings.Contains(p.DetailedDescription, want) {
			t.Errorf("DetailedDescription missing %q:\n%s", want, p.DetailedDescription)
		}
	}
	// Background paragraphs must not leak into the embodiment text.
	if strings.Contains(p.DetailedDescription, "【0002】") {
		t.Errorf("DetailedDescription contains background paragraph:\n%s", p.DetailedDescription)
	}
}

func TestParseFileDescriptionSourcePriority(t *testing.T) {
	// Both DetailedDescription and EmbodimentDescription present: the
	// configured order decides which one wins.
	xmlBoth := strings.Replace(sampleXML,
		"<pat:EmbodimentDescription>",
		`<pat:DetailedDescription><pat:P pNumber="0010">詳細説明の本文。</pat:P></pat:DetailedDescription><pat:EmbodimentDescription>`,
		1)

	dir := t.TempDir()
	path := writeXML(t, dir, "doc.xml", xmlBoth)

	p, err := ParseFile(path, types.DefaultParseConfig())
	if err != nil {
		t.Fatal(err)
	}
	if p.DescriptionSource != "EmbodimentDescription" {
		t.Errorf("DescriptionSource = %q, want EmbodimentDescription first", p.DescriptionSource)
	}

	cfg := types.DefaultParseConfig()
	cfg.DescriptionSources = []string{"DetailedDescription"}
	p, err = ParseFile(path, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if p.DescriptionSource != "DetailedDescription" {
		t.Errorf("DescriptionSource = %q, want DetailedDescription", p.DescriptionSource)
	}
	if !strings.Contains(p.DetailedDescription, "【0010】") {
		t.Errorf("DetailedDescription missing 【0010】:\n%s", p.DetailedDescription)
	}
}

func TestParseFileCapsDescriptionLength(t *testing.T) {
	long := strings.Repeat("長", 200)
	xmlLong := strings.Replace(sampleXML, "制御部はインバータを駆動する。", long, 1)

	dir := t.TempDir()
	path := writeXML(t, dir, "doc.xml", xmlLong)

	cfg := types.DefaultParseConfig()
	cfg.MaxDescriptionLength = 50

	p, err := ParseFile(path, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got := len([]rune(p.DetailedDescription)); got != 50 {
		t.Errorf("description length = %d runes, want 50", got)
	}
	if !strings.HasSuffix(p.DetailedDescription, "...") {
		t.Errorf("truncated description should end in ...: %q", p.DetailedDescription)
	}
}

func TestParseFileMissingSections(t *testing.T) {
	minimal := `<?xml version="1.0"?>
<jppat:PatentPublication
	xmlns:jppat="http://www.jpo.go.jp/standards/XMLSchema/ST96/JPPatent"
	xmlns:pat="http://www.wipo.int/standards/XMLSchema/ST96/Patent">
	<pat:PublicationNumber>JP2023-000001</pat:PublicationNumber>
</jppat:PatentPublication>`

	dir := t.TempDir()
	path := writeXML(t, dir, "minimal.xml", minimal)

	p, err := ParseFile(path, types.DefaultParseConfig())
	if err != nil {
		t.Fatal(err)
	}
	if p.PublicationNumber != "JP2023-000001" {
		t.Errorf("PublicationNumber = %q", p.PublicationNumber)
	}
	if p.Title != "" || p.Abstract != "" || len(p.Claims) != 0 || p.DetailedDescription != "" {
		t.Errorf("missing sections should yield empty fields: %+v", p)
	}
}

func TestParseFileMalformed(t *testing.T) {
	dir := t.TempDir()
	path := writeXML(t, dir, "broken.xml", "<unclosed>")

	if _, err := ParseFile(path, types.DefaultParseConfig()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeXML(t, dir, "a.xml", sampleXML)
	writeXML(t, dir, filepath.Join("nested", "deeper", "b.xml"), sampleXML)
	writeXML(t, dir, "broken.xml", "<unclosed>")

	var log strings.Builder
	results, err := ParseDir(context.Background(), dir, types.DefaultParseConfig(), &log)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	patents := Patents(results)
	if len(patents) != 2 {
		t.Errorf("got %d patents, want 2", len(patents))
	}
	if CountSkipped(results) != 1 {
		t.Errorf("CountSkipped = %d, want 1", CountSkipped(results))
	}
	if !strings.Contains(log.String(), "broken.xml") {
		t.Errorf("warning should name the skipped file: %q", log.String())
	}
}

func TestParseDirNoFiles(t *testing.T) {
	if _, err := ParseDir(context.Background(), t.TempDir(), types.DefaultParseConfig(), os.Stderr); err == nil {
		t.Fatal("expected error for empty directory")
	}
}

func TestParseDirDeterministicOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.xml", "a.xml", "b.xml"} {
		writeXML(t, dir, name, sampleXML)
	}

	results, err := ParseDir(context.Background(), dir, types.DefaultParseConfig(), os.Stderr)
	if err != nil {
		t.Fatal(err)
	}

	var got []string
	for _, r := range results {
		got = append(got, filepath.Base(r.Path))
	}
	want := []string{"a.xml", "b.xml", "c.xml"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}
