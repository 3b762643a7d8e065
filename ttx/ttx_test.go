package ttx

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/wingfont/config"
	"github.com/npillmayer/wingfont/dataset"
	"github.com/npillmayer/wingfont/glyphs"
	"github.com/npillmayer/wingfont/plan"
	"github.com/npillmayer/wingfont/variant"
	"github.com/npillmayer/wingfont/wordrule"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.ttx")
	defer teardown()
	//
	table := compilePlan(t)
	var buf bytes.Buffer
	if err := Encode(&buf, table); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, frag := range []string{
		`<ttFont sfntVersion="\x00\x01\x00\x00">`,
		`<FeatureTag value="calt">`,
		`<ChainContextSubst index="0" Format="1">`,
		`<Substitution in="uni884C" out="wingfont000001">`,
		`<!-- bank 2 -->`,
	} {
		if !strings.Contains(out, frag) {
			t.Errorf("expected output to contain %s", frag)
		}
	}
	g, err := Decode(strings.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if err := Verify(table, g); err != nil {
		t.Errorf("decoded GSUB does not match plan: %v", err)
	}
	chain := g.Lookups[2].Subtables[0]
	if chain.Coverage[0] != "uni9280" || chain.ChainRuleSets[0][0].Input[0] != "uni884C" {
		t.Errorf("unexpected chain subtable %+v", chain)
	}
	rec := chain.ChainRuleSets[0][0].LookupRecords[0]
	if rec.SequenceIndex != 1 || rec.LookupListIndex != 1 {
		t.Errorf("expected record 1 -> 1, have %+v", rec)
	}
}

func TestVerifyDetectsDifferences(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.ttx")
	defer teardown()
	//
	table := compilePlan(t)
	var buf bytes.Buffer
	if err := Encode(&buf, table); err != nil {
		t.Fatal(err)
	}
	g, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	g.Lookups[2].Subtables[0].ChainRuleSets[0][0].LookupRecords[0].LookupListIndex = 0
	if err := Verify(table, g); err == nil {
		t.Errorf("expected modified lookup record to be detected")
	}
	g.Lookups = g.Lookups[:1]
	if err := Verify(table, g); err == nil {
		t.Errorf("expected missing lookups to be detected")
	}
}

// A GSUB dump as written by fontTools, with self-closing elements and count
// comments.
const fontToolsGSUB = `<?xml version="1.0" encoding="UTF-8"?>
<ttFont sfntVersion="\x00\x01\x00\x00" ttLibVersion="4.47">
  <GSUB>
    <Version value="0x00010000"/>
    <ScriptList>
      <!-- ScriptCount=1 -->
      <ScriptRecord index="0">
        <ScriptTag value="DFLT"/>
        <Script>
          <DefaultLangSys>
            <ReqFeatureIndex value="65535"/>
            <!-- FeatureCount=1 -->
            <FeatureIndex index="0" value="0"/>
          </DefaultLangSys>
          <!-- LangSysCount=0 -->
        </Script>
      </ScriptRecord>
    </ScriptList>
    <FeatureList>
      <!-- FeatureCount=1 -->
      <FeatureRecord index="0">
        <FeatureTag value="liga"/>
        <Feature>
          <!-- LookupCount=1 -->
          <LookupListIndex index="0" value="1"/>
        </Feature>
      </FeatureRecord>
    </FeatureList>
    <LookupList>
      <!-- LookupCount=2 -->
      <Lookup index="0">
        <LookupType value="1"/>
        <LookupFlag value="0"/>
        <!-- SubTableCount=1 -->
        <SingleSubst index="0">
          <Substitution in="a" out="a.alt"/>
        </SingleSubst>
      </Lookup>
      <Lookup index="1">
        <LookupType value="4"/>
        <LookupFlag value="0"/>
        <!-- SubTableCount=1 -->
        <LigatureSubst index="0">
          <LigatureSet glyph="f">
            <Ligature components="f,i" glyph="f_f_i"/>
            <Ligature components="i" glyph="f_i"/>
          </LigatureSet>
        </LigatureSubst>
      </Lookup>
    </LookupList>
  </GSUB>
</ttFont>
`

func TestDecodeFontToolsDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "wingfont.ttx")
	defer teardown()
	//
	g, err := Decode(strings.NewReader(fontToolsGSUB))
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Scripts) != 1 || g.Scripts[0].Tag != "DFLT" || len(g.Scripts[0].Features) != 1 {
		t.Errorf("unexpected scripts %+v", g.Scripts)
	}
	if len(g.Features) != 1 || g.Features[0].Tag != "liga" || g.Features[0].Lookups[0] != 1 {
		t.Errorf("unexpected features %+v", g.Features)
	}
	if len(g.Lookups) != 2 {
		t.Fatalf("expected 2 lookups, got %d", len(g.Lookups))
	}
	if g.Lookups[0].Subtables[0].SingleSubst["a"] != "a.alt" {
		t.Errorf("unexpected single substitution %+v", g.Lookups[0].Subtables[0])
	}
	ligs := g.Lookups[1].Subtables[0].Ligatures["f"]
	if len(ligs) != 2 || ligs[0].Glyph != "f_f_i" || len(ligs[0].Components) != 2 {
		t.Errorf("unexpected ligatures %+v", ligs)
	}
}

func TestDecodeRejectsMismatchedSubtable(t *testing.T) {
	doc := strings.Replace(fontToolsGSUB, `<LookupType value="1"/>`, `<LookupType value="4"/>`, 1)
	if _, err := Decode(strings.NewReader(doc)); err == nil {
		t.Errorf("expected SingleSubst in a ligature lookup to be rejected")
	}
	if _, err := Decode(strings.NewReader("<ttFont><GSUB/></ttFont>")); err == nil {
		t.Errorf("expected missing lookup list to be rejected")
	}
}

// --- Helpers ---------------------------------------------------------------

// compilePlan compiles the bank scenario: 行 with slots hang4, xing2, hong4,
// and the word 銀行 using slot 2 of 行.
func compilePlan(t *testing.T) *plan.Table {
	t.Helper()
	conf := config.Default()
	conf.NumericOverride = true
	rows := []dataset.Row{
		{Word: "行", Annotations: []string{"hang4"}, Weight: 5},
		{Word: "行", Annotations: []string{"xing2"}, Weight: 3},
		{Word: "銀行", Annotations: []string{"ngan4", "hong4"}, Weight: 1},
	}
	src := glyphs.NewStaticSource([]rune("行銀0123456789")...)
	freq := dataset.Ingest(rows, src, conf, nil)
	vt, err := variant.Allocate(freq, conf, nil)
	if err != nil {
		t.Fatal(err)
	}
	m, err := glyphs.Namer{Source: src}.Materialize(vt)
	if err != nil {
		t.Fatal(err)
	}
	table, err := plan.NewCompiler(conf, nil).Compile(vt, wordrule.Aggregate(freq), m)
	if err != nil {
		t.Fatal(err)
	}
	return table
}
