package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"phonosim/internal/report"
)

const testInventories = "InventoryID\tSource\tLanguageCode\tLanguageName\tTrump\tPhonemeID\tGlyphID\tPhoneme\tClass\tCombinedClass\tNumOfCombinedGlyphs\n" +
	"1\tspa\tkor\tKorean\t1\t1\t006B\tk\tconsonant\tc\t1\n" +
	"1\tspa\tkor\tKorean\t1\t2\t0061\ta\tvowel\tv\t1\n" +
	"1\tspa\tkor\tKorean\t1\t3\t006E\tn\tconsonant\tc\t1\n" +
	"2\tspa\tjpn\tJapanese\t1\t4\t006B\tk\tconsonant\tc\t1\n" +
	"2\tspa\tjpn\tJapanese\t1\t5\t0061\ta\tvowel\tv\t1\n" +
	"2\tspa\tjpn\tJapanese\t1\t6\t0074\tt\tconsonant\tc\t1\n" +
	"3\tspa\tfra\tFrench\t1\t7\t0070\tp\tconsonant\tc\t1\n" +
	"3\tspa\tfra\tFrench\t1\t8\t0061\ta\tvowel\tv\t1\n"

const testLanguages = "Glottocode\tName\tISO6393\tFamily\n" +
	"kore1280\tKorean\tkor\tKoreanic\n" +
	"nucl1643\tJapanese\tjpn\tJaponic\n"

const testSizes = "Korean kor ko 900\n" +
	"Japanese jpn ja 5000\n" +
	"French fra fr 20\n"

// newProject writes a config and a small data set into a temp directory and
// returns the config path.
func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"data/inventories.tsv": testInventories,
		"data/languages.tsv":   testLanguages,
		"data/sizes.txt":       testSizes,
		"data/wiki/wikidata.kor": strings.Repeat("가나다 abc\n", 3),
		"data/wiki/wikidata.jpn": strings.Repeat("かな abc\n", 3),
	}
	for name, body := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	cfg := `[data]
inventories = "data/inventories.tsv"
languages = "data/languages.tsv"
features = "data/features.tsv"
sizes = "data/sizes.txt"
corpora = "data/wiki"

[rank]
scorer = "f1"
top_k = 10
high_resource_threshold = 100

[cache]
dir = "cache"
`
	path := filepath.Join(root, "phonosim.toml")
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write phonosim.toml: %v", err)
	}
	return path
}

// resetFlags restores every flag of the command tree to its default so that
// runs sharing the global commands do not leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func common(cfg string) []string {
	return []string{"--config", cfg, "--color", "off", "--ui", "off", "--format", "json"}
}

func TestRankCommand(t *testing.T) {
	cfg := newProject(t)
	out, _, err := execute(t, append([]string{"rank", "kor"}, common(cfg)...)...)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	var got struct {
		Query   string
		Scorer  string
		Results []struct {
			Lang  string
			Score float64
		}
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Scorer != "f1" || len(got.Results) != 2 {
		t.Fatalf("unexpected ranking: %+v", got)
	}
	if got.Results[0].Lang != "jpn" || got.Results[0].Score != 2.0/3.0 {
		t.Fatalf("top result = %+v, want jpn at 2/3", got.Results[0])
	}
}

func TestRankHighResourceOnly(t *testing.T) {
	cfg := newProject(t)
	args := append([]string{"rank", "kor", "--high-resource", "--scorer", "overlap"}, common(cfg)...)
	out, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if !strings.Contains(out, `"jpn"`) || strings.Contains(out, `"fra"`) {
		t.Fatalf("high-resource filter not applied: %s", out)
	}
}

func TestRankUnknownLanguageIsNotAnError(t *testing.T) {
	cfg := newProject(t)
	args := append([]string{"rank", "korr"}, common(cfg)...)
	_, stderr, err := execute(t, args...)
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if !strings.Contains(stderr, "korr") {
		t.Fatalf("expected a diagnostic naming the unknown code, got %q", stderr)
	}
}

func TestCompareCommand(t *testing.T) {
	cfg := newProject(t)
	args := append([]string{"compare", "kor", "jpn", "--scorer", "overlap"}, common(cfg)...)
	out, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	var got struct{ Score float64 }
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Score != 2 {
		t.Fatalf("overlap = %v, want 2", got.Score)
	}
}

func TestCompareF1ShowsPrecisionRecall(t *testing.T) {
	cfg := newProject(t)
	args := append([]string{"compare", "kor", "fra", "--scorer", "f1"}, common(cfg)...)
	out, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	var got struct {
		Score float64
		PR    *struct{ Precision, Recall float64 } `json:"precision_recall"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	// kor {k,a,n} vs fra {p,a}: one shared phoneme
	if got.PR == nil || got.PR.Precision != 0.5 || got.PR.Recall != 1.0/3.0 {
		t.Fatalf("precision/recall = %+v", got.PR)
	}
}

func TestClusterExplicitZeroThreshold(t *testing.T) {
	cfg := newProject(t)
	args := append([]string{"cluster", "--min-size", "0", "--threshold", "0"}, common(cfg)...)
	out, _, err := execute(t, args...)
	if err != nil {
		t.Fatalf("cluster: %v", err)
	}
	var got struct {
		Clusters []struct {
			Members []string `json:"members"`
		} `json:"clusters"`
		Skipped []string `json:"skipped"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	// kor and jpn corpora have 3 lines each and share "abc"
	if len(got.Skipped) != 0 {
		t.Fatalf("nothing may be skipped with --min-size 0: %v", got.Skipped)
	}
	if len(got.Clusters) != 1 || len(got.Clusters[0].Members) != 2 {
		t.Fatalf("any shared character must merge with --threshold 0: %+v", got.Clusters)
	}
}

func TestSizesAndDump(t *testing.T) {
	cfg := newProject(t)
	out, _, err := execute(t, append([]string{"sizes"}, common(cfg)...)...)
	if err != nil {
		t.Fatalf("sizes: %v", err)
	}
	var sizes []report.SizeEntry
	if err := json.Unmarshal([]byte(out), &sizes); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(sizes) != 2 || sizes[0].Lines != 3 {
		t.Fatalf("sizes = %+v", sizes)
	}

	dump := filepath.Join(filepath.Dir(cfg), "dists.mp")
	if _, _, err := execute(t, append([]string{"dump", dump}, common(cfg)...)...); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if _, err := os.Stat(dump); err != nil {
		t.Fatalf("dump file missing: %v", err)
	}
	out, _, err = execute(t, append([]string{"sizes", "--dump", dump}, common(cfg)...)...)
	if err != nil {
		t.Fatalf("sizes from dump: %v", err)
	}
	sizes = nil
	if err := json.Unmarshal([]byte(out), &sizes); err != nil || len(sizes) != 2 {
		t.Fatalf("sizes from dump = %+v (%v)", sizes, err)
	}
}

func TestLangDataCommand(t *testing.T) {
	cfg := newProject(t)
	out, _, err := execute(t, append([]string{"langdata", "kor"}, common(cfg)...)...)
	if err != nil {
		t.Fatalf("langdata: %v", err)
	}
	if !strings.Contains(out, "Koreanic") {
		t.Fatalf("langdata output missing family: %s", out)
	}
}

func TestMissingConfig(t *testing.T) {
	_, _, err := execute(t, "rank", "kor", "--config", filepath.Join(t.TempDir(), "nope.toml"), "--ui", "off")
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var got versionPayload
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if got.Tool != "phonosim" || got.Version == "" {
		t.Fatalf("version payload = %+v", got)
	}
}
