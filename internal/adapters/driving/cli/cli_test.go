package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genba-labs/shashin-cli/internal/core/domain"
)

// resetFlags restores every changed flag to its default so executions
// stay independent.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with args and returns combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// writeBatchFile marshals a batch into a temp JSON file.
func writeBatchFile(t *testing.T, batch []domain.AnalysisResult) string {
	t.Helper()

	data, err := json.MarshalIndent(batch, "", "  ")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func consensusBatch() []domain.AnalysisResult {
	return []domain.AnalysisResult{
		{FileName: "photo1.jpg", Station: "No.10+50", WorkType: "舗装工"},
		{FileName: "photo2.jpg", Station: "No.10+50", WorkType: "舗装工"},
		{FileName: "photo3.jpg", Station: "NO.10+50", WorkType: "舗装工"},
	}
}

// TestVersionCmd tests the version output.
func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "shashin version")
}

// TestNormaliseCmd_RequiresArg tests argument validation.
func TestNormaliseCmd_RequiresArg(t *testing.T) {
	_, err := execute(t, "normalise")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

// TestNormaliseCmd tests the dry-run report.
func TestNormaliseCmd(t *testing.T) {
	path := writeBatchFile(t, consensusBatch())

	out, err := execute(t, "--config-dir", t.TempDir(), "normalise", path)

	require.NoError(t, err)
	assert.Contains(t, out, "photo3.jpg")
	assert.Contains(t, out, "No.10+50")
	assert.Contains(t, out, "3件中1件を補正")

	// Dry run leaves the file untouched.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "NO.10+50")
}

// TestNormaliseCmd_Apply tests writing the corrected batch back.
func TestNormaliseCmd_Apply(t *testing.T) {
	path := writeBatchFile(t, consensusBatch())

	_, err := execute(t, "--config-dir", t.TempDir(), "normalise", "--apply", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var batch []domain.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &batch))
	assert.Equal(t, "No.10+50", batch[2].Station)
}

// TestNormaliseCmd_BadThreshold tests threshold validation.
func TestNormaliseCmd_BadThreshold(t *testing.T) {
	path := writeBatchFile(t, consensusBatch())

	_, err := execute(t, "--config-dir", t.TempDir(), "normalise", "--threshold", "1.5", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold")
}

// TestNormaliseCmd_MissingFile tests a nonexistent batch file.
func TestNormaliseCmd_MissingFile(t *testing.T) {
	_, err := execute(t, "--config-dir", t.TempDir(), "normalise", filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

// TestExportCmd tests workbook creation.
func TestExportCmd(t *testing.T) {
	path := writeBatchFile(t, consensusBatch())
	out := filepath.Join(t.TempDir(), "list.xlsx")

	_, err := execute(t, "--config-dir", t.TempDir(), "export", "--output", out, path)

	require.NoError(t, err)
	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

// TestScanCmd tests the folder listing.
func TestScanCmd(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("x"), 0o600))

	out, err := execute(t, "scan", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "a.jpg")
	assert.Contains(t, out, "1件の写真")
}

// TestCacheCmds tests cache info and clear against a temp store.
func TestCacheCmds(t *testing.T) {
	dataDir := t.TempDir()

	out, err := execute(t, "cache", "stats", "--data-dir", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "エントリ数: 0")

	out, err = execute(t, "cache", "clear", "--data-dir", dataDir)
	require.NoError(t, err)
	assert.Contains(t, out, "キャッシュを削除しました")
}

// TestSettingsCmds tests init followed by show.
func TestSettingsCmds(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--config-dir", dir, "settings", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "config.toml")

	out, err = execute(t, "--config-dir", dir, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "多数決しきい値: 0.6")
}

// TestHierarchyCmds tests list and find over a temp master.
func TestHierarchyCmds(t *testing.T) {
	master := filepath.Join(t.TempDir(), "master.csv")
	csv := "写真区分,写真種別,工種,種別,細別,撮影内容,検索パターン\n" +
		"直接工事費,品質管理写真,舗装工,舗装打換え工,表層工,温度測定,到着温度|温度管理\n"
	require.NoError(t, os.WriteFile(master, []byte(csv), 0o600))

	out, err := execute(t, "hierarchy", "list", "--master", master)
	require.NoError(t, err)
	assert.Contains(t, out, "舗装工")

	out, err = execute(t, "hierarchy", "find", "--master", master, "到着温度")
	require.NoError(t, err)
	assert.Contains(t, out, "表層工")

	out, err = execute(t, "hierarchy", "find", "--master", master, "型枠")
	require.NoError(t, err)
	assert.Contains(t, out, "該当なし")
}

// TestHierarchyCmds_NoMaster tests the unconfigured-master error.
func TestHierarchyCmds_NoMaster(t *testing.T) {
	_, err := execute(t, "--config-dir", t.TempDir(), "hierarchy", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "master")
}
