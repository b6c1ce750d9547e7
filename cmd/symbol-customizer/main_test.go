package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robert-at-pretension-io/symbol-customizer/internal/config"
	"github.com/robert-at-pretension-io/symbol-customizer/internal/customizer"
	"github.com/robert-at-pretension-io/symbol-customizer/internal/symbol"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const instanceDoc = `component: DDS24_v0_0
parameters:
  out1_width: "%s"
  out2_width: "%s"
symbol:
  name: DDS24
  terminals:
    - name: clock
      direction: in
    - name: out1
      direction: out
    - name: out2
      direction: out
`

func instance(w1, w2 string) string {
	return strings.Replace(strings.Replace(instanceDoc, "%s", w1, 1), "%s", w2, 1)
}

func TestNameCommand(t *testing.T) {
	out, err := run(t, "name", "out1", "4")
	require.NoError(t, err)
	assert.Equal(t, "out1[3:0]\n", out)

	out, err = run(t, "name", "out1", "1")
	require.NoError(t, err)
	assert.Equal(t, "out1\n", out)

	_, err = run(t, "name", "out1", "0")
	assert.ErrorIs(t, err, customizer.ErrInvalidWidth)
}

func TestApplyWrite(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "dds.yaml", instance("2", "8"))

	out, err := run(t, "apply", "--write", doc)
	require.NoError(t, err)
	assert.Contains(t, out, doc+": succeeded")
	assert.Contains(t, out, "out1 -> out1[1:0]")
	assert.Contains(t, out, "out2 -> out2[7:0]")

	saved, err := symbol.LoadDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"clock", "out1[1:0]", "out2[7:0]"}, saved.Symbol.Names())

	// Running again changes nothing.
	out, err = run(t, "apply", "--write", doc)
	require.NoError(t, err)
	assert.Equal(t, doc+": succeeded\n", out)
}

func TestApplyWithoutWriteLeavesFile(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "dds.yaml", instance("4", "1"))
	before, err := os.ReadFile(doc)
	require.NoError(t, err)

	out, err := run(t, "apply", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "out1 -> out1[3:0]")
	assert.NotContains(t, out, "out2 ->")

	after, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestApplyPreview(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "dds.yaml", instance("4", "8"))

	out, err := run(t, "apply", "--preview", "--write", doc)
	require.NoError(t, err)
	assert.Equal(t, doc+": preview\n", out)

	saved, err := symbol.LoadDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"clock", "out1", "out2"}, saved.Symbol.Names())
}

func TestApplyRejectedRename(t *testing.T) {
	dir := t.TempDir()
	body := instance("2", "4") + "    - name: out2[7:0]\n      direction: out\n"
	doc := writeFile(t, dir, "dds.yaml", body)

	out, err := run(t, "apply", doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, customizer.ErrRenameRejected)
	assert.Contains(t, out, doc+": failed")
	assert.Contains(t, out, "out1 -> out1[1:0]")
	assert.NotContains(t, out, "out2 ->")
}

func TestApplySchemaFailure(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "dds.yaml", instance("four", "8"))

	out, err := run(t, "apply", doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
	assert.Empty(t, out)
}

func TestApplyZeroWidth(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "dds.yaml", instance("0", "8"))

	out, err := run(t, "apply", doc)
	require.ErrorIs(t, err, customizer.ErrInvalidWidth)
	assert.Equal(t, doc+": failed\n", out)
}

func TestApplyDirectoryWithConfig(t *testing.T) {
	dir := t.TempDir()
	instances := filepath.Join(dir, "instances")
	require.NoError(t, os.MkdirAll(instances, 0o755))
	first := writeFile(t, instances, "a.yaml", instance("2", "2"))
	second := writeFile(t, instances, "b.yml", instance("1", "16"))

	cfg := config.DefaultConfig()
	cfg.Terminals = cfg.Terminals[1:]
	cfgPath := filepath.Join(dir, "custom.json")
	require.NoError(t, cfg.Save(cfgPath))

	out, err := run(t, "apply", "--config", cfgPath, instances)
	require.NoError(t, err)
	assert.Contains(t, out, first+": succeeded\n  out2 -> out2[1:0]\n")
	assert.Contains(t, out, second+": succeeded\n  out2 -> out2[15:0]\n")
	assert.NotContains(t, out, "out1 ->")
}

const ddsVHDL = `entity dds24 is
  port (
    clock : in  std_logic;
    out1  : out std_logic_vector(3 downto 0);
    out2  : out std_logic_vector(7 downto 0);
    sync  : out std_logic
  );
end entity dds24;
`

func TestImportVHDLThenApply(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "dds24.vhd", ddsVHDL)
	doc := filepath.Join(dir, "dds24.yaml")

	_, err := run(t, "import-vhdl", "--out", doc, src)
	require.NoError(t, err)

	imported, err := symbol.LoadDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "4", imported.Parameters["out1_width"])
	assert.Equal(t, "8", imported.Parameters["out2_width"])

	cfgPath := writeFile(t, dir, "auto.json", `{"autoTerminals": true}`)
	out, err := run(t, "apply", "--config", cfgPath, "--write", doc)
	require.NoError(t, err)
	assert.Contains(t, out, "out1 -> out1[3:0]")
	assert.Contains(t, out, "out2 -> out2[7:0]")

	saved, err := symbol.LoadDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"clock", "out1[3:0]", "out2[7:0]", "sync"}, saved.Symbol.Names())
}

func TestImportVHDLToStdout(t *testing.T) {
	src := writeFile(t, t.TempDir(), "dds24.vhd", ddsVHDL)

	out, err := run(t, "import-vhdl", src)
	require.NoError(t, err)

	doc, err := symbol.ParseDocument([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "dds24", doc.Component)

	_, err = run(t, "import-vhdl", "--entity", "missing", src)
	assert.ErrorContains(t, err, `entity "missing" not found`)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Created "+config.FileName)

	cfg, err := config.LoadFile(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)

	// Existing file and no confirmation on stdin.
	out, err = run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")

	_, err = run(t, "init", "--force")
	require.NoError(t, err)
}

func TestApplyAutoTerminalsWithoutWidths(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "plain.yaml", `component: GLUE
symbol:
  terminals:
    - name: out1
      direction: out
`)
	cfgPath := writeFile(t, dir, "auto.json", `{"autoTerminals": true}`)

	out, err := run(t, "apply", "--config", cfgPath, doc)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestApplyExampleProject(t *testing.T) {
	src, err := os.ReadFile(filepath.Join("..", "..", "testdata", "dds24.yaml"))
	require.NoError(t, err)
	doc := writeFile(t, t.TempDir(), "dds24.yaml", string(src))
	cfgPath := filepath.Join("..", "..", "testdata", config.FileName)

	out, err := run(t, "apply", "--config", cfgPath, "--write", doc)
	require.NoError(t, err)
	assert.Equal(t, doc+": succeeded\n  out1 -> out1[3:0]\n  out2 -> out2[7:0]\n", out)

	saved, err := symbol.LoadDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, []string{"clock", "enable", "out1[3:0]", "out2[7:0]"}, saved.Symbol.Names())
}

func TestImportExampleEntity(t *testing.T) {
	out, err := run(t, "import-vhdl", filepath.Join("..", "..", "testdata", "dds24.vhd"))
	require.NoError(t, err)

	doc, err := symbol.ParseDocument([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, []string{"clock", "enable", "out1", "out2"}, doc.Symbol.Names())
	assert.Equal(t, map[string]string{
		"clock_width":  "1",
		"enable_width": "1",
		"out1_width":   "4",
		"out2_width":   "8",
	}, doc.Parameters)
}

func TestApplyPreviewWithUncommittedWidths(t *testing.T) {
	dir := t.TempDir()
	inDoc := writeFile(t, dir, "flagged.yaml", "preview: true\n"+instance("", "8"))
	viaFlag := writeFile(t, dir, "edited.yaml", instance("x", ""))

	out, err := run(t, "apply", "--write", inDoc)
	require.NoError(t, err)
	assert.Equal(t, inDoc+": preview\n", out)

	out, err = run(t, "apply", "--preview", viaFlag)
	require.NoError(t, err)
	assert.Equal(t, viaFlag+": preview\n", out)

	saved, err := symbol.LoadDocument(inDoc)
	require.NoError(t, err)
	assert.Equal(t, []string{"clock", "out1", "out2"}, saved.Symbol.Names())

	// Without preview the same widths are rejected by the schema.
	_, err = run(t, "apply", viaFlag)
	assert.ErrorContains(t, err, "schema validation failed")
}

func TestApplyMissingSymbol(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "nosymbol.yaml", "component: DDS24_v0_0\nparameters:\n  out1_width: \"4\"\n  out2_width: \"8\"\n")

	out, err := run(t, "apply", doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
	assert.Empty(t, out)

	_, err = run(t, "apply", "--preview", doc)
	assert.ErrorContains(t, err, "schema validation failed")
}
