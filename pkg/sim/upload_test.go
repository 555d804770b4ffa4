package sim

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeInputDir builds a small simulation input tree:
//
//	sim.sif
//	mesh/part.msh
//	mesh/.hidden
func writeInputDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mesh"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sim.sif"), []byte("Header\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mesh", "part.msh"), []byte("$MeshFormat\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mesh", ".hidden"), []byte("x"), 0o644))
	return dir
}

func TestZipDir(t *testing.T) {
	dir := writeInputDir(t)
	zipPath := filepath.Join(t.TempDir(), "inputs.zip")

	require.NoError(t, ZipDir(zipPath, dir))

	r, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer r.Close()

	byName := make(map[string]*zip.File)
	for _, f := range r.File {
		byName[f.Name] = f
	}

	// All regular files are archived, dotfiles included, with
	// forward-slash relative paths.
	assert.Len(t, byName, 3)
	assert.Contains(t, byName, "sim.sif")
	assert.Contains(t, byName, "mesh/part.msh")
	assert.Contains(t, byName, "mesh/.hidden")

	// Entries are stored, not deflated.
	for name, f := range byName {
		assert.Equal(t, zip.Store, f.Method, "method of %s", name)
	}

	// Contents survive the round trip.
	rc, err := byName["sim.sif"].Open()
	require.NoError(t, err)
	defer rc.Close()
	buf := make([]byte, 16)
	n, _ := rc.Read(buf)
	assert.Equal(t, "Header\n", string(buf[:n]))
}

func TestZipDirMissingInput(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "inputs.zip")
	err := ZipDir(zipPath, filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestUploadDir(t *testing.T) {
	dir := writeInputDir(t)
	fake := NewFake()

	def := JobDefinition{Name: "cap_sweep", Solver: "elmer", RequestedCPU: 4, RequestedMemoryMB: 8192}
	pre, err := UploadDir(context.Background(), fake, dir, def)
	require.NoError(t, err)
	assert.Equal(t, "cap_sweep", pre.Name)
	assert.Equal(t, StatusPending, pre.Status)

	uploads := fake.Uploads()
	require.Len(t, uploads, 1)
	assert.Equal(t, def, uploads[0].Definition)
	assert.Greater(t, uploads[0].ArchiveSize, int64(0))
}

func TestUploadDirPropagatesUploadError(t *testing.T) {
	dir := writeInputDir(t)
	fake := NewFake()
	fake.UploadErr = errors.New("service down")

	_, err := UploadDir(context.Background(), fake, dir, JobDefinition{Name: "x"})
	assert.ErrorContains(t, err, "service down")
	assert.Empty(t, fake.Uploads())
}

func TestFakeGetJob(t *testing.T) {
	fake := NewFake()
	job := finishedJob()
	fake.SeedJob(job)

	got, err := fake.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.Name, got.Name)

	_, err = fake.GetJob(context.Background(), [16]byte{1})
	assert.Error(t, err)
}
