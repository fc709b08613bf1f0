package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"pipet/internal/bucket"
)

// SeedDataset creates a dataset tree under a temp directory with raw data,
// one processed step, one report, and one mask, and returns its root.
//
// Layout:
//
//	Data/func/sub-01/sub-01_task.nii.gz
//	Data/anat/sub-01/sub-01_anat.nii.gz
//	Processing/T1proc/010_denoise/sub-01/sub-01_denoised.nii.gz
//	Results/T1proc/020_report/summary.html
//	Mask/030_brainmask/sub-01/sub-01_mask.nii.gz
func SeedDataset(t testing.TB) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "ds")
	files := []string{
		"Data/func/sub-01/sub-01_task.nii.gz",
		"Data/anat/sub-01/sub-01_anat.nii.gz",
		"Processing/T1proc/010_denoise/sub-01/sub-01_denoised.nii.gz",
		"Results/T1proc/020_report/summary.html",
		"Mask/030_brainmask/sub-01/sub-01_mask.nii.gz",
	}
	for _, rel := range files {
		WriteFile(t, root, rel)
	}
	return root
}

// WriteFile creates a file (and parent directories) under root with a small
// placeholder payload.
func WriteFile(t testing.TB, root, rel string) {
	t.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// MustOpenBucket opens a bucket at root and registers cleanup.
func MustOpenBucket(t testing.TB, root string) *bucket.Bucket {
	t.Helper()

	b, err := bucket.Open(root)
	if err != nil {
		t.Fatalf("open bucket: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}
