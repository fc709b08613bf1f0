package proc_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"pipet/internal/proc"
	"pipet/internal/testsupport"
)

func newInterface(t *testing.T) *proc.Interface {
	t.Helper()
	root := testsupport.SeedDataset(t)
	b := testsupport.MustOpenBucket(t, root)
	return proc.New(context.Background(), b, "T1proc", proc.Options{Workers: 2})
}

func TestUpdatePopulatesCodeMaps(t *testing.T) {
	iface := newInterface(t)
	if err := iface.Update(context.Background()); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if got := iface.Executed(); got["010"] != "010_denoise" {
		t.Fatalf("unexpected executed map: %v", got)
	}
	if got := iface.Reported(); got["020"] != "020_report" {
		t.Fatalf("unexpected reported map: %v", got)
	}
	if got := iface.Masked(); got["030"] != "030_brainmask" {
		t.Fatalf("unexpected masked map: %v", got)
	}
}

func TestDirLookups(t *testing.T) {
	iface := newInterface(t)
	if err := iface.Update(context.Background()); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	dir, err := iface.StepDir("010")
	if err != nil || dir != "010_denoise" {
		t.Fatalf("StepDir: dir=%q err=%v", dir, err)
	}
	if _, err := iface.StepDir("zzz"); !errors.Is(err, proc.ErrUnknownStepCode) {
		t.Fatalf("expected ErrUnknownStepCode, got %v", err)
	}
	if _, err := iface.ReportDir("010"); !errors.Is(err, proc.ErrUnknownStepCode) {
		t.Fatalf("report namespace must not contain processed codes, got %v", err)
	}
}

func TestSubmitTracksHandles(t *testing.T) {
	iface := newInterface(t)

	handle := iface.Submit("denoise",
		proc.JobSpec{Name: "sub-01", Run: func(context.Context) error { return nil }},
		proc.JobSpec{Name: "sub-02", Run: func(context.Context) error { return nil }},
	)
	if err := iface.Wait(); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	if len(handle.JobIDs) != 2 {
		t.Fatalf("expected two job ids, got %d", len(handle.JobIDs))
	}
	running := iface.RunningObj()
	if running["denoise"] == nil || running["denoise"].Step != "denoise" {
		t.Fatalf("unexpected running handles: %v", running)
	}
	if got := iface.Scheduler().Finished(); got != 2 {
		t.Fatalf("expected 2 finished jobs, got %d", got)
	}
}

func TestJobIDsReadsSafelyNextToSubmit(t *testing.T) {
	iface := newInterface(t)

	const jobs = 50
	submitted := make(chan struct{})
	go func() {
		defer close(submitted)
		for i := 0; i < jobs; i++ {
			iface.Submit("denoise", proc.JobSpec{
				Name: fmt.Sprintf("sub-%02d", i),
				Run:  func(context.Context) error { return nil },
			})
		}
	}()

	for open := true; open; {
		select {
		case <-submitted:
			open = false
		default:
			_ = iface.JobIDs("denoise")
		}
	}
	if err := iface.Wait(); err != nil {
		t.Fatalf("Wait failed: %v", err)
	}

	ids := iface.JobIDs("denoise")
	if len(ids) != jobs {
		t.Fatalf("expected %d job ids, got %d", jobs, len(ids))
	}
	if got := iface.JobIDs("missing"); got != nil {
		t.Fatalf("unknown step must yield no ids, got %v", got)
	}

	// The returned slice is a copy; mutating it must not touch the handle.
	ids[0] = uuid.Nil
	if again := iface.JobIDs("denoise"); again[0] == uuid.Nil {
		t.Fatal("JobIDs must return a copy, not the live slice")
	}
}

func TestStepOutputDirsFollowLayout(t *testing.T) {
	iface := newInterface(t)

	stepDir, err := iface.StepOutputDir("040", "smooth")
	if err != nil {
		t.Fatalf("StepOutputDir failed: %v", err)
	}
	wantSuffix := filepath.Join("Processing", "T1proc", "040_smooth")
	if filepath.Base(filepath.Dir(filepath.Dir(stepDir))) != "Processing" || filepath.Base(stepDir) != "040_smooth" {
		t.Fatalf("unexpected step output dir %q (want suffix %q)", stepDir, wantSuffix)
	}

	maskDir, err := iface.MaskOutputDir("041", "headmask")
	if err != nil {
		t.Fatalf("MaskOutputDir failed: %v", err)
	}
	if filepath.Base(filepath.Dir(maskDir)) != "Mask" {
		t.Fatalf("mask output must live directly under Mask, got %q", maskDir)
	}
}

func TestDestroyStep(t *testing.T) {
	iface := newInterface(t)
	ctx := context.Background()
	if err := iface.Update(ctx); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	target := filepath.Join(iface.Bucket().Root(), "Processing", "T1proc", "010_denoise")
	if err := iface.DestroyStep(ctx, "010", proc.ModeProcessing); err != nil {
		t.Fatalf("DestroyStep failed: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatalf("step directory should be removed, stat err=%v", err)
	}
	if _, err := iface.StepDir("010"); !errors.Is(err, proc.ErrUnknownStepCode) {
		t.Fatalf("code map should refresh after destroy, got %v", err)
	}

	if err := iface.DestroyStep(ctx, "020", "sideways"); !errors.Is(err, proc.ErrUnknownDestroyMode) {
		t.Fatalf("expected ErrUnknownDestroyMode, got %v", err)
	}
}

func TestCodeFromDir(t *testing.T) {
	cases := []struct {
		dir  string
		code string
		ok   bool
	}{
		{"010_denoise", "010", true},
		{"01A_motion", "01A", true},
		{"010", "", false},
		{"0_x", "", false},
		{"010-denoise", "", false},
	}
	for _, tc := range cases {
		code, ok := proc.CodeFromDir(tc.dir)
		if code != tc.code || ok != tc.ok {
			t.Fatalf("CodeFromDir(%q) = %q,%v want %q,%v", tc.dir, code, ok, tc.code, tc.ok)
		}
	}
}
