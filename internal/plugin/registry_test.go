package plugin_test

import (
	"errors"
	"testing"

	"pipet/internal/pipeline"
	"pipet/internal/plugin"
	"pipet/internal/proc"
)

func buildNothing(iface *proc.Interface) (*pipeline.Definition, error) {
	return pipeline.NewDefinition(iface, "x"), nil
}

func TestRegisterAssignsContiguousIndices(t *testing.T) {
	reg := plugin.NewRegistry()
	for _, title := range []string{"T1proc", "fMRIproc", "DTIproc"} {
		if err := reg.Register(plugin.Package{Title: title, Build: buildNothing}); err != nil {
			t.Fatalf("Register(%s) failed: %v", title, err)
		}
	}

	titles := reg.Titles()
	if len(titles) != 3 {
		t.Fatalf("unexpected title count: %d", len(titles))
	}
	seen := make(map[string]bool)
	for i := 0; i < reg.Len(); i++ {
		title, ok := titles[i]
		if !ok {
			t.Fatalf("index %d missing from titles map", i)
		}
		if seen[title] {
			t.Fatalf("duplicate title %q", title)
		}
		seen[title] = true
	}
}

func TestRegisterRejectsDuplicatesAndNilBuild(t *testing.T) {
	reg := plugin.NewRegistry()
	if err := reg.Register(plugin.Package{Title: "T1proc", Build: buildNothing}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := reg.Register(plugin.Package{Title: "T1proc", Build: buildNothing}); err == nil {
		t.Fatal("expected duplicate title rejection")
	}
	if err := reg.Register(plugin.Package{Title: "other"}); err == nil {
		t.Fatal("expected nil build rejection")
	}
	if err := reg.Register(plugin.Package{Build: buildNothing}); err == nil {
		t.Fatal("expected empty title rejection")
	}
}

func TestLookups(t *testing.T) {
	reg := plugin.NewRegistry()
	if err := reg.Register(plugin.Package{Title: "T1proc", Doc: "anatomical preprocessing", Build: buildNothing}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := reg.ByIndex(1); !errors.Is(err, plugin.ErrUnknownPackage) {
		t.Fatalf("expected ErrUnknownPackage, got %v", err)
	}
	if _, err := reg.ByTitle("missing"); !errors.Is(err, plugin.ErrUnknownPackage) {
		t.Fatalf("expected ErrUnknownPackage, got %v", err)
	}

	byIdx, err := reg.Howto(0)
	if err != nil || byIdx != "anatomical preprocessing" {
		t.Fatalf("Howto(0): %q err=%v", byIdx, err)
	}
	byTitle, err := reg.Howto("T1proc")
	if err != nil || byTitle != byIdx {
		t.Fatalf("Howto(title): %q err=%v", byTitle, err)
	}
	if _, err := reg.Howto(3.14); !errors.Is(err, plugin.ErrUnknownPackage) {
		t.Fatalf("expected ErrUnknownPackage for weird ref, got %v", err)
	}
}
