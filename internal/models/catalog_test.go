package models

import "testing"

func TestFindModel(t *testing.T) {
	mdl, idx, ok := FindModel("gpt-4")
	if !ok {
		t.Fatalf("FindModel(gpt-4) not found")
	}
	if mdl.Name != "GPT-4" || Catalog[idx].ID != "gpt-4" {
		t.Fatalf("FindModel(gpt-4) = %+v at %d", mdl, idx)
	}

	if _, _, ok := FindModel("unknown"); ok {
		t.Fatalf("FindModel(unknown) should not be found")
	}
}

func TestUpgradeTargetsAreInCatalog(t *testing.T) {
	for from, to := range UpgradeOnLogin {
		if _, _, ok := FindModel(from); !ok {
			t.Errorf("legacy model %q missing from catalog", from)
		}
		if _, _, ok := FindModel(to); !ok {
			t.Errorf("upgrade target %q missing from catalog", to)
		}
	}
	if got, ok := UpgradeFor(BaselineModel); !ok || got != "gpt-3.5-turbo-16k" {
		t.Fatalf("UpgradeFor(baseline) = %q, %v", got, ok)
	}
	if _, ok := UpgradeFor("gpt-4"); ok {
		t.Fatalf("UpgradeFor(gpt-4) should not upgrade")
	}
}

func TestFileObjectEmpty(t *testing.T) {
	if !(FileObject{}).Empty() {
		t.Fatalf("zero FileObject should be empty")
	}
	if (FileObject{Name: "a.txt"}).Empty() {
		t.Fatalf("named FileObject should not be empty")
	}
}
