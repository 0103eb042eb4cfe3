package migration

import (
	"testing"
	"testing/fstest"

	"skillsync/migrations"
)

func TestLoad_OrdersByVersionAndSkipsForeignFiles(t *testing.T) {
	src := fstest.MapFS{
		"V2__add_index.sql": {Data: []byte("CREATE INDEX x ON t (a);\n")},
		"V1__init.sql":      {Data: []byte("CREATE TABLE t (a INT);")},
		"README.md":         {Data: []byte("notes")},
		"v3__lower.sql":     {Data: []byte("SELECT 1;")},
	}

	migs, err := Load(src)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[0].Name != "init" {
		t.Fatalf("unexpected first migration: %+v", migs[0])
	}
	if migs[1].Version != 2 || migs[1].SQL != "CREATE INDEX x ON t (a);" {
		t.Fatalf("unexpected second migration: %+v", migs[1])
	}
	if migs[0].Checksum == "" || migs[0].Checksum == migs[1].Checksum {
		t.Fatalf("expected distinct checksums")
	}
}

func TestLoad_RejectsDuplicateVersions(t *testing.T) {
	src := fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V1__b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := Load(src); err == nil {
		t.Fatalf("expected duplicate version error")
	}
}

func TestLoad_RejectsEmptyFile(t *testing.T) {
	src := fstest.MapFS{"V1__empty.sql": {Data: []byte("  \n")}}
	if _, err := Load(src); err == nil {
		t.Fatalf("expected empty file error")
	}
}

func TestLoad_EmbeddedSchema(t *testing.T) {
	migs, err := Load(migrations.FS)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) == 0 || migs[0].Version != 1 {
		t.Fatalf("expected embedded V1 migration, got %+v", migs)
	}
}

func TestRunner_SourcePrefersExistingDir(t *testing.T) {
	dir := t.TempDir()
	r := Runner{Dir: dir, Source: fstest.MapFS{}}
	src, err := r.source()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := src.(fstest.MapFS); ok {
		t.Fatalf("expected on-disk dir to win")
	}

	r = Runner{Dir: dir + "/missing", Source: fstest.MapFS{}}
	src, err = r.source()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := src.(fstest.MapFS); !ok {
		t.Fatalf("expected embedded source fallback")
	}
}
