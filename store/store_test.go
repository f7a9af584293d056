package store

import (
	"errors"
	"slices"
	"testing"

	"github.com/cwbudde/algo-magspec/internal/testutil"
	"github.com/cwbudde/algo-magspec/labeled"
	"github.com/cwbudde/algo-magspec/materialize"
	"github.com/cwbudde/algo-magspec/spectral"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	cfg := DefaultConfig()
	cfg.InMemory = true
	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func precessionArray(t *testing.T) *labeled.Array[float64] {
	t.Helper()
	a, err := materialize.ToArray(testutil.PrecessionDrive(8, 1e-12, 1e11, testutil.Mesh(2, 2, 1)))
	if err != nil {
		t.Fatalf("ToArray error: %v", err)
	}
	return a
}

func requireSameArray(t *testing.T, got, want *labeled.Array[float64]) {
	t.Helper()
	if len(got.Axes) != len(want.Axes) {
		t.Fatalf("axes=%d want %d", len(got.Axes), len(want.Axes))
	}
	for i := range want.Axes {
		if !got.Axes[i].Equal(want.Axes[i]) || got.Axes[i].Units != want.Axes[i].Units {
			t.Fatalf("axis %d: got %+v want %+v", i, got.Axes[i], want.Axes[i])
		}
	}
	if !slices.Equal(got.Attrs.Keys(), want.Attrs.Keys()) {
		t.Fatalf("attr keys=%v want %v", got.Attrs.Keys(), want.Attrs.Keys())
	}
	for _, k := range want.Attrs.Keys() {
		g, _ := got.Attrs.Get(k)
		w, _ := want.Attrs.Get(k)
		if g != w {
			t.Fatalf("attr %s=%q want %q", k, g, w)
		}
	}
	testutil.RequireSliceNearlyEqual(t, got.Data, want.Data, 0)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"memory without path", Config{InMemory: true, CompressionLevel: 1}, false},
		{"missing path", Config{CompressionLevel: 2}, true},
		{"level zero", Config{Path: "x", CompressionLevel: 0}, true},
		{"level five", Config{Path: "x", CompressionLevel: 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate()=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestCodecRoundTrip(t *testing.T) {
	a := precessionArray(t)
	raw, err := Encode(a)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	got, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	requireSameArray(t, got, a)
}

func TestDecodeRejectsCorruptRecords(t *testing.T) {
	raw, err := Encode(precessionArray(t))
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	badVersion := slices.Clone(raw)
	badVersion[4] = 9

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"magic", append([]byte("NOPE"), raw[4:]...)},
		{"version", badVersion},
		{"truncated header", raw[:12]},
		{"ragged payload", raw[:len(raw)-3]},
		{"short payload", raw[:len(raw)-8]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.data); !errors.Is(err, ErrCorrupt) {
				t.Fatalf("err=%v want ErrCorrupt", err)
			}
		})
	}
}

func TestPutGetKeysDelete(t *testing.T) {
	s := openMemory(t)
	a := precessionArray(t)

	for _, key := range []string{"run-b", "run-a"} {
		if err := s.Put(key, a); err != nil {
			t.Fatalf("Put(%s) error: %v", key, err)
		}
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys error: %v", err)
	}
	if !slices.Equal(keys, []string{"run-a", "run-b"}) {
		t.Fatalf("keys=%v", keys)
	}

	got, err := s.Get("run-a")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	requireSameArray(t, got, a)

	if err := s.Delete("run-a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := s.Get("run-a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete err=%v want ErrNotFound", err)
	}
	if err := s.Delete("run-a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete err=%v want ErrNotFound", err)
	}
	if err := s.Put("", a); err == nil {
		t.Fatal("expected empty key error")
	}
}

func TestPutOverwrites(t *testing.T) {
	s := openMemory(t)
	first := precessionArray(t)
	second, err := materialize.ToArray(testutil.RampDrive(3, 1, testutil.Mesh(1, 1, 1)))
	if err != nil {
		t.Fatalf("ToArray error: %v", err)
	}

	if err := s.Put("k", first); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Put("k", second); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	got, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	requireSameArray(t, got, second)
}

func TestStoredArrayTransformsLikeDrive(t *testing.T) {
	s := openMemory(t)
	d := testutil.PrecessionDrive(8, 1e-12, 1e11, testutil.Mesh(2, 1, 1))
	a, err := materialize.ToArray(d)
	if err != nil {
		t.Fatalf("ToArray error: %v", err)
	}
	if err := s.Put("precession", a); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	loaded, err := s.Get("precession")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	fromStore, err := spectral.Transform(loaded)
	if err != nil {
		t.Fatalf("Transform error: %v", err)
	}
	direct, err := spectral.FromDrive(d)
	if err != nil {
		t.Fatalf("FromDrive error: %v", err)
	}

	testutil.RequireComplexNearlyEqual(t, fromStore.Data, direct.Data, 0)
	if fromStore.Attrs.MaxFrequency != direct.Attrs.MaxFrequency {
		t.Fatalf("max_frequency=%q want %q", fromStore.Attrs.MaxFrequency, direct.Attrs.MaxFrequency)
	}
}

func TestOpenOnDisk(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = t.TempDir()
	cfg.CompressionLevel = 1

	s, err := Open(cfg)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if err := s.Put("k", precessionArray(t)); err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	s, err = Open(cfg)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer s.Close()
	keys, err := s.Keys()
	if err != nil {
		t.Fatalf("Keys error: %v", err)
	}
	if !slices.Equal(keys, []string{"k"}) {
		t.Fatalf("keys=%v want [k]", keys)
	}
}
