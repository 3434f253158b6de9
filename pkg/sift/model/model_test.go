package model

import (
	"errors"
	"testing"

	"github.com/cognicore/sift/pkg/sift/counter"
	"github.com/cognicore/sift/pkg/sift/internalerr"
)

func testEntries() []Entry {
	return []Entry{
		{Token: "free", Count: counter.Counter{Spam: 5, Ham: 0}},
		{Token: "hello", Count: counter.Counter{Spam: 0, Ham: 3}},
		{Token: "money", Count: counter.Counter{Spam: 4, Ham: 1}},
	}
}

func TestBuildAndLookup(t *testing.T) {
	m, err := Build(testEntries())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	c, ok := m.Lookup("money")
	if !ok {
		t.Fatal("expected money to be present")
	}
	if c.Spam != 4 || c.Ham != 1 {
		t.Errorf("unexpected counter for money: %+v", c)
	}

	if _, ok := m.Lookup("absent"); ok {
		t.Error("lookup of absent token should report not present")
	}
	// Prefixes of stored tokens are not themselves entries.
	if _, ok := m.Lookup("mone"); ok {
		t.Error("prefix of a stored token should not be present")
	}

	if m.Len() != 3 {
		t.Errorf("expected 3 tokens, got %d", m.Len())
	}
}

func TestBuildRejectsOutOfOrder(t *testing.T) {
	entries := []Entry{
		{Token: "money"},
		{Token: "free"},
	}
	if _, err := Build(entries); !errors.Is(err, internalerr.ErrOutOfOrder) {
		t.Errorf("expected ErrOutOfOrder, got %v", err)
	}
}

func TestBuildRejectsDuplicates(t *testing.T) {
	entries := []Entry{
		{Token: "free", Count: counter.Counter{Spam: 1}},
		{Token: "free", Count: counter.Counter{Ham: 1}},
	}
	if _, err := Build(entries); !errors.Is(err, internalerr.ErrDuplicateToken) {
		t.Errorf("expected ErrDuplicateToken, got %v", err)
	}
}

func TestIteratorOrderAndRestart(t *testing.T) {
	m, err := Build(testEntries())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	collect := func() []Entry {
		var out []Entry
		it := m.Iterator()
		for it.Next() {
			out = append(out, Entry{Token: it.Token(), Count: it.Count()})
		}
		if it.Err() != nil {
			t.Fatalf("iterator failed: %v", it.Err())
		}
		return out
	}

	first := collect()
	if len(first) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(first))
	}
	for i, e := range testEntries() {
		if first[i] != e {
			t.Errorf("entry %d: got %+v, want %+v", i, first[i], e)
		}
	}

	// A second traversal starts over and yields the same sequence.
	second := collect()
	for i := range first {
		if second[i] != first[i] {
			t.Errorf("restarted iterator diverged at %d: %+v vs %+v", i, second[i], first[i])
		}
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	m, err := Build(testEntries())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	loaded, err := Load(m.Bytes())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	it, lit := m.Iterator(), loaded.Iterator()
	for it.Next() {
		if !lit.Next() {
			t.Fatal("loaded model has fewer entries")
		}
		if it.Token() != lit.Token() || it.Count() != lit.Count() {
			t.Errorf("mismatch: (%q, %+v) vs (%q, %+v)", it.Token(), it.Count(), lit.Token(), lit.Count())
		}
	}
	if lit.Next() {
		t.Error("loaded model has extra entries")
	}
}

func TestLoadRejectsCorruptBlob(t *testing.T) {
	if _, err := Load([]byte("not a model")); !errors.Is(err, internalerr.ErrCorruptModel) {
		t.Errorf("expected ErrCorruptModel, got %v", err)
	}

	m, err := Build(testEntries())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	truncated := m.Bytes()[:len(m.Bytes())/2]
	if _, err := Load(truncated); !errors.Is(err, internalerr.ErrCorruptModel) {
		t.Errorf("expected ErrCorruptModel for truncated blob, got %v", err)
	}
}

func TestSortEntries(t *testing.T) {
	acc := map[string]counter.Counter{
		"money": {Spam: 4, Ham: 1},
		"free":  {Spam: 5},
		"hello": {Ham: 3},
	}
	entries := SortEntries(acc)
	want := testEntries()
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestStats(t *testing.T) {
	m, err := Build(testEntries())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	s := m.Stats()
	if s.TotalSpam != 9 || s.TotalHam != 4 {
		t.Errorf("unexpected totals: %+v", s)
	}
	if s.TotalTokens != s.TotalSpam+s.TotalHam {
		t.Errorf("total tokens %d != spam %d + ham %d", s.TotalTokens, s.TotalSpam, s.TotalHam)
	}
	if s.UniqueTokens != 3 {
		t.Errorf("expected 3 unique tokens, got %d", s.UniqueTokens)
	}

	// Second call serves the cached value.
	if again := m.Stats(); again != s {
		t.Errorf("cached stats changed: %+v vs %+v", again, s)
	}
}

func TestEmptyModel(t *testing.T) {
	m, err := Build(nil)
	if err != nil {
		t.Fatalf("build of empty model failed: %v", err)
	}

	s := m.Stats()
	if s.TotalTokens != 0 || s.UniqueTokens != 0 {
		t.Errorf("unexpected stats for empty model: %+v", s)
	}
	if s.PriorSpam() != 0.5 || s.PriorHam() != 0.5 {
		t.Errorf("empty model priors should be 0.5, got %v/%v", s.PriorSpam(), s.PriorHam())
	}

	if m.Iterator().Next() {
		t.Error("empty model iterator should be exhausted immediately")
	}

	loaded, err := Load(m.Bytes())
	if err != nil {
		t.Fatalf("round trip of empty model failed: %v", err)
	}
	if loaded.Len() != 0 {
		t.Errorf("expected empty loaded model, got %d entries", loaded.Len())
	}
}
