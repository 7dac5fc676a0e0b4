package trie

import (
	"reflect"
	"sort"
	"sync"
	"testing"
)

func TestInsertAndSearch(t *testing.T) {
	ix := New()
	for _, n := range []string{"Joe's Diner", "Joe's Pizza", "Jolt Coffee", "Mama Rosa"} {
		ix.Insert(n)
	}

	cases := []struct {
		prefix string
		want   []string
	}{
		{"Joe", []string{"Joe's Diner", "Joe's Pizza"}},
		{"Jo", []string{"Joe's Diner", "Joe's Pizza", "Jolt Coffee"}},
		{"Mama", []string{"Mama Rosa"}},
		{"Mama Rosa", []string{"Mama Rosa"}},
		{"Z", []string{}},
		{"", []string{"Joe's Diner", "Joe's Pizza", "Jolt Coffee", "Mama Rosa"}},
	}
	for _, tc := range cases {
		got := ix.Search(tc.prefix)
		sort.Strings(got)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Search(%q) = %v, want %v", tc.prefix, got, tc.want)
		}
	}
}

func TestSearchDeterministic(t *testing.T) {
	ix := New()
	for _, n := range []string{"cherry", "cedar", "cellar", "chest"} {
		ix.Insert(n)
	}
	first := ix.Search("ce")
	for i := 0; i < 10; i++ {
		if got := ix.Search("ce"); !reflect.DeepEqual(got, first) {
			t.Fatalf("Search not deterministic: run %d returned %v, first run %v", i, got, first)
		}
	}
}

func TestInsertIdempotent(t *testing.T) {
	ix := New()
	ix.Insert("CafeA")
	ix.Insert("CafeA")
	if n := ix.Len(); n != 1 {
		t.Errorf("Len() after double insert = %d, want 1", n)
	}
	if got := ix.Search("Cafe"); len(got) != 1 || got[0] != "CafeA" {
		t.Errorf("Search(Cafe) = %v, want [CafeA]", got)
	}
}

func TestRemove(t *testing.T) {
	ix := New()
	ix.Insert("CafeA")
	ix.Insert("CafeB")

	ix.Remove("CafeA")
	if got := ix.Search("Cafe"); len(got) != 1 || got[0] != "CafeB" {
		t.Errorf("Search(Cafe) after remove = %v, want [CafeB]", got)
	}
	if n := ix.Len(); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}

	// Absent name is a no-op.
	ix.Remove("CafeA")
	ix.Remove("never inserted")
	if n := ix.Len(); n != 1 {
		t.Errorf("Len() after no-op removes = %d, want 1", n)
	}
}

func TestRemovePrefixKeepsLongerName(t *testing.T) {
	ix := New()
	ix.Insert("Cafe")
	ix.Insert("CafeA")

	ix.Remove("Cafe")
	if got := ix.Search(""); len(got) != 1 || got[0] != "CafeA" {
		t.Errorf("Search(\"\") = %v, want [CafeA]", got)
	}
}

func TestRename(t *testing.T) {
	ix := New()
	ix.Insert("CafeA")

	ix.Rename("CafeA", "CafeB")
	if got := ix.Search("CafeA"); len(got) != 0 {
		t.Errorf("Search(CafeA) after rename = %v, want empty", got)
	}
	if got := ix.Search("CafeB"); len(got) != 1 || got[0] != "CafeB" {
		t.Errorf("Search(CafeB) after rename = %v, want [CafeB]", got)
	}
	if n := ix.Len(); n != 1 {
		t.Errorf("Len() after rename = %d, want 1", n)
	}
}

func TestUnicodeNames(t *testing.T) {
	ix := New()
	ix.Insert("Crêperie Étoile")
	ix.Insert("Crémerie")

	got := ix.Search("Cr")
	sort.Strings(got)
	want := []string{"Crémerie", "Crêperie Étoile"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search(Cr) = %v, want %v", got, want)
	}
	if got := ix.Search("Crê"); len(got) != 1 || got[0] != "Crêperie Étoile" {
		t.Errorf("Search(Crê) = %v, want [Crêperie Étoile]", got)
	}
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	ix := New()
	names := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	for _, n := range names {
		ix.Insert(n)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = ix.Search("a")
				_ = ix.Search("")
			}
		}()
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				ix.Insert("zeta")
				ix.Remove("zeta")
			}
		}(i)
	}
	wg.Wait()

	got := ix.Search("")
	sort.Strings(got)
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	if !reflect.DeepEqual(got, sorted) {
		t.Errorf("after concurrent churn Search(\"\") = %v, want %v", got, sorted)
	}
}
