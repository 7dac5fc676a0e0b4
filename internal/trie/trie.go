// Package trie implements the in-memory prefix index that backs store name
// autocomplete.  The index lives in a single process and is rebuilt from the
// store table at startup; it is an optimization for suggestions, never the
// authoritative existence check.
package trie

import (
	"sort"
	"sync"
)

// node is one trie level keyed by rune.  terminal marks that the path from
// the root to this node spells a complete stored name.
type node struct {
	children map[rune]*node
	terminal bool
}

func newNode() *node { return &node{children: make(map[rune]*node)} }

// Index is a concurrency-safe prefix trie over store names.  Lookups take a
// read lock so concurrent searches never block each other; mutations take
// the write lock so a reader can never observe a half-applied insert,
// remove or rename.
type Index struct {
	mu   sync.RWMutex
	root *node
	size int
}

// New returns an empty Index.
func New() *Index { return &Index{root: newNode()} }

// Insert adds a name to the index.  Inserting a name that is already present
// is a no-op.
func (ix *Index) Insert(name string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.insertLocked(name)
}

// Remove deletes a name from the index, pruning branches that no longer lead
// to any stored name.  Removing an absent name is a no-op.
func (ix *Index) Remove(name string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(name)
}

// Rename atomically replaces oldName with newName.  Both steps happen under
// one critical section, remove first, so no reader ever sees a name that no
// longer exists in the catalog.
func (ix *Index) Rename(oldName, newName string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(oldName)
	ix.insertLocked(newName)
}

// Search returns every stored name that starts with prefix, in lexicographic
// rune order.  The empty prefix returns all names.  A prefix with no match
// returns an empty slice, never an error.
func (ix *Index) Search(prefix string) []string {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	n := ix.root
	for _, r := range prefix {
		next, ok := n.children[r]
		if !ok {
			return []string{}
		}
		n = next
	}
	out := make([]string, 0, 8)
	collect(n, []rune(prefix), &out)
	return out
}

// Len returns the number of distinct names currently stored.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.size
}

func (ix *Index) insertLocked(name string) {
	if name == "" {
		return
	}
	n := ix.root
	for _, r := range name {
		next, ok := n.children[r]
		if !ok {
			next = newNode()
			n.children[r] = next
		}
		n = next
	}
	if !n.terminal {
		n.terminal = true
		ix.size++
	}
}

func (ix *Index) removeLocked(name string) {
	if name == "" {
		return
	}
	// Walk down recording the path so childless nodes can be pruned on the
	// way back up.
	runes := []rune(name)
	path := make([]*node, 0, len(runes)+1)
	n := ix.root
	path = append(path, n)
	for _, r := range runes {
		next, ok := n.children[r]
		if !ok {
			return
		}
		n = next
		path = append(path, n)
	}
	if !n.terminal {
		return
	}
	n.terminal = false
	ix.size--
	for i := len(runes) - 1; i >= 0; i-- {
		child := path[i+1]
		if child.terminal || len(child.children) > 0 {
			break
		}
		delete(path[i].children, runes[i])
	}
}

// collect appends every terminal name under n to out, visiting children in
// sorted rune order so results are deterministic for a given index state.
func collect(n *node, prefix []rune, out *[]string) {
	if n.terminal {
		*out = append(*out, string(prefix))
	}
	if len(n.children) == 0 {
		return
	}
	keys := make([]rune, 0, len(n.children))
	for r := range n.children {
		keys = append(keys, r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, r := range keys {
		collect(n.children[r], append(prefix, r), out)
	}
}
