package model

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/blevesearch/vellum"

	"github.com/cognicore/sift/pkg/sift/counter"
	"github.com/cognicore/sift/pkg/sift/internalerr"
)

// Entry is one (token, counter) pair of a model.
type Entry struct {
	Token string
	Count counter.Counter
}

// Model is an immutable sorted map from token to Counter, backed by a
// finite state transducer over the serialized blob. It is built once per
// training run and shared read-only across all classifications; safe for
// concurrent readers.
type Model struct {
	data []byte
	fst  *vellum.FST

	statsOnce sync.Once
	stats     Stats
}

// Build constructs a model from entries. Tokens must already be unique and
// in strictly ascending byte order; out-of-order or duplicate tokens are a
// construction error, not something lookups tolerate later.
func Build(entries []Entry) (*Model, error) {
	var buf bytes.Buffer
	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, err
	}

	var prev string
	for i, e := range entries {
		if i > 0 {
			if e.Token == prev {
				return nil, fmt.Errorf("%w: %q", internalerr.ErrDuplicateToken, e.Token)
			}
			if e.Token < prev {
				return nil, fmt.Errorf("%w: %q after %q", internalerr.ErrOutOfOrder, e.Token, prev)
			}
		}
		if err := builder.Insert([]byte(e.Token), e.Count.Pack()); err != nil {
			return nil, err
		}
		prev = e.Token
	}
	if err := builder.Close(); err != nil {
		return nil, err
	}

	return Load(buf.Bytes())
}

// Load reconstructs a model from its serialized blob in time linear in the
// blob size. A corrupt or truncated blob fails construction; there is no
// degraded mode.
func Load(data []byte) (*Model, error) {
	fst, err := vellum.Load(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrCorruptModel, err)
	}
	return &Model{data: data, fst: fst}, nil
}

// LoadFile reads a model blob from disk and loads it.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

// Bytes returns the serialized form of the model. The slice is shared with
// the model and must not be modified.
func (m *Model) Bytes() []byte {
	return m.data
}

// Len returns the number of stored tokens.
func (m *Model) Len() int {
	return m.fst.Len()
}

// Lookup returns the counter for token and whether the token is present.
// Callers treat an absent token as a zero counter.
func (m *Model) Lookup(token string) (counter.Counter, bool) {
	v, ok, err := m.fst.Get([]byte(token))
	if err != nil || !ok {
		return counter.Counter{}, false
	}
	return counter.Unpack(v), true
}

// Iterator returns a fresh iterator over all entries in ascending byte
// order of token. Each call starts a new traversal.
func (m *Model) Iterator() *Iterator {
	itr, err := m.fst.Iterator(nil, nil)
	if err == vellum.ErrIteratorDone {
		return &Iterator{done: true}
	}
	if err != nil {
		return &Iterator{done: true, err: err}
	}
	return &Iterator{itr: itr, first: true}
}

// Iterator walks a model's entries lazily in ascending token order.
type Iterator struct {
	itr   *vellum.FSTIterator
	token string
	count counter.Counter
	first bool
	done  bool
	err   error
}

// Next advances to the next entry, returning false once the model is
// exhausted or the traversal failed.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}
	if it.first {
		it.first = false
	} else if err := it.itr.Next(); err != nil {
		it.done = true
		if err != vellum.ErrIteratorDone {
			it.err = err
		}
		return false
	}

	key, v := it.itr.Current()
	it.token = string(key)
	it.count = counter.Unpack(v)
	return true
}

// Token returns the token at the current position.
func (it *Iterator) Token() string {
	return it.token
}

// Count returns the counter at the current position.
func (it *Iterator) Count() counter.Counter {
	return it.count
}

// Err reports a traversal failure, if any.
func (it *Iterator) Err() error {
	return it.err
}

// SortEntries flattens a raw accumulator into entries sorted in ascending
// byte order, ready for Build. Map keys are unique by construction, so the
// result satisfies Build's preconditions.
func SortEntries(acc map[string]counter.Counter) []Entry {
	entries := make([]Entry, 0, len(acc))
	for token, c := range acc {
		entries = append(entries, Entry{Token: token, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Token < entries[j].Token
	})
	return entries
}
