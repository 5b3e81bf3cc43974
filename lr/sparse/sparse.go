/*
Package sparse implements a simple type for sparse integer matrices.
It is mainly used for GLR parser tables, where every entry in the table
is a short list of int32 values (one per conflicting parser action).

This implementation uses the COO algorithm (a.k.a. triplet-encoding).
Triplets are kept sorted by position, lookup is by binary search.

   https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
   https://www.coin-or.org/Ipopt/documentation/node38.html


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sparse

import (
	"fmt"
	"sort"
)

// IntMatrix is a type for a spare matrix of integer values. Construct with
//
//     M := NewIntMatrix(10, 10, -1)  // last parameter is M's null-value
//
// Now
//
//     M.Set(2, 3, 4711)              // set a value
//     v := M.Value(2, 3)             // returns 4711
//     M.Add(2, 3, 123)               // add a second value
//     M.Add(2, 3, 123)               // no-op, value already present
//     vv := M.Values(2, 3)           // returns [4711 123]
//     cnt := M.ValueCount()          // still returns 1 (one position set)
//     v = M.Value(10, 10)            // returns -1, i.e. the null-value
//
// Values cannot be deleted, but a position may be overwritten by Set.
type IntMatrix struct {
	values  []triplet
	rowcnt  int
	colcnt  int
	nullval int32
}

// Triplet values to store
type triplet struct {
	row, col int
	value    []int32
}

// NewIntMatrix creates a new matrix for int, size m x n. The 3rd argument is a null-value,
// indicating empty entries (use DefaultNullValue if you haven't any specific
// requirements).
func NewIntMatrix(m, n int, nullValue int32) *IntMatrix {
	return &IntMatrix{
		values:  []triplet{},
		rowcnt:  m,
		colcnt:  n,
		nullval: nullValue,
	}
}

// DefaultNullValue is the default empty-value for matrices (min int32).
const DefaultNullValue = -2147483648

// M returns the row count.
func (m *IntMatrix) M() int {
	return m.rowcnt
}

// N returns the column count.
func (m *IntMatrix) N() int {
	return m.colcnt
}

// NullValue returns this matrix' null value
func (m *IntMatrix) NullValue() int32 {
	return m.nullval
}

// ValueCount returns the number of positions set in the matrix.
func (m *IntMatrix) ValueCount() int {
	return len(m.values)
}

// Value returns the primary value at position (i,j), or NullValue
func (m *IntMatrix) Value(i, j int) int32 {
	if k, found := m.find(i, j); found {
		return m.values[k].value[0]
	}
	return m.nullval
}

// Values returns all values at position (i,j) in order of insertion, or nil.
// Clients must not modify the slice returned.
func (m *IntMatrix) Values(i, j int) []int32 {
	if k, found := m.find(i, j); found {
		return m.values[k].value
	}
	return nil
}

// Row calls f for every position set in row i, in column order.
func (m *IntMatrix) Row(i int, f func(j int, values []int32)) {
	k, _ := m.find(i, 0)
	for ; k < len(m.values) && m.values[k].row == i; k++ {
		f(m.values[k].col, m.values[k].value)
	}
}

// Set a value in the matrix at position (i,j), replacing all present values.
func (m *IntMatrix) Set(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, false)
}

// Add a value in the matrix at position (i,j). Values already present at
// (i,j) are not added a second time.
func (m *IntMatrix) Add(i, j int, value int32) *IntMatrix {
	return m.setOrAdd(i, j, value, true)
}

func (m *IntMatrix) setOrAdd(i, j int, value int32, doAdd bool) *IntMatrix {
	if i < 0 || i >= m.rowcnt || j < 0 || j >= m.colcnt {
		panic(fmt.Sprintf("sparse.IntMatrix: index (%d,%d) out of range %dx%d", i, j, m.rowcnt, m.colcnt))
	}
	at, found := m.find(i, j)
	if found { // value already present
		if doAdd {
			m.values[at].value = addIntValue(m.values[at].value, value)
		} else {
			m.values[at].value = []int32{value}
		}
		return m // and done
	}
	tnew := triplet{row: i, col: j, value: []int32{value}}
	// the following 3 lines have to work for k being the right edge of v or not
	m.values = append(m.values, tnew)    // make room
	copy(m.values[at+1:], m.values[at:]) // copy remainder values one index to right
	m.values[at] = tnew                  // if not append-case: insert new triplet
	return m
}

// find returns the index of the triplet at (i,j), or the index where it would
// have to be inserted.
func (m *IntMatrix) find(i, j int) (int, bool) {
	k := sort.Search(len(m.values), func(k int) bool {
		return !m.values[k].storedLeftOf(i, j)
	})
	return k, k < len(m.values) && m.values[k].storedAt(i, j)
}

func addIntValue(v []int32, n int32) []int32 {
	for _, x := range v {
		if x == n {
			return v
		}
	}
	return append(v, n)
}

func (t *triplet) storedLeftOf(i, j int) bool {
	return t.row < i || t.row == i && t.col < j
}

func (t *triplet) storedAt(i, j int) bool {
	return (t.row == i && t.col == j)
}

func (t triplet) String() string {
	return fmt.Sprintf("(%d,%d)=%v", t.row, t.col, t.value)
}
