package sparse

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMatrixSetAndGet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	M := NewIntMatrix(10, 10, -1)
	M.Set(2, 3, 4711)
	if v := M.Value(2, 3); v != 4711 {
		t.Errorf("expected M(2,3) to be 4711, is %d", v)
	}
	if v := M.Value(9, 9); v != -1 {
		t.Errorf("expected M(9,9) to be null-value, is %d", v)
	}
	M.Set(0, 0, 1)
	M.Set(9, 9, 99)
	M.Set(2, 1, 21)
	if M.ValueCount() != 4 {
		t.Errorf("expected 4 positions to be set, have %d", M.ValueCount())
	}
	if v := M.Value(2, 1); v != 21 {
		t.Errorf("expected M(2,1) to be 21, is %d", v)
	}
	M.Set(2, 3, 5)
	if vv := M.Values(2, 3); len(vv) != 1 || vv[0] != 5 {
		t.Errorf("expected Set to replace M(2,3), is %v", vv)
	}
}

func TestMatrixAdd(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	M := NewIntMatrix(5, 5, DefaultNullValue)
	M.Add(1, 1, 7)
	M.Add(1, 1, 8)
	M.Add(1, 1, 9)
	M.Add(1, 1, 8)
	vv := M.Values(1, 1)
	if len(vv) != 3 || vv[0] != 7 || vv[1] != 8 || vv[2] != 9 {
		t.Errorf("expected M(1,1) to be [7 8 9], is %v", vv)
	}
	if M.ValueCount() != 1 {
		t.Errorf("expected 1 position to be set, have %d", M.ValueCount())
	}
	if M.Values(0, 1) != nil {
		t.Errorf("expected M(0,1) to be empty")
	}
}

func TestMatrixRow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "glrnl.lr")
	defer teardown()
	//
	M := NewIntMatrix(3, 4, DefaultNullValue)
	M.Add(1, 3, 13)
	M.Add(0, 2, 2)
	M.Add(1, 0, 10)
	M.Add(2, 2, 22)
	var cols []int
	M.Row(1, func(j int, values []int32) {
		cols = append(cols, j)
	})
	if len(cols) != 2 || cols[0] != 0 || cols[1] != 3 {
		t.Errorf("expected row 1 to have columns [0 3], has %v", cols)
	}
}
