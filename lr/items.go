package lr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// === Items and Item Sets ===================================================

// Item is an LR(0) item, i.e. a rule together with a dot position marking
// how much of the rule's right hand side has been recognized.
type Item struct {
	rule *Rule
	dot  int
}

// StartItem returns the initial item of the augmented start rule of g.
func StartItem(g *Grammar) Item {
	return Item{rule: g.rules[0], dot: 0}
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position of an item.
func (i Item) Dot() int {
	return i.dot
}

// PeekSymbol returns the symbol after the dot, or "" for completed items.
func (i Item) PeekSymbol() string {
	if i.dot >= len(i.rule.RHS) {
		return ""
	}
	return i.rule.RHS[i.dot]
}

// IsCompleted is true if the dot is behind the last RHS symbol.
func (i Item) IsCompleted() bool {
	return i.dot >= len(i.rule.RHS)
}

// Advance returns a new item with the dot moved one position to the right.
func (i Item) Advance() Item {
	if i.IsCompleted() {
		return i
	}
	return Item{rule: i.rule, dot: i.dot + 1}
}

func (i Item) String() string {
	var b bytes.Buffer
	b.WriteString(fmt.Sprintf("[%s ::= ", i.rule.LHS))
	for n, sym := range i.rule.RHS {
		if n == i.dot {
			b.WriteString("• ")
		}
		b.WriteString(sym)
		b.WriteByte(' ')
	}
	if i.IsCompleted() {
		b.WriteString("•")
	}
	b.WriteString("]")
	return b.String()
}

// Items are ordered by rule serial number, then by dot position.
func itemComparator(a, b interface{}) int {
	i1, i2 := a.(Item), b.(Item)
	if c := utils.IntComparator(i1.rule.Serial, i2.rule.Serial); c != 0 {
		return c
	}
	return utils.IntComparator(i1.dot, i2.dot)
}

// ItemSet is an ordered set of unique items.
type ItemSet struct {
	set *treeset.Set
}

// NewItemSet creates an item set from a list of items.
func NewItemSet(items ...Item) *ItemSet {
	S := &ItemSet{set: treeset.NewWith(itemComparator)}
	for _, i := range items {
		S.set.Add(i)
	}
	return S
}

// Add adds items to the set.
func (S *ItemSet) Add(items ...Item) {
	for _, i := range items {
		S.set.Add(i)
	}
}

// Contains is true if every item in items is contained in S.
func (S *ItemSet) Contains(items ...Item) bool {
	for _, i := range items {
		if !S.set.Contains(i) {
			return false
		}
	}
	return true
}

// Size returns the number of items in S.
func (S *ItemSet) Size() int {
	return S.set.Size()
}

// Items returns the items of S in canonical order.
func (S *ItemSet) Items() []Item {
	items := make([]Item, 0, S.set.Size())
	it := S.set.Iterator()
	for it.Next() {
		items = append(items, it.Value().(Item))
	}
	return items
}

// Equals is true if S and T contain the same items.
func (S *ItemSet) Equals(T *ItemSet) bool {
	return S.Key() == T.Key()
}

// Key returns a canonical string for an item set. Two item sets are equal
// iff their keys are equal.
func (S *ItemSet) Key() string {
	var b strings.Builder
	it := S.set.Iterator()
	for it.Next() {
		i := it.Value().(Item)
		fmt.Fprintf(&b, "%d.%d ", i.rule.Serial, i.dot)
	}
	return b.String()
}

func (S *ItemSet) String() string {
	return itemSetString(S)
}

// === Closure and Follow-Set Operations =====================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// Closure computes the closure of an item set: for every non-terminal
// after a dot, the initial items of all its rules are added, until a fixed
// point is reached. Every non-terminal is expanded at most once.
func (ga *LRAnalysis) Closure(S *ItemSet) *ItemSet {
	C := NewItemSet(S.Items()...)
	visited := make(map[string]bool)
	todo := S.Items()
	for len(todo) > 0 {
		var nested []Item
		for _, i := range todo {
			A := i.PeekSymbol()
			if A == "" || !ga.g.IsNonTerminal(A) || visited[A] {
				continue
			}
			visited[A] = true
			for _, r := range ga.g.RulesFor(A) {
				nested = append(nested, Item{rule: r, dot: 0})
			}
		}
		C.Add(nested...)
		todo = nested
	}
	return C
}

// follow computes all transitions from an item set. For every lookahead
// symbol, the closure of the advanced items is collected. The resulting map
// iterates over lookaheads in order of their first appearance in S.
func (ga *LRAnalysis) follow(S *ItemSet) *linkedhashmap.Map {
	result := linkedhashmap.New()
	for _, i := range S.Items() {
		A := i.PeekSymbol()
		if A == "" {
			continue
		}
		C := ga.Closure(NewItemSet(i.Advance()))
		if T, ok := result.Get(A); ok {
			T.(*ItemSet).Add(C.Items()...)
		} else {
			result.Put(A, C)
		}
	}
	return result
}

func itemSetString(S *ItemSet) string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	for _, item := range S.Items() {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(item.String())
	}
	b.WriteString(" }")
	return b.String()
}
