package cpu

import (
	"cmp"
	"iter"
	"slices"
)

// Symbol binds a label to the address of the word on its line.
type Symbol struct {
	Name    string
	Address uint16
	LineNo  int
}

// SymbolTable collects labels as they are scanned. It is sorted by name
// once, after collection, and then searched with a binary search.
type SymbolTable struct {
	Symbols []Symbol
	sorted  bool
}

func compareSymbol(a, b Symbol) int {
	return cmp.Compare(a.Name, b.Name)
}

// Reset empties the table.
func (st *SymbolTable) Reset() {
	st.Symbols = st.Symbols[:0]
	st.sorted = true
}

// Len returns the number of symbols.
func (st *SymbolTable) Len() int {
	return len(st.Symbols)
}

// Add catalogs a label.
func (st *SymbolTable) Add(name string, address uint16, lineno int) {
	st.Symbols = append(st.Symbols, Symbol{Name: name, Address: address & ADDRESS_MASK, LineNo: lineno})
	st.sorted = false
}

// Sort orders the table by name. A label defined more than once is reported
// at its second definition.
func (st *SymbolTable) Sort() (err error) {
	if !st.sorted {
		slices.SortStableFunc(st.Symbols, compareSymbol)
		st.sorted = true
	}

	for n := 1; n < len(st.Symbols); n++ {
		if st.Symbols[n].Name == st.Symbols[n-1].Name {
			dup := st.Symbols[n]
			err = ErrSyntax{LineNo: dup.LineNo, Line: dup.Name, Err: ErrLabelDuplicate}
			return
		}
	}

	return
}

// Lookup finds the address bound to a label.
func (st *SymbolTable) Lookup(name string) (address uint16, ok bool) {
	if !st.sorted {
		slices.SortStableFunc(st.Symbols, compareSymbol)
		st.sorted = true
	}

	n, ok := slices.BinarySearchFunc(st.Symbols, name, func(sym Symbol, name string) int {
		return cmp.Compare(sym.Name, name)
	})
	if ok {
		address = st.Symbols[n].Address
	}

	return
}

// All iterates over the labels in table order.
func (st *SymbolTable) All() iter.Seq2[string, uint16] {
	return func(yield func(name string, address uint16) bool) {
		for _, sym := range st.Symbols {
			if !yield(sym.Name, sym.Address) {
				return
			}
		}
	}
}
