package symtab

import (
	"github.com/npillmayer/gramtab/diag"
	"github.com/npillmayer/gramtab/intern"
)

func testPool() *intern.Pool {
	return intern.NewPool()
}

func newTestStore() (*Store, *diag.Collector) {
	c := diag.NewCollector(nil)
	return NewStore(c, testPool()), c
}

func loc(line int) diag.Location {
	return diag.Location{File: "g.y", Line: line}
}
