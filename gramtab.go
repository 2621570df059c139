package gramtab

import "github.com/npillmayer/gramtab/diag"

// Location is a source location, re-exported at the module root.
// Packages intern and symtab do not use this alias; symtab takes
// diag.Location directly. Location is opaque and totally ordered; see
// diag.Location.
type Location = diag.Location

// NoLocation is the zero Location, used where no source position is
// available (e.g. symbols created purely for internal bookkeeping).
var NoLocation = diag.Location{}
