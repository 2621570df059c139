/*
Package diag implements the diagnostic sink used by package symtab: it
is the Go counterpart of Bison's complain()/complain_indent(), decoupled
from any particular output format so tests can collect diagnostics
instead of printing them.

Severities

Fatal aborts the operation in progress (returned as an error wrapping
ErrFatal); Complaint is recorded and processing continues; Wyacc,
Wprecedence and Wother are advisory warnings, split out so a caller can
filter by category the way Bison's -W flags do.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2018-2024 The Gramtab Authors

*/
package diag
