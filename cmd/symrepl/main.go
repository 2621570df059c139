package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/gramtab/diag"
	"github.com/npillmayer/gramtab/intern"
	"github.com/npillmayer/gramtab/symtab"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2018-2024 The Gramtab Authors

*/

// Intp holds the symrepl session state: one symbol table under
// construction, a diagnostic collector mirroring its complaints, and
// the packed result of the last successful finalize command.
type Intp struct {
	repl   *readline.Instance
	sink   *diag.Collector
	store  *symtab.Store
	packed *symtab.Packed
	line   int
}

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	flag.Parse()
	tracer().SetTraceLevel(traceLevel(*tlevel))
	pterm.Info.Println("Welcome to symrepl")
	tracer().Infof("Trace level is %s", *tlevel)

	repl, err := readline.New("symtab> ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()

	intp := newIntp(repl)
	tracer().Infof("Quit with <ctrl>D")
	intp.REPL()
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
	pterm.Warning.Prefix = pterm.Prefix{
		Text:  "  Warn",
		Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	}
}

func newIntp(repl *readline.Instance) *Intp {
	intp := &Intp{repl: repl}
	intp.reset()
	return intp
}

func (intp *Intp) reset() {
	intp.sink = diag.NewCollector(func(d diag.Diagnostic) {
		tracer().Debugf("%s", d.String())
	})
	intp.store = symtab.NewStore(intp.sink, intern.NewPool())
	intp.packed = nil
	intp.line = 0
}

// REPL reads commands until EOF (<ctrl>D) or an explicit "quit".
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		intp.line++
		quit, err := intp.Execute(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

func (intp *Intp) loc() diag.Location {
	return diag.Location{File: "<repl>", Line: intp.line}
}

// Execute dispatches a single REPL command line.
func (intp *Intp) Execute(line string) (bool, error) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "quit", "exit":
		return true, nil
	case "help":
		intp.printHelp()
	case "reset":
		intp.reset()
		pterm.Info.Println("symbol table reset")
	case "token":
		return false, intp.cmdToken(args)
	case "nterm":
		return false, intp.cmdNterm(args)
	case "type":
		return false, intp.cmdType(args)
	case "alias":
		return false, intp.cmdAlias(args)
	case "prec":
		return false, intp.cmdPrec(args)
	case "start":
		return false, intp.cmdStart(args)
	case "finalize":
		return false, intp.cmdFinalize()
	case "dump":
		intp.cmdDump()
	case "dot":
		return false, intp.cmdDot(args, false)
	case "reduce":
		return false, intp.cmdDot(args, true)
	default:
		return false, fmt.Errorf("unknown command %q; try 'help'", cmd)
	}
	return false, nil
}

func (intp *Intp) cmdToken(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: token NAME [usernumber]")
	}
	sym := intp.store.Get(args[0], intp.loc())
	intp.store.ClassSet(sym, symtab.Token, intp.loc(), true)
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad user token number %q: %w", args[1], err)
		}
		intp.store.UserTokenNumberSet(sym, n, intp.loc())
	}
	pterm.Info.Printf("declared token %s\n", sym.Tag.String())
	return nil
}

func (intp *Intp) cmdNterm(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: nterm NAME")
	}
	sym := intp.store.Get(args[0], intp.loc())
	intp.store.ClassSet(sym, symtab.Nterm, intp.loc(), true)
	pterm.Info.Printf("declared nonterminal %s\n", sym.Tag.String())
	return nil
}

func (intp *Intp) cmdType(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: type NAME TYPENAME")
	}
	sym := intp.store.Get(args[0], intp.loc())
	intp.store.TypeSet(sym, args[1], intp.loc())
	return nil
}

func (intp *Intp) cmdAlias(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: alias IDENTIFIER \"literal\"")
	}
	id := intp.store.Get(args[0], intp.loc())
	lit := intp.store.Get(args[1], intp.loc())
	intp.store.MakeAlias(id, lit, intp.loc())
	return nil
}

func (intp *Intp) cmdPrec(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: prec NAME LEVEL left|right|nonassoc|precedence")
	}
	sym := intp.store.Get(args[0], intp.loc())
	level, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("bad precedence level %q: %w", args[1], err)
	}
	assoc, err := parseAssoc(args[2])
	if err != nil {
		return err
	}
	intp.store.PrecedenceSet(sym, level, assoc, intp.loc())
	return nil
}

func parseAssoc(s string) (symtab.Assoc, error) {
	switch s {
	case "left":
		return symtab.LeftAssoc, nil
	case "right":
		return symtab.RightAssoc, nil
	case "nonassoc":
		return symtab.NonAssoc, nil
	case "precedence":
		return symtab.PrecedenceAssoc, nil
	default:
		return symtab.UndefAssoc, fmt.Errorf("unknown associativity %q", s)
	}
}

func (intp *Intp) cmdStart(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: start NAME")
	}
	sym := intp.store.Get(args[0], intp.loc())
	return intp.finalize(sym)
}

func (intp *Intp) cmdFinalize() error {
	if intp.store.StartSymbol == nil {
		return fmt.Errorf("no start symbol set; use 'start NAME' instead")
	}
	return intp.finalize(intp.store.StartSymbol)
}

func (intp *Intp) finalize(start *symtab.Symbol) error {
	packed, err := intp.store.Finalize(start, intp.loc())
	for _, d := range intp.sink.Diagnostics() {
		printDiagnostic(d)
	}
	if err != nil {
		return err
	}
	intp.packed = packed
	pterm.Info.Printf("finalized: %d symbols (%d tokens, %d nonterminals)\n",
		len(packed.Symbols), intp.store.NTokens, intp.store.NVars)
	return nil
}

func printDiagnostic(d diag.Diagnostic) {
	msg := d.String()
	if d.Severity.IsError() {
		pterm.Error.Println(msg)
	} else {
		pterm.Warning.Println(msg)
	}
}

func (intp *Intp) cmdDump() {
	for _, sym := range intp.store.SortedSymbols() {
		pterm.Println(sym.String())
	}
}

func (intp *Intp) cmdDot(args []string, reduced bool) error {
	if intp.packed == nil {
		return fmt.Errorf("run 'finalize' or 'start NAME' first")
	}
	w := os.Stdout
	if len(args) == 1 {
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	graph := intp.store.PrecedenceGraph()
	if reduced {
		graph.WriteTransitiveReduction(w, intp.packed.Symbols)
	} else {
		graph.WriteRelationGraph(w, intp.packed.Symbols)
	}
	return nil
}

func (intp *Intp) printHelp() {
	pterm.Println(`commands:
  token NAME [usernumber]        declare a terminal
  nterm NAME                     declare a nonterminal
  type NAME TYPENAME             set a %type
  alias IDENTIFIER "literal"     link an identifier to a literal-string alias
  prec NAME LEVEL ASSOC          set precedence; ASSOC one of left|right|nonassoc|precedence
  start NAME                     set the start symbol and finalize
  finalize                       finalize using the current start symbol
  dump                           print every symbol, in tag order
  dot [file]                     write the precedence graph as Graphviz DOT
  reduce [file]                  write the transitive reduction as Graphviz DOT
  reset                          discard the table and start over
  quit                           leave symrepl`)
}

func traceLevel(l string) tracing.TraceLevel {
	return tracing.TraceLevelFromString(l)
}
