package interactive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/corrective-parsing/alcep"
	"github.com/corrective-parsing/alcep/csppf"
	"github.com/corrective-parsing/alcep/grammar"
	"github.com/pterm/pterm"
)

// RunREPL drives a Driver interactively over tokens, letting the user
// pick read/replace/delete at each position from a terminal prompt.
// Tokens are supplied up front (ALCIEP still needs to know what's
// actually in the input to offer "read" as a choice — only which edit
// to commit is interactive, not the word itself); once tokens is
// exhausted, the current menu is still offered, and a read then charges
// a Read of the chosen terminal's own name, until the user finishes
// the derivation.
func RunREPL(ga grammar.Analyzer, start grammar.Symbol, tokens []alcep.Token) (*csppf.SymbolNode, error) {
	rl, err := readline.New("alciep> ")
	if err != nil {
		return nil, fmt.Errorf("interactive: %w", err)
	}
	defer rl.Close()

	d := NewDriver(ga, start)
	menu, err := d.Begin()
	if err != nil {
		return nil, err
	}

	pos := 0
	pterm.Info.Println("ALCIEP — correct the input one token at a time. Commands: read <n>, replace <n> <letter>, delete, finish")
	for {
		printMenu(menu, tokens, pos)
		line, err := rl.Readline()
		if err != nil { // io.EOF, ctrl-D
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "finish" {
			break
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "read":
			sym, letter, err := resolveChoice(fields, menu, tokens, pos)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			menu, err = d.Read(sym, letter)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			pos++
		case "replace":
			if len(fields) < 3 {
				pterm.Error.Println("usage: replace <n> <letter>")
				continue
			}
			sym, _, err := resolveChoice(fields[:2], menu, tokens, pos)
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			menu, err = d.Replace(sym, fields[2])
			if err != nil {
				pterm.Error.Println(err.Error())
				continue
			}
			pos++
		case "delete":
			letter := ""
			if pos < len(tokens) {
				letter = tokens[pos].Lexeme()
			}
			menu = d.Delete(letter)
			pos++
		default:
			pterm.Error.Printf("unknown command %q\n", fields[0])
		}
	}

	root, err := d.Finish()
	if err != nil {
		pterm.Error.Println(err.Error())
		return nil, err
	}
	pterm.Info.Printf("correction complete: %d derivation(s) found\n", len(root.Packed))
	return root, nil
}

func printMenu(menu []grammar.Symbol, tokens []alcep.Token, pos int) {
	var b strings.Builder
	b.WriteString("expecting: ")
	for i, sym := range menu {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d=%s", i, sym.Name)
	}
	if pos < len(tokens) {
		fmt.Fprintf(&b, " | next input token: %q", tokens[pos].Lexeme())
	} else {
		b.WriteString(" | input exhausted")
	}
	pterm.Println(b.String())
}

// resolveChoice interprets fields[1] as either a numeric index into
// menu or a literal terminal name, and returns the chosen symbol and
// (for "read") the literal text to charge the edit with.
func resolveChoice(fields []string, menu []grammar.Symbol, tokens []alcep.Token, pos int) (grammar.Symbol, string, error) {
	if len(fields) < 2 {
		return grammar.Symbol{}, "", fmt.Errorf("usage: %s <n>", fields[0])
	}
	var sym grammar.Symbol
	if n, err := strconv.Atoi(fields[1]); err == nil {
		if n < 0 || n >= len(menu) {
			return grammar.Symbol{}, "", fmt.Errorf("no option %d on the current menu", n)
		}
		sym = menu[n]
	} else {
		found := false
		for _, s := range menu {
			if s.Name == fields[1] {
				sym, found = s, true
				break
			}
		}
		if !found {
			return grammar.Symbol{}, "", fmt.Errorf("no terminal %q on the current menu", fields[1])
		}
	}
	letter := sym.Name
	if pos < len(tokens) {
		letter = tokens[pos].Lexeme()
	}
	return sym, letter, nil
}
