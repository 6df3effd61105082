// Command levm is an interactive debugger for the minimal EVM bytecode
// interpreter in github.com/ethgo-labs/evmlite: load hex bytecode or
// assemble a .asm file, step or continue through it with breakpoints,
// and inspect the stack, memory and storage. A one-shot `run` mode
// executes hex bytecode and prints the stack top.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	prompt "github.com/c-bata/go-prompt"
	"github.com/fatih/color"

	evm "github.com/ethgo-labs/evmlite"
	"github.com/ethgo-labs/evmlite/asm"
)

var g = struct {
	vm    *evm.VM
	asm   *evm.Asm
	code  []byte
	trace *tracer
}{
	vm:  evm.NewVM(),
	asm: evm.NewAsm(),
}

// tracer prints every executed instruction, attached/detached by the
// `t` command.
type tracer struct {
	evm.EmptyHook
}

func (*tracer) PostStep(_ *evm.VM, line *evm.Line) error {
	color.Cyan(line.String())
	return nil
}

var suggestions = []prompt.Suggest{
	{Text: "help", Description: "Show all commands; 'help opcodes' lists supported opcodes"},
	{Text: "load <hex|.asm file>", Description: "Load bytecode (hex) or assemble a .asm file"},
	{Text: "mem [offset size]", Description: "Show memory"},
	{Text: "sto", Description: "Show storage"},
	{Text: "s", Description: "Show stack"},
	{Text: "p [pc]", Description: "Show disassembly at current/target pc"},
	{Text: "n", Description: "Single step"},
	{Text: "c", Description: "Continue to completion or next breakpoint"},
	{Text: "b", Description: "Breakpoint: b pc <n> | b op <NAME> | b l | b d <i>"},
	{Text: "t", Description: "Toggle instruction trace"},
	{Text: "q", Description: "Quit"},
}

func completer(in prompt.Document) []prompt.Suggest {
	if in.Text == "" {
		return nil
	}
	if len(strings.Split(in.Text, " ")) > 1 {
		return nil
	}
	return prompt.FilterHasPrefix(suggestions, in.GetWordBeforeCursor(), true)
}

func showDisasm(pc int) {
	line, err := g.asm.LineAtPC(pc)
	if err != nil {
		color.Red(err.Error())
		return
	}

	row := 0
	for i := 0; i < g.asm.LineCount(); i++ {
		if g.asm.AtRow(i) == line {
			row = i
			break
		}
	}

	beg := max(row-4, 0)
	end := min(row+4, g.asm.LineCount())

	for r := beg; r < end; r++ {
		l := g.asm.AtRow(r)
		if l.PC == pc {
			color.Blue(l.String())
		} else {
			fmt.Println(l.String())
		}
	}
}

func loadCode(code []byte) {
	g.code = code
	g.vm = evm.NewVM()
	g.trace = nil // hooks belong to the previous VM
	g.vm.Load(code)
	if err := g.asm.Disasm(code); err != nil {
		color.Red(err.Error())
		return
	}
	color.Green("loaded %d byte(s), %d instruction(s)", len(code), g.asm.LineCount())
	showDisasm(g.vm.PC())
}

func executor(in string) {
	in = strings.TrimSpace(in)
	if in == "" {
		in = "n"
	}

	arg := strings.Split(in, " ")
	argc := len(arg)
	cmd := arg[0]

	if g.code == nil && cmd != "load" && cmd != "help" && cmd != "q" {
		color.Red("'load' first")
		return
	}

	switch cmd {
	case "help":
		if argc == 2 && arg[1] == "opcodes" {
			names := []string{}
			evm.SupportedOpcodes().Each(func(op evm.OpCode) bool {
				names = append(names, op.String())
				return false
			})
			sort.Strings(names)
			fmt.Println(strings.Join(names, " "))
			return
		}
		for _, s := range suggestions {
			color.HiBlue("%-22s %s", s.Text, color.WhiteString(s.Description))
		}

	case "q", "quit", "exit":
		os.Exit(0)

	case "load":
		if argc != 2 {
			color.Red("usage: load <hex> | load <file.asm>")
			return
		}
		src := arg[1]
		if strings.HasSuffix(src, ".asm") {
			bs, err := os.ReadFile(src)
			if err != nil {
				color.Red(err.Error())
				return
			}
			code, err := asm.Assemble(string(bs))
			if err != nil {
				color.Red(err.Error())
				return
			}
			loadCode(code)
			return
		}
		code, err := evm.DecodeHex(src)
		if err != nil {
			color.Red(err.Error())
			return
		}
		loadCode(code)

	case "s", "stack":
		for i := g.vm.Stack().Len() - 1; i >= 0; i-- {
			v, _ := g.vm.Stack().Peek(g.vm.Stack().Len() - 1 - i)
			fmt.Println(v.Hex())
		}

	case "sto", "storage":
		items := g.vm.Storage().Items()
		view := make(map[string]string, len(items))
		for k, v := range items {
			view[k.Hex()] = v.Hex()
		}
		fmt.Println(toPrettyJSON(view))

	case "m", "mem", "memory":
		switch argc {
		case 1:
			fmt.Println(hex.Dump(g.vm.Memory().Data()))
		case 3:
			offset, e1 := parseAnyInt(arg[1])
			size, e2 := parseAnyInt(arg[2])
			if e1 != nil || e2 != nil {
				color.Red("usage: mem <offset> <size>")
				return
			}
			fmt.Println(hex.Dump(g.vm.Memory().ReadBytes(offset, size)))
		default:
			color.Red("usage: mem [offset size]")
		}

	case "p", "print":
		pc := g.vm.PC()
		if argc == 2 {
			v, err := parseAnyInt(arg[1])
			if err != nil {
				color.Red(err.Error())
				return
			}
			pc = int(v)
		}
		showDisasm(pc)

	case "n", "next":
		if err := g.vm.StepOnce(); err != nil {
			color.Red(err.Error())
		}
		showDisasm(g.vm.PC())

	case "c", "continue", "r", "run":
		err := g.vm.Continue()
		switch {
		case err == nil:
			color.Green("all done.")
		case errors.Is(err, evm.ErrBreakpoint):
			color.Yellow("interrupted: %s", err.Error())
		default:
			color.Red(err.Error())
		}
		showDisasm(g.vm.PC())

	case "t", "trace":
		if g.trace == nil {
			g.trace = &tracer{}
			g.vm.Hooks.Attach(g.trace)
			color.Yellow("trace on")
			return
		}
		for i, h := range g.vm.Hooks.List() {
			if h == evm.Hook(g.trace) {
				g.vm.Hooks.Detach(i)
				break
			}
		}
		g.trace = nil
		color.Yellow("trace off")

	case "b", "bp", "breakpoint":
		handleBreakpoint(arg, argc)

	default:
		color.Red("unknown command %q, try 'help'", cmd)
	}
}

func handleBreakpoint(arg []string, argc int) {
	if argc == 2 && arg[1] == "l" {
		for i, h := range g.vm.Hooks.List() {
			fmt.Printf("%d: %v\n", i, h)
		}
		return
	}
	if argc == 3 && arg[1] == "d" {
		i, err := strconv.Atoi(arg[2])
		if err != nil {
			color.Red(err.Error())
			return
		}
		g.vm.Hooks.Detach(i)
		return
	}
	if argc != 3 {
		color.Red("usage: b pc <n> | b op <NAME> | b l | b d <i>")
		return
	}

	switch arg[1] {
	case "pc":
		pc, err := parseAnyInt(arg[2])
		if err != nil {
			color.Red(err.Error())
			return
		}
		bp := &evm.BreakAtPC{PC: int(pc)}
		g.vm.Hooks.Attach(bp)
		color.Yellow("breakpoint added @ pc %d", bp.PC)

	case "op":
		name := strings.ToUpper(arg[2])
		var op evm.OpCode
		found := false
		evm.SupportedOpcodes().Each(func(o evm.OpCode) bool {
			if o.String() == name {
				op = o
				found = true
				return true
			}
			return false
		})
		if !found {
			color.Red("unknown opcode %q", arg[2])
			return
		}
		bp := &evm.BreakAtOp{Op: op}
		g.vm.Hooks.Attach(bp)
		color.Yellow("breakpoint added @ opcode %s", op.String())

	default:
		color.Red("usage: b pc <n> | b op <NAME> | b l | b d <i>")
	}
}

func main() {
	if len(os.Args) >= 3 && os.Args[1] == "run" {
		code, err := evm.DecodeHex(os.Args[2])
		if err != nil {
			color.Red(err.Error())
			os.Exit(1)
		}
		vm := evm.NewVM()
		if err := vm.Execute(code); err != nil {
			color.Red(err.Error())
			os.Exit(1)
		}
		if top, err := vm.StackTop(); err == nil {
			fmt.Println(top.Hex())
		}
		return
	}

	color.Green("levm - minimal EVM bytecode debugger")
	p := prompt.New(executor, completer,
		prompt.OptionPrefix(">>> "),
		prompt.OptionTitle("levm"),
	)
	p.Run()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
